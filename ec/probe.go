// Copyright © 2023-2024 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package ec

import (
	"fmt"

	"github.com/platinasystems/crosecbus/lpc"
	"github.com/platinasystems/log"
)

type Protocol int

const (
	ProtoNone Protocol = iota
	ProtoV2
	ProtoV3
	ProtoV3MEC
)

var protocolNames = []string{
	ProtoNone:  "none",
	ProtoV2:    "v2",
	ProtoV3:    "v3",
	ProtoV3MEC: "v3/mec",
}

func (p Protocol) String() string {
	if int(p) < len(protocolNames) {
		return protocolNames[p]
	}
	return fmt.Sprint("protocol(", int(p), ")")
}

// MEC window bounds; the host command packet and memory map are both
// reached through it.
const (
	MecBase = EC_HOST_CMD_REGION0
	MecEnd  = EC_LPC_ADDR_MEMMAP + EC_MEMMAP_SIZE
)

// Transport is the outcome of Probe. It is not modified afterward and may be
// read from any goroutine; Dev serializes the commands sent through it.
type Transport struct {
	Protocol Protocol
	// Region reaches the packet buffer and memory map.
	Region lpc.Region
	// Largest request and response payloads.
	MaxOut, MaxIn int

	port  lpc.Port
	codec Codec
}

// Probe detects an EC behind port and picks its host command protocol.
func Probe(port lpc.Port, cfg Config) (*Transport, error) {
	if port == nil {
		panic("ec: nil port")
	}
	cmd := port.Inb(EC_LPC_ADDR_HOST_CMD)
	data := port.Inb(EC_LPC_ADDR_HOST_DATA)
	if cmd&data == 0xff {
		return nil, ErrNotPresent
	}

	waiter := new(lpc.Waiter)
	*waiter = cfg.Wait
	t := &Transport{port: port}

	if cfg.MEC {
		mec := lpc.NewMEC(port, MecBase, MecEnd)
		id := make([]byte, 2)
		if _, err := mec.Read(EC_LPC_ADDR_MEMMAP+EC_MEMMAP_ID, id); err == nil &&
			string(id) == "EC" {
			t.Protocol = ProtoV3MEC
			t.Region = mec
			t.codec = &Proto3{Port: port, Region: mec, Waiter: waiter}
			t.MaxOut = EC_LPC_HOST_PACKET_SIZE - SizeofHostRequest
			t.MaxIn = EC_LPC_HOST_PACKET_SIZE - SizeofHostResponse
			log.Print("info", "EC ", t)
			return t, nil
		}
		log.Print("debug", "no MEC window, trying direct access")
	}

	direct := lpc.Direct{Port: port}
	id := make([]byte, 2)
	direct.Read(EC_LPC_ADDR_MEMMAP+EC_MEMMAP_ID, id)
	if string(id) != "EC" {
		return nil, ErrNoMemmap
	}
	t.Region = direct

	flags := port.Inb(EC_LPC_ADDR_MEMMAP + EC_MEMMAP_HOST_CMD_FLAGS)
	switch {
	case flags&EC_HOST_CMD_FLAG_VERSION_3 != 0:
		t.Protocol = ProtoV3
		t.codec = &Proto3{Port: port, Region: direct, Waiter: waiter}
		t.MaxOut = EC_LPC_HOST_PACKET_SIZE - SizeofHostRequest
		t.MaxIn = EC_LPC_HOST_PACKET_SIZE - SizeofHostResponse
	case flags&EC_HOST_CMD_FLAG_LPC_ARGS_SUPPORTED != 0:
		t.Protocol = ProtoV2
		t.codec = &Proto2{Port: port, Region: direct, Waiter: waiter}
		t.MaxOut = EC_PROTO2_MAX_PARAM_SIZE
		t.MaxIn = EC_PROTO2_MAX_PARAM_SIZE
	default:
		return nil, fmt.Errorf("host command flags %#x: %w",
			flags, ErrUnsupportedProtocol)
	}
	log.Print("info", "EC ", t)
	return t, nil
}

func (t *Transport) String() string {
	return fmt.Sprintf("%s max out %d in %d", t.Protocol, t.MaxOut, t.MaxIn)
}
