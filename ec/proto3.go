// Copyright © 2023-2024 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package ec

import (
	"github.com/platinasystems/crosecbus/lpc"
)

// Proto3 is the packet protocol. The request and response packets share the
// buffer at EC_LPC_ADDR_HOST_PACKET, reached through Region, which is either
// lpc.Direct or an lpc.MEC window.
type Proto3 struct {
	lpc.Port
	Region lpc.Region
	Waiter *lpc.Waiter
}

func (p *Proto3) String() string {
	if _, ok := p.Region.(*lpc.MEC); ok {
		return "v3/mec"
	}
	return "v3"
}

func (p *Proto3) Command(cmd uint16, version uint8, out, in []byte) (int, error) {
	if SizeofHostRequest+len(out) > EC_LPC_HOST_PACKET_SIZE {
		return 0, errCommand(cmd, version, ErrRequestTruncated)
	}
	req := HostRequest{
		StructVersion:  EC_HOST_REQUEST_VERSION,
		Command:        cmd,
		CommandVersion: version,
		DataLen:        uint16(len(out)),
	}
	hdr := req.Bytes()
	req.Checksum = -(lpc.Sum(hdr) + lpc.Sum(out))
	hdr[1] = req.Checksum

	if _, err := p.Region.Write(EC_LPC_ADDR_HOST_PACKET+SizeofHostRequest, out); err != nil {
		return 0, err
	}
	if _, err := p.Region.Write(EC_LPC_ADDR_HOST_PACKET, hdr); err != nil {
		return 0, err
	}

	p.Outb(EC_LPC_ADDR_HOST_CMD, EC_COMMAND_PROTOCOL_3)

	if err := wait(p.Waiter, p.Port); err != nil {
		return 0, errCommand(cmd, version, err)
	}
	if err := status(p.Port); err != nil {
		return 0, errCommand(cmd, version, err)
	}

	var rsp HostResponse
	hdr = make([]byte, SizeofHostResponse)
	sum, err := p.Region.Read(EC_LPC_ADDR_HOST_PACKET, hdr)
	if err != nil {
		return 0, err
	}
	rsp.Parse(hdr)
	if rsp.StructVersion != EC_HOST_RESPONSE_VERSION {
		return 0, errCommand(cmd, version, ErrResponseVersion)
	}
	if rsp.Reserved != 0 {
		return 0, errCommand(cmd, version, ErrInvalidResponse)
	}
	n := int(rsp.DataLen)
	if n > len(in) || SizeofHostResponse+n > EC_LPC_HOST_PACKET_SIZE {
		return 0, errCommand(cmd, version, ErrResponseTooBig)
	}

	buf := make([]byte, n)
	payload, err := p.Region.Read(EC_LPC_ADDR_HOST_PACKET+SizeofHostResponse, buf)
	if err != nil {
		return 0, err
	}
	if sum+payload != 0 {
		return 0, errCommand(cmd, version, ErrChecksum)
	}
	return copy(in, buf), nil
}
