// Copyright © 2023-2024 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package ec

import (
	"github.com/platinasystems/crosecbus/lpc"
)

// Proto2 is the legacy args protocol: parameters at EC_LPC_ADDR_HOST_PARAM,
// HostArgs at EC_LPC_ADDR_HOST_ARGS and the command byte itself as the
// trigger.
type Proto2 struct {
	lpc.Port
	Region lpc.Region
	Waiter *lpc.Waiter
}

func (p *Proto2) String() string { return "v2" }

func (p *Proto2) Command(cmd uint16, version uint8, out, in []byte) (int, error) {
	if len(out) > EC_PROTO2_MAX_PARAM_SIZE {
		return 0, errCommand(cmd, version, ErrRequestTooBig)
	}
	args := HostArgs{
		Flags:          EC_HOST_ARGS_FLAG_FROM_HOST,
		CommandVersion: version,
		DataSize:       uint8(len(out)),
	}
	sum, err := p.Region.Write(EC_LPC_ADDR_HOST_PARAM, out)
	if err != nil {
		return 0, err
	}
	args.Checksum = args.sum(cmd) + sum
	if _, err = p.Region.Write(EC_LPC_ADDR_HOST_ARGS, args.Bytes()); err != nil {
		return 0, err
	}

	p.Outb(EC_LPC_ADDR_HOST_CMD, uint8(cmd))

	if err = wait(p.Waiter, p.Port); err != nil {
		return 0, errCommand(cmd, version, err)
	}
	if err = status(p.Port); err != nil {
		return 0, errCommand(cmd, version, err)
	}

	buf := make([]byte, SizeofHostArgs)
	if _, err = p.Region.Read(EC_LPC_ADDR_HOST_ARGS, buf); err != nil {
		return 0, err
	}
	args.Parse(buf)
	if args.Flags&EC_HOST_ARGS_FLAG_TO_HOST == 0 {
		return 0, errCommand(cmd, version, ErrProtocolMismatch)
	}
	n := int(args.DataSize)
	if n > len(in) || n > EC_PROTO2_MAX_PARAM_SIZE {
		return 0, errCommand(cmd, version, ErrResponseTooBig)
	}

	buf = make([]byte, n)
	if sum, err = p.Region.Read(EC_LPC_ADDR_HOST_PARAM, buf); err != nil {
		return 0, err
	}
	if args.sum(cmd)+sum != args.Checksum {
		return 0, errCommand(cmd, version, ErrChecksum)
	}
	return copy(in, buf), nil
}
