// Copyright © 2023-2024 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package ecsim

import (
	"encoding/binary"

	"github.com/platinasystems/crosecbus/ec"
	"github.com/platinasystems/crosecbus/lpc"
)

func (e *EC) trigger(b byte) {
	if e.inCmd {
		e.stats.Overlaps++
	}
	e.stats.Commands++
	e.inCmd = true
	e.busy = e.Busy
	if b == ec.EC_COMMAND_PROTOCOL_3 {
		e.proto3()
	} else {
		e.proto2(uint16(b))
	}
}

func (e *EC) run(cmd uint16, version uint8, params []byte) (ec.Result, []byte) {
	e.last = append(e.last[:0], params...)
	h, found := e.Handlers[cmd]
	if !found {
		return ec.EC_RES_INVALID_COMMAND, nil
	}
	return h(version, params)
}

func (e *EC) proto2(cmd uint16) {
	var args ec.HostArgs
	args.Parse(e.mem[:ec.SizeofHostArgs])
	params := e.mem[ec.SizeofHostArgs : ec.SizeofHostArgs+int(args.DataSize)]
	sum := uint8(cmd) + args.Flags + args.CommandVersion + args.DataSize +
		lpc.Sum(params)
	if args.Flags&ec.EC_HOST_ARGS_FLAG_FROM_HOST == 0 || sum != args.Checksum {
		e.data = byte(ec.EC_RES_INVALID_CHECKSUM)
		return
	}
	res, out := e.run(cmd, args.CommandVersion,
		append([]byte{}, params...))
	e.data = byte(res)
	if res != ec.EC_RES_SUCCESS {
		return
	}
	if len(out) > ec.EC_PROTO2_MAX_PARAM_SIZE {
		out = out[:ec.EC_PROTO2_MAX_PARAM_SIZE]
	}
	args = ec.HostArgs{
		Flags:          ec.EC_HOST_ARGS_FLAG_TO_HOST,
		CommandVersion: args.CommandVersion,
		DataSize:       uint8(len(out)),
	}
	copy(e.mem[ec.SizeofHostArgs:], out)
	args.Checksum = uint8(cmd) + args.Flags + args.CommandVersion +
		args.DataSize + lpc.Sum(out)
	switch e.Fault {
	case BadChecksum:
		args.Checksum++
	case NoToHost:
		args.Flags = 0
	case Oversize:
		args.DataSize = ec.EC_PROTO2_MAX_PARAM_SIZE
	case Corrupt:
		if len(out) > 0 {
			e.mem[ec.SizeofHostArgs] ^= 0x40
		}
	}
	copy(e.mem[:], args.Bytes())
	if e.Mangle != nil {
		e.Mangle(e.mem[:ec.SizeofHostArgs+len(out)])
	}
}

func (e *EC) proto3() {
	var req ec.HostRequest
	req.Parse(e.mem[:ec.SizeofHostRequest])
	n := int(req.DataLen)
	if req.StructVersion != ec.EC_HOST_REQUEST_VERSION {
		e.respond3(ec.EC_RES_INVALID_HEADER_VERSION, nil)
		return
	}
	if ec.SizeofHostRequest+n > ec.EC_LPC_HOST_PACKET_SIZE {
		e.respond3(ec.EC_RES_REQUEST_TRUNCATED, nil)
		return
	}
	if lpc.Sum(e.mem[:ec.SizeofHostRequest+n]) != 0 {
		e.respond3(ec.EC_RES_INVALID_CHECKSUM, nil)
		return
	}
	params := append([]byte{}, e.mem[ec.SizeofHostRequest:ec.SizeofHostRequest+n]...)
	e.respond3(e.run(req.Command, req.CommandVersion, params))
}

func (e *EC) respond3(res ec.Result, out []byte) {
	const max = ec.EC_LPC_HOST_PACKET_SIZE - ec.SizeofHostResponse
	if len(out) > max {
		out = out[:max]
	}
	rsp := ec.HostResponse{
		StructVersion: ec.EC_HOST_RESPONSE_VERSION,
		Result:        uint16(res),
		DataLen:       uint16(len(out)),
	}
	switch e.Fault {
	case BadVersion:
		rsp.StructVersion = 2
	case BadReserved:
		rsp.Reserved = 1
	case Oversize:
		rsp.DataLen = max + 1
	}
	hdr := rsp.Bytes()
	rsp.Checksum = -(lpc.Sum(hdr) + lpc.Sum(out))
	if e.Fault == BadChecksum {
		rsp.Checksum++
	}
	copy(e.mem[:], rsp.Bytes())
	copy(e.mem[ec.SizeofHostResponse:], out)
	if e.Fault == Corrupt && len(out) > 0 {
		e.mem[ec.SizeofHostResponse] ^= 0x40
	}
	if e.Mangle != nil {
		e.Mangle(e.mem[:ec.SizeofHostResponse+len(out)])
	}
	e.data = byte(res)
}

func (e *EC) protoVersion(uint8, []byte) (ec.Result, []byte) {
	return ec.EC_RES_SUCCESS, ec.Encode(&ec.ResponseProtoVersion{
		Version: ec.EC_PROTO_VERSION,
	})
}

func (e *EC) hello(_ uint8, params []byte) (ec.Result, []byte) {
	var p ec.ParamsHello
	if len(params) < 4 {
		return ec.EC_RES_INVALID_PARAM, nil
	}
	ec.Decode(params, &p)
	return ec.EC_RES_SUCCESS, ec.Encode(&ec.ResponseHello{
		OutData: p.InData + 0x01020304,
	})
}

func (e *EC) getVersion(uint8, []byte) (ec.Result, []byte) {
	var r ec.ResponseGetVersion
	copy(r.VersionStringRO[:len(r.VersionStringRO)-1], e.VersionRO)
	copy(r.VersionStringRW[:len(r.VersionStringRW)-1], e.VersionRW)
	r.CurrentImage = ec.EC_IMAGE_RW
	return ec.EC_RES_SUCCESS, ec.Encode(&r)
}

func (e *EC) getFeatures(uint8, []byte) (ec.Result, []byte) {
	return ec.EC_RES_SUCCESS, ec.Encode(&ec.ResponseGetFeatures{
		Flags: e.Features,
	})
}

func (e *EC) getCmdVersions(version uint8, params []byte) (ec.Result, []byte) {
	var cmd uint16
	switch {
	case version == 0 && len(params) >= 1:
		cmd = uint16(params[0])
	case version == 1 && len(params) >= 2:
		cmd = binary.LittleEndian.Uint16(params)
	default:
		return ec.EC_RES_INVALID_PARAM, nil
	}
	var mask uint32
	switch {
	case cmd == ec.EC_CMD_GET_CMD_VERSIONS || cmd == ec.EC_CMD_GET_NEXT_EVENT:
		mask = ec.EC_VER_MASK(0) | ec.EC_VER_MASK(1)
	case e.Handlers[cmd] != nil:
		mask = ec.EC_VER_MASK(0)
	default:
		return ec.EC_RES_INVALID_PARAM, nil
	}
	return ec.EC_RES_SUCCESS, ec.Encode(&ec.ResponseGetCmdVersions{
		VersionMask: mask,
	})
}

func (e *EC) getProtocolInfo(uint8, []byte) (ec.Result, []byte) {
	var versions uint32 = 1 << 2
	if e.mem[0x100+ec.EC_MEMMAP_HOST_CMD_FLAGS]&
		ec.EC_HOST_CMD_FLAG_VERSION_3 != 0 {
		versions |= 1 << 3
	}
	return ec.EC_RES_SUCCESS, ec.Encode(&ec.ResponseGetProtocolInfo{
		ProtocolVersions:  versions,
		MaxRequestPacket:  ec.EC_LPC_HOST_PACKET_SIZE,
		MaxResponsePacket: ec.EC_LPC_HOST_PACKET_SIZE,
	})
}

func (e *EC) getNextEvent(uint8, []byte) (ec.Result, []byte) {
	if len(e.Events) == 0 {
		return ec.EC_RES_UNAVAILABLE, nil
	}
	ev := append([]byte{}, e.Events[0]...)
	e.Events = e.Events[1:]
	if len(e.Events) > 0 && len(ev) > 0 {
		ev[0] |= ec.EC_MKBP_HAS_MORE_EVENTS
	}
	return ec.EC_RES_SUCCESS, ev
}

func (e *EC) hostEventGetB(uint8, []byte) (ec.Result, []byte) {
	return ec.EC_RES_SUCCESS, ec.Encode(&ec.ResponseHostEventMask{
		Mask: uint32(e.HostEventsB),
	})
}

func (e *EC) hostEventClearB(_ uint8, params []byte) (ec.Result, []byte) {
	var p ec.ResponseHostEventMask
	if len(params) < ec.Sizeof(&p) {
		return ec.EC_RES_INVALID_PARAM, nil
	}
	ec.Decode(params, &p)
	e.HostEventsB &^= uint64(p.Mask)
	return ec.EC_RES_SUCCESS, nil
}

// hostEvent only knows the B copy.
func (e *EC) hostEvent(_ uint8, params []byte) (ec.Result, []byte) {
	var p ec.ParamsHostEvent
	if len(params) < ec.Sizeof(&p) {
		return ec.EC_RES_INVALID_PARAM, nil
	}
	ec.Decode(params, &p)
	if p.MaskType != ec.EC_HOST_EVENT_B {
		return ec.EC_RES_INVALID_PARAM, nil
	}
	switch p.Action {
	case ec.EC_HOST_EVENT_GET:
		return ec.EC_RES_SUCCESS, ec.Encode(&ec.ResponseHostEvent{
			Value: e.HostEventsB,
		})
	case ec.EC_HOST_EVENT_SET:
		e.HostEventsB |= p.Value
	case ec.EC_HOST_EVENT_CLEAR:
		e.HostEventsB &^= p.Value
	default:
		return ec.EC_RES_INVALID_PARAM, nil
	}
	return ec.EC_RES_SUCCESS, nil
}

// setFanTargetRPM reaches the target at once; version 0 sets every fan.
func (e *EC) setFanTargetRPM(version uint8, params []byte) (ec.Result, []byte) {
	var p ec.ParamsPwmSetFanTargetRpmV1
	switch {
	case version == 0 && len(params) >= 4:
	case version == 1 && len(params) >= 5:
	default:
		return ec.EC_RES_INVALID_PARAM, nil
	}
	ec.Decode(params, &p)
	if p.Rpm > 0xfffd || int(p.FanIdx) >= ec.EC_FAN_SPEED_ENTRIES {
		return ec.EC_RES_INVALID_PARAM, nil
	}
	mm := e.mem[0x100:]
	for i := 0; i < ec.EC_FAN_SPEED_ENTRIES; i++ {
		if version == 1 && i != int(p.FanIdx) {
			continue
		}
		binary.LittleEndian.PutUint16(mm[ec.EC_MEMMAP_FAN+2*i:],
			uint16(p.Rpm))
	}
	return ec.EC_RES_SUCCESS, nil
}

func (e *EC) setKeyboardBacklight(_ uint8, params []byte) (ec.Result, []byte) {
	if len(params) < 1 || params[0] > 100 {
		return ec.EC_RES_INVALID_PARAM, nil
	}
	e.Backlight = params[0]
	return ec.EC_RES_SUCCESS, nil
}

func (e *EC) getKeyboardBacklight(uint8, []byte) (ec.Result, []byte) {
	enabled := uint8(0)
	if e.Backlight > 0 {
		enabled = 1
	}
	return ec.EC_RES_SUCCESS, ec.Encode(&ec.ResponsePwmGetKeyboardBacklight{
		Percent: e.Backlight,
		Enabled: enabled,
	})
}
