// Copyright © 2023-2024 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package ec

import (
	"fmt"
)

// call encodes params, if any, runs the command and decodes the response
// into rsp, if any.
func (d *Dev) call(code uint16, version uint8, params, rsp interface{}) error {
	c := Command{Code: code, Version: version}
	if params != nil {
		c.Out = Encode(params)
	}
	if rsp != nil {
		c.InSize = Sizeof(rsp)
	}
	r, err := d.Execute(c)
	if err != nil {
		return err
	}
	if rsp != nil {
		return Decode(r.Data, rsp)
	}
	return nil
}

// Hello returns in + 0x01020304 from a working EC.
func (d *Dev) Hello(in uint32) (uint32, error) {
	var rsp ResponseHello
	if err := d.call(EC_CMD_HELLO, 0, &ParamsHello{in}, &rsp); err != nil {
		return 0, err
	}
	if want := in + 0x01020304; rsp.OutData != want {
		return rsp.OutData, fmt.Errorf("hello %#x: got %#x want %#x",
			in, rsp.OutData, want)
	}
	return rsp.OutData, nil
}

func (d *Dev) ProtoVersion() (uint32, error) {
	var rsp ResponseProtoVersion
	err := d.call(EC_CMD_PROTO_VERSION, 0, nil, &rsp)
	return rsp.Version, err
}

func (d *Dev) GetVersion() (*ResponseGetVersion, error) {
	rsp := new(ResponseGetVersion)
	if err := d.call(EC_CMD_GET_VERSION, 0, nil, rsp); err != nil {
		return nil, err
	}
	return rsp, nil
}

func (d *Dev) GetFeatures() (Features, error) {
	var rsp ResponseGetFeatures
	if err := d.call(EC_CMD_GET_FEATURES, 0, nil, &rsp); err != nil {
		return FeaturesUnknown, err
	}
	return Features(rsp.Flags), nil
}

// GetCmdVersions returns the EC_VER_MASK of versions the EC supports for
// cmd. Commands above 0xff need version 1 of the query.
func (d *Dev) GetCmdVersions(cmd uint16) (uint32, error) {
	var rsp ResponseGetCmdVersions
	var err error
	if cmd > 0xff {
		err = d.call(EC_CMD_GET_CMD_VERSIONS, 1,
			&ParamsGetCmdVersionsV1{cmd}, &rsp)
	} else {
		err = d.call(EC_CMD_GET_CMD_VERSIONS, 0,
			&ParamsGetCmdVersions{uint8(cmd)}, &rsp)
	}
	return rsp.VersionMask, err
}

func (d *Dev) GetProtocolInfo() (*ResponseGetProtocolInfo, error) {
	rsp := new(ResponseGetProtocolInfo)
	if err := d.call(EC_CMD_GET_PROTOCOL_INFO, 0, nil, rsp); err != nil {
		return nil, err
	}
	return rsp, nil
}

func (d *Dev) HostEventGetB() (uint32, error) {
	var rsp ResponseHostEventMask
	err := d.call(EC_CMD_HOST_EVENT_GET_B, 0, nil, &rsp)
	return rsp.Mask, err
}

// HostEventClearB clears the given bits of the B copy of host events.
func (d *Dev) HostEventClearB(mask uint32) error {
	return d.call(EC_CMD_HOST_EVENT_CLEAR_B, 0,
		&ResponseHostEventMask{mask}, nil)
}

// HostEvent gets, sets or clears one of the 64-bit EC_HOST_EVENT_* masks.
func (d *Dev) HostEvent(action, maskType uint8, value uint64) (uint64, error) {
	var rsp ResponseHostEvent
	err := d.call(EC_CMD_HOST_EVENT, 0, &ParamsHostEvent{
		Action:   action,
		MaskType: maskType,
		Value:    value,
	}, &rsp)
	return rsp.Value, err
}

// TakeHostEventsB returns and clears the pending B copy host events, as
// EC_HOST_EVENT_MASK bits. An EC without EC_FEATURE_HOST_EVENT64 is limited
// to the low 32.
func (d *Dev) TakeHostEventsB() (uint64, error) {
	if d.HasFeature(EC_FEATURE_HOST_EVENT64) {
		b, err := d.HostEvent(EC_HOST_EVENT_GET, EC_HOST_EVENT_B, 0)
		if err != nil || b == 0 {
			return 0, err
		}
		_, err = d.HostEvent(EC_HOST_EVENT_CLEAR, EC_HOST_EVENT_B, b)
		return b, err
	}
	b, err := d.HostEventGetB()
	if err != nil || b == 0 {
		return 0, err
	}
	return uint64(b), d.HostEventClearB(b)
}

// Event is an MKBP event from EC_CMD_GET_NEXT_EVENT.
type Event struct {
	Type uint8
	// More is set while the EC has further events queued.
	More bool
	Data []byte
}

func (e Event) String() string {
	name := fmt.Sprint("EVENT_", e.Type)
	if int(e.Type) < len(EC_MKBP_EVENT_TEXT) {
		name = EC_MKBP_EVENT_TEXT[e.Type]
	}
	return fmt.Sprintf("%s % x", name, e.Data)
}

// GetNextEvent is an urgent command; it goes ahead of queued Execute calls.
// An EC with nothing pending fails with EC_RES_UNAVAILABLE.
func (d *Dev) GetNextEvent() (Event, error) {
	r, err := d.ExecuteUrgent(Command{
		Code:    EC_CMD_GET_NEXT_EVENT,
		Version: 1,
		InSize:  1 + 16,
	})
	if err != nil {
		return Event{}, err
	}
	if len(r.Data) == 0 {
		return Event{}, ErrInvalidResponse
	}
	return Event{
		Type: r.Data[0] & EC_MKBP_EVENT_TYPE_MASK,
		More: r.Data[0]&EC_MKBP_HAS_MORE_EVENTS != 0,
		Data: r.Data[1:],
	}, nil
}

// SetFanTargetRPM sets the target speed of one fan.
func (d *Dev) SetFanTargetRPM(fan uint8, rpm uint32) error {
	return d.call(EC_CMD_PWM_SET_FAN_TARGET_RPM, 1,
		&ParamsPwmSetFanTargetRpmV1{Rpm: rpm, FanIdx: fan}, nil)
}

func (d *Dev) SetKeyboardBacklight(percent uint8) error {
	if percent > 100 {
		return fmt.Errorf("keyboard backlight %d%%: %w", percent,
			&ResultError{EC_RES_INVALID_PARAM})
	}
	return d.call(EC_CMD_PWM_SET_KEYBOARD_BACKLIGHT, 0,
		&ParamsPwmSetKeyboardBacklight{percent}, nil)
}

// KeyboardBacklight returns the brightness in percent, zero if disabled.
func (d *Dev) KeyboardBacklight() (uint8, error) {
	var rsp ResponsePwmGetKeyboardBacklight
	err := d.call(EC_CMD_PWM_GET_KEYBOARD_BACKLIGHT, 0, nil, &rsp)
	if rsp.Enabled == 0 {
		return 0, err
	}
	return rsp.Percent, err
}
