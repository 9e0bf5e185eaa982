// Copyright © 2023-2024 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package ec_test

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/platinasystems/crosecbus/ec"
	"github.com/platinasystems/crosecbus/internal/ecsim"
	"github.com/platinasystems/crosecbus/internal/test"
)

func TestExecuteClamp(t *testing.T) {
	for _, x := range transports {
		t.Run(x.name, func(t *testing.T) {
			assert := test.Assert{TB: t}
			sim, d := open(t, x.mode, x.flags, x.mec)
			sim.Handlers[cmdEcho] = echo

			r, err := d.Execute(ec.Command{
				Code:   cmdEcho,
				Out:    []byte{1, 2},
				InSize: 4096,
			})
			assert.Nil(err)
			assert.True(r.Clamped)
			assert.Bytes(r.Data, []byte{0, 1, 2})

			commands := sim.Stats().Commands
			_, err = d.Execute(ec.Command{
				Code: cmdEcho,
				Out:  make([]byte, d.MaxOut+1),
			})
			assert.Error(err, ec.ErrRequestTooBig)
			assert.Int(sim.Stats().Commands, commands)
		})
	}
}

func TestExecuteRetryLater(t *testing.T) {
	assert := test.Assert{TB: t}
	sim := ecsim.New(ecsim.Direct, v3)
	cfg := config()
	var slept []time.Duration
	cfg.Sleep = func(d time.Duration) { slept = append(slept, d) }
	d, err := ec.Open(sim, cfg)
	assert.Nil(err)
	assert.Int(len(slept), 0)

	ec.Urgent(d, 1)
	commands := sim.Stats().Commands
	_, err = d.ProtoVersion()
	assert.Error(err, ec.ErrRetryLater)
	assert.Int(int(ec.ResultOf(err)), int(ec.EC_RES_BUSY))
	assert.Int(len(slept), ec.DefaultRetries)
	for _, s := range slept {
		assert.True(s == ec.DefaultRetryMin)
	}
	assert.Int(sim.Stats().Commands, commands)

	// urgent caller finishes during the second backoff
	var d2 *ec.Dev
	calls := 0
	cfg2 := ec.DefaultConfig()
	cfg2.Sleep = func(time.Duration) {
		if calls++; calls == 2 {
			ec.Urgent(d2, -1)
		}
	}
	d2 = ec.New(d.Transport, cfg2)
	ec.Urgent(d2, 1)
	v, err := d2.ProtoVersion()
	assert.Nil(err)
	assert.Int(int(v), ec.EC_PROTO_VERSION)
	assert.Int(calls, 2)

	// no retries at all
	cfg3 := cfg
	cfg3.Retries = 0
	d3 := ec.New(d.Transport, cfg3)
	ec.Urgent(d3, 1)
	_, err = d3.ProtoVersion()
	assert.Error(err, ec.ErrRetryLater)
}

func TestExecuteUrgent(t *testing.T) {
	assert := test.Assert{TB: t}
	sim, d := open(t, ecsim.Direct, v3, false)
	sim.Events = [][]byte{
		{ec.EC_MKBP_EVENT_HOST_EVENT, 2, 0, 0, 0},
		{ec.EC_MKBP_EVENT_SWITCH, 1, 0, 0, 0},
	}
	ev, err := d.GetNextEvent()
	assert.Nil(err)
	assert.Int(int(ev.Type), ec.EC_MKBP_EVENT_HOST_EVENT)
	assert.True(ev.More)
	assert.Bytes(ev.Data, []byte{2, 0, 0, 0})
	assert.Equal(ev.String(), "HOST_EVENT 02 00 00 00")

	ev, err = d.GetNextEvent()
	assert.Nil(err)
	assert.Int(int(ev.Type), ec.EC_MKBP_EVENT_SWITCH)
	assert.False(ev.More)

	_, err = d.GetNextEvent()
	assert.Error(err, &ec.ResultError{Result: ec.EC_RES_UNAVAILABLE})

	// urgent commands never yield
	ec.Urgent(d, 1)
	defer ec.Urgent(d, -1)
	r, err := d.ExecuteUrgent(ec.Command{Code: ec.EC_CMD_PROTO_VERSION, InSize: 4})
	assert.Nil(err)
	assert.Int(len(r.Data), 4)
}

func TestExecuteSerialized(t *testing.T) {
	for _, x := range transports {
		t.Run(x.name, func(t *testing.T) {
			assert := test.Assert{TB: t}
			sim := ecsim.New(x.mode, x.flags)
			sim.Busy = 3
			cfg := ec.DefaultConfig()
			cfg.MEC = x.mec
			cfg.Wait.Delay = time.Microsecond
			cfg.Wait.Interval = time.Microsecond
			d, err := ec.Open(sim, cfg)
			assert.Nil(err)
			before := sim.Stats().Commands

			const callers, calls = 4, 25
			var wg sync.WaitGroup
			errs := make(chan error, callers*calls)
			for c := 0; c < callers; c++ {
				wg.Add(1)
				go func(c int) {
					defer wg.Done()
					for i := 0; i < calls; i++ {
						in := uint32(c<<16 | i)
						out, err := d.Hello(in)
						if err == nil && out != in+0x01020304 {
							err = fmt.Errorf("hello %#x: %#x", in, out)
						}
						if err != nil {
							errs <- err
						}
					}
				}(c)
			}
			wg.Wait()
			close(errs)
			for err := range errs {
				t.Error(err)
			}
			stats := sim.Stats()
			assert.Int(stats.Overlaps, 0)
			assert.Int(stats.Commands-before, callers*calls)
		})
	}
}

func TestHelpers(t *testing.T) {
	for _, x := range transports {
		t.Run(x.name, func(t *testing.T) {
			assert := test.Assert{TB: t}
			sim, d := open(t, x.mode, x.flags, x.mec)

			out, err := d.Hello(0x10203040)
			assert.Nil(err)
			assert.Int(int(out), 0x11223344)

			v, err := d.ProtoVersion()
			assert.Nil(err)
			assert.Int(int(v), ec.EC_PROTO_VERSION)

			mask, err := d.GetCmdVersions(ec.EC_CMD_GET_CMD_VERSIONS)
			assert.Nil(err)
			assert.Int(int(mask), int(ec.EC_VER_MASK(0)|ec.EC_VER_MASK(1)))

			mask, err = d.GetCmdVersions(ec.EC_CMD_HELLO)
			assert.Nil(err)
			assert.Int(int(mask), int(ec.EC_VER_MASK(0)))

			_, err = d.GetCmdVersions(0x123)
			var re *ec.ResultError
			assert.True(errors.As(err, &re))
			assert.Equal(re.Result.String(), "INVALID_PARAM")

			info, err := d.GetProtocolInfo()
			assert.Nil(err)
			assert.Int(int(info.MaxRequestPacket), ec.EC_LPC_HOST_PACKET_SIZE)

			f, err := d.GetFeatures()
			assert.Nil(err)
			assert.True(f == ec.Features(sim.Features))

			sim.HostEventsB = 0x81
			b, err := d.HostEventGetB()
			assert.Nil(err)
			assert.Int(int(b), 0x81)
		})
	}
}

func TestPwm(t *testing.T) {
	for _, x := range transports {
		t.Run(x.name, func(t *testing.T) {
			assert := test.Assert{TB: t}
			sim, d := open(t, x.mode, x.flags, x.mec)

			assert.Nil(d.SetFanTargetRPM(1, 3200))
			fans, err := d.Fans()
			assert.Nil(err)
			assert.Equal(fans[0].String(), "not present")
			assert.Equal(fans[1].String(), "3200 RPM")

			err = d.SetFanTargetRPM(ec.EC_FAN_SPEED_ENTRIES, 100)
			assert.True(errors.Is(err, &ec.ResultError{Result: ec.EC_RES_INVALID_PARAM}))

			pct, err := d.KeyboardBacklight()
			assert.Nil(err)
			assert.Int(int(pct), 0)
			assert.Nil(d.SetKeyboardBacklight(40))
			assert.Int(int(sim.Backlight), 40)
			pct, err = d.KeyboardBacklight()
			assert.Nil(err)
			assert.Int(int(pct), 40)

			err = d.SetKeyboardBacklight(101)
			assert.True(errors.Is(err, &ec.ResultError{Result: ec.EC_RES_INVALID_PARAM}))
			assert.Int(int(sim.Backlight), 40)
		})
	}
}

func TestHostEventsB(t *testing.T) {
	for _, x := range transports {
		t.Run(x.name, func(t *testing.T) {
			assert := test.Assert{TB: t}
			sim, d := open(t, x.mode, x.flags, x.mec)

			b, err := d.TakeHostEventsB()
			assert.Nil(err)
			assert.Int(int(b), 0)

			lid := ec.EC_HOST_EVENT_MASK(ec.EC_HOST_EVENT_LID_OPEN)
			sim.HostEventsB = 1<<32 | lid
			b, err = d.TakeHostEventsB()
			assert.Nil(err)
			assert.True(b == 1<<32|lid)
			assert.True(sim.HostEventsB == 0)
			assert.Bytes(sim.LastParams(), []byte{
				ec.EC_HOST_EVENT_CLEAR, ec.EC_HOST_EVENT_B, 0, 0,
				byte(lid), 0, 0, 0,
				1, 0, 0, 0,
			})

			sim.HostEventsB = 0x81
			v, err := d.HostEvent(ec.EC_HOST_EVENT_SET, ec.EC_HOST_EVENT_B,
				0x300)
			assert.Nil(err)
			assert.Int(int(v), 0)
			assert.True(sim.HostEventsB == 0x381)
			v, err = d.HostEvent(ec.EC_HOST_EVENT_GET, ec.EC_HOST_EVENT_B, 0)
			assert.Nil(err)
			assert.True(v == 0x381)

			_, err = d.HostEvent(ec.EC_HOST_EVENT_GET, ec.EC_HOST_EVENT_MAIN, 0)
			assert.True(errors.Is(err, &ec.ResultError{Result: ec.EC_RES_INVALID_PARAM}))

			assert.Nil(d.HostEventClearB(0x301))
			assert.Bytes(sim.LastParams(), []byte{0x01, 0x03, 0, 0})
			assert.True(sim.HostEventsB == 0x80)
		})
	}
}

func TestHostEventsB32(t *testing.T) {
	assert := test.Assert{TB: t}
	sim := ecsim.New(ecsim.Direct, v3)
	sim.Features[1] = 0
	d, err := ec.Open(sim, config())
	assert.Nil(err)

	sim.HostEventsB = 1<<32 | 0x6
	b, err := d.TakeHostEventsB()
	assert.Nil(err)
	assert.Int(int(b), 0x6)
	assert.Bytes(sim.LastParams(), []byte{0x06, 0, 0, 0})
	assert.True(sim.HostEventsB == 1<<32)
}

// Commands only reach the EC through Execute and ExecuteUrgent.
func TestDevCommandPaths(t *testing.T) {
	assert := test.Assert{TB: t}
	dev := reflect.TypeOf(&ec.Dev{})
	_, found := dev.MethodByName("Command")
	assert.False(found)

	codec := reflect.TypeOf((*ec.Codec)(nil)).Elem()
	for _, typ := range []reflect.Type{dev.Elem(), reflect.TypeOf(ec.Transport{})} {
		for i := 0; i < typ.NumField(); i++ {
			f := typ.Field(i)
			if f.IsExported() && f.Type.Implements(codec) {
				t.Errorf("%v.%s: exported codec", typ, f.Name)
			}
		}
	}
}
