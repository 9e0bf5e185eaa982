// Copyright © 2023-2024 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package ecd

import (
	"fmt"
	"testing"

	"github.com/platinasystems/crosecbus/ec"
	"github.com/platinasystems/crosecbus/internal/ecsim"
	"github.com/platinasystems/crosecbus/internal/test"
	"github.com/platinasystems/redis/rpc/args"
	"github.com/platinasystems/redis/rpc/reply"
)

type lines []string

func (l *lines) Print(a ...interface{}) (int, error) {
	s := fmt.Sprint(a...)
	*l = append(*l, s)
	return len(s), nil
}

func info(t *testing.T) (*ecsim.EC, *Info, *lines) {
	t.Helper()
	assert := test.Assert{TB: t}
	sim := ecsim.New(ecsim.Direct, ec.EC_HOST_CMD_FLAG_VERSION_3)
	sim.Features[0] |= 1 << ec.EC_FEATURE_PWM_KEYB
	mm := sim.Memmap()
	mm[ec.EC_MEMMAP_TEMP_SENSOR+2] = 100
	d, err := ec.Open(sim, ec.DefaultConfig())
	assert.Nil(err)
	pub := new(lines)
	return sim, &Info{dev: d, pub: pub, last: make(map[string]string)}, pub
}

func TestUpdate(t *testing.T) {
	assert := test.Assert{TB: t}
	sim, i, pub := info(t)
	sim.Events = [][]byte{
		{ec.EC_MKBP_EVENT_BUTTON, 1},
		{ec.EC_MKBP_EVENT_SWITCH, 2},
	}
	sim.HostEventsB = ec.EC_HOST_EVENT_MASK(ec.EC_HOST_EVENT_LID_OPEN) |
		ec.EC_HOST_EVENT_MASK(40)

	i.update()
	assert.Equal(fmt.Sprint(*pub), fmt.Sprint([]string{
		"ec.image: RW",
		"ec.protocol: v3",
		"ec.version.ro: sim_v1.0.0-ro",
		"ec.version.rw: sim_v1.0.0-rw",
		"host.events: 0x00000000",
		"keyboard.backlight.units.%: 0",
		"switches: 0x00",
		"temp.2.units.C: 27C",
		"ec.event: BUTTON 01",
		"ec.event: SWITCH 02",
		"ec.host.event: LID_OPEN",
		"ec.host.event: HOST_EVENT_40",
	}))
	assert.True(sim.HostEventsB == 0)

	*pub = nil
	i.update()
	assert.Int(len(*pub), 0)

	sim.Memmap()[ec.EC_MEMMAP_TEMP_SENSOR+2] = ec.EC_TEMP_SENSOR_NOT_PRESENT
	sim.Memmap()[ec.EC_MEMMAP_TEMP_SENSOR+3] = ec.EC_TEMP_SENSOR_ERROR
	i.update()
	assert.Equal(fmt.Sprint(*pub), fmt.Sprint([]string{
		"temp.3.units.C: error",
		"delete: temp.2.units.C",
	}))
}

func TestHset(t *testing.T) {
	assert := test.Assert{TB: t}
	sim, i, pub := info(t)
	var r reply.Hset
	i.update()
	*pub = nil

	assert.Equal(fmt.Sprint(i.writable()), "[fan.0.target.units.rpm "+
		"fan.1.target.units.rpm fan.2.target.units.rpm "+
		"fan.3.target.units.rpm keyboard.backlight.units.%]")

	assert.Nil(i.Hset(args.Hset{
		Field: "fan.2.target.units.rpm",
		Value: []byte("1800\n"),
	}, &r))
	assert.Int(int(r), 1)
	assert.Equal(fmt.Sprint(*pub), "[fan.2.target.units.rpm: 1800]")
	fans, err := i.dev.Fans()
	assert.Nil(err)
	assert.Equal(fans[2].String(), "1800 RPM")

	assert.Nil(i.Hset(args.Hset{
		Field: "keyboard.backlight.units.%",
		Value: []byte("60"),
	}, &r))
	assert.Int(int(sim.Backlight), 60)

	*pub = nil
	i.update()
	assert.Equal(fmt.Sprint(*pub), fmt.Sprint([]string{
		"fan.2.speed.units.rpm: 1800 RPM",
		"keyboard.backlight.units.%: 60",
	}))

	for _, x := range []struct {
		field, value string
		err          interface{}
	}{
		{"fan.4.target.units.rpm", "1", "fan.4.target.units.rpm: no such fan"},
		{"fan.1.target.units.rpmx", "1", "cannot hset: fan.1.target.units.rpmx"},
		{"fan.1.speed.units.rpm", "1", "cannot hset: fan.1.speed.units.rpm"},
		{"fan.1.target.units.rpm", "fast", true},
		{"keyboard.backlight.units.%", "101",
			&ec.ResultError{Result: ec.EC_RES_INVALID_PARAM}},
		{"ec.protocol", "v2", "cannot hset: ec.protocol"},
	} {
		r = 0
		assert.Error(i.Hset(args.Hset{
			Field: x.field,
			Value: []byte(x.value),
		}, &r), x.err)
		assert.Int(int(r), 0)
	}
	assert.Int(int(sim.Backlight), 60)
}
