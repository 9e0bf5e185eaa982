// Copyright © 2023-2024 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package ec_test

import (
	"encoding/binary"
	"testing"

	"github.com/platinasystems/crosecbus/ec"
	"github.com/platinasystems/crosecbus/internal/ecsim"
	"github.com/platinasystems/crosecbus/internal/test"
)

func TestReadMemmap(t *testing.T) {
	for _, x := range transports {
		t.Run(x.name, func(t *testing.T) {
			assert := test.Assert{TB: t}
			sim, d := open(t, x.mode, x.flags, x.mec)
			mm := sim.Memmap()

			b, err := d.ReadMemmap(ec.EC_MEMMAP_ID, 2)
			assert.Nil(err)
			assert.Equal(string(b), "EC")

			copy(mm[ec.EC_MEMMAP_BATT_MFGR:], "EC\x00junk")
			b, err = d.ReadMemmap(ec.EC_MEMMAP_BATT_MFGR, 0)
			assert.Nil(err)
			assert.Int(len(b), 3)
			assert.Equal(string(b), "EC\x00")

			// unterminated string stops at the end of the map
			copy(mm[250:], "ABCDE")
			b, err = d.ReadMemmap(250, 0)
			assert.Nil(err)
			assert.Equal(string(b), "ABCDE")

			b, err = d.ReadMemmap(250, 5)
			assert.Nil(err)
			assert.Equal(string(b), "ABCDE")

			b, err = d.ReadMemmap(0, ec.EC_MEMMAP_SIZE)
			assert.Nil(err)
			assert.Int(len(b), ec.EC_MEMMAP_SIZE)
		})
	}
}

func TestReadMemmapRange(t *testing.T) {
	assert := test.Assert{TB: t}
	_, d := open(t, ecsim.Direct, v3, false)
	for _, x := range []struct{ offset, length uint8 }{
		{250, 6},
		{1, 255},
		{255, 1},
		{255, 0},
		{200, 100},
	} {
		b, err := d.ReadMemmap(x.offset, x.length)
		assert.Error(err, ec.ErrMemmapRange)
		assert.True(b == nil)
	}
	assert.Int(int(ec.ResultOf(ec.ErrMemmapRange)), int(ec.EC_RES_INVALID_PARAM))
}

func TestSensors(t *testing.T) {
	assert := test.Assert{TB: t}
	sim, d := open(t, ecsim.Direct, v3, false)
	mm := sim.Memmap()

	mm[ec.EC_MEMMAP_TEMP_SENSOR] = 100
	mm[ec.EC_MEMMAP_TEMP_SENSOR+1] = ec.EC_TEMP_SENSOR_ERROR
	mm[ec.EC_MEMMAP_TEMP_SENSOR_B] = 120
	temps, err := d.Temps()
	assert.Nil(err)
	assert.Int(len(temps), ec.EC_TEMP_SENSOR_ENTRIES+ec.EC_TEMP_SENSOR_B_ENTRIES)
	assert.True(temps[0].Valid())
	assert.Int(temps[0].Kelvin(), 300)
	assert.Equal(temps[0].String(), "27C")
	assert.False(temps[1].Valid())
	assert.Equal(temps[1].String(), "error")
	assert.Equal(temps[2].String(), "not present")
	assert.Int(temps[ec.EC_TEMP_SENSOR_ENTRIES].Celsius(), 47)

	mm[ec.EC_MEMMAP_THERMAL_VERSION] = 1
	temps, err = d.Temps()
	assert.Nil(err)
	assert.Int(len(temps), ec.EC_TEMP_SENSOR_ENTRIES)

	binary.LittleEndian.PutUint16(mm[ec.EC_MEMMAP_FAN:], 2400)
	binary.LittleEndian.PutUint16(mm[ec.EC_MEMMAP_FAN+2:], ec.EC_FAN_SPEED_STALLED)
	fans, err := d.Fans()
	assert.Nil(err)
	assert.Int(len(fans), ec.EC_FAN_SPEED_ENTRIES)
	assert.Equal(fans[0].String(), "2400 RPM")
	assert.Equal(fans[1].String(), "stalled")
	assert.True(fans[1].Present())
	assert.False(fans[2].Present())

	binary.LittleEndian.PutUint32(mm[ec.EC_MEMMAP_BATT_VOLT:], 12600)
	binary.LittleEndian.PutUint32(mm[ec.EC_MEMMAP_BATT_CAP:], 4100)
	binary.LittleEndian.PutUint32(mm[ec.EC_MEMMAP_BATT_CCNT:], 17)
	mm[ec.EC_MEMMAP_BATT_FLAG] = ec.EC_BATT_FLAG_BATT_PRESENT |
		ec.EC_BATT_FLAG_AC_PRESENT | ec.EC_BATT_FLAG_CHARGING
	copy(mm[ec.EC_MEMMAP_BATT_MFGR:], "SMP\x00")
	copy(mm[ec.EC_MEMMAP_BATT_MODEL:], "ABC12345")
	bat, err := d.Battery()
	assert.Nil(err)
	assert.Int(int(bat.Volt), 12600)
	assert.Int(int(bat.Cap), 4100)
	assert.Int(int(bat.CycleCount), 17)
	assert.True(bat.Present())
	assert.True(bat.AC())
	assert.True(bat.Charging())
	assert.False(bat.Discharging())
	assert.Equal(bat.Manufacturer, "SMP")
	assert.Equal(bat.Model, "ABC12345")

	mm[ec.EC_MEMMAP_SWITCHES] = ec.EC_SWITCH_LID_OPEN
	sw, err := d.Switches()
	assert.Nil(err)
	assert.Int(int(sw), ec.EC_SWITCH_LID_OPEN)

	binary.LittleEndian.PutUint32(mm[ec.EC_MEMMAP_HOST_EVENTS:],
		uint32(ec.EC_HOST_EVENT_MASK(ec.EC_HOST_EVENT_LID_OPEN)))
	ev, err := d.HostEvents()
	assert.Nil(err)
	assert.Int(int(ev), 2)
}
