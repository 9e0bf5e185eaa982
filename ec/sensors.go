// Copyright © 2023-2024 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package ec

import (
	"encoding/binary"
	"fmt"
)

// Temp is one raw EC_MEMMAP_TEMP_SENSOR entry.
type Temp uint8

// Valid is false for absent, failed, unpowered and uncalibrated sensors.
func (t Temp) Valid() bool { return t < EC_TEMP_SENSOR_NOT_CALIBRATED }

func (t Temp) Kelvin() int { return int(t) + EC_TEMP_SENSOR_OFFSET }

func (t Temp) Celsius() int { return t.Kelvin() - 273 }

func (t Temp) String() string {
	switch t {
	case EC_TEMP_SENSOR_NOT_PRESENT:
		return "not present"
	case EC_TEMP_SENSOR_ERROR:
		return "error"
	case EC_TEMP_SENSOR_NOT_POWERED:
		return "not powered"
	case EC_TEMP_SENSOR_NOT_CALIBRATED:
		return "not calibrated"
	}
	return fmt.Sprint(t.Celsius(), "C")
}

// Temps returns all temperature entries; version 2 and later of the
// thermal block adds EC_TEMP_SENSOR_B_ENTRIES more.
func (t *Transport) Temps() ([]Temp, error) {
	b, err := t.ReadMemmap(EC_MEMMAP_TEMP_SENSOR, EC_TEMP_SENSOR_ENTRIES)
	if err != nil {
		return nil, err
	}
	v, err := t.ReadMemmap(EC_MEMMAP_THERMAL_VERSION, 1)
	if err != nil {
		return nil, err
	}
	if v[0] >= 2 {
		bb, err := t.ReadMemmap(EC_MEMMAP_TEMP_SENSOR_B,
			EC_TEMP_SENSOR_B_ENTRIES)
		if err != nil {
			return nil, err
		}
		b = append(b, bb...)
	}
	temps := make([]Temp, len(b))
	for i, x := range b {
		temps[i] = Temp(x)
	}
	return temps, nil
}

// Fan is one EC_MEMMAP_FAN entry in RPM.
type Fan uint16

func (f Fan) Present() bool { return f != EC_FAN_SPEED_NOT_PRESENT }

func (f Fan) String() string {
	switch f {
	case EC_FAN_SPEED_NOT_PRESENT:
		return "not present"
	case EC_FAN_SPEED_STALLED:
		return "stalled"
	}
	return fmt.Sprint(uint16(f), " RPM")
}

func (t *Transport) Fans() ([]Fan, error) {
	b, err := t.ReadMemmap(EC_MEMMAP_FAN, 2*EC_FAN_SPEED_ENTRIES)
	if err != nil {
		return nil, err
	}
	fans := make([]Fan, EC_FAN_SPEED_ENTRIES)
	for i := range fans {
		fans[i] = Fan(binary.LittleEndian.Uint16(b[2*i:]))
	}
	return fans, nil
}

// Battery is the EC_MEMMAP_BATT_* block. Units are mV, mA and mAh.
type Battery struct {
	Volt, Rate, Cap uint32
	Flag            uint8
	DesignCap       uint32
	DesignVolt      uint32
	LastFullCap     uint32
	CycleCount      uint32
	Manufacturer    string
	Model, Serial   string
	Type            string
}

func (b *Battery) Present() bool { return b.Flag&EC_BATT_FLAG_BATT_PRESENT != 0 }
func (b *Battery) AC() bool      { return b.Flag&EC_BATT_FLAG_AC_PRESENT != 0 }
func (b *Battery) Charging() bool {
	return b.Flag&EC_BATT_FLAG_CHARGING != 0
}
func (b *Battery) Discharging() bool {
	return b.Flag&EC_BATT_FLAG_DISCHARGING != 0
}
func (b *Battery) Critical() bool {
	return b.Flag&EC_BATT_FLAG_LEVEL_CRITICAL != 0
}

func (t *Transport) Battery() (*Battery, error) {
	const size = EC_MEMMAP_BATT_TYPE + EC_MEMMAP_TEXT_MAX - EC_MEMMAP_BATT_VOLT
	b, err := t.ReadMemmap(EC_MEMMAP_BATT_VOLT, size)
	if err != nil {
		return nil, err
	}
	u32 := func(off int) uint32 {
		return binary.LittleEndian.Uint32(b[off-EC_MEMMAP_BATT_VOLT:])
	}
	text := func(off int) string {
		off -= EC_MEMMAP_BATT_VOLT
		return cstring(b[off : off+EC_MEMMAP_TEXT_MAX])
	}
	return &Battery{
		Volt:         u32(EC_MEMMAP_BATT_VOLT),
		Rate:         u32(EC_MEMMAP_BATT_RATE),
		Cap:          u32(EC_MEMMAP_BATT_CAP),
		Flag:         b[EC_MEMMAP_BATT_FLAG-EC_MEMMAP_BATT_VOLT],
		DesignCap:    u32(EC_MEMMAP_BATT_DCAP),
		DesignVolt:   u32(EC_MEMMAP_BATT_DVLT),
		LastFullCap:  u32(EC_MEMMAP_BATT_LFCC),
		CycleCount:   u32(EC_MEMMAP_BATT_CCNT),
		Manufacturer: text(EC_MEMMAP_BATT_MFGR),
		Model:        text(EC_MEMMAP_BATT_MODEL),
		Serial:       text(EC_MEMMAP_BATT_SERIAL),
		Type:         text(EC_MEMMAP_BATT_TYPE),
	}, nil
}

func (t *Transport) Switches() (uint8, error) {
	b, err := t.ReadMemmap(EC_MEMMAP_SWITCHES, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (t *Transport) HostEvents() (uint32, error) {
	b, err := t.ReadMemmap(EC_MEMMAP_HOST_EVENTS, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}
