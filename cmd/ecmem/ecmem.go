// Copyright © 2023-2024 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package ecmem reads the EC memory map.
package ecmem

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/platinasystems/crosecbus/ec"
	"github.com/platinasystems/crosecbus/internal/ecparms"
	"github.com/platinasystems/crosecbus/lang"
)

type Command struct {
	Stdout io.Writer
}

func (*Command) String() string { return "ecmem" }

func (*Command) Usage() string {
	return "ecmem " + ecparms.Usage +
		" {OFFSET [LENGTH] | temps | fans | battery | switches | events}"
}

func (*Command) Apropos() lang.Alt {
	return lang.Alt{
		lang.EnUS: "read the embedded controller memory map",
	}
}

func (*Command) Man() lang.Alt {
	return lang.Alt{
		lang.EnUS: `
DESCRIPTION
	With OFFSET and LENGTH, hexdump that part of the memory map. With
	OFFSET alone, print the NUL terminated string found there. The
	named forms decode the sensor, battery, switch and event blocks.

OPTIONS` + ecparms.Man + `

EXAMPLES
	ecmem 0x20 2
	ecmem 0x4c
	ecmem temps`,
	}
}

func (c *Command) Main(args ...string) error {
	o, args, err := ecparms.New(args, nil, nil)
	if err != nil {
		return err
	}
	switch len(args) {
	case 0:
		return fmt.Errorf("OFFSET: missing")
	case 1, 2:
	default:
		return fmt.Errorf("%v: unexpected", args[2:])
	}
	show, found := shows[args[0]]
	if !found {
		show, err = region(args)
		if err != nil {
			return err
		}
	} else if len(args) > 1 {
		return fmt.Errorf("%v: unexpected", args[1:])
	}
	t, err := o.Probe()
	if err != nil {
		return err
	}
	defer o.Close()
	w := c.Stdout
	if w == nil {
		w = os.Stdout
	}
	return show(w, t)
}

type showFunc func(io.Writer, *ec.Transport) error

var shows = map[string]showFunc{
	"temps":    temps,
	"fans":     fans,
	"battery":  battery,
	"switches": switches,
	"events":   events,
}

func region(args []string) (showFunc, error) {
	offset, err := strconv.ParseUint(args[0], 0, 8)
	if err != nil {
		return nil, fmt.Errorf("OFFSET %s: %v", args[0], err)
	}
	length := uint64(0)
	if len(args) > 1 {
		length, err = strconv.ParseUint(args[1], 0, 8)
		if err != nil {
			return nil, fmt.Errorf("LENGTH %s: %v", args[1], err)
		}
		if length == 0 {
			return nil, fmt.Errorf("LENGTH: zero")
		}
	}
	return func(w io.Writer, t *ec.Transport) error {
		b, err := t.ReadMemmap(uint8(offset), uint8(length))
		if err != nil {
			return err
		}
		if length > 0 {
			_, err = io.WriteString(w, hex.Dump(b))
			return err
		}
		if n := len(b); n > 0 && b[n-1] == 0 {
			b = b[:n-1]
		}
		_, err = fmt.Fprintf(w, "%q\n", b)
		return err
	}, nil
}

func temps(w io.Writer, t *ec.Transport) error {
	v, err := t.Temps()
	if err != nil {
		return err
	}
	for i, temp := range v {
		if temp != ec.EC_TEMP_SENSOR_NOT_PRESENT {
			fmt.Fprintf(w, "temp.%d: %s\n", i, temp)
		}
	}
	return nil
}

func fans(w io.Writer, t *ec.Transport) error {
	v, err := t.Fans()
	if err != nil {
		return err
	}
	for i, fan := range v {
		if fan.Present() {
			fmt.Fprintf(w, "fan.%d: %s\n", i, fan)
		}
	}
	return nil
}

func battery(w io.Writer, t *ec.Transport) error {
	b, err := t.Battery()
	if err != nil {
		return err
	}
	if !b.Present() {
		fmt.Fprintln(w, "battery: not present")
		return nil
	}
	state := "idle"
	switch {
	case b.Charging():
		state = "charging"
	case b.Discharging():
		state = "discharging"
	}
	if b.Critical() {
		state += ", critical"
	}
	fmt.Fprintln(w, "battery:", state)
	fmt.Fprintln(w, "ac:", b.AC())
	fmt.Fprintln(w, "manufacturer:", b.Manufacturer)
	fmt.Fprintln(w, "model:", b.Model)
	fmt.Fprintln(w, "serial:", b.Serial)
	fmt.Fprintln(w, "type:", b.Type)
	fmt.Fprintln(w, "voltage:", b.Volt, "mV")
	fmt.Fprintln(w, "rate:", b.Rate, "mA")
	fmt.Fprintln(w, "capacity:", b.Cap, "mAh")
	fmt.Fprintln(w, "last full capacity:", b.LastFullCap, "mAh")
	fmt.Fprintln(w, "design capacity:", b.DesignCap, "mAh")
	fmt.Fprintln(w, "design voltage:", b.DesignVolt, "mV")
	fmt.Fprintln(w, "cycles:", b.CycleCount)
	return nil
}

func switches(w io.Writer, t *ec.Transport) error {
	s, err := t.Switches()
	if err != nil {
		return err
	}
	for _, x := range []struct {
		bit  uint8
		name string
	}{
		{ec.EC_SWITCH_LID_OPEN, "lid open"},
		{ec.EC_SWITCH_POWER_BUTTON_PRESSED, "power button pressed"},
		{ec.EC_SWITCH_WRITE_PROTECT_DISABLED, "write protect disabled"},
		{ec.EC_SWITCH_DEDICATED_RECOVERY, "dedicated recovery"},
	} {
		fmt.Fprintf(w, "%s: %t\n", x.name, s&x.bit != 0)
	}
	return nil
}

func events(w io.Writer, t *ec.Transport) error {
	v, err := t.HostEvents()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "host events: %#010x\n", v)
	for code := uint(1); code <= 32; code++ {
		if uint64(v)&ec.EC_HOST_EVENT_MASK(code) != 0 {
			fmt.Fprintln(w, " ", ec.HostEventName(code))
		}
	}
	return nil
}
