// Copyright © 2023-2024 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package ecprobe reports the host command transport of the EC, if any.
package ecprobe

import (
	"fmt"
	"io"
	"os"

	"github.com/platinasystems/crosecbus/ec"
	"github.com/platinasystems/crosecbus/internal/ecparms"
	"github.com/platinasystems/crosecbus/lang"
)

type Command struct {
	Stdout io.Writer
}

func (*Command) String() string { return "ecprobe" }

func (*Command) Usage() string { return "ecprobe " + ecparms.Usage }

func (*Command) Apropos() lang.Alt {
	return lang.Alt{
		lang.EnUS: "detect the embedded controller and its protocol",
	}
}

func (*Command) Man() lang.Alt {
	return lang.Alt{
		lang.EnUS: `
DESCRIPTION
	Look for an embedded controller behind the LPC host command ports
	and print the negotiated protocol, the largest request and
	response payloads, and the memory map identity. No host command
	is sent.

OPTIONS` + ecparms.Man,
	}
}

func (c *Command) Main(args ...string) error {
	o, args, err := ecparms.New(args, nil, nil)
	if err != nil {
		return err
	}
	if len(args) > 0 {
		return fmt.Errorf("%v: unexpected", args)
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
	return Show(w, t)
}

// Show the transport and the memory map header.
func Show(w io.Writer, t *ec.Transport) error {
	b, err := t.ReadMemmap(0, ec.EC_MEMMAP_HOST_CMD_FLAGS+1)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "protocol:", t.Protocol)
	fmt.Fprintln(w, "max request:", t.MaxOut)
	fmt.Fprintln(w, "max response:", t.MaxIn)
	fmt.Fprintln(w, "memmap version:", b[ec.EC_MEMMAP_ID_VERSION])
	fmt.Fprintln(w, "thermal version:", b[ec.EC_MEMMAP_THERMAL_VERSION])
	fmt.Fprintln(w, "battery version:", b[ec.EC_MEMMAP_BATTERY_VERSION])
	fmt.Fprintln(w, "switches version:", b[ec.EC_MEMMAP_SWITCHES_VERSION])
	fmt.Fprintln(w, "events version:", b[ec.EC_MEMMAP_EVENTS_VERSION])
	fmt.Fprintf(w, "host command flags: %#02x\n",
		b[ec.EC_MEMMAP_HOST_CMD_FLAGS])
	return nil
}
