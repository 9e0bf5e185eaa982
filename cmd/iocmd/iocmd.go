// Copyright © 2023-2024 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package iocmd reads and writes single I/O ports through an lpc backend.
package iocmd

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/platinasystems/crosecbus/internal/ecparms"
	"github.com/platinasystems/crosecbus/lang"
	"github.com/platinasystems/crosecbus/lpc"
	"github.com/platinasystems/flags"
	"github.com/platinasystems/parms"
)

type Command struct {
	Stdout io.Writer
}

func (*Command) String() string { return "io" }

func (*Command) Usage() string {
	return "io [[-r] | -w] [-16] [-port NAME] IO-ADDRESS [-D DATA]"
}

func (*Command) Apropos() lang.Alt {
	return lang.Alt{
		lang.EnUS: "read/write the CPU's I/O ports",
	}
}

func (*Command) Man() lang.Alt {
	return lang.Alt{
		lang.EnUS: `
DESCRIPTION
	This command reads and writes the CPU's I/O ports.
	  -r to read from ioport, default
	  -w to write to ioport
	  -16 for a 16-bit access, low byte at IO-ADDRESS
	     IO-ADDRESS is a hex value
	  -D DATA is a hex value
	  -port NAME selects the backend, ioport (default) or devport

EXAMPLES
	io 0x204
	io -w 0x900 -D 0x45`,
	}
}

func (c *Command) Main(args ...string) error {
	flag, args := flags.New(args, "-r", "-w", "-16")
	parm, args := parms.New(args, "-D", "-port")
	if len(args) == 0 {
		return fmt.Errorf("IO-ADDRESS: missing")
	}
	if len(args) > 1 {
		return fmt.Errorf("%v: unexpected", args[1:])
	}
	if parm.ByName["-D"] == "" {
		parm.ByName["-D"] = "0x0"
	}
	if parm.ByName["-port"] == "" {
		parm.ByName["-port"] = ecparms.DefaultPort
	}
	bits := 8
	if flag.ByName["-16"] {
		bits = 16
	}

	a, err := strconv.ParseUint(args[0], 0, 16)
	if err != nil {
		return fmt.Errorf("%s: %v", args[0], err)
	}
	d, err := strconv.ParseUint(parm.ByName["-D"], 0, bits)
	if err != nil {
		return fmt.Errorf("%s: %v", parm.ByName["-D"], err)
	}
	port, err := lpc.Open(parm.ByName["-port"])
	if err != nil {
		return err
	}
	defer lpc.Close(port)

	if flag.ByName["-w"] {
		if bits == 16 {
			port.Outw(uint16(a), uint16(d))
		} else {
			port.Outb(uint16(a), byte(d))
		}
		return nil
	}
	w := c.Stdout
	if w == nil {
		w = os.Stdout
	}
	if bits == 16 {
		fmt.Fprintf(w, "%x: %x\n", a, port.Inw(uint16(a)))
	} else {
		fmt.Fprintf(w, "%x: %x\n", a, port.Inb(uint16(a)))
	}
	return nil
}
