// Copyright © 2023-2024 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package eccmd sends one raw host command to the EC.
package eccmd

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/platinasystems/crosecbus/ec"
	"github.com/platinasystems/crosecbus/internal/ecparms"
	"github.com/platinasystems/crosecbus/lang"
	"github.com/platinasystems/log"
)

type Command struct {
	Stdout io.Writer
}

func (*Command) String() string { return "eccmd" }

func (*Command) Usage() string {
	return "eccmd [-x] [-v VERSION] [-i SIZE] " + ecparms.Usage +
		" COMMAND [DATA]..."
}

func (*Command) Apropos() lang.Alt {
	return lang.Alt{
		lang.EnUS: "send a host command to the embedded controller",
	}
}

func (*Command) Man() lang.Alt {
	return lang.Alt{
		lang.EnUS: `
DESCRIPTION
	Send COMMAND, a number or a name such as GET_VERSION, with the
	concatenated hexadecimal DATA as parameters and print the response.
	The response is a hexdump on a terminal, raw bytes otherwise.

OPTIONS
	-x	hexdump even if not a terminal
	-v VERSION
		command version, default 0
	-i SIZE
		response capacity, default the transport maximum` + ecparms.Man + `

EXAMPLES
	eccmd hello 04030201
	eccmd -v 1 -i 17 GET_NEXT_EVENT`,
	}
}

func (c *Command) Main(args ...string) error {
	o, args, err := ecparms.New(args, []interface{}{"-x"},
		[]interface{}{"-v", "-i"})
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("COMMAND: missing")
	}
	code, err := ec.ParseCommand(args[0])
	if err != nil {
		return err
	}
	out, err := Data(args[1:]...)
	if err != nil {
		return err
	}
	cmd := ec.Command{Code: code, Out: out, InSize: -1}
	if s := o.Parm.ByName["-v"]; len(s) > 0 {
		v, err := strconv.ParseUint(s, 0, 8)
		if err != nil {
			return fmt.Errorf("-v %s: %v", s, err)
		}
		cmd.Version = uint8(v)
	}
	if s := o.Parm.ByName["-i"]; len(s) > 0 {
		n, err := strconv.ParseUint(s, 0, 16)
		if err != nil {
			return fmt.Errorf("-i %s: %v", s, err)
		}
		cmd.InSize = int(n)
	}
	d, err := o.Open()
	if err != nil {
		return err
	}
	defer o.Close()
	if cmd.InSize < 0 {
		cmd.InSize = d.MaxIn
	}
	r, err := d.Execute(cmd)
	if err != nil {
		return fmt.Errorf("%s: %w", ec.CommandName(code), err)
	}
	if r.Clamped {
		log.Print("info", ec.CommandName(code), ": response clamped to ",
			d.MaxIn, " bytes")
	}
	w := c.Stdout
	if w == nil {
		w = os.Stdout
	}
	if o.Flag.ByName["-x"] || terminal(w) {
		_, err = io.WriteString(w, hex.Dump(r.Data))
	} else {
		_, err = w.Write(r.Data)
	}
	return err
}

// Data decodes each argument as hexadecimal, with or without 0x, into one
// parameter block.
func Data(args ...string) ([]byte, error) {
	var b []byte
	for _, arg := range args {
		s := strings.TrimPrefix(strings.ToLower(arg), "0x")
		if len(s)%2 != 0 {
			s = "0" + s
		}
		x, err := hex.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("%s: %v", arg, err)
		}
		b = append(b, x...)
	}
	return b, nil
}

func terminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
