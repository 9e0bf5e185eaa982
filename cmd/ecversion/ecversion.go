// Copyright © 2023-2024 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package ecversion prints the firmware versions and features of the EC.
package ecversion

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/platinasystems/crosecbus/ec"
	"github.com/platinasystems/crosecbus/internal/ecparms"
	"github.com/platinasystems/crosecbus/lang"
	"github.com/platinasystems/log"
)

type Command struct {
	Stdout io.Writer
}

func (*Command) String() string { return "ecversion" }

func (*Command) Usage() string { return "ecversion " + ecparms.Usage }

func (*Command) Apropos() lang.Alt {
	return lang.Alt{
		lang.EnUS: "print embedded controller firmware version",
	}
}

func (*Command) Man() lang.Alt {
	return lang.Alt{
		lang.EnUS: `
DESCRIPTION
	Print the read-only and read-write firmware versions of the
	embedded controller, the copy that is running, its feature flags
	and, if supported, its host command protocol limits.

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
	d, err := o.Open()
	if err != nil {
		return err
	}
	defer o.Close()
	w := c.Stdout
	if w == nil {
		w = os.Stdout
	}
	Show(w, d)
	return nil
}

func Show(w io.Writer, d *ec.Dev) {
	fmt.Fprintln(w, "RO version:", d.Version.RO())
	fmt.Fprintln(w, "RW version:", d.Version.RW())
	fmt.Fprintln(w, "Firmware copy:", d.Version.Image())
	if f := d.Features(); f == ec.FeaturesUnknown {
		fmt.Fprintln(w, "Features: unknown")
	} else {
		fmt.Fprintf(w, "Features: %#010x %#010x %s\n", f[0], f[1],
			strings.Join(f.Names(), " "))
	}
	fmt.Fprintln(w, "Transport:", d.Transport)
	info, err := d.GetProtocolInfo()
	if err != nil {
		log.Print("debug", "protocol info: ", err)
		return
	}
	var versions []string
	for v := 0; v < 32; v++ {
		if info.ProtocolVersions&(1<<uint(v)) != 0 {
			versions = append(versions, fmt.Sprint(v))
		}
	}
	fmt.Fprintln(w, "Protocol versions:", strings.Join(versions, " "))
	fmt.Fprintln(w, "Max request:", info.MaxRequestPacket, "bytes")
	fmt.Fprintln(w, "Max response:", info.MaxResponsePacket, "bytes")
}
