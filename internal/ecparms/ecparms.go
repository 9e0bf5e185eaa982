// Copyright © 2023-2024 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package ecparms parses the options common to the ec commands and opens
// the EC they select.
package ecparms

import (
	"fmt"
	"time"

	"github.com/platinasystems/crosecbus/ec"
	"github.com/platinasystems/crosecbus/lpc"
	"github.com/platinasystems/flags"
	"github.com/platinasystems/parms"
)

const DefaultPort = "ioport"

// Usage of the common options, for command Usage strings.
const Usage = "[-port NAME] [-mec] [-timeout DURATION]"

// Man text of the common options.
const Man = `
	-port NAME
		I/O port backend, ioport (default) or devport
	-mec	probe for a Microchip EMI window first
	-timeout DURATION
		EC busy wait limit, e.g. 500ms; default 1s`

type Options struct {
	Flag   *flags.Flags
	Parm   *parms.Parms
	Config ec.Config
	Port   string

	port lpc.Port
}

// New parses the common options along with the command's own flags and
// parameters, returning the remaining arguments.
func New(args []string, cmdFlags, cmdParms []interface{}) (*Options, []string, error) {
	o := &Options{Config: ec.DefaultConfig()}
	o.Flag, args = flags.New(args, append([]interface{}{"-mec"}, cmdFlags...)...)
	o.Parm, args = parms.New(args, append([]interface{}{"-port", "-timeout"}, cmdParms...)...)
	o.Config.MEC = o.Flag.ByName["-mec"]
	o.Port = o.Parm.ByName["-port"]
	if len(o.Port) == 0 {
		o.Port = DefaultPort
	}
	if s := o.Parm.ByName["-timeout"]; len(s) > 0 {
		d, err := time.ParseDuration(s)
		if err != nil {
			return nil, nil, fmt.Errorf("-timeout %s: %v", s, err)
		}
		o.Config.Wait.Timeout = d
	}
	return o, args, nil
}

// Probe opens the selected port and negotiates a transport, without
// running any command. The port stays open until Close.
func (o *Options) Probe() (*ec.Transport, error) {
	if err := o.open(); err != nil {
		return nil, err
	}
	t, err := ec.Probe(o.port, o.Config)
	if err != nil {
		o.Close()
		return nil, err
	}
	return t, nil
}

// Open the selected port and EC. The port stays open until Close.
func (o *Options) Open() (*ec.Dev, error) {
	if err := o.open(); err != nil {
		return nil, err
	}
	d, err := ec.Open(o.port, o.Config)
	if err != nil {
		o.Close()
		return nil, err
	}
	return d, nil
}

func (o *Options) open() error {
	if o.port != nil {
		return nil
	}
	port, err := lpc.Open(o.Port)
	if err != nil {
		return err
	}
	o.port = port
	return nil
}

// Close the port opened by Probe or Open.
func (o *Options) Close() error {
	if o.port == nil {
		return nil
	}
	err := lpc.Close(o.port)
	o.port = nil
	return err
}
