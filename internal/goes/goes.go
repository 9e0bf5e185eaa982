// Copyright © 2023-2024 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package goes runs one of several commands plotted into a single binary,
// selected by the first argument or by the name the binary was invoked as.
package goes

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/platinasystems/crosecbus/cmd"
	"github.com/platinasystems/crosecbus/lang"
	"github.com/platinasystems/log"
)

type Goes struct {
	NAME, USAGE  string
	APROPOS, MAN lang.Alt

	ByName map[string]cmd.Cmd

	// Stdout receives helper text; nil is os.Stdout.
	Stdout io.Writer
}

func New(name string) *Goes {
	return &Goes{
		NAME:   name,
		ByName: make(map[string]cmd.Cmd),
	}
}

// Plot the given commands by name.
func (g *Goes) Plot(cmds ...cmd.Cmd) {
	for _, v := range cmds {
		g.ByName[v.String()] = v
	}
}

func (g *Goes) String() string { return g.NAME }

// Names of the plotted commands that aren't hidden, sorted.
func (g *Goes) Names() []string {
	names := make([]string, 0, len(g.ByName))
	for k, v := range g.ByName {
		if !cmd.KindOf(v).Has(cmd.Hidden) {
			names = append(names, k)
		}
	}
	sort.Strings(names)
	return names
}

// Main runs the args[0] command. When run w/o args this uses os.Args, with
// the program's own base name selecting the command if it's plotted, and
// exits instead of returns on error.
//
// A helper option following the command runs the helper on that command,
//
//	COMMAND -[-]HELPER [ARGS]...
//
// is the same as
//
//	HELPER COMMAND [ARGS]...
func (g *Goes) Main(args ...string) (err error) {
	if len(args) == 0 {
		args = os.Args
		if len(args) > 0 {
			base := filepath.Base(args[0])
			if _, found := g.ByName[base]; found {
				args[0] = base
			} else {
				args = args[1:]
			}
		}
		defer func() {
			if err != nil && err != io.EOF {
				fmt.Fprintf(os.Stderr, "%s: %v\n", ProgBase(), err)
				os.Exit(1)
			}
		}()
	}
	if len(args) == 0 {
		return g.usage()
	}
	if len(args) > 1 && strings.HasPrefix(args[1], "-") {
		if h := helper(args[1]); h != nil {
			return h(g, append(args[:1:1], args[2:]...)...)
		}
	}
	if h := helper(args[0]); h != nil {
		return h(g, args[1:]...)
	}
	v, found := g.ByName[args[0]]
	if !found {
		return fmt.Errorf("%s: command not found", args[0])
	}
	if cmd.KindOf(v).Has(cmd.Daemon) {
		return g.daemon(v, args[1:]...)
	}
	return v.Main(args[1:]...)
}

// daemon runs v in the foreground until it returns or a signal asks it to
// stop.
func (g *Goes) daemon(v cmd.Cmd, args ...string) error {
	if closer, ok := v.(cmd.Closer); ok {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sig)
		done := make(chan struct{})
		defer close(done)
		go func() {
			select {
			case s := <-sig:
				log.Print("daemon", "info", v, ": ", s)
				if err := closer.Close(); err != nil {
					log.Print("daemon", "err", v, ": ", err)
				}
			case <-done:
			}
		}()
	}
	err := v.Main(args...)
	if err != nil {
		log.Print("daemon", "err", v, ": ", err)
	}
	return err
}

func (g *Goes) stdout() io.Writer {
	if g.Stdout != nil {
		return g.Stdout
	}
	return os.Stdout
}
