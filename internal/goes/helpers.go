// Copyright © 2023-2024 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package goes

import (
	"fmt"
	"strings"

	"github.com/platinasystems/crosecbus/cmd"
	"github.com/platinasystems/crosecbus/lang"
)

type helperFunc func(*Goes, ...string) error

var helpers = map[string]helperFunc{
	"apropos": (*Goes).apropos,
	"help":    (*Goes).help,
	"man":     (*Goes).man,
	"usage":   (*Goes).usage,
}

// helper returns the helper named by s, which may have one or two leading
// hyphens; "-h" is help.
func helper(s string) helperFunc {
	name := strings.TrimPrefix(strings.TrimPrefix(s, "-"), "-")
	if name == "h" {
		name = "help"
	}
	return helpers[name]
}

func (g *Goes) Apropos() lang.Alt {
	if g.APROPOS != nil {
		return g.APROPOS
	}
	return lang.Alt{
		lang.EnUS: "Chrome EC host command tool",
	}
}

func (g *Goes) Usage() string {
	if len(g.USAGE) > 0 {
		return g.USAGE
	}
	return fmt.Sprint(g.NAME, " COMMAND [ARGS]...\n",
		"\t", g.NAME, " COMMAND -[-]HELPER [ARGS]...\n",
		"\t", g.NAME, " HELPER [COMMAND] [ARGS]...\n",
		"\n\tHELPER := { apropos | help | man | usage }")
}

func (g *Goes) Man() lang.Alt {
	if g.MAN != nil {
		return g.MAN
	}
	return lang.Alt{
		lang.EnUS: `
OPTIONS
	Most commands accept,
	-port NAME	I/O port backend: ioport (default) or devport
	-mec		try the Microchip EMI window before direct access
	-timeout DURATION
			EC busy wait limit, default 1s

SEE ALSO
	` + g.NAME + ` apropos [COMMAND], ` + g.NAME + ` man COMMAND`,
	}
}

// Usage formats the usage line of v.
func Usage(v interface{ Usage() string }) string {
	return "usage:\t" + strings.TrimSpace(v.Usage())
}

// lookup returns the named commands, or g itself if there are none; an
// unknown first name is an error, later ones end the list.
func (g *Goes) lookup(names []string) ([]cmd.Cmd, error) {
	var cmds []cmd.Cmd
	for i, name := range names {
		v, found := g.ByName[name]
		if !found {
			if i == 0 {
				return nil, fmt.Errorf("%s: not found", name)
			}
			break
		}
		cmds = append(cmds, v)
	}
	if len(cmds) == 0 {
		cmds = append(cmds, g)
	}
	return cmds, nil
}

// apropos lists every command, or the named ones, with a one line summary.
func (g *Goes) apropos(args ...string) error {
	if len(args) == 0 {
		args = g.Names()
	}
	cmds, err := g.lookup(args)
	if err != nil {
		return err
	}
	w := g.stdout()
	for _, v := range cmds {
		name := v.String()
		if len(name) < 16 {
			fmt.Fprintf(w, "%-16s%s\n", name, v.Apropos())
		} else {
			fmt.Fprintf(w, "%s\n\t\t%s\n", name, v.Apropos())
		}
	}
	return nil
}

func (g *Goes) help(args ...string) error {
	cmds, err := g.lookup(args)
	if err != nil {
		return err
	}
	fmt.Fprintln(g.stdout(), Usage(cmds[0]))
	return nil
}

func (g *Goes) usage(args ...string) error {
	return g.help(args...)
}

// man prints NAME, SYNOPSIS and then the Man text of each command.
func (g *Goes) man(args ...string) error {
	cmds, err := g.lookup(args)
	if err != nil {
		return err
	}
	w := g.stdout()
	for i, v := range cmds {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "NAME\n\t%s - %s\n\nSYNOPSIS\n\t%s\n",
			v, v.Apropos(), strings.TrimSpace(v.Usage()))
		if m, ok := v.(cmd.Maner); ok {
			fmt.Fprintf(w, "\n%s\n", lines(m.Man().String()))
		}
	}
	return nil
}

// lines trims the blank lines around raw string help text.
func lines(s string) string {
	return strings.Trim(s, "\n")
}
