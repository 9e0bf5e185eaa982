// Copyright © 2023-2024 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package goes_test

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/platinasystems/crosecbus/cmd"
	"github.com/platinasystems/crosecbus/internal/goes"
	"github.com/platinasystems/crosecbus/internal/test"
	"github.com/platinasystems/crosecbus/lang"
)

type echo struct {
	args []string
}

func (*echo) String() string { return "echo" }
func (*echo) Usage() string  { return "echo [STRING]..." }
func (*echo) Apropos() lang.Alt {
	return lang.Alt{lang.EnUS: "repeat arguments"}
}
func (*echo) Man() lang.Alt {
	return lang.Alt{lang.EnUS: "DESCRIPTION\n\tRepeat arguments."}
}
func (e *echo) Main(args ...string) error {
	e.args = args
	return nil
}

type hidden struct{ echo }

func (*hidden) String() string { return "hidden" }
func (*hidden) Kind() cmd.Kind { return cmd.Hidden }

type daemon struct {
	echo
}

func (*daemon) String() string { return "daemon" }
func (*daemon) Kind() cmd.Kind { return cmd.Daemon }
func (d *daemon) Main(...string) error {
	return errors.New("stopped")
}

func plot() (*goes.Goes, *bytes.Buffer, *echo) {
	buf := new(bytes.Buffer)
	e := new(echo)
	g := goes.New("test")
	g.Stdout = buf
	g.Plot(e, new(hidden), new(daemon))
	return g, buf, e
}

func TestNames(t *testing.T) {
	assert := test.Assert{TB: t}
	g, _, _ := plot()
	assert.Equal(fmt.Sprint(g.Names()), "[daemon echo]")
	assert.Equal(cmd.KindOf(g.ByName["daemon"]).String(), "daemon")
	assert.Equal(cmd.KindOf(g.ByName["hidden"]).String(), "hidden")
	assert.Equal(cmd.KindOf(g.ByName["echo"]).String(), "interactive")
	assert.False(cmd.KindOf(g.ByName["echo"]).Has(cmd.Daemon))
	assert.Equal((cmd.Daemon | cmd.Hidden).String(), "hidden daemon")
}

func TestRun(t *testing.T) {
	assert := test.Assert{TB: t}
	g, buf, e := plot()
	assert.Nil(g.Main("echo", "a", "b"))
	assert.Equal(fmt.Sprint(e.args), "[a b]")
	assert.Error(g.Main("nonesuch"), "nonesuch: command not found")
	assert.Error(g.Main("daemon"), "stopped")
	assert.Int(buf.Len(), 0)
}

func TestHelpers(t *testing.T) {
	assert := test.Assert{TB: t}
	g, buf, e := plot()

	assert.Nil(g.Main("echo", "-h"))
	assert.Equal(buf.String(), "usage:\techo [STRING]...\n")
	assert.True(e.args == nil)

	buf.Reset()
	assert.Nil(g.Main("apropos", "echo"))
	assert.Equal(buf.String(), "echo            repeat arguments\n")
	assert.Error(g.Main("apropos", "nonesuch"), "nonesuch: not found")

	buf.Reset()
	assert.Nil(g.Main("echo", "--man"))
	assert.Equal(buf.String(), `NAME
	echo - repeat arguments

SYNOPSIS
	echo [STRING]...

DESCRIPTION
	Repeat arguments.
`)

	buf.Reset()
	assert.Nil(g.Main("usage"))
	assert.True(strings.HasPrefix(buf.String(), "usage:\ttest COMMAND"))
}
