// Copyright © 2023-2024 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package cmd defines what a command of the ectool multi-call binary
// provides.
package cmd

import (
	"strings"

	"github.com/platinasystems/crosecbus/lang"
)

type Cmd interface {
	Apropos() lang.Alt
	Main(...string) error
	// String returns the command name.
	String() string
	Usage() string
}

// Optional methods of a Cmd.
type (
	Closer interface{ Close() error }
	Kinder interface{ Kind() Kind }
	Maner  interface{ Man() lang.Alt }
)

// Kind flags; a command without any is interactive.
type Kind uint8

const (
	// Daemon commands run until Close.
	Daemon Kind = 1 << iota
	// Hidden commands are left out of listings.
	Hidden
)

// KindOf returns the flags of v, zero if it has no Kind method.
func KindOf(v Cmd) Kind {
	if k, ok := v.(Kinder); ok {
		return k.Kind()
	}
	return 0
}

func (k Kind) Has(flag Kind) bool { return k&flag == flag }

func (k Kind) String() string {
	if k == 0 {
		return "interactive"
	}
	var s []string
	if k.Has(Hidden) {
		s = append(s, "hidden")
	}
	if k.Has(Daemon) {
		s = append(s, "daemon")
	}
	return strings.Join(s, " ")
}
