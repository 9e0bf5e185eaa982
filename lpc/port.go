// Copyright © 2023-2024 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package lpc moves bytes between the host and an embedded controller over
// the x86 I/O port bus, either directly or through a Microchip EMI window.
package lpc

import (
	"fmt"
	"io"
)

// Port is a byte and word addressable I/O space. Accesses never fail at this
// layer; integrity is checked by the protocol above.
type Port interface {
	Inb(addr uint16) byte
	Outb(addr uint16, b byte)
	Inw(addr uint16) uint16
	Outw(addr uint16, w uint16)
}

// Opener returns a hardware Port; see Open.
type Opener func() (Port, error)

// Openers by name, e.g. "ioport", "devport". Platform files register theirs
// in init.
var Openers = map[string]Opener{}

// Open the named port implementation.
func Open(name string) (Port, error) {
	open, found := Openers[name]
	if !found {
		return nil, fmt.Errorf("%s: unknown port", name)
	}
	return open()
}

// Close p if its backend holds a resource, e.g. DevPort's file.
func Close(p Port) error {
	if c, ok := p.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// splitw and joinw emulate 16-bit port access for backends with only byte
// primitives; the low byte goes to the lower address.
func splitw(w uint16) (lo, hi byte) { return byte(w), byte(w >> 8) }

func joinw(lo, hi byte) uint16 { return uint16(lo) | uint16(hi)<<8 }
