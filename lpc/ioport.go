// Copyright © 2023-2024 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

//go:build linux && amd64

package lpc

import (
	"sync"

	"github.com/platinasystems/ioport"
	"github.com/platinasystems/log"
)

// Ioport accesses CPU I/O ports with in/out instructions. The process must
// be permitted iopl(3).
type Ioport struct {
	once sync.Once
}

func init() {
	Openers["ioport"] = OpenIoport
}

// OpenIoport verifies access with a read of the host command port.
func OpenIoport() (Port, error) {
	if _, err := ioport.Inb(0x204); err != nil {
		return nil, err
	}
	return new(Ioport), nil
}

func (p *Ioport) Inb(addr uint16) byte {
	b, err := ioport.Inb(addr)
	if err != nil {
		p.fail(addr, err)
	}
	return b
}

func (p *Ioport) Outb(addr uint16, b byte) {
	if err := ioport.Outb(addr, b); err != nil {
		p.fail(addr, err)
	}
}

func (p *Ioport) Inw(addr uint16) uint16 {
	lo := p.Inb(addr)
	hi := p.Inb(addr + 1)
	return joinw(lo, hi)
}

func (p *Ioport) Outw(addr uint16, w uint16) {
	lo, hi := splitw(w)
	p.Outb(addr, lo)
	p.Outb(addr+1, hi)
}

// fail logs the first access error; the protocol layer sees garbage and
// rejects it by checksum or status.
func (p *Ioport) fail(addr uint16, err error) {
	p.once.Do(func() {
		log.Printf("err", "ioport %#x: %v", addr, err)
	})
}
