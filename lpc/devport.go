// Copyright © 2023-2024 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package lpc

import (
	"os"
	"sync"

	"github.com/platinasystems/log"
)

const DevPortName = "/dev/port"

// DevPort accesses I/O ports through the kernel's /dev/port character
// device where each file offset is a port address.
type DevPort struct {
	f    *os.File
	once sync.Once
}

func init() {
	Openers["devport"] = OpenDevPort
}

func OpenDevPort() (Port, error) {
	f, err := os.OpenFile(DevPortName, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}
	return &DevPort{f: f}, nil
}

func (p *DevPort) Close() error { return p.f.Close() }

func (p *DevPort) Inb(addr uint16) byte {
	var b [1]byte
	if _, err := p.f.ReadAt(b[:], int64(addr)); err != nil {
		p.fail(err)
	}
	return b[0]
}

func (p *DevPort) Outb(addr uint16, b byte) {
	if _, err := p.f.WriteAt([]byte{b}, int64(addr)); err != nil {
		p.fail(err)
	}
}

func (p *DevPort) Inw(addr uint16) uint16 {
	var b [2]byte
	if _, err := p.f.ReadAt(b[:], int64(addr)); err != nil {
		p.fail(err)
	}
	return joinw(b[0], b[1])
}

func (p *DevPort) Outw(addr uint16, w uint16) {
	lo, hi := splitw(w)
	if _, err := p.f.WriteAt([]byte{lo, hi}, int64(addr)); err != nil {
		p.fail(err)
	}
}

func (p *DevPort) fail(err error) {
	p.once.Do(func() {
		log.Print("err", DevPortName, ": ", err)
	})
}
