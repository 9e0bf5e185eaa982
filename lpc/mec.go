// Copyright © 2023-2024 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package lpc

import (
	"encoding/binary"
	"errors"
	"sync"
)

var ErrStraddle = errors.New("access straddles the MEC window")

type Direction int

const (
	Write Direction = iota
	Read
)

func (d Direction) String() string {
	if d == Read {
		return "read"
	}
	return "write"
}

// AccessMode is OR'd into the low bits of the EMI address register.
type AccessMode uint16

const (
	ByteAccess AccessMode = iota
	WordAccess
	LongAccess
	// Like LongAccess but access of data register B3 increments the EC
	// address.
	LongAccessAutoIncrement
)

// EMI registers, relative to MEC.Base.
const (
	EmiHostToEC uint16 = iota
	EmiECToHost
	EmiAddressB0
	EmiAddressB1
	EmiDataB0
	EmiDataB1
	EmiDataB2
	EmiDataB3
)

// Range classifies an access against the MEC window.
type Range int

const (
	Outside Range = iota
	Inside
	Straddle
)

var rangeNames = []string{
	Outside:  "outside",
	Inside:   "inside",
	Straddle: "straddle",
}

func (r Range) String() string {
	if int(r) < len(rangeNames) {
		return rangeNames[r]
	}
	return "invalid"
}

// MEC is a Region for Microchip ECs that only expose the host command area
// through the EMI address/data register pair. Host addresses in [Base, End)
// are reached through the window at EC address (addr - Base); everything
// else is accessed directly.
type MEC struct {
	Port
	Base uint16
	End  uint16

	// Guards the address register, which is global hardware state.
	mutex sync.Mutex
}

func NewMEC(port Port, base, end uint16) *MEC {
	if port == nil {
		panic("lpc: nil port")
	}
	return &MEC{Port: port, Base: base, End: end}
}

// InRange tells whether [offset, offset+length) lies entirely inside,
// entirely outside, or across the edge of the window. An empty access or an
// unconfigured window is reported as Straddle.
func (m *MEC) InRange(offset uint16, length int) Range {
	if length <= 0 || m.Base == 0 || m.End == 0 {
		return Straddle
	}
	first, last := int(offset), int(offset)+length-1
	base, end := int(m.Base), int(m.End)
	if first >= base && first < end {
		if last >= end {
			return Straddle
		}
		return Inside
	}
	if last >= base && first < end {
		return Straddle
	}
	return Outside
}

func (m *MEC) Read(addr uint16, b []byte) (uint8, error) {
	return m.region(Read, addr, b)
}

func (m *MEC) Write(addr uint16, b []byte) (uint8, error) {
	return m.region(Write, addr, b)
}

func (m *MEC) region(dir Direction, addr uint16, b []byte) (uint8, error) {
	if len(b) == 0 {
		return 0, nil
	}
	switch m.InRange(addr, len(b)) {
	case Outside:
		if dir == Read {
			return Direct{m.Port}.Read(addr, b)
		}
		return Direct{m.Port}.Write(addr, b)
	case Inside:
		m.Transfer(dir, addr-m.Base, b)
		return Sum(b), nil
	}
	return 0, ErrStraddle
}

// Transfer moves b to or from EC address through the EMI window. Leading
// bytes up to a 4-byte boundary and any trailing bytes use byte access; the
// aligned middle streams 32-bit units as two 16-bit words in auto-increment
// mode so the address is written only once.
func (m *MEC) Transfer(dir Direction, address uint16, b []byte) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	pos := 0
	if skew := int(address % 4); skew > 0 && len(b) > 0 {
		m.access(address, ByteAccess)
		for i := skew; i < 4 && pos < len(b); i++ {
			m.byteXfer(dir, m.Base+EmiDataB0+uint16(i), &b[pos])
			pos++
		}
		address = (address + 4) &^ 3
	}

	if len(b)-pos >= 4 {
		m.access(address, LongAccessAutoIncrement)
		for ; len(b)-pos >= 4; pos, address = pos+4, address+4 {
			lo, hi := b[pos:pos+2], b[pos+2:pos+4]
			if dir == Write {
				m.Outw(m.Base+EmiDataB0, binary.LittleEndian.Uint16(lo))
				m.Outw(m.Base+EmiDataB2, binary.LittleEndian.Uint16(hi))
			} else {
				binary.LittleEndian.PutUint16(lo, m.Inw(m.Base+EmiDataB0))
				binary.LittleEndian.PutUint16(hi, m.Inw(m.Base+EmiDataB2))
			}
		}
	}

	if pos < len(b) {
		m.access(address, ByteAccess)
		for i := 0; pos < len(b); i, pos = i+1, pos+1 {
			m.byteXfer(dir, m.Base+EmiDataB0+uint16(i), &b[pos])
		}
	}
}

func (m *MEC) access(address uint16, mode AccessMode) {
	m.Outw(m.Base+EmiAddressB0, (address&0xfffc)|uint16(mode))
}

func (m *MEC) byteXfer(dir Direction, port uint16, b *byte) {
	if dir == Write {
		m.Outb(port, *b)
	} else {
		*b = m.Inb(port)
	}
}
