// Copyright © 2023-2024 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package lpc

// Region is a byte addressable window of host I/O space. Read and Write move
// each byte individually in ascending address order and return the 8-bit
// additive sum of the bytes moved.
type Region interface {
	Read(addr uint16, b []byte) (uint8, error)
	Write(addr uint16, b []byte) (uint8, error)
}

// Direct is a Region of directly addressable ports.
type Direct struct {
	Port
}

func (d Direct) Read(addr uint16, b []byte) (uint8, error) {
	for i := range b {
		b[i] = d.Inb(addr + uint16(i))
	}
	return Sum(b), nil
}

func (d Direct) Write(addr uint16, b []byte) (uint8, error) {
	for i, v := range b {
		d.Outb(addr+uint16(i), v)
	}
	return Sum(b), nil
}

// Sum returns the 8-bit additive checksum of b.
func Sum(b []byte) uint8 {
	var sum uint8
	for _, v := range b {
		sum += v
	}
	return sum
}
