// Copyright © 2023-2024 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package ec

import (
	"fmt"
)

// ReadMemmap reads length bytes of the memory map at offset. A zero length
// reads a NUL terminated string instead and the result includes the NUL when
// one was found before the end of the map.
func (t *Transport) ReadMemmap(offset, length uint8) ([]byte, error) {
	if int(offset)+int(length) > EC_MEMMAP_SIZE ||
		(length == 0 && int(offset) >= EC_MEMMAP_SIZE) {
		return nil, fmt.Errorf("offset %d length %d: %w",
			offset, length, ErrMemmapRange)
	}
	addr := uint16(EC_LPC_ADDR_MEMMAP) + uint16(offset)
	if length > 0 {
		b := make([]byte, length)
		if _, err := t.Region.Read(addr, b); err != nil {
			return nil, err
		}
		return b, nil
	}
	var s []byte
	c := make([]byte, 1)
	for i := int(offset); i < EC_MEMMAP_SIZE; i, addr = i+1, addr+1 {
		if _, err := t.Region.Read(addr, c); err != nil {
			return nil, err
		}
		s = append(s, c[0])
		if c[0] == 0 {
			break
		}
	}
	return s, nil
}
