// Copyright © 2023-2024 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package lpc_test

import (
	"fmt"
	"testing"

	"github.com/platinasystems/crosecbus/ec"
	"github.com/platinasystems/crosecbus/internal/ecsim"
	"github.com/platinasystems/crosecbus/internal/test"
	"github.com/platinasystems/crosecbus/lpc"
)

func pattern(n int, seed byte) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = seed + byte(i*7)
	}
	return b
}

func TestMECTransferRoundTrip(t *testing.T) {
	for _, addr := range []uint16{0, 1, 2, 3, 4, 0x11, 0x46, 0x10b} {
		for _, n := range []int{0, 1, 3, 4, 5, 8, 37} {
			t.Run(fmt.Sprintf("%#x+%d", addr, n), func(t *testing.T) {
				assert := test.Assert{TB: t}
				sim := ecsim.New(ecsim.MEC, 0)
				mec := lpc.NewMEC(sim, ec.MecBase, ec.MecEnd)
				want := pattern(n, byte(addr))

				mec.Transfer(lpc.Write, addr, append([]byte{}, want...))
				got := make([]byte, n)
				mec.Transfer(lpc.Read, addr, got)
				assert.Bytes(got, want)

				if int(addr)+n <= ec.EC_LPC_HOST_PACKET_SIZE {
					mem := sim.Packet()
					assert.Bytes(mem[addr:int(addr)+n], want)
				}
			})
		}
	}
}

func TestMECTransferLeavesNeighbors(t *testing.T) {
	assert := test.Assert{TB: t}
	sim := ecsim.New(ecsim.MEC, 0)
	mec := lpc.NewMEC(sim, ec.MecBase, ec.MecEnd)
	fill := pattern(64, 0x80)
	mec.Transfer(lpc.Write, 0, fill)
	mec.Transfer(lpc.Write, 5, []byte{1, 2})
	mem := sim.Packet()
	assert.Bytes(mem[:5], fill[:5])
	assert.Bytes(mem[5:7], []byte{1, 2})
	assert.Bytes(mem[7:64], fill[7:])
}

func TestMECInRange(t *testing.T) {
	mec := lpc.NewMEC(ecsim.New(ecsim.MEC, 0), ec.MecBase, ec.MecEnd)
	for _, x := range []struct {
		offset uint16
		length int
		want   lpc.Range
	}{
		{0x800, 256, lpc.Inside},
		{0x800, 8, lpc.Inside},
		{0x9fe, 1, lpc.Inside},
		{0x9fe, 2, lpc.Straddle},
		{0x7fe, 4, lpc.Straddle},
		{0x7f0, 0x300, lpc.Straddle},
		{0x200, 1, lpc.Outside},
		{0x7fc, 4, lpc.Outside},
		{0xa00, 4, lpc.Outside},
		{0x800, 0, lpc.Straddle},
	} {
		if got := mec.InRange(x.offset, x.length); got != x.want {
			t.Errorf("InRange(%#x, %d) = %s, want %s",
				x.offset, x.length, got, x.want)
		}
	}
}

func TestMECRegion(t *testing.T) {
	assert := test.Assert{TB: t}
	sim := ecsim.New(ecsim.MEC, 0)
	mec := lpc.NewMEC(sim, ec.MecBase, ec.MecEnd)

	b := pattern(11, 3)
	sum, err := mec.Write(0x805, b)
	assert.Nil(err)
	assert.Int(int(sum), int(lpc.Sum(b)))

	got := make([]byte, len(b))
	sum, err = mec.Read(0x805, got)
	assert.Nil(err)
	assert.Bytes(got, b)
	assert.Int(int(sum), int(lpc.Sum(b)))

	id := make([]byte, 2)
	_, err = mec.Read(ec.EC_LPC_ADDR_MEMMAP+ec.EC_MEMMAP_ID, id)
	assert.Nil(err)
	assert.Equal(string(id), "EC")

	_, err = mec.Read(0x7ff, make([]byte, 2))
	assert.Error(err, lpc.ErrStraddle)

	// outside the window goes straight to the port
	_, err = mec.Read(ec.EC_LPC_ADDR_HOST_DATA, make([]byte, 1))
	assert.Nil(err)
}

func TestDirect(t *testing.T) {
	assert := test.Assert{TB: t}
	sim := ecsim.New(ecsim.Direct, 0)
	d := lpc.Direct{Port: sim}

	b := pattern(37, 9)
	sum, err := d.Write(ec.EC_LPC_ADDR_HOST_PACKET+3, b)
	assert.Nil(err)
	assert.Int(int(sum), int(lpc.Sum(b)))

	got := make([]byte, len(b))
	sum, err = d.Read(ec.EC_LPC_ADDR_HOST_PACKET+3, got)
	assert.Nil(err)
	assert.Bytes(got, b)
	assert.Int(int(sum), int(lpc.Sum(b)))
	assert.Bytes(sim.Packet()[3:40], b)
}

func TestSum(t *testing.T) {
	assert := test.Assert{TB: t}
	assert.Int(int(lpc.Sum(nil)), 0)
	assert.Int(int(lpc.Sum([]byte{0xff, 0x02})), 1)
	assert.Int(int(lpc.Sum([]byte{1, 2, 3})), 6)
}

func TestOpenUnknown(t *testing.T) {
	assert := test.Assert{TB: t}
	_, err := lpc.Open("nonesuch")
	assert.Error(err, "nonesuch: unknown port")
}
