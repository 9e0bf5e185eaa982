// Copyright © 2023-2024 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package ecsim is an lpc.Port with a simulated EC behind it: status and
// data registers, the host command packet buffer, the memory map, the
// Microchip EMI window and enough firmware to answer host commands with
// either protocol.
package ecsim

import (
	"encoding/binary"
	"sync"

	"github.com/platinasystems/crosecbus/ec"
	"github.com/platinasystems/crosecbus/lpc"
)

type Mode int

const (
	// Packet buffer and memory map at their LPC addresses.
	Direct Mode = iota
	// Packet buffer and memory map only through the EMI window at
	// ec.MecBase; EC address 0 is the packet, 0x100 the memory map.
	MEC
)

// Handler is simulated firmware for one command. It runs with the EC
// locked so it must not call back into the EC.
type Handler func(version uint8, params []byte) (ec.Result, []byte)

// Fault corrupts the next responses.
type Fault int

const (
	NoFault Fault = iota
	// Response checksum off by one.
	BadChecksum
	// Version 3 response with StructVersion 2.
	BadVersion
	// Version 3 response with non-zero Reserved.
	BadReserved
	// Response claims more data than it carries.
	Oversize
	// Version 2 response without EC_HOST_ARGS_FLAG_TO_HOST.
	NoToHost
	// Payload byte flipped after the checksum was computed.
	Corrupt
)

type EC struct {
	Mode Mode
	// Absent makes every port read 0xff.
	Absent bool
	// Busy is the number of status polls that report busy after each
	// command; Stuck keeps the EC busy forever.
	Busy  int
	Stuck bool
	Fault Fault
	// Mangle, if set, may alter each response in place after it is
	// written: the args and params for version 2, header and payload for
	// version 3.
	Mangle func(rsp []byte)

	Handlers map[uint16]Handler

	VersionRO, VersionRW string
	Features             [2]uint32
	// Events are returned, in order, by EC_CMD_GET_NEXT_EVENT.
	Events [][]byte
	// Backlight is the keyboard backlight percentage last set.
	Backlight uint8
	// HostEventsB is the B copy of the host events.
	HostEventsB uint64

	mutex sync.Mutex
	mem   [0x200]byte // packet buffer then memory map
	data  byte
	busy  int
	emi   uint16
	inCmd bool
	stats Stats
	last  []byte
}

// Stats are counters kept by the simulator.
type Stats struct {
	// Commands triggered.
	Commands int
	// Writes to the packet buffer or trigger while a command was still
	// busy; a non-zero count means two transactions interleaved.
	Overlaps int
	// Status polls.
	Polls int
	// Port closes.
	Closes int
}

// New EC answering with the given EC_HOST_CMD_FLAG_* and a working set of
// handlers for the general commands.
func New(mode Mode, flags byte) *EC {
	e := &EC{
		Mode:      mode,
		VersionRO: "sim_v1.0.0-ro",
		VersionRW: "sim_v1.0.0-rw",
		Features: [2]uint32{
			1<<ec.EC_FEATURE_PWM_FAN | 1<<ec.EC_FEATURE_THERMAL,
			1 << (ec.EC_FEATURE_HOST_EVENT64 - 32),
		},
	}
	mm := e.mem[0x100:]
	copy(mm[ec.EC_MEMMAP_ID:], "EC")
	mm[ec.EC_MEMMAP_ID_VERSION] = 1
	mm[ec.EC_MEMMAP_THERMAL_VERSION] = 2
	mm[ec.EC_MEMMAP_BATTERY_VERSION] = 1
	mm[ec.EC_MEMMAP_HOST_CMD_FLAGS] = flags
	for i := 0; i < ec.EC_TEMP_SENSOR_ENTRIES; i++ {
		mm[ec.EC_MEMMAP_TEMP_SENSOR+i] = ec.EC_TEMP_SENSOR_NOT_PRESENT
	}
	for i := 0; i < ec.EC_TEMP_SENSOR_B_ENTRIES; i++ {
		mm[ec.EC_MEMMAP_TEMP_SENSOR_B+i] = ec.EC_TEMP_SENSOR_NOT_PRESENT
	}
	for i := 0; i < ec.EC_FAN_SPEED_ENTRIES; i++ {
		binary.LittleEndian.PutUint16(mm[ec.EC_MEMMAP_FAN+2*i:],
			ec.EC_FAN_SPEED_NOT_PRESENT)
	}
	e.Handlers = map[uint16]Handler{
		ec.EC_CMD_PROTO_VERSION:      e.protoVersion,
		ec.EC_CMD_HELLO:              e.hello,
		ec.EC_CMD_GET_VERSION:        e.getVersion,
		ec.EC_CMD_GET_FEATURES:       e.getFeatures,
		ec.EC_CMD_GET_CMD_VERSIONS:   e.getCmdVersions,
		ec.EC_CMD_GET_PROTOCOL_INFO:  e.getProtocolInfo,
		ec.EC_CMD_GET_NEXT_EVENT:     e.getNextEvent,
		ec.EC_CMD_HOST_EVENT_GET_B:   e.hostEventGetB,
		ec.EC_CMD_HOST_EVENT_CLEAR_B: e.hostEventClearB,
		ec.EC_CMD_HOST_EVENT:         e.hostEvent,

		ec.EC_CMD_PWM_SET_FAN_TARGET_RPM:     e.setFanTargetRPM,
		ec.EC_CMD_PWM_SET_KEYBOARD_BACKLIGHT: e.setKeyboardBacklight,
		ec.EC_CMD_PWM_GET_KEYBOARD_BACKLIGHT: e.getKeyboardBacklight,
	}
	return e
}

// Memmap is the simulated memory map; writes are visible to the host.
func (e *EC) Memmap() []byte {
	return e.mem[0x100 : 0x100+ec.EC_MEMMAP_SIZE]
}

// Packet is the host command buffer as last left by either side.
func (e *EC) Packet() []byte {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return append([]byte{}, e.mem[:ec.EC_LPC_HOST_PACKET_SIZE]...)
}

func (e *EC) Close() error {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.stats.Closes++
	return nil
}

// LastParams are the parameters of the last command run.
func (e *EC) LastParams() []byte {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return append([]byte{}, e.last...)
}

func (e *EC) Stats() Stats {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return e.stats
}

func (e *EC) Inb(addr uint16) byte {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return e.inb(addr)
}

func (e *EC) Outb(addr uint16, b byte) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.outb(addr, b)
}

func (e *EC) Inw(addr uint16) uint16 {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	lo := e.inb(addr)
	return uint16(lo) | uint16(e.inb(addr+1))<<8
}

func (e *EC) Outw(addr uint16, w uint16) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.outb(addr, byte(w))
	e.outb(addr+1, byte(w>>8))
}

func (e *EC) inb(addr uint16) byte {
	if e.Absent {
		return 0xff
	}
	switch {
	case addr == ec.EC_LPC_ADDR_HOST_CMD:
		e.stats.Polls++
		if e.Stuck || e.busy > 0 {
			if e.busy > 0 {
				e.busy--
			}
			return ec.EC_LPC_STATUS_PROCESSING
		}
		e.inCmd = false
		return 0
	case addr == ec.EC_LPC_ADDR_HOST_DATA:
		return e.data
	case e.Mode == Direct && addr >= ec.EC_HOST_CMD_REGION0 &&
		addr < ec.EC_LPC_ADDR_MEMMAP+ec.EC_MEMMAP_SIZE:
		return e.mem[addr-ec.EC_HOST_CMD_REGION0]
	case e.Mode == MEC && addr >= ec.MecBase && addr < ec.MecBase+8:
		return e.emiIn(addr - ec.MecBase)
	}
	return 0xff
}

func (e *EC) outb(addr uint16, b byte) {
	if e.Absent {
		return
	}
	switch {
	case addr == ec.EC_LPC_ADDR_HOST_CMD:
		e.trigger(b)
	case e.Mode == Direct && addr >= ec.EC_HOST_CMD_REGION0 &&
		addr < ec.EC_LPC_ADDR_MEMMAP:
		e.touch()
		e.mem[addr-ec.EC_HOST_CMD_REGION0] = b
	case e.Mode == MEC && addr >= ec.MecBase && addr < ec.MecBase+8:
		e.emiOut(addr-ec.MecBase, b)
	}
}

func (e *EC) touch() {
	if e.inCmd {
		e.stats.Overlaps++
	}
}

func (e *EC) emiIn(reg uint16) byte {
	switch reg {
	case lpc.EmiAddressB0:
		return byte(e.emi)
	case lpc.EmiAddressB1:
		return byte(e.emi >> 8)
	case lpc.EmiDataB0, lpc.EmiDataB1, lpc.EmiDataB2, lpc.EmiDataB3:
		b := e.mem[e.emiAddr(reg)]
		e.emiNext(reg)
		return b
	}
	return 0
}

func (e *EC) emiOut(reg uint16, b byte) {
	switch reg {
	case lpc.EmiAddressB0:
		e.emi = e.emi&0xff00 | uint16(b)
	case lpc.EmiAddressB1:
		e.emi = e.emi&0x00ff | uint16(b)<<8
	case lpc.EmiDataB0, lpc.EmiDataB1, lpc.EmiDataB2, lpc.EmiDataB3:
		if e.emiAddr(reg) < ec.EC_LPC_HOST_PACKET_SIZE {
			e.touch()
		}
		e.mem[e.emiAddr(reg)] = b
		e.emiNext(reg)
	}
}

func (e *EC) emiAddr(reg uint16) uint16 {
	return (e.emi&0xfffc + reg - lpc.EmiDataB0) % uint16(len(e.mem))
}

// emiNext advances the EC address after a B3 access in auto-increment mode.
func (e *EC) emiNext(reg uint16) {
	if reg == lpc.EmiDataB3 &&
		lpc.AccessMode(e.emi&3) == lpc.LongAccessAutoIncrement {
		e.emi += 4
	}
}

// Register the EC as the named lpc port so commands can open it.
func (e *EC) Register(name string) {
	lpc.Openers[name] = func() (lpc.Port, error) { return e, nil }
}
