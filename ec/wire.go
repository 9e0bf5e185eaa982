// Copyright © 2023-2024 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package ec

import (
	"bytes"
	"encoding/binary"
)

// HostArgs are the version 2 arguments at EC_LPC_ADDR_HOST_ARGS. The
// checksum is the byte sum of command, Flags, CommandVersion, DataSize and
// the parameter bytes.
type HostArgs struct {
	Flags          uint8
	CommandVersion uint8
	DataSize       uint8
	Checksum       uint8
}

const SizeofHostArgs = 4

func (a *HostArgs) Bytes() []byte {
	return []byte{a.Flags, a.CommandVersion, a.DataSize, a.Checksum}
}

func (a *HostArgs) Parse(b []byte) {
	a.Flags = b[0]
	a.CommandVersion = b[1]
	a.DataSize = b[2]
	a.Checksum = b[3]
}

// Sum of the header fields that enter the version 2 checksum.
func (a *HostArgs) sum(command uint16) uint8 {
	return uint8(command) + a.Flags + a.CommandVersion + a.DataSize
}

// HostRequest is the version 3 request header. Checksum is chosen so that
// the header and the DataLen bytes that follow sum to zero.
type HostRequest struct {
	StructVersion  uint8
	Checksum       uint8
	Command        uint16
	CommandVersion uint8
	Reserved       uint8
	DataLen        uint16
}

const SizeofHostRequest = 8

func (h *HostRequest) Bytes() []byte {
	b := make([]byte, SizeofHostRequest)
	b[0] = h.StructVersion
	b[1] = h.Checksum
	binary.LittleEndian.PutUint16(b[2:], h.Command)
	b[4] = h.CommandVersion
	b[5] = h.Reserved
	binary.LittleEndian.PutUint16(b[6:], h.DataLen)
	return b
}

func (h *HostRequest) Parse(b []byte) {
	h.StructVersion = b[0]
	h.Checksum = b[1]
	h.Command = binary.LittleEndian.Uint16(b[2:])
	h.CommandVersion = b[4]
	h.Reserved = b[5]
	h.DataLen = binary.LittleEndian.Uint16(b[6:])
}

// HostResponse is the version 3 response header.
type HostResponse struct {
	StructVersion uint8
	Checksum      uint8
	Result        uint16
	DataLen       uint16
	Reserved      uint16
}

const SizeofHostResponse = 8

func (h *HostResponse) Bytes() []byte {
	b := make([]byte, SizeofHostResponse)
	b[0] = h.StructVersion
	b[1] = h.Checksum
	binary.LittleEndian.PutUint16(b[2:], h.Result)
	binary.LittleEndian.PutUint16(b[4:], h.DataLen)
	binary.LittleEndian.PutUint16(b[6:], h.Reserved)
	return b
}

func (h *HostResponse) Parse(b []byte) {
	h.StructVersion = b[0]
	h.Checksum = b[1]
	h.Result = binary.LittleEndian.Uint16(b[2:])
	h.DataLen = binary.LittleEndian.Uint16(b[4:])
	h.Reserved = binary.LittleEndian.Uint16(b[6:])
}

// Parameter and response bodies of the commands this package issues.

type ParamsHello struct {
	InData uint32
}

type ResponseHello struct {
	OutData uint32
}

type ResponseProtoVersion struct {
	Version uint32
}

type ResponseGetVersion struct {
	VersionStringRO [32]byte
	VersionStringRW [32]byte
	Reserved        [32]byte
	CurrentImage    uint32
}

func (r *ResponseGetVersion) RO() string { return cstring(r.VersionStringRO[:]) }
func (r *ResponseGetVersion) RW() string { return cstring(r.VersionStringRW[:]) }

var imageNames = []string{
	EC_IMAGE_UNKNOWN: "unknown",
	EC_IMAGE_RO:      "RO",
	EC_IMAGE_RW:      "RW",
	EC_IMAGE_RO_B:    "RO_B",
	EC_IMAGE_RW_B:    "RW_B",
}

// Image names CurrentImage.
func (r *ResponseGetVersion) Image() string {
	if int(r.CurrentImage) < len(imageNames) {
		return imageNames[r.CurrentImage]
	}
	return imageNames[EC_IMAGE_UNKNOWN]
}

type ParamsGetCmdVersions struct {
	Cmd uint8
}

type ParamsGetCmdVersionsV1 struct {
	Cmd uint16
}

type ResponseGetCmdVersions struct {
	VersionMask uint32
}

type ResponseGetProtocolInfo struct {
	ProtocolVersions  uint32
	MaxRequestPacket  uint16
	MaxResponsePacket uint16
	Flags             uint32
}

type ResponseGetFeatures struct {
	Flags [2]uint32
}

type ResponseHostEventMask struct {
	Mask uint32
}

// Sizeof returns the encoded size of one of the fixed layout bodies above.
func Sizeof(v interface{}) int {
	return binary.Size(v)
}

// Encode a fixed layout body in the EC's byte order.
func Encode(v interface{}) []byte {
	buf := new(bytes.Buffer)
	buf.Grow(binary.Size(v))
	if err := binary.Write(buf, binary.LittleEndian, v); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// Decode b into the fixed layout body v, which must be a pointer. Short
// input is zero filled so that older firmware with smaller responses still
// decodes.
func Decode(b []byte, v interface{}) error {
	if n := binary.Size(v); n > len(b) {
		b = append(append(make([]byte, 0, n), b...), make([]byte, n-len(b))...)
	}
	return binary.Read(bytes.NewReader(b), binary.LittleEndian, v)
}

func cstring(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}

type ParamsHostEvent struct {
	Action   uint8
	MaskType uint8
	Reserved uint16
	Value    uint64
}

type ResponseHostEvent struct {
	Value uint64
}

// ParamsPwmSetFanTargetRpmV1 selects one fan; version 0 sets all of them
// and carries only Rpm.
type ParamsPwmSetFanTargetRpmV1 struct {
	Rpm    uint32
	FanIdx uint8
}

type ParamsPwmSetKeyboardBacklight struct {
	Percent uint8
}

type ResponsePwmGetKeyboardBacklight struct {
	Percent uint8
	Enabled uint8
}
