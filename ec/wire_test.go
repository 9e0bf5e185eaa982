// Copyright © 2023-2024 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package ec_test

import (
	"testing"

	"github.com/platinasystems/crosecbus/ec"
	"github.com/platinasystems/crosecbus/internal/test"
)

func TestHostRequestLayout(t *testing.T) {
	assert := test.Assert{TB: t}
	req := ec.HostRequest{
		StructVersion:  3,
		Checksum:       0xaa,
		Command:        0x1234,
		CommandVersion: 1,
		DataLen:        0x0105,
	}
	assert.Bytes(req.Bytes(), []byte{3, 0xaa, 0x34, 0x12, 1, 0, 0x05, 0x01})
}

func TestHostResponseLayout(t *testing.T) {
	assert := test.Assert{TB: t}
	var rsp ec.HostResponse
	rsp.Parse([]byte{3, 0x55, 0x09, 0x00, 0x10, 0x00, 0x00, 0x80})
	assert.Int(int(rsp.StructVersion), 3)
	assert.Int(int(rsp.Checksum), 0x55)
	assert.Int(int(rsp.Result), 9)
	assert.Int(int(rsp.DataLen), 16)
	assert.Int(int(rsp.Reserved), 0x8000)
}

func TestBodies(t *testing.T) {
	assert := test.Assert{TB: t}
	assert.Int(ec.Sizeof(&ec.ResponseGetVersion{}), 100)
	assert.Int(ec.Sizeof(&ec.ResponseGetProtocolInfo{}), 12)
	assert.Int(ec.Sizeof(&ec.ParamsHostEvent{}), 12)
	assert.Bytes(ec.Encode(&ec.ParamsGetCmdVersionsV1{0x0102}), []byte{2, 1})

	// short responses from older firmware decode with zero fill
	var f ec.ResponseGetFeatures
	assert.Nil(ec.Decode([]byte{1, 0, 0, 0}, &f))
	assert.True(f.Flags == [2]uint32{1, 0})
}
