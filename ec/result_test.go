// Copyright © 2023-2024 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package ec_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/platinasystems/crosecbus/ec"
	"github.com/platinasystems/crosecbus/internal/test"
)

func TestResultError(t *testing.T) {
	assert := test.Assert{TB: t}
	err := fmt.Errorf("command 0x8: %w", &ec.ResultError{Result: ec.EC_RES_INVALID_PARAM})
	assert.Equal(err.Error(), "command 0x8: EC result 3 (INVALID_PARAM)")
	assert.Error(err, &ec.ResultError{Result: ec.EC_RES_INVALID_PARAM})
	assert.False(errors.Is(err, &ec.ResultError{Result: ec.EC_RES_ERROR}))
	assert.Equal(ec.Result(99).String(), "RESULT_99")
	assert.Equal(ec.EC_RES_DUP_UNAVAILABLE.String(), "DUP_UNAVAILABLE")
}

func TestResultOf(t *testing.T) {
	for _, x := range []struct {
		err  error
		want ec.Result
	}{
		{nil, ec.EC_RES_SUCCESS},
		{&ec.ResultError{Result: ec.EC_RES_ACCESS_DENIED}, ec.EC_RES_ACCESS_DENIED},
		{fmt.Errorf("x: %w", ec.ErrTimeout), ec.EC_RES_TIMEOUT},
		{ec.ErrChecksum, ec.EC_RES_INVALID_CHECKSUM},
		{ec.ErrResponseTooBig, ec.EC_RES_RESPONSE_TOO_BIG},
		{ec.ErrRequestTruncated, ec.EC_RES_REQUEST_TRUNCATED},
		{ec.ErrRequestTooBig, ec.EC_RES_OVERFLOW},
		{ec.ErrInvalidResponse, ec.EC_RES_INVALID_RESPONSE},
		{ec.ErrResponseVersion, ec.EC_RES_INVALID_HEADER_VERSION},
		{ec.ErrProtocolMismatch, ec.EC_RES_INVALID_VERSION},
		{ec.ErrRetryLater, ec.EC_RES_BUSY},
		{ec.ErrNotPresent, ec.EC_RES_UNAVAILABLE},
		{errors.New("other"), ec.EC_RES_ERROR},
	} {
		if got := ec.ResultOf(x.err); got != x.want {
			t.Errorf("ResultOf(%v) = %s, want %s", x.err, got, x.want)
		}
	}
}

func TestNames(t *testing.T) {
	assert := test.Assert{TB: t}
	for _, s := range []string{"hello", "EC_CMD_HELLO", "0x01", "1"} {
		code, err := ec.ParseCommand(s)
		assert.Nil(err)
		assert.Int(int(code), ec.EC_CMD_HELLO)
	}
	_, err := ec.ParseCommand("nonesuch")
	assert.Error(err, "nonesuch: unknown command")
	assert.Equal(ec.CommandName(ec.EC_CMD_GET_NEXT_EVENT), "GET_NEXT_EVENT")
	assert.Equal(ec.CommandName(0x3e), "0x003e")

	f := ec.Features{1<<ec.EC_FEATURE_FLASH | 1<<ec.EC_FEATURE_RTC, 1 << (38 - 32)}
	assert.Equal(fmt.Sprint(f.Names()), "[FLASH RTC FEATURE_38]")
	assert.True(ec.FeaturesUnknown.Names() == nil)

	assert.Equal(ec.HostEventName(ec.EC_HOST_EVENT_LID_CLOSED), "LID_CLOSED")
	assert.Equal(ec.HostEventName(ec.EC_HOST_EVENT_INVALID), "INVALID")
	assert.Equal(ec.HostEventName(0), "HOST_EVENT_0")
}
