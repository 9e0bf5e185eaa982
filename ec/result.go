// Copyright © 2023-2024 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package ec

import (
	"errors"
	"fmt"
)

// Result is the status code an EC returns for a host command.
type Result uint16

const (
	EC_RES_SUCCESS Result = iota
	EC_RES_INVALID_COMMAND
	EC_RES_ERROR
	EC_RES_INVALID_PARAM
	EC_RES_ACCESS_DENIED
	EC_RES_INVALID_RESPONSE
	EC_RES_INVALID_VERSION
	EC_RES_INVALID_CHECKSUM
	EC_RES_IN_PROGRESS       // accepted, command in progress
	EC_RES_UNAVAILABLE       // no response available
	EC_RES_TIMEOUT           // we got a timeout
	EC_RES_OVERFLOW          // table / data overflow
	EC_RES_INVALID_HEADER    // header contains invalid data
	EC_RES_REQUEST_TRUNCATED // didn't get the entire request
	EC_RES_RESPONSE_TOO_BIG  // response was too big to handle
	EC_RES_BUS_ERROR         // communications bus error
	EC_RES_BUSY              // up but too busy; should retry
	EC_RES_INVALID_HEADER_VERSION
	EC_RES_INVALID_HEADER_CRC
	EC_RES_INVALID_DATA_CRC
	EC_RES_DUP_UNAVAILABLE // replay of a duplicate sequence number
)

var resultNames = []string{
	EC_RES_SUCCESS:                "SUCCESS",
	EC_RES_INVALID_COMMAND:        "INVALID_COMMAND",
	EC_RES_ERROR:                  "ERROR",
	EC_RES_INVALID_PARAM:          "INVALID_PARAM",
	EC_RES_ACCESS_DENIED:          "ACCESS_DENIED",
	EC_RES_INVALID_RESPONSE:       "INVALID_RESPONSE",
	EC_RES_INVALID_VERSION:        "INVALID_VERSION",
	EC_RES_INVALID_CHECKSUM:       "INVALID_CHECKSUM",
	EC_RES_IN_PROGRESS:            "IN_PROGRESS",
	EC_RES_UNAVAILABLE:            "UNAVAILABLE",
	EC_RES_TIMEOUT:                "TIMEOUT",
	EC_RES_OVERFLOW:               "OVERFLOW",
	EC_RES_INVALID_HEADER:         "INVALID_HEADER",
	EC_RES_REQUEST_TRUNCATED:      "REQUEST_TRUNCATED",
	EC_RES_RESPONSE_TOO_BIG:       "RESPONSE_TOO_BIG",
	EC_RES_BUS_ERROR:              "BUS_ERROR",
	EC_RES_BUSY:                   "BUSY",
	EC_RES_INVALID_HEADER_VERSION: "INVALID_HEADER_VERSION",
	EC_RES_INVALID_HEADER_CRC:     "INVALID_HEADER_CRC",
	EC_RES_INVALID_DATA_CRC:       "INVALID_DATA_CRC",
	EC_RES_DUP_UNAVAILABLE:        "DUP_UNAVAILABLE",
}

func (r Result) String() string {
	if int(r) < len(resultNames) {
		return resultNames[r]
	}
	return fmt.Sprint("RESULT_", uint16(r))
}

// ResultError is a failure reported by the EC itself, as opposed to a
// failure to talk to it.
type ResultError struct {
	Result Result
}

func (e *ResultError) Error() string {
	return fmt.Sprintf("EC result %d (%s)", uint16(e.Result), e.Result)
}

// Is matches another *ResultError with the same code, so that
// errors.Is(err, &ResultError{EC_RES_INVALID_COMMAND}) works.
func (e *ResultError) Is(target error) bool {
	t, ok := target.(*ResultError)
	return ok && t.Result == e.Result
}

var protocolResults = []struct {
	err    error
	result Result
}{
	{ErrTimeout, EC_RES_TIMEOUT},
	{ErrChecksum, EC_RES_INVALID_CHECKSUM},
	{ErrResponseTooBig, EC_RES_RESPONSE_TOO_BIG},
	{ErrRequestTruncated, EC_RES_REQUEST_TRUNCATED},
	{ErrRequestTooBig, EC_RES_OVERFLOW},
	{ErrInvalidResponse, EC_RES_INVALID_RESPONSE},
	{ErrResponseVersion, EC_RES_INVALID_HEADER_VERSION},
	{ErrProtocolMismatch, EC_RES_INVALID_VERSION},
	{ErrRetryLater, EC_RES_BUSY},
	{ErrMemmapRange, EC_RES_INVALID_PARAM},
	{ErrNotPresent, EC_RES_UNAVAILABLE},
	{ErrNoMemmap, EC_RES_UNAVAILABLE},
	{ErrUnsupportedProtocol, EC_RES_UNAVAILABLE},
}

// ResultOf returns the Result that best describes err: the EC's own code for
// a *ResultError, the matching protocol code for one of this package's
// sentinels, EC_RES_SUCCESS for nil and EC_RES_ERROR for anything else.
func ResultOf(err error) Result {
	if err == nil {
		return EC_RES_SUCCESS
	}
	var re *ResultError
	if errors.As(err, &re) {
		return re.Result
	}
	for _, pr := range protocolResults {
		if errors.Is(err, pr.err) {
			return pr.result
		}
	}
	return EC_RES_ERROR
}
