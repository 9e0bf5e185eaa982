// Copyright © 2023-2024 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package ec

import (
	"errors"
	"fmt"

	"github.com/platinasystems/crosecbus/lpc"
)

// Negotiation failures; fatal to Probe and Open.
var (
	ErrNotPresent          = errors.New("no EC present")
	ErrNoMemmap            = errors.New("no EC memory map")
	ErrUnsupportedProtocol = errors.New("no supported host command protocol")
)

// Transaction failures. A caller may retry the whole command after any of
// these.
var (
	ErrTimeout          = fmt.Errorf("ec: %w", lpc.ErrTimeout)
	ErrProtocolMismatch = errors.New("EC replied with the version 0 protocol")
	ErrResponseVersion  = errors.New("EC response version mismatch")
	ErrInvalidResponse  = errors.New("EC response has non-zero reserved field")
	ErrResponseTooBig   = errors.New("EC response too big")
	ErrChecksum         = errors.New("EC response checksum invalid")
	ErrRequestTruncated = errors.New("request truncated")
	ErrRequestTooBig    = errors.New("request too big")
	ErrRetryLater       = errors.New("EC busy, retry later")
	ErrMemmapRange      = errors.New("read past end of EC memory map")
)
