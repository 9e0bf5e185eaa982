// Copyright © 2023-2024 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package ec

import (
	"time"

	"github.com/platinasystems/crosecbus/lpc"
)

// Config tunes negotiation and dispatch. Start from DefaultConfig.
type Config struct {
	// MEC enables detection of a Microchip EMI window before falling back
	// to direct port access.
	MEC bool

	// Wait polls the EC status after each command trigger.
	Wait lpc.Waiter

	// Retries bounds how many times Execute yields to pending
	// ExecuteUrgent callers before it gives up with ErrRetryLater.
	Retries int
	// RetryMin and RetryMax bound the backoff between those retries.
	RetryMin time.Duration
	RetryMax time.Duration

	// Sleep substitutes time.Sleep for retry backoff.
	Sleep func(time.Duration)
}

const (
	DefaultRetries  = 5
	DefaultRetryMin = 500 * time.Microsecond
	DefaultRetryMax = 500 * time.Microsecond
)

func DefaultConfig() Config {
	return Config{
		Wait: lpc.Waiter{
			Timeout:  lpc.DefaultTimeout,
			Delay:    lpc.DefaultDelay,
			Interval: lpc.DefaultInterval,
		},
		Retries:  DefaultRetries,
		RetryMin: DefaultRetryMin,
		RetryMax: DefaultRetryMax,
	}
}
