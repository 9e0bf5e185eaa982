// Copyright © 2023-2024 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package lpc

import (
	"errors"
	"time"
)

var ErrTimeout = errors.New("timeout waiting for EC")

// Waiter polls a status port until the EC is no longer busy. The zero value
// waits with DefaultTimeout, DefaultDelay and DefaultInterval on the wall
// clock.
type Waiter struct {
	// Timeout bounds the whole wait.
	Timeout time.Duration
	// Delay precedes the first poll; the EC may not have raised its busy
	// flag right after the command byte was written.
	Delay time.Duration
	// Interval between polls.
	Interval time.Duration

	// Now and Sleep substitute the clock, e.g. in tests.
	Now   func() time.Time
	Sleep func(time.Duration)
}

const (
	DefaultTimeout  = time.Second
	DefaultDelay    = 20 * time.Microsecond
	DefaultInterval = 10 * time.Microsecond
)

// Wait returns nil once (status & mask) == 0 or ErrTimeout when the Timeout
// elapses first. This is a blocking spin; it must only be called from a
// goroutine that may sleep.
func (w *Waiter) Wait(p Port, status uint16, mask byte) error {
	now, sleep := time.Now, time.Sleep
	if w.Now != nil {
		now = w.Now
	}
	if w.Sleep != nil {
		sleep = w.Sleep
	}
	timeout := pick(w.Timeout, DefaultTimeout)
	interval := pick(w.Interval, DefaultInterval)

	start := now()
	sleep(pick(w.Delay, DefaultDelay))
	for {
		if now().Sub(start) > timeout {
			return ErrTimeout
		}
		if p.Inb(status)&mask == 0 {
			return nil
		}
		sleep(interval)
	}
}

func pick(d, def time.Duration) time.Duration {
	if d == 0 {
		return def
	}
	return d
}
