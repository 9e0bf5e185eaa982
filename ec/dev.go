// Copyright © 2023-2024 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package ec

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jpillora/backoff"
	"github.com/platinasystems/crosecbus/lpc"
	"github.com/platinasystems/log"
)

// Command is one host command as seen by callers of Dev.
type Command struct {
	Code    uint16
	Version uint8
	// Out is sent to the EC as the command parameters.
	Out []byte
	// InSize is the largest response the caller will accept.
	InSize int
}

// Response of a successful Command.
type Response struct {
	Data []byte
	// Clamped is set when InSize exceeded the transport's MaxIn, so a
	// longer response may have been cut short by the EC.
	Clamped bool
}

// Features are the two EC_CMD_GET_FEATURES words.
type Features [2]uint32

// FeaturesUnknown is cached when the EC did not answer EC_CMD_GET_FEATURES.
var FeaturesUnknown = Features{0xffffffff, 0xffffffff}

// Has reports whether the EC_FEATURE_* bit is set; always false for
// FeaturesUnknown.
func (f Features) Has(bit uint) bool {
	if f == FeaturesUnknown || bit >= 64 {
		return false
	}
	return f[bit/32]&(1<<(bit%32)) != 0
}

// Dev is a negotiated EC. It allows one host command in flight at a time.
type Dev struct {
	*Transport

	// Version is the EC_CMD_GET_VERSION response read by Open.
	Version ResponseGetVersion

	cfg      Config
	features Features

	mutex  sync.Mutex
	urgent int32
}

// Open probes port, then reads the EC version and features. An EC that
// won't report its version is unusable; one that won't report features is
// treated as having none.
func Open(port lpc.Port, cfg Config) (*Dev, error) {
	t, err := Probe(port, cfg)
	if err != nil {
		return nil, err
	}
	d := New(t, cfg)
	v, err := d.GetVersion()
	if err != nil {
		return nil, fmt.Errorf("get version: %w", err)
	}
	d.Version = *v
	log.Printf("info", "EC RO %q RW %q running %s",
		v.RO(), v.RW(), v.Image())
	if f, err := d.GetFeatures(); err != nil {
		log.Print("err", "get features: ", err)
		d.features = FeaturesUnknown
	} else {
		d.features = f
	}
	return d, nil
}

// New returns a Dev over an already negotiated transport with an unknown
// feature set.
func New(t *Transport, cfg Config) *Dev {
	return &Dev{
		Transport: t,
		cfg:       cfg,
		features:  FeaturesUnknown,
	}
}

func (d *Dev) Features() Features { return d.features }

func (d *Dev) HasFeature(bit uint) bool { return d.features.Has(bit) }

// Execute runs c after any pending ExecuteUrgent calls. It yields to them
// up to Config.Retries times and then fails with ErrRetryLater rather than
// queue behind them indefinitely.
func (d *Dev) Execute(c Command) (Response, error) {
	in, clamped, err := d.prepare(c)
	if err != nil {
		return Response{}, err
	}
	if err = d.yield(); err != nil {
		return Response{Clamped: clamped}, err
	}
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.command(c, in, clamped)
}

// ExecuteUrgent runs c ahead of any Execute calls that have not yet taken
// the command lock.
func (d *Dev) ExecuteUrgent(c Command) (Response, error) {
	in, clamped, err := d.prepare(c)
	if err != nil {
		return Response{}, err
	}
	atomic.AddInt32(&d.urgent, 1)
	d.mutex.Lock()
	atomic.AddInt32(&d.urgent, -1)
	defer d.mutex.Unlock()
	return d.command(c, in, clamped)
}

func (d *Dev) prepare(c Command) ([]byte, bool, error) {
	if len(c.Out) > d.MaxOut {
		return nil, false, fmt.Errorf("command %#x: %d bytes, max %d: %w",
			c.Code, len(c.Out), d.MaxOut, ErrRequestTooBig)
	}
	n, clamped := c.InSize, false
	if n > d.MaxIn {
		log.Print("debug", "clamping command ", c.Code, " response ",
			n, " to ", d.MaxIn)
		n, clamped = d.MaxIn, true
	}
	if n < 0 {
		n = 0
	}
	return make([]byte, n), clamped, nil
}

func (d *Dev) yield() error {
	if atomic.LoadInt32(&d.urgent) == 0 {
		return nil
	}
	sleep := d.cfg.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	min, max := d.cfg.RetryMin, d.cfg.RetryMax
	if min == 0 {
		min = DefaultRetryMin
	}
	if max < min {
		max = min
	}
	b := &backoff.Backoff{
		Min:    min,
		Max:    max,
		Factor: 2,
		Jitter: false,
	}
	for tries := d.cfg.Retries; tries > 0; tries-- {
		sleep(b.Duration())
		if atomic.LoadInt32(&d.urgent) == 0 {
			return nil
		}
	}
	return ErrRetryLater
}

func (d *Dev) command(c Command, in []byte, clamped bool) (Response, error) {
	n, err := d.codec.Command(c.Code, c.Version, c.Out, in)
	if err != nil {
		log.Print("debug", err)
		return Response{Clamped: clamped}, err
	}
	return Response{Data: in[:n], Clamped: clamped}, nil
}
