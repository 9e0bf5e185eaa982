// Copyright © 2023-2024 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package ec_test

import (
	"sync"
	"testing"
	"time"

	"github.com/platinasystems/crosecbus/ec"
	"github.com/platinasystems/crosecbus/internal/ecsim"
	"github.com/platinasystems/crosecbus/internal/test"
	"github.com/platinasystems/crosecbus/lpc"
)

// clock is a fake time source; Sleep only advances Now.
type clock struct {
	mutex sync.Mutex
	now   time.Time
}

func (c *clock) Now() time.Time {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.now
}

func (c *clock) Sleep(d time.Duration) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.now = c.now.Add(d)
}

// config waits on a fake clock and never sleeps between retries.
func config() ec.Config {
	c := &clock{now: time.Unix(0, 0)}
	cfg := ec.DefaultConfig()
	cfg.Wait.Now = c.Now
	cfg.Wait.Sleep = c.Sleep
	cfg.Sleep = func(time.Duration) {}
	return cfg
}

func waiter() *lpc.Waiter {
	cfg := config()
	return &cfg.Wait
}

const (
	v2 = ec.EC_HOST_CMD_FLAG_LPC_ARGS_SUPPORTED
	v3 = ec.EC_HOST_CMD_FLAG_VERSION_3
)

var transports = []struct {
	name  string
	mode  ecsim.Mode
	flags byte
	mec   bool
}{
	{"v2", ecsim.Direct, v2, false},
	{"v3", ecsim.Direct, v3, false},
	{"v3/mec", ecsim.MEC, 0, true},
}

func open(t *testing.T, mode ecsim.Mode, flags byte, mec bool) (*ecsim.EC, *ec.Dev) {
	t.Helper()
	assert := test.Assert{TB: t}
	sim := ecsim.New(mode, flags)
	sim.Busy = 2
	cfg := config()
	cfg.MEC = mec
	d, err := ec.Open(sim, cfg)
	assert.Nil(err)
	return sim, d
}
