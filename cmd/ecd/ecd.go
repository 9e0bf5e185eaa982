// Copyright © 2023-2024 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package ecd publishes the EC sensors to redis and accepts fan and
// keyboard backlight settings through redis hset.
package ecd

import (
	"errors"
	"fmt"
	"net/rpc"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	redigo "github.com/garyburd/redigo/redis"
	"github.com/platinasystems/atsock"
	"github.com/platinasystems/crosecbus/cmd"
	"github.com/platinasystems/crosecbus/ec"
	"github.com/platinasystems/crosecbus/internal/ecparms"
	"github.com/platinasystems/crosecbus/lang"
	"github.com/platinasystems/log"
	"github.com/platinasystems/redis"
	"github.com/platinasystems/redis/publisher"
	"github.com/platinasystems/redis/rpc/args"
	"github.com/platinasystems/redis/rpc/reply"
)

const (
	DefaultInterval = 5 * time.Second
	DefaultHash     = "ec"

	backlightKey = "keyboard.backlight.units.%"
)

type Command struct {
	Info
}

type Info struct {
	mutex sync.Mutex
	dev   *ec.Dev
	rpc   *atsock.RpcServer
	pub   printer
	stop  chan struct{}
	last  map[string]string

	// mirror, if addr is set, is a direct connection to another redis
	// server that gets an HSET of every change into hash.
	addr   string
	hash   string
	mirror redigo.Conn
}

type printer interface {
	Print(...interface{}) (int, error)
}

func (*Command) String() string { return "ecd" }

func (*Command) Usage() string {
	return "ecd [-interval DURATION] [-redis ADDR [-hash NAME]] " +
		ecparms.Usage
}

func (*Command) Apropos() lang.Alt {
	return lang.Alt{
		lang.EnUS: "embedded controller monitoring daemon",
	}
}

func (*Command) Man() lang.Alt {
	return lang.Alt{
		lang.EnUS: `
DESCRIPTION
	Publish the embedded controller temperatures, fan speeds, battery,
	switches, host events and MKBP events to the local redis, polling
	every interval. Values are published only when they change.

	These fields may be written with hset:
		fan.N.target.units.rpm
		keyboard.backlight.units.%

OPTIONS
	-interval DURATION
		poll period, default 5s
	-redis ADDR
		also HSET each change on the redis server at ADDR
	-hash NAME
		hash for -redis, default ec` + ecparms.Man,
	}
}

func (*Command) Kind() cmd.Kind { return cmd.Daemon }

func (c *Command) Main(argv ...string) error {
	c.stop = make(chan struct{})
	o, argv, err := ecparms.New(argv, nil,
		[]interface{}{"-interval", "-redis", "-hash"})
	if err != nil {
		return err
	}
	if len(argv) > 0 {
		return fmt.Errorf("%v: unexpected", argv)
	}
	interval := DefaultInterval
	if s := o.Parm.ByName["-interval"]; len(s) > 0 {
		if interval, err = time.ParseDuration(s); err != nil {
			return fmt.Errorf("-interval %s: %v", s, err)
		}
	}
	c.addr = o.Parm.ByName["-redis"]
	c.hash = o.Parm.ByName["-hash"]
	if len(c.hash) == 0 {
		c.hash = DefaultHash
	}

	if err = redis.IsReady(); err != nil {
		return err
	}

	c.last = make(map[string]string)

	if c.dev, err = o.Open(); err != nil {
		return err
	}
	defer o.Close()

	pub, err := publisher.New()
	if err != nil {
		return err
	}
	defer pub.Close()
	c.pub = pub

	if c.rpc, err = atsock.NewRpcServer("ecd"); err != nil {
		return err
	}
	defer c.rpc.Close()

	rpc.Register(&c.Info)
	for _, k := range c.writable() {
		err = redis.Assign(redis.DefaultHash+":"+k, "ecd", "Info")
		if err != nil {
			return err
		}
	}

	c.update()
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-c.stop:
			return nil
		case <-t.C:
			c.update()
		}
	}
}

func (c *Command) Close() error {
	if c.stop != nil {
		close(c.stop)
	}
	return nil
}

// update publishes every sample that differs from the last one.
func (i *Info) update() {
	i.mutex.Lock()
	defer i.mutex.Unlock()

	now, err := sample(i.dev)
	if err != nil {
		log.Print("err", "sample: ", err)
	}
	keys := make([]string, 0, len(now))
	for k := range now {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if v := now[k]; v != i.last[k] {
			i.publish(k, v)
			i.last[k] = v
		}
	}
	for k := range i.last {
		if _, found := now[k]; !found {
			i.pub.Print("delete: ", k)
			delete(i.last, k)
		}
	}
	for _, e := range events(i.dev) {
		i.pub.Print("ec.event: ", e)
	}
	for _, e := range hostEvents(i.dev) {
		i.pub.Print("ec.host.event: ", e)
	}
}

func (i *Info) publish(k, v string) {
	i.pub.Print(k, ": ", v)
	if len(i.addr) == 0 {
		return
	}
	if i.mirror == nil {
		conn, err := redigo.Dial("tcp", i.addr)
		if err != nil {
			log.Print("err", i.addr, ": ", err)
			return
		}
		i.mirror = conn
	}
	if _, err := i.mirror.Do("HSET", i.hash, k, v); err != nil {
		log.Print("err", i.addr, ": ", err)
		i.mirror.Close()
		i.mirror = nil
	}
}

// sample returns the published fields; those of a failed memory map block
// are left out.
func sample(d *ec.Dev) (map[string]string, error) {
	m := map[string]string{
		"ec.protocol":   d.Protocol.String(),
		"ec.version.ro": d.Version.RO(),
		"ec.version.rw": d.Version.RW(),
		"ec.image":      d.Version.Image(),
	}
	var errs []string
	fail := func(what string, err error) {
		errs = append(errs, what+": "+err.Error())
	}
	if temps, err := d.Temps(); err != nil {
		fail("temps", err)
	} else {
		for n, t := range temps {
			if t != ec.EC_TEMP_SENSOR_NOT_PRESENT {
				m[fmt.Sprintf("temp.%d.units.C", n)] = t.String()
			}
		}
	}
	if fans, err := d.Fans(); err != nil {
		fail("fans", err)
	} else {
		for n, f := range fans {
			if f.Present() {
				m[fmt.Sprintf("fan.%d.speed.units.rpm", n)] = f.String()
			}
		}
	}
	if b, err := d.Battery(); err != nil {
		fail("battery", err)
	} else if b.Present() {
		state := "idle"
		switch {
		case b.Charging():
			state = "charging"
		case b.Discharging():
			state = "discharging"
		}
		if b.Critical() {
			state += ",critical"
		}
		m["battery.state"] = state
		m["battery.ac"] = strconv.FormatBool(b.AC())
		m["battery.voltage.units.mV"] = fmt.Sprint(b.Volt)
		m["battery.rate.units.mA"] = fmt.Sprint(b.Rate)
		m["battery.capacity.units.mAh"] = fmt.Sprint(b.Cap)
		m["battery.model"] = b.Model
	}
	if s, err := d.Switches(); err != nil {
		fail("switches", err)
	} else {
		m["switches"] = fmt.Sprintf("%#04x", s)
	}
	if e, err := d.HostEvents(); err != nil {
		fail("host events", err)
	} else {
		m["host.events"] = fmt.Sprintf("%#010x", e)
	}
	if d.HasFeature(ec.EC_FEATURE_PWM_KEYB) {
		if pct, err := d.KeyboardBacklight(); err != nil {
			fail("keyboard backlight", err)
		} else {
			m[backlightKey] = fmt.Sprint(pct)
		}
	}
	if len(errs) > 0 {
		return m, errors.New(strings.Join(errs, "; "))
	}
	return m, nil
}

// events drains the MKBP queue. An EC without events, or without the
// command, is not an error.
func events(d *ec.Dev) []string {
	var s []string
	for {
		e, err := d.GetNextEvent()
		if err != nil {
			if ec.ResultOf(err) != ec.EC_RES_UNAVAILABLE &&
				ec.ResultOf(err) != ec.EC_RES_INVALID_COMMAND {
				log.Print("debug", "next event: ", err)
			}
			return s
		}
		s = append(s, e.String())
		if !e.More {
			return s
		}
	}
}

// hostEvents takes the pending B copy host events by name.
func hostEvents(d *ec.Dev) []string {
	b, err := d.TakeHostEventsB()
	if err != nil {
		if ec.ResultOf(err) != ec.EC_RES_INVALID_COMMAND {
			log.Print("debug", "host events: ", err)
		}
		return nil
	}
	var s []string
	for code := uint(1); code <= 64; code++ {
		if b&ec.EC_HOST_EVENT_MASK(code) != 0 {
			s = append(s, ec.HostEventName(code))
		}
	}
	return s
}

func (i *Info) writable() []string {
	var keys []string
	if i.dev.HasFeature(ec.EC_FEATURE_PWM_FAN) {
		for n := 0; n < ec.EC_FAN_SPEED_ENTRIES; n++ {
			keys = append(keys, fmt.Sprintf("fan.%d.target.units.rpm", n))
		}
	}
	if i.dev.HasFeature(ec.EC_FEATURE_PWM_KEYB) {
		keys = append(keys, backlightKey)
	}
	return keys
}

func (i *Info) Hset(args args.Hset, reply *reply.Hset) error {
	i.mutex.Lock()
	defer i.mutex.Unlock()
	v := strings.TrimRight(string(args.Value), "\n")
	if err := i.set(args.Field, v); err != nil {
		return err
	}
	i.publish(args.Field, v)
	*reply = 1
	return nil
}

func (i *Info) set(field, v string) error {
	if field == backlightKey {
		if !i.dev.HasFeature(ec.EC_FEATURE_PWM_KEYB) {
			return fmt.Errorf("cannot hset: %s", field)
		}
		pct, err := strconv.ParseUint(v, 0, 8)
		if err != nil {
			return fmt.Errorf("%s: %v", v, err)
		}
		return i.dev.SetKeyboardBacklight(uint8(pct))
	}
	var fan int
	if n, _ := fmt.Sscanf(field, "fan.%d.target.units.rpm", &fan); n != 1 ||
		field != fmt.Sprintf("fan.%d.target.units.rpm", fan) ||
		!i.dev.HasFeature(ec.EC_FEATURE_PWM_FAN) {
		return fmt.Errorf("cannot hset: %s", field)
	}
	if fan < 0 || fan >= ec.EC_FAN_SPEED_ENTRIES {
		return fmt.Errorf("%s: no such fan", field)
	}
	rpm, err := strconv.ParseUint(v, 0, 32)
	if err != nil {
		return fmt.Errorf("%s: %v", v, err)
	}
	return i.dev.SetFanTargetRPM(uint8(fan), uint32(rpm))
}
