/*
Copyright (c) Facebook, Inc. and its affiliates.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package simulator provides a software clock event source. It implements
// the driver side of the clockevent layer on top of runtime timers, with a
// configurable arming floor that models hardware whose counter races short
// arming attempts. Used by tests and the cevsim binary.
package simulator

import (
	"sync"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/facebook/clockevents/clock"
	"github.com/facebook/clockevents/clockevent"
)

// Timer is one simulated hardware timer. It implements clockevent.Driver
// and clockevent.KtimeDriver.
type Timer struct {
	name     string
	freq     uint32
	armFloor uint64
	period   time.Duration
	clk      clock.Clock

	mu    sync.Mutex
	mode  clockevent.Mode
	timer *time.Timer
	fire  func()

	fires   int64
	refused int64
}

// New returns a timer running at freq ticks per second. Arming attempts
// below armFloor ticks are refused with ErrBusy, the way real hardware
// refuses arms that race its counter.
func New(name string, freq uint32, armFloor uint64, clk clock.Clock) *Timer {
	return &Timer{
		name:     name,
		freq:     freq,
		armFloor: armFloor,
		period:   time.Second / clockevent.HZ,
		clk:      clk,
	}
}

// OnFire installs the callback invoked on every fire. Wire it to the
// device's Handler.
func (t *Timer) OnFire(f func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.fire = f
}

// SetMode is the hardware mode switch
func (t *Timer) SetMode(mode clockevent.Mode) {
	t.mu.Lock()
	defer t.mu.Unlock()

	log.Debugf("simulator: %s mode %s -> %s", t.name, t.mode, mode)
	t.mode = mode
	switch mode {
	case clockevent.ModePeriodic:
		t.scheduleLocked(t.period)
	case clockevent.ModeShutdown, clockevent.ModeUnused:
		if t.timer != nil {
			t.timer.Stop()
			t.timer = nil
		}
	}
}

// SetNextEvent arms the timer to fire in the given number of device ticks
func (t *Timer) SetNextEvent(ticks uint64) error {
	if ticks < t.armFloor {
		atomic.AddInt64(&t.refused, 1)
		return clockevent.ErrBusy
	}

	d := time.Duration(ticks * clockevent.NSecPerSec / uint64(t.freq))
	t.mu.Lock()
	defer t.mu.Unlock()
	t.scheduleLocked(d)
	return nil
}

// SetNextKtime arms the timer to fire at an absolute time
func (t *Timer) SetNextKtime(at clock.Time) error {
	d := at.Sub(t.clk.Now())
	if d < 0 {
		atomic.AddInt64(&t.refused, 1)
		return clockevent.ErrBusy
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.scheduleLocked(d)
	return nil
}

func (t *Timer) scheduleLocked(d time.Duration) {
	if t.timer != nil {
		t.timer.Stop()
	}
	t.timer = time.AfterFunc(d, t.fired)
}

func (t *Timer) fired() {
	t.mu.Lock()
	atomic.AddInt64(&t.fires, 1)
	f := t.fire
	if t.mode == clockevent.ModePeriodic {
		t.scheduleLocked(t.period)
	}
	t.mu.Unlock()

	if f != nil {
		f()
	}
}

// Stop cancels any pending fire
func (t *Timer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

// Fires returns how many times the timer fired
func (t *Timer) Fires() int64 {
	return atomic.LoadInt64(&t.fires)
}

// Refused returns how many arming attempts the timer refused
func (t *Timer) Refused() int64 {
	return atomic.LoadInt64(&t.refused)
}
