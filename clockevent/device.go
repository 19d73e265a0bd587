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

package clockevent

import (
	"errors"

	"github.com/facebook/clockevents/clock"
)

// NSecPerSec is one second in nanoseconds
const NSecPerSec = 1000000000

// HZ is the scheduler tick rate the adaptive backoff ceiling is derived from
const HZ = 100

// MinDeltaLimit is the ceiling for the adaptive min delta growth, one
// scheduler tick worth of nanoseconds
const MinDeltaLimit = NSecPerSec / HZ

// ErrTime reports a timing failure: the requested expiry is already in the
// past, or the hardware refused every arming attempt up to the backoff
// ceiling. The caller decides whether to pick a later time or fall back to
// another device.
var ErrTime = errors.New("requested event is in the past")

// ErrBusy is returned by drivers when the requested tick count is small
// enough that the counter raced past it before the arm took effect
var ErrBusy = errors.New("hardware counter raced the arming attempt")

// Mode is the operating mode of a clock event device
type Mode uint8

// All the modes a device can be in. A freshly constructed device is
// ModeUnused; only the state machine in SetDeviceMode may change the mode
// afterwards.
const (
	ModeUnused Mode = iota
	ModeShutdown
	ModePeriodic
	ModeOneshot
)

func (m Mode) String() string {
	switch m {
	case ModeUnused:
		return "UNUSED"
	case ModeShutdown:
		return "SHUTDOWN"
	case ModePeriodic:
		return "PERIODIC"
	case ModeOneshot:
		return "ONESHOT"
	}
	return "UNSUPPORTED"
}

// Feature is a bitmask of device capabilities
type Feature uint32

// Capabilities a driver can declare for its device
const (
	// FeatPeriodic means the hardware can fire at a fixed recurring interval
	FeatPeriodic Feature = 0x000001
	// FeatOneshot means the hardware can be armed for a single fire
	FeatOneshot Feature = 0x000002
	// FeatKtime means the hardware accepts absolute expiry times directly,
	// bypassing the relative delta math. The Driver must also implement
	// KtimeDriver.
	FeatKtime Feature = 0x000004
)

// Driver is the capability set the hardware driver supplies for a device.
// SetMode must not fail. SetNextEvent arms the hardware to fire in the given
// number of device ticks and may legitimately return ErrBusy when ticks is
// small enough to race the counter.
type Driver interface {
	SetMode(mode Mode)
	SetNextEvent(ticks uint64) error
}

// KtimeDriver is implemented by drivers whose hardware can be armed with an
// absolute time. It is consulted only when the device declares FeatKtime.
type KtimeDriver interface {
	Driver
	SetNextKtime(t clock.Time) error
}

// MinDeltaPolicy selects how the minimum delta fallback of the event
// programmer behaves. It is fixed at device construction time; the correct
// choice depends on the hardware and is never switched at runtime.
type MinDeltaPolicy uint8

const (
	// MinDeltaSingle arms once at min_delta_ns and propagates the result
	MinDeltaSingle MinDeltaPolicy = iota
	// MinDeltaAdaptive retries with growing min_delta_ns until the hardware
	// accepts the arm or the growth ceiling is reached. For hardware whose
	// real arming floor is only discoverable empirically.
	MinDeltaAdaptive
)

// ClockEventDevice describes one hardware timer to the clock event layer.
// Drivers fill in the identity, capability and bounds fields, construct the
// device in ModeUnused and hand it to a Registry. The mutable state fields
// (Mode, NextEvent, Retries, the ns bounds under the adaptive policy) belong
// to this layer afterwards and are only touched from the owning processor.
type ClockEventDevice struct {
	// Name is for diagnostics only
	Name string
	// Features declares what the hardware supports
	Features Feature
	// Driver is the hardware capability set
	Driver Driver
	// Handler is invoked by the driver when the device fires. Defaults to
	// HandleNoop at registration.
	Handler func()
	// Clock is the monotonic time source. Defaults to the system clock.
	Clock clock.Clock
	// Policy selects the min delta fallback behavior
	Policy MinDeltaPolicy

	// Mult and Shift form the fixed point scale factor:
	// ticks * Mult >> Shift approximates nanoseconds.
	Mult  uint32
	Shift uint32

	// Reliable arming range of the hardware, in ticks and nanoseconds.
	// The ns bounds are derived from the tick bounds by Config.
	MinDeltaTicks uint64
	MaxDeltaTicks uint64
	MinDeltaNs    uint64
	MaxDeltaNs    uint64

	// Mode is the current operating mode. Never write it directly, go
	// through SetDeviceMode so the hardware side effect fires.
	Mode Mode
	// NextEvent is the pending expiry, TimeMax when none. Meaningful only
	// while the device is not shut down.
	NextEvent clock.Time
	// Retries counts arming attempts taken in the min delta fallback
	Retries uint64

	// CPUs is the affinity set. A device with exactly one entry is
	// exclusively owned by that processor.
	CPUs []int
}

var sysclk clock.System

func (d *ClockEventDevice) now() clock.Time {
	if d.Clock != nil {
		return d.Clock.Now()
	}
	return sysclk.Now()
}

func (d *ClockEventDevice) hasCPU(cpu int) bool {
	for _, c := range d.CPUs {
		if c == cpu {
			return true
		}
	}
	return false
}

// HandleNoop is the fire handler of choice for devices which are about to be
// replaced or are not wired up to anything yet
func HandleNoop() {
}

// DeviceSnapshot is a point in time copy of the observable device state,
// taken by Registry.Devices for the stats layer
type DeviceSnapshot struct {
	Name       string
	Mode       string
	NextEvent  int64
	Retries    uint64
	Mult       uint32
	Shift      uint32
	MinDeltaNs uint64
	MaxDeltaNs uint64
}
