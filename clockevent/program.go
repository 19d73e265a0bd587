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
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/facebook/clockevents/clock"
)

// increaseMinDelta grows min_delta_ns after repeated arming failures:
// floor 5000ns, then half again each step, ceiling one scheduler tick.
// Returns ErrTime once the ceiling is reached and there is nothing left to
// try.
func increaseMinDelta(dev *ClockEventDevice) error {
	if dev.MinDeltaNs >= MinDeltaLimit {
		log.Warningf("CE: %s reprogramming failure, giving up", dev.Name)
		dev.NextEvent = clock.TimeMax
		return ErrTime
	}

	if dev.MinDeltaNs < 5000 {
		dev.MinDeltaNs = 5000
	} else {
		dev.MinDeltaNs += dev.MinDeltaNs >> 1
	}
	if dev.MinDeltaNs > MinDeltaLimit {
		dev.MinDeltaNs = MinDeltaLimit
	}

	log.Warningf("CE: %s increased min_delta_ns to %d nsec", dev.Name, dev.MinDeltaNs)
	return nil
}

// programMinDeltaAdaptive keeps arming at the current min_delta_ns, growing
// it after every third consecutive failure. Some hardware has a real nonzero
// arming floor that is only discoverable empirically; this raises the floor
// until arming sticks instead of requiring a hardcoded per-device constant.
func programMinDeltaAdaptive(dev *ClockEventDevice) error {
	for i := 0; ; {
		delta := int64(dev.MinDeltaNs)
		dev.NextEvent = dev.now().Add(time.Duration(delta))

		if dev.Mode == ModeShutdown {
			return nil
		}

		dev.Retries++
		clc := uint64(delta) * uint64(dev.Mult) >> dev.Shift
		if dev.Driver.SetNextEvent(clc) == nil {
			return nil
		}

		if i++; i > 2 {
			if increaseMinDelta(dev) != nil {
				return ErrTime
			}
			i = 0
		}
	}
}

// programMinDeltaSingle arms once at min_delta_ns and propagates the result
func programMinDeltaSingle(dev *ClockEventDevice) error {
	delta := int64(dev.MinDeltaNs)
	dev.NextEvent = dev.now().Add(time.Duration(delta))

	if dev.Mode == ModeShutdown {
		return nil
	}

	dev.Retries++
	clc := uint64(delta) * uint64(dev.Mult) >> dev.Shift
	return dev.Driver.SetNextEvent(clc)
}

func programMinDelta(dev *ClockEventDevice) error {
	if dev.Policy == MinDeltaAdaptive {
		return programMinDeltaAdaptive(dev)
	}
	return programMinDeltaSingle(dev)
}

// ProgramEvent arms dev to fire at expires. With force set, an expiry in the
// past or a refused arm falls back to programming the minimum delta instead
// of failing. Returns ErrTime on a timing failure the caller may recover
// from by picking a later expiry or another device.
//
// Reentrancy contract: this function and its fallback touch only fields of
// dev and take no lock, so they stay safe to call from interrupt context on
// the owning processor.
func ProgramEvent(dev *ClockEventDevice, expires clock.Time, force bool) error {
	if expires < 0 {
		log.Warningf("CE: %s asked to program a negative expiry", dev.Name)
		return ErrTime
	}

	// Recorded unconditionally, diagnostics want the requested expiry even
	// when programming fails
	dev.NextEvent = expires

	if dev.Mode == ModeShutdown {
		return nil
	}

	if dev.Features&FeatKtime != 0 {
		return dev.Driver.(KtimeDriver).SetNextKtime(expires)
	}

	delta := int64(expires.Sub(dev.now()))
	if delta <= 0 {
		if !force {
			return ErrTime
		}
		return programMinDelta(dev)
	}

	if delta > int64(dev.MaxDeltaNs) {
		delta = int64(dev.MaxDeltaNs)
	}
	if delta < int64(dev.MinDeltaNs) {
		delta = int64(dev.MinDeltaNs)
	}

	clc := uint64(delta) * uint64(dev.Mult) >> dev.Shift
	if err := dev.Driver.SetNextEvent(clc); err != nil {
		if force {
			return programMinDelta(dev)
		}
		return err
	}
	return nil
}

// UpdateFreq reconfigures the scale factor and arming bounds of dev for a
// new hardware frequency. The caller must ensure the device is not in the
// middle of a countdown. In oneshot mode the pending event is reprogrammed
// under the new scale and the result propagated.
func UpdateFreq(dev *ClockEventDevice, freq uint32) error {
	Config(dev, freq)

	if dev.Mode != ModeOneshot {
		return nil
	}
	return ProgramEvent(dev, dev.NextEvent, false)
}
