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
	"math"

	log "github.com/sirupsen/logrus"
)

// Deltas below this are pointless noise and would cause tight reprogram loops
const minDeltaNoiseNs = 1000

func deltaToNs(latch uint64, dev *ClockEventDevice, ismax bool) uint64 {
	clc := latch << dev.Shift

	if dev.Mult == 0 {
		dev.Mult = 1
		log.Warningf("CE: %s has a zero mult, repaired to 1", dev.Name)
	}
	rnd := uint64(dev.Mult) - 1

	// Upper bound sanity check. If the backwards conversion is not equal
	// latch, the shift above overflowed.
	if clc>>dev.Shift != latch {
		clc = math.MaxUint64
	}

	// For mult <= (1 << shift) adding mult - 1 prevents integer rounding
	// loss, so the backwards conversion from nsec to device ticks is
	// correct.
	//
	// For mult > (1 << shift), i.e. device frequency over 1GHz, the add can
	// push the value past latch by up to (mult - 1) >> shift once converted
	// back to ticks. The min bound still wants the add, to stay above the
	// minimum tick limit of the device; the max bound omits it, to stay
	// below the device upper boundary.
	//
	// Also omit the add if it would overflow 64 bits.
	if math.MaxUint64-clc > rnd &&
		(!ismax || uint64(dev.Mult) <= uint64(1)<<dev.Shift) {
		clc += rnd
	}

	clc /= uint64(dev.Mult)

	if clc < minDeltaNoiseNs {
		return minDeltaNoiseNs
	}
	return clc
}

// DeltaToNs converts a latch value (device ticks) to nanoseconds, bound
// checked. Never returns less than 1000ns.
func DeltaToNs(latch uint64, dev *ClockEventDevice) uint64 {
	return deltaToNs(latch, dev, false)
}

// calcMultShift computes the fixed point (mult, shift) pair converting
// values in from-units to to-units, maximizing shift (and so precision)
// while guaranteeing that no conversion of up to maxsec seconds worth of
// input overflows 64 bits.
func calcMultShift(from, to uint32, maxsec uint64) (mult, shift uint32) {
	// Work out the accuracy ceiling: every doubling of the input range
	// costs one bit of shift.
	sftacc := uint32(32)
	tmp := (maxsec * uint64(from)) >> 32
	for tmp != 0 {
		tmp >>= 1
		sftacc--
	}

	// Largest shift whose mult still fits the accuracy ceiling
	sft := uint32(32)
	for ; sft > 0; sft-- {
		tmp = uint64(to) << sft
		tmp += uint64(from) / 2
		tmp /= uint64(from)
		if tmp>>sftacc == 0 {
			break
		}
	}
	return uint32(tmp), sft
}

// Config derives the scale factor and the nanosecond arming bounds of dev
// for the given hardware frequency. The tick bounds must be set already.
func Config(dev *ClockEventDevice, freq uint32) {
	if dev.Features&FeatOneshot == 0 {
		return
	}

	// Pick the conversion range so the max delta fits: at least one second
	// even for slow hardware, capped at 600s when the counter is wider than
	// 32 bit to keep the scale factor precise.
	sec := dev.MaxDeltaTicks / uint64(freq)
	if sec == 0 {
		sec = 1
	} else if sec > 600 && dev.MaxDeltaTicks > math.MaxUint32 {
		sec = 600
	}

	dev.Mult, dev.Shift = calcMultShift(NSecPerSec, freq, sec)
	dev.MinDeltaNs = deltaToNs(dev.MinDeltaTicks, dev, false)
	dev.MaxDeltaNs = deltaToNs(dev.MaxDeltaTicks, dev, true)
}
