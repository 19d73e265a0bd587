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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeltaToNsFloor(t *testing.T) {
	dev := &ClockEventDevice{Name: "fast", Mult: 4294967, Shift: 32} // ~1MHz
	// a single tick is ~1000ns, anything smaller is noise
	require.Equal(t, uint64(1000), DeltaToNs(0, dev))
	require.Equal(t, uint64(1000), DeltaToNs(1, dev))
}

func TestDeltaToNsMonotonic(t *testing.T) {
	dev := &ClockEventDevice{Name: "mono", Mult: 4294967, Shift: 32}
	prev := uint64(0)
	for latch := uint64(0); latch < 1<<20; latch += 1013 {
		ns := DeltaToNs(latch, dev)
		require.GreaterOrEqual(t, ns, uint64(1000))
		require.GreaterOrEqual(t, ns, prev, "latch %d", latch)
		prev = ns
	}
}

func TestDeltaToNsZeroMultRepair(t *testing.T) {
	dev := &ClockEventDevice{Name: "broken", Shift: 10}
	ns := DeltaToNs(100, dev)
	require.Equal(t, uint32(1), dev.Mult)
	require.Equal(t, uint64(100<<10), ns)
}

func TestDeltaToNsShiftOverflowClamped(t *testing.T) {
	dev := &ClockEventDevice{Name: "wide", Mult: 1 << 20, Shift: 32}
	// latch big enough that latch << shift overflows 64 bits
	ns := DeltaToNs(math.MaxUint64>>16, dev)
	// clamped to the maximum representable value before the division
	require.Equal(t, uint64(math.MaxUint64)/uint64(dev.Mult), ns)
}

func TestDeltaToNsMaxBoundOmitsRounding(t *testing.T) {
	// mult > 2^shift models hardware over 1GHz: rounding up the max bound
	// would overshoot the real device capability
	dev := &ClockEventDevice{Name: "ghz", Mult: 5, Shift: 1}
	latch := uint64(100001)
	min := deltaToNs(latch, dev, false)
	max := deltaToNs(latch, dev, true)
	require.Equal(t, uint64(100001*2+4)/5, min)
	require.Equal(t, uint64(100001*2)/5, max)
	require.Greater(t, min, max)
}

func TestMinDeltaRoundTrip(t *testing.T) {
	// Converting min_delta_ticks to ns and back must never land below the
	// hardware floor, for slow and fast hardware alike.
	for _, freq := range []uint32{32768, 1000000, 19200000, 1500000000} {
		for _, minTicks := range []uint64{1, 2, 100, 5000} {
			dev := &ClockEventDevice{
				Name:          "rt",
				Features:      FeatOneshot,
				MinDeltaTicks: minTicks,
				MaxDeltaTicks: 1 << 30,
			}
			Config(dev, freq)
			require.NotZero(t, dev.Mult)

			ns := deltaToNs(dev.MinDeltaTicks, dev, false)
			back := ns * uint64(dev.Mult) >> dev.Shift
			require.GreaterOrEqual(t, back, minTicks,
				"freq %d minTicks %d mult %d shift %d", freq, minTicks, dev.Mult, dev.Shift)
		}
	}
}

func TestConfigBounds(t *testing.T) {
	dev := &ClockEventDevice{
		Name:          "cfg",
		Features:      FeatOneshot,
		MinDeltaTicks: 1,
		MaxDeltaTicks: 100000,
	}
	Config(dev, 1000000)
	require.NotZero(t, dev.Mult)
	require.NotZero(t, dev.Shift)
	require.LessOrEqual(t, dev.MinDeltaNs, dev.MaxDeltaNs)
	// 100000 ticks at 1MHz is 100ms
	require.InEpsilon(t, uint64(100000000), dev.MaxDeltaNs, 0.001)
}

func TestConfigPeriodicOnlySkipped(t *testing.T) {
	dev := &ClockEventDevice{
		Name:          "periodic",
		Features:      FeatPeriodic,
		MinDeltaTicks: 1,
		MaxDeltaTicks: 100000,
	}
	Config(dev, 1000000)
	// no oneshot support, no scale factor to derive
	require.Zero(t, dev.Mult)
	require.Zero(t, dev.MinDeltaNs)
}

func TestConfigWideCounterCapped(t *testing.T) {
	// counter wider than 32 bit covering more than 600s: range capped to
	// keep the scale factor precise
	capped := &ClockEventDevice{
		Name:          "wide",
		Features:      FeatOneshot,
		MinDeltaTicks: 1,
		MaxDeltaTicks: math.MaxUint64 >> 8,
	}
	Config(capped, 1000000)

	// 32 bit counter covering the same seconds keeps the full range
	narrow := &ClockEventDevice{
		Name:          "narrow",
		Features:      FeatOneshot,
		MinDeltaTicks: 1,
		MaxDeltaTicks: math.MaxUint32,
	}
	Config(narrow, 1000)

	require.NotZero(t, capped.Mult)
	require.NotZero(t, narrow.Mult)
	require.Greater(t, capped.MaxDeltaNs, capped.MinDeltaNs)
}

func TestCalcMultShiftPrecision(t *testing.T) {
	// 1MHz over 1s: one tick per microsecond
	mult, shift := calcMultShift(NSecPerSec, 1000000, 1)
	for _, ns := range []uint64{1000, 500000, 1000000000} {
		ticks := ns * uint64(mult) >> shift
		require.InDelta(t, ns/1000, ticks, 1, "ns %d", ns)
	}
}
