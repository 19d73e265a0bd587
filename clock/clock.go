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

package clock

import (
	"math"
	"time"
)

// Time is an absolute point on the monotonic timeline, in nanoseconds.
// The zero point is arbitrary; only differences between Time values are
// meaningful.
type Time int64

// TimeMax is the far future. Device state uses it to mean "no event pending".
const TimeMax = Time(math.MaxInt64)

// Add returns t + d as absolute time
func (t Time) Add(d time.Duration) Time {
	return t + Time(d)
}

// Sub returns t - u as a duration
func (t Time) Sub(u Time) time.Duration {
	return time.Duration(t - u)
}

func (t Time) String() string {
	if t == TimeMax {
		return "max"
	}
	return time.Duration(t).String()
}

// Clock is a monotonic time source. Implementations must be safe for
// concurrent use.
type Clock interface {
	Now() Time
}

// start anchors the System clock so readings stay monotonic regardless of
// wall clock steps. time.Since uses the monotonic reading embedded in start.
var start = time.Now()

// System reads the monotonic clock of the host.
type System struct{}

// Now returns the current monotonic time
func (System) Now() Time {
	return Time(time.Since(start))
}
