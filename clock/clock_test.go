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
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTimeArithmetic(t *testing.T) {
	a := Time(1000)
	b := a.Add(time.Microsecond)
	require.Equal(t, Time(2000), b)
	require.Equal(t, time.Microsecond, b.Sub(a))
	require.Equal(t, "max", TimeMax.String())
	require.Equal(t, "2µs", b.String())
}

func TestSystemMonotonic(t *testing.T) {
	c := System{}
	a := c.Now()
	b := c.Now()
	require.GreaterOrEqual(t, b, a)
}

func TestSimulated(t *testing.T) {
	c := &Simulated{}
	require.Equal(t, Time(0), c.Now())

	c.Advance(time.Millisecond)
	require.Equal(t, Time(time.Millisecond), c.Now())

	// no going backwards
	c.Advance(-time.Second)
	require.Equal(t, Time(time.Millisecond), c.Now())

	c.Set(Time(time.Second))
	require.Equal(t, Time(time.Second), c.Now())
	c.Set(Time(0))
	require.Equal(t, Time(time.Second), c.Now())
}
