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
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/facebook/clockevents/clock"
)

func TestSetDeviceModeIdempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	drv := NewMockDriver(ctrl)
	dev := &ClockEventDevice{Name: "mock", Driver: drv, Mult: 1}

	// only the first transition reaches the hardware
	drv.EXPECT().SetMode(ModeOneshot).Times(1)
	SetDeviceMode(dev, ModeOneshot)
	SetDeviceMode(dev, ModeOneshot)
	require.Equal(t, ModeOneshot, dev.Mode)
}

func TestSetDeviceModeCallbackBeforeCommit(t *testing.T) {
	ctrl := gomock.NewController(t)
	drv := NewMockDriver(ctrl)
	dev := &ClockEventDevice{Name: "mock", Driver: drv, Mult: 1}

	drv.EXPECT().SetMode(ModePeriodic).Do(func(Mode) {
		// hardware side effect observes the pre-transition mode
		require.Equal(t, ModeUnused, dev.Mode)
	})
	SetDeviceMode(dev, ModePeriodic)
	require.Equal(t, ModePeriodic, dev.Mode)
}

func TestSetDeviceModeOneshotRepairsMult(t *testing.T) {
	ctrl := gomock.NewController(t)
	drv := NewMockDriver(ctrl)
	dev := &ClockEventDevice{Name: "broken", Driver: drv}

	drv.EXPECT().SetMode(ModeOneshot)
	SetDeviceMode(dev, ModeOneshot)
	require.Equal(t, uint32(1), dev.Mult)
}

func TestShutdown(t *testing.T) {
	ctrl := gomock.NewController(t)
	drv := NewMockDriver(ctrl)
	dev := &ClockEventDevice{Name: "mock", Driver: drv, Mult: 1, NextEvent: 12345}

	drv.EXPECT().SetMode(ModeShutdown)
	Shutdown(dev)
	require.Equal(t, ModeShutdown, dev.Mode)
	require.Equal(t, clock.TimeMax, dev.NextEvent)
}

func TestModeString(t *testing.T) {
	require.Equal(t, "UNUSED", ModeUnused.String())
	require.Equal(t, "SHUTDOWN", ModeShutdown.String())
	require.Equal(t, "PERIODIC", ModePeriodic.String())
	require.Equal(t, "ONESHOT", ModeOneshot.String())
	require.Equal(t, "UNSUPPORTED", Mode(42).String())
}
