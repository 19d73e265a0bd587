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
	log "github.com/sirupsen/logrus"

	"github.com/facebook/clockevents/clock"
)

// SetDeviceMode transitions dev to the given mode. A no-op when the mode
// already matches; otherwise the driver callback runs first, then the mode
// is committed, so the hardware side effect fires on every observed
// transition.
func SetDeviceMode(dev *ClockEventDevice, mode Mode) {
	if dev.Mode == mode {
		return
	}
	dev.Driver.SetMode(mode)
	dev.Mode = mode

	// A device must never be armed with a zero scale factor
	if mode == ModeOneshot && dev.Mult == 0 {
		dev.Mult = 1
		log.Warningf("CE: %s entered oneshot with a zero mult, repaired to 1", dev.Name)
	}
}

// Shutdown stops dev and clears its pending event
func Shutdown(dev *ClockEventDevice) {
	SetDeviceMode(dev, ModeShutdown)
	dev.NextEvent = clock.TimeMax
}
