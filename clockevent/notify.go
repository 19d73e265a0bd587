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

// Reason identifies why the notifier chain is being invoked
type Reason int

// Notification reasons. NotifyAdd carries a *ClockEventDevice payload,
// NotifyCPUDead an int processor id.
const (
	NotifyAdd Reason = iota
	NotifyCPUDead
)

func (r Reason) String() string {
	switch r {
	case NotifyAdd:
		return "add"
	case NotifyCPUDead:
		return "cpu-dead"
	}
	return "unknown"
}

// Notifier is a subscriber on the registry notification chain. Notifiers
// are invoked in registration order, with the registry lock held, so they
// must not call back into the registry.
type Notifier interface {
	Notify(reason Reason, payload any)
}

// NotifierFunc adapts a plain function to the Notifier interface
type NotifierFunc func(reason Reason, payload any)

// Notify calls f
func (f NotifierFunc) Notify(reason Reason, payload any) {
	f(reason, payload)
}
