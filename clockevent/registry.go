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
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"

	log "github.com/sirupsen/logrus"
)

// Registry owns the global clock event device state: the list of active
// devices, the released backlog awaiting re-add, and the notifier chain.
// One Registry is constructed at subsystem initialization and passed to
// every operation; there is no hidden singleton.
//
// The mutex stands in for the interrupt disabling spinlock of the original
// setting: it is held across registration, exchange and every notification,
// and is never taken by ProgramEvent.
type Registry struct {
	mu       sync.Mutex
	devices  []*ClockEventDevice
	released []*ClockEventDevice
	chain    []Notifier

	// number of possible processors, for the affinity defaulting check
	cpus int
	// isBroadcast is supplied by the tick layer; the designated broadcast
	// device is exempt from CPU death pruning
	isBroadcast func(*ClockEventDevice) bool

	registrations int64
	exchanges     int64
	flushed       int64
	pruned        int64
	notifications int64
}

// NewRegistry returns a Registry for a system with the given number of
// possible processors
func NewRegistry(cpus int) *Registry {
	if cpus < 1 {
		cpus = 1
	}
	return &Registry{cpus: cpus}
}

// SetBroadcastCheck installs the tick layer predicate identifying the
// designated broadcast device
func (r *Registry) SetBroadcastCheck(f func(*ClockEventDevice) bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.isBroadcast = f
}

func (r *Registry) broadcast(dev *ClockEventDevice) bool {
	return r.isBroadcast != nil && r.isBroadcast(dev)
}

// doNotify runs the chain in registration order. Caller holds the lock.
func (r *Registry) doNotify(reason Reason, payload any) {
	atomic.AddInt64(&r.notifications, 1)
	for _, n := range r.chain {
		n.Notify(reason, payload)
	}
}

// notifyReleased drains the released backlog back into the active list,
// notifying each device individually. Caller holds the lock.
func (r *Registry) notifyReleased() {
	for len(r.released) > 0 {
		dev := r.released[0]
		r.released = r.released[1:]
		r.devices = append(r.devices, dev)
		atomic.AddInt64(&r.flushed, 1)
		r.doNotify(NotifyAdd, dev)
	}
}

// RegisterDevice adds dev to the active list, notifies subscribers and
// flushes the released backlog. The device must be in ModeUnused; anything
// else is a caller bug and panics. KtimeDriver is validated here too so a
// mis-declared FeatKtime fails at registration rather than first arming.
func (r *Registry) RegisterDevice(dev *ClockEventDevice) {
	if dev.Mode != ModeUnused {
		panic(fmt.Sprintf("clockevent: registering device %q in mode %s", dev.Name, dev.Mode))
	}
	if dev.Features&FeatKtime != 0 {
		if _, ok := dev.Driver.(KtimeDriver); !ok {
			panic(fmt.Sprintf("clockevent: device %q declares FeatKtime but driver has no SetNextKtime", dev.Name))
		}
	}
	if dev.Handler == nil {
		dev.Handler = HandleNoop
	}
	if len(dev.CPUs) == 0 {
		// Only valid on a single processor system
		if r.cpus > 1 {
			log.Warningf("CE: %s registered without affinity on a %d processor system", dev.Name, r.cpus)
		}
		dev.CPUs = []int{0}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.devices = append(r.devices, dev)
	atomic.AddInt64(&r.registrations, 1)
	r.doNotify(NotifyAdd, dev)
	r.notifyReleased()
}

// ConfigAndRegister sets the tick bounds of dev, derives its scale factor
// for freq and registers it
func (r *Registry) ConfigAndRegister(dev *ClockEventDevice, freq uint32, minTicks, maxTicks uint64) {
	dev.MinDeltaTicks = minTicks
	dev.MaxDeltaTicks = maxTicks
	Config(dev, freq)
	r.RegisterDevice(dev)
}

// ExchangeDevice swaps old out of service in favor of newDev. Either may be
// nil. The old device is forced back to ModeUnused and parked on the
// released backlog; its add notification is deferred to the next
// RegisterDevice call. The new device must be in ModeUnused (a caller bug
// otherwise) and is shut down.
//
// The lock is held across the entire transition because event programming
// runs at interrupt level in the original setting and must not observe a
// half-finished swap.
func (r *Registry) ExchangeDevice(old, newDev *ClockEventDevice) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if old != nil {
		SetDeviceMode(old, ModeUnused)
		r.removeActive(old)
		r.released = append(r.released, old)
	}

	if newDev != nil {
		if newDev.Mode != ModeUnused {
			panic(fmt.Sprintf("clockevent: exchanging in device %q in mode %s", newDev.Name, newDev.Mode))
		}
		Shutdown(newDev)
	}

	atomic.AddInt64(&r.exchanges, 1)
}

func (r *Registry) removeActive(dev *ClockEventDevice) {
	for i, d := range r.devices {
		if d == dev {
			r.devices = append(r.devices[:i], r.devices[i+1:]...)
			return
		}
	}
}

// RegisterNotifier appends n to the notification chain. Adding the same
// notifier twice is rejected.
func (r *Registry) RegisterNotifier(n Notifier) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.chain {
		if sameNotifier(e, n) {
			return fmt.Errorf("notifier already registered")
		}
	}
	r.chain = append(r.chain, n)
	return nil
}

// sameNotifier compares chain entries without tripping over func-typed
// notifiers, which Go does not allow to be compared
func sameNotifier(a, b Notifier) bool {
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	return a == b
}

// Notify broadcasts (reason, payload) to the chain, then applies the side
// effects tied to the reason. On NotifyCPUDead the payload is the dead
// processor id: the released backlog is dropped outright (those devices were
// never notified, so nobody holds a reference), and every active device
// exclusively owned by that processor is removed, except the designated
// broadcast device. Such a device must already be in ModeUnused; anything
// else is a caller bug and panics.
func (r *Registry) Notify(reason Reason, payload any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.doNotify(reason, payload)

	if reason != NotifyCPUDead {
		return
	}
	cpu := payload.(int)

	r.released = nil

	kept := r.devices[:0]
	for _, dev := range r.devices {
		if dev.hasCPU(cpu) && len(dev.CPUs) == 1 && !r.broadcast(dev) {
			if dev.Mode != ModeUnused {
				panic(fmt.Sprintf("clockevent: pruning device %q in mode %s", dev.Name, dev.Mode))
			}
			atomic.AddInt64(&r.pruned, 1)
			continue
		}
		kept = append(kept, dev)
	}
	r.devices = kept
}

// HandleCPUDead prunes devices owned by a processor that went away
func (r *Registry) HandleCPUDead(cpu int) {
	r.Notify(NotifyCPUDead, cpu)
}

// Counters returns the registry counters for the stats layer
func (r *Registry) Counters() map[string]int64 {
	return map[string]int64{
		"registrations":    atomic.LoadInt64(&r.registrations),
		"exchanges":        atomic.LoadInt64(&r.exchanges),
		"released.flushed": atomic.LoadInt64(&r.flushed),
		"devices.pruned":   atomic.LoadInt64(&r.pruned),
		"notifications":    atomic.LoadInt64(&r.notifications),
	}
}

// Devices returns a snapshot of the active devices
func (r *Registry) Devices() []DeviceSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]DeviceSnapshot, 0, len(r.devices))
	for _, dev := range r.devices {
		out = append(out, DeviceSnapshot{
			Name:       dev.Name,
			Mode:       dev.Mode.String(),
			NextEvent:  int64(dev.NextEvent),
			Retries:    dev.Retries,
			Mult:       dev.Mult,
			Shift:      dev.Shift,
			MinDeltaNs: dev.MinDeltaNs,
			MaxDeltaNs: dev.MaxDeltaNs,
		})
	}
	return out
}
