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

/*
Package clockevent manages clock event devices: hardware timers that can be
armed to fire an interrupt once or periodically.

The package provides a uniform layer over heterogeneous timer hardware. A
driver wraps its hardware in the Driver interface, describes the device's
capabilities and reliable arming range in a ClockEventDevice, and registers
it with a Registry. From then on the layer owns mode transitions, overflow
safe conversion between nanosecond deltas and device ticks, and the
program-event algorithm, including the retry fallback used when a requested
delta is too close to now for the hardware to arm safely.

Locking model: the Registry mutex covers registration, exchange and
notification, the operations the original setting runs under an interrupt
disabling spinlock. ProgramEvent and its fallback deliberately take no lock
at all; they touch only fields of the device being programmed, which by the
affinity contract is mutated from a single owning processor.
*/
package clockevent
