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
Package clock provides the monotonic time source used by the clock event layer.

Time values are plain nanosecond counts on a monotonic timeline, so they are
cheap to store in device state, compare and subtract, and never jump when the
wall clock is stepped.

Two implementations of the Clock interface are provided:
  - System, which reads the monotonic clock of the host
  - Simulated, a manually advanced clock for tests and simulations
*/
package clock
