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

package cmd

import (
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v2"
)

// DeviceConfig describes one simulated timer
type DeviceConfig struct {
	Name     string `yaml:"name"`
	Freq     uint32 `yaml:"freq"`     // ticks per second
	MinTicks uint64 `yaml:"minticks"` // narrowest reliable arming interval
	MaxTicks uint64 `yaml:"maxticks"` // widest reliable arming interval
	ArmFloor uint64 `yaml:"armfloor"` // arms below this many ticks are refused
	Adaptive bool   `yaml:"adaptive"` // grow min_delta_ns on repeated refusals
	Ktime    bool   `yaml:"ktime"`    // absolute time arming
}

// Config represents the simulation we expect to read from file
type Config struct {
	CPUs           int            `yaml:"cpus"`
	Interval       time.Duration  `yaml:"interval"` // how often each device gets reprogrammed
	Duration       time.Duration  `yaml:"duration"` // how long the simulation runs
	MonitoringPort int            `yaml:"monitoringport"`
	Devices        []DeviceConfig `yaml:"devices"`
}

// EvalAndValidate makes sure config is valid
func (c *Config) EvalAndValidate() error {
	if c.CPUs <= 0 {
		c.CPUs = 1
	}
	if c.Interval <= 0 {
		return fmt.Errorf("bad config: 'interval' must be positive")
	}
	if c.Duration < c.Interval {
		return fmt.Errorf("bad config: 'duration' is shorter than 'interval'")
	}
	if len(c.Devices) == 0 {
		return fmt.Errorf("bad config: no devices")
	}
	for _, d := range c.Devices {
		if d.Name == "" {
			return fmt.Errorf("bad config: device without a name")
		}
		if d.Freq == 0 {
			return fmt.Errorf("bad config: device %q has no frequency", d.Name)
		}
		if d.MinTicks > d.MaxTicks {
			return fmt.Errorf("bad config: device %q has minticks above maxticks", d.Name)
		}
	}
	return nil
}

// ReadConfig reads config and unmarshals it from yaml into Config
func ReadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Config{}
	err = yaml.UnmarshalStrict(data, &c)
	return &c, err
}
