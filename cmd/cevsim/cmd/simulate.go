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
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/facebook/clockevents/clock"
	"github.com/facebook/clockevents/clockevent"
	"github.com/facebook/clockevents/simulator"
	"github.com/facebook/clockevents/stats"
)

var simulateConfigFlag string

func init() {
	RootCmd.AddCommand(simulateCmd)
	simulateCmd.Flags().StringVarP(&simulateConfigFlag, "config", "c", "", "path to the simulation config")
	if err := simulateCmd.MarkFlagRequired("config"); err != nil {
		log.Fatal(err)
	}
}

var okString = color.GreenString("[ OK ]")
var failString = color.RedString("[FAIL]")

type simDevice struct {
	timer *simulator.Timer
	dev   *clockevent.ClockEventDevice
	fires int64
}

func buildDevices(cfg *Config, registry *clockevent.Registry, clk clock.Clock) []*simDevice {
	sims := make([]*simDevice, 0, len(cfg.Devices))
	for i, dc := range cfg.Devices {
		tm := simulator.New(dc.Name, dc.Freq, dc.ArmFloor, clk)
		sd := &simDevice{timer: tm}

		features := clockevent.FeatOneshot
		if dc.Ktime {
			features |= clockevent.FeatKtime
		}
		dev := &clockevent.ClockEventDevice{
			Name:     dc.Name,
			Features: features,
			Driver:   tm,
			Clock:    clk,
			CPUs:     []int{i % cfg.CPUs},
			Handler:  func() { atomic.AddInt64(&sd.fires, 1) },
		}
		if dc.Adaptive {
			dev.Policy = clockevent.MinDeltaAdaptive
		}
		tm.OnFire(dev.Handler)
		sd.dev = dev

		registry.ConfigAndRegister(dev, dc.Freq, dc.MinTicks, dc.MaxTicks)
		clockevent.SetDeviceMode(dev, clockevent.ModeOneshot)
		sims = append(sims, sd)
	}
	return sims
}

func simulateRun(path string) error {
	cfg, err := ReadConfig(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	if err := cfg.EvalAndValidate(); err != nil {
		return err
	}

	clk := clock.System{}
	registry := clockevent.NewRegistry(cfg.CPUs)
	err = registry.RegisterNotifier(clockevent.NotifierFunc(func(reason clockevent.Reason, payload any) {
		if reason == clockevent.NotifyAdd {
			log.Infof("added clock event device %s", payload.(*clockevent.ClockEventDevice).Name)
		}
	}))
	if err != nil {
		return err
	}

	if cfg.MonitoringPort != 0 {
		go stats.NewJSONStats(registry).Start(cfg.MonitoringPort)
	}

	sims := buildDevices(cfg, registry, clk)

	log.Infof("simulating %d devices for %v", len(sims), cfg.Duration)
	deadline := time.Now().Add(cfg.Duration)
	for time.Now().Before(deadline) {
		for _, sd := range sims {
			if err := clockevent.ProgramEvent(sd.dev, clk.Now().Add(cfg.Interval), true); err != nil {
				log.Errorf("programming %s: %v", sd.dev.Name, err)
			}
		}
		time.Sleep(cfg.Interval)
	}

	for _, sd := range sims {
		clockevent.Shutdown(sd.dev)
		sd.timer.Stop()
	}

	printSummary(os.Stdout, sims)
	return nil
}

func printSummary(w io.Writer, sims []*simDevice) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{
		"device", "mode", "mult", "shift", "min_delta(ns)", "max_delta(ns)", "retries", "refused", "fires", "status",
	})
	for _, sd := range sims {
		status := okString
		if atomic.LoadInt64(&sd.fires) == 0 {
			status = failString
		}
		table.Append([]string{
			sd.dev.Name,
			sd.dev.Mode.String(),
			fmt.Sprintf("%d", sd.dev.Mult),
			fmt.Sprintf("%d", sd.dev.Shift),
			fmt.Sprintf("%d", sd.dev.MinDeltaNs),
			fmt.Sprintf("%d", sd.dev.MaxDeltaNs),
			fmt.Sprintf("%d", sd.dev.Retries),
			fmt.Sprintf("%d", sd.timer.Refused()),
			fmt.Sprintf("%d", atomic.LoadInt64(&sd.fires)),
			status,
		})
	}
	table.Render()
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a clock event device simulation from a config file",
	Run: func(c *cobra.Command, args []string) {
		ConfigureVerbosity()

		if err := simulateRun(simulateConfigFlag); err != nil {
			log.Fatal(err)
		}
	},
}
