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
	"time"

	"github.com/spf13/cobra"

	"github.com/facebook/clockevents/stats"
)

var (
	exporterListenPortFlag     int
	exporterMonitoringPortFlag int
	exporterIntervalFlag       time.Duration
)

func init() {
	RootCmd.AddCommand(exporterCmd)
	exporterCmd.Flags().IntVar(&exporterListenPortFlag, "listenport", 8887, "port to serve /metrics on")
	exporterCmd.Flags().IntVar(&exporterMonitoringPortFlag, "monitoringport", 8889, "port the simulation json server is listening on")
	exporterCmd.Flags().DurationVar(&exporterIntervalFlag, "interval", 10*time.Second, "scrape interval")
}

var exporterCmd = &cobra.Command{
	Use:   "exporter",
	Short: "Prometheus exporter for a running simulation",
	Run: func(c *cobra.Command, args []string) {
		ConfigureVerbosity()

		e := stats.NewPrometheusExporter(
			exporterListenPortFlag,
			fmt.Sprintf("http://localhost:%d", exporterMonitoringPortFlag),
			exporterIntervalFlag,
		)
		e.Start()
	},
}
