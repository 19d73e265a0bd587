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

package stats

import (
	"encoding/json"
	"fmt"
	"net/http"

	log "github.com/sirupsen/logrus"
)

// JSONStats reports registry state as flat JSON over http
type JSONStats struct {
	source Source
}

// NewJSONStats returns a new JSONStats reading from source
func NewJSONStats(source Source) *JSONStats {
	return &JSONStats{source: source}
}

// Start runs the http server on the monitoring port
func (s *JSONStats) Start(monitoringport int) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleRequest)
	addr := fmt.Sprintf(":%d", monitoringport)
	log.Infof("Starting http json server on %s", addr)
	err := http.ListenAndServe(addr, mux)
	if err != nil {
		log.Fatalf("Failed to start listener: %v", err)
	}
}

// handleRequest is a handler used for all http monitoring requests
func (s *JSONStats) handleRequest(w http.ResponseWriter, r *http.Request) {
	js, err := json.Marshal(s.toMap())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if _, err = w.Write(js); err != nil {
		log.Errorf("Failed to reply: %v", err)
	}
}

// toMap flattens registry counters and per device state into one namespace
func (s *JSONStats) toMap() Counters {
	out := make(Counters)
	for k, v := range s.source.Counters() {
		out[k] = v
	}
	for _, d := range s.source.Devices() {
		prefix := fmt.Sprintf("devices.%s.", d.Name)
		out[prefix+"retries"] = int64(d.Retries)
		out[prefix+"min_delta_ns"] = int64(d.MinDeltaNs)
		out[prefix+"max_delta_ns"] = int64(d.MaxDeltaNs)
		out[prefix+"next_event_ns"] = d.NextEvent
	}
	return out
}
