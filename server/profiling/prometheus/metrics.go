/*
 * Copyright 2026 The Boardwalk Authors. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package prometheus provides a Prometheus metrics exporter.
package prometheus

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/boardwalk-team/boardwalk/internal/version"
)

const (
	namespace       = "boardwalk"
	serviceLabel    = "service"
	operationLabel  = "operation"
	statusLabel     = "status"
	collectionLabel = "collection"
)

// Metrics manages the metric information that Boardwalk is trying to measure.
type Metrics struct {
	registry *prometheus.Registry

	serverVersion *prometheus.GaugeVec

	operationsTotal    *prometheus.CounterVec
	purgedRowsTotal    *prometheus.CounterVec
	sortFallbacksTotal prometheus.Counter
}

// NewMetrics creates a new instance of Metrics.
func NewMetrics() (*Metrics, error) {
	reg := prometheus.NewRegistry()

	if err := reg.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		return nil, fmt.Errorf("register process collector: %w", err)
	}
	if err := reg.Register(collectors.NewGoCollector()); err != nil {
		return nil, fmt.Errorf("register go collector: %w", err)
	}

	metrics := &Metrics{
		registry: reg,
		serverVersion: promauto.With(reg).NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "server",
			Name:      "version",
			Help:      "Which version is running. 1 for 'server_version' label with current version.",
		}, []string{"server_version"}),
		operationsTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "service",
			Name:      "operations_total",
			Help:      "Total number of service operations handled, regardless of success or failure.",
		}, []string{serviceLabel, operationLabel, statusLabel}),
		purgedRowsTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "purge",
			Name:      "purged_records_total",
			Help:      "Total number of records removed by cascade deletions.",
		}, []string{collectionLabel}),
		sortFallbacksTotal: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "db",
			Name:      "sort_fallbacks_total",
			Help:      "Total number of ordered queries served by the client-side sort fallback.",
		}),
	}

	metrics.serverVersion.With(prometheus.Labels{
		"server_version": version.Version,
	}).Set(1)

	return metrics, nil
}

// AddOperation adds the result of a service operation.
func (m *Metrics) AddOperation(service, operation, status string) {
	if m == nil {
		return
	}

	m.operationsTotal.With(prometheus.Labels{
		serviceLabel:   service,
		operationLabel: operation,
		statusLabel:    status,
	}).Inc()
}

// AddPurgedRecords adds the removed record counts of a cascade deletion.
func (m *Metrics) AddPurgedRecords(counts map[string]int64) {
	if m == nil {
		return
	}

	for collection, count := range counts {
		m.purgedRowsTotal.With(prometheus.Labels{
			collectionLabel: collection,
		}).Add(float64(count))
	}
}

// AddSortFallback counts one ordered query that fell back to the
// client-side sort.
func (m *Metrics) AddSortFallback() {
	if m == nil {
		return
	}

	m.sortFallbacksTotal.Inc()
}

// Registry returns the registry of this metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
