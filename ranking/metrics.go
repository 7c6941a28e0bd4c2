// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ranking

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metric names as constants for consistency.
const (
	MetricQueriesTotal         = "catalogrank_queries_total"
	MetricQueriesNotReady      = "catalogrank_queries_not_ready_total"
	MetricItemsExcludedTotal   = "catalogrank_items_excluded_total"
	MetricResultsReturnedTotal = "catalogrank_results_returned_total"
	MetricQueryDuration        = "catalogrank_query_duration_seconds"
	MetricFitsTotal            = "catalogrank_fits_total"
	MetricCatalogItems         = "catalogrank_catalog_items"
	MetricVocabularySize       = "catalogrank_vocabulary_size"
)

// Metrics contains Prometheus metrics for the ranking engine.
// All operations are thread-safe.
type Metrics struct {
	queriesTotal         prometheus.Counter
	queriesNotReady      prometheus.Counter
	itemsExcludedTotal   prometheus.Counter
	resultsReturnedTotal prometheus.Counter
	queryDuration        prometheus.Histogram
	fitsTotal            prometheus.Counter
	catalogItems         prometheus.Gauge
	vocabularySize       prometheus.Gauge
}

// NewMetrics creates and returns a new Metrics instance with all collectors initialized.
// The metrics are not registered; call Register to register them with a registry.
func NewMetrics() *Metrics {
	return &Metrics{
		queriesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricQueriesTotal,
			Help: "Total number of ranking queries",
		}),
		queriesNotReady: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricQueriesNotReady,
			Help: "Total number of ranking queries answered before the engine was fitted",
		}),
		itemsExcludedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricItemsExcludedTotal,
			Help: "Total number of filtered items excluded for matching no query keyword",
		}),
		resultsReturnedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricResultsReturnedTotal,
			Help: "Total number of ranked results returned",
		}),
		queryDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    MetricQueryDuration,
			Help:    "Histogram of ranking query duration in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
		}),
		fitsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricFitsTotal,
			Help: "Total number of catalog fits",
		}),
		catalogItems: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: MetricCatalogItems,
			Help: "Number of items in the current catalog snapshot",
		}),
		vocabularySize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: MetricVocabularySize,
			Help: "Number of terms in the current vectorizer vocabulary",
		}),
	}
}

// Register registers all metrics with the given registry.
// Returns an error if registration fails.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range m.Collectors() {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// IncQueries increments the query counter.
func (m *Metrics) IncQueries() {
	m.queriesTotal.Inc()
}

// IncQueriesNotReady increments the not-ready query counter.
func (m *Metrics) IncQueriesNotReady() {
	m.queriesNotReady.Inc()
}

// AddItemsExcluded adds to the excluded item counter.
func (m *Metrics) AddItemsExcluded(n int) {
	m.itemsExcludedTotal.Add(float64(n))
}

// AddResultsReturned adds to the returned result counter.
func (m *Metrics) AddResultsReturned(n int) {
	m.resultsReturnedTotal.Add(float64(n))
}

// ObserveQueryDuration records a query duration sample.
func (m *Metrics) ObserveQueryDuration(seconds float64) {
	m.queryDuration.Observe(seconds)
}

// RecordFit counts a fit and records the size of the new snapshot.
func (m *Metrics) RecordFit(items, vocabulary int) {
	m.fitsTotal.Inc()
	m.catalogItems.Set(float64(items))
	m.vocabularySize.Set(float64(vocabulary))
}

// Collectors returns all Prometheus collectors for testing.
func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.queriesTotal,
		m.queriesNotReady,
		m.itemsExcludedTotal,
		m.resultsReturnedTotal,
		m.queryDuration,
		m.fitsTotal,
		m.catalogItems,
		m.vocabularySize,
	}
}
