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
	"context"
	"errors"
	"log/slog"
	"runtime"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/catalogrank/core"
)

// Recommender answers ranking queries against a fitted catalog.
type Recommender interface {
	// Recommend returns ranked results; it returns an empty list when the
	// recommender is not ready.
	Recommend(q Query) []*core.RankedResult
	// Ready reports whether a catalog has been fitted.
	Ready() bool
}

var _ Recommender = (*Engine)(nil)

// Engine ranks the items of the most recently fitted catalog snapshot.
// All methods are safe for concurrent use.
type Engine struct {
	fitMu   sync.Mutex
	current atomic.Pointer[snapshot]
	pool    *ants.Pool
	metrics *Metrics
	logger  *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// WithPoolSize sets the number of workers used by RecommendBatch.
// Default is runtime.NumCPU(), with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(e *Engine) error {
		if size < 1 {
			size = 1
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		if e.pool != nil {
			e.pool.Release()
		}
		e.pool = pool
		return nil
	}
}

// WithMetrics records query and fit metrics. The metrics are not registered
// by the engine.
func WithMetrics(m *Metrics) Option {
	return func(e *Engine) error {
		if m == nil {
			return ErrMetricsRequired
		}
		e.metrics = m
		return nil
	}
}

// NewEngine creates an engine with no fitted catalog.
func NewEngine(opts ...Option) (*Engine, error) {
	poolSize := runtime.NumCPU()
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		pool:   pool,
		logger: slog.Default(),
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(e); optErr != nil {
			e.Release()
			return nil, optErr
		}
	}

	return e, nil
}

// Fit builds a new snapshot from items and makes it current. Queries that
// started before the swap finish against the previous snapshot.
// Concurrent calls to Fit are serialized.
func (e *Engine) Fit(items []*core.Item) {
	e.fitMu.Lock()
	defer e.fitMu.Unlock()

	start := time.Now()
	snap := newSnapshot(items)
	e.current.Store(snap)

	if e.metrics != nil {
		e.metrics.RecordFit(len(snap.items), snap.vectorizer.Size())
	}
	e.logger.Info("catalog fitted",
		"items", len(snap.items),
		"vocabulary", snap.vectorizer.Size(),
		"categories", len(snap.categoryStats),
		"elapsed", time.Since(start))
}

// Ready reports whether a catalog has been fitted.
func (e *Engine) Ready() bool {
	return e.current.Load() != nil
}

// Recommend ranks the current snapshot against q.
func (e *Engine) Recommend(q Query) []*core.RankedResult {
	return e.RecommendWithMonitor(q, nil)
}

// RecommendWithMonitor ranks the current snapshot against q.
// The monitor receives callbacks at each stage of the ranking process.
func (e *Engine) RecommendWithMonitor(q Query, monitor Monitor) []*core.RankedResult {
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	start := time.Now()
	monitor.Start(q)

	snap := e.current.Load()
	if snap == nil {
		e.logger.Debug("query before fit, returning no results", "query", q.Text)
		if e.metrics != nil {
			e.metrics.IncQueries()
			e.metrics.IncQueriesNotReady()
		}
		results := []*core.RankedResult{}
		monitor.Finish(results)
		return results
	}

	results, excluded := snap.rank(q, monitor)
	monitor.Finish(results)

	elapsed := time.Since(start)
	if e.metrics != nil {
		e.metrics.IncQueries()
		e.metrics.AddItemsExcluded(excluded)
		e.metrics.AddResultsReturned(len(results))
		e.metrics.ObserveQueryDuration(elapsed.Seconds())
	}
	e.logger.Debug("query ranked",
		"query", q.Text,
		"category", q.Category,
		"excluded", excluded,
		"results", len(results),
		"elapsed", elapsed)

	return results
}

// RecommendBatch runs independent queries on the engine's worker pool.
// The i-th result list answers the i-th query. Cancelling ctx stops
// submission of the remaining queries and returns the context error once
// submitted queries have finished.
func (e *Engine) RecommendBatch(ctx context.Context, queries []Query) ([][]*core.RankedResult, error) {
	results := make([][]*core.RankedResult, len(queries))

	var wg sync.WaitGroup
	for i, q := range queries {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return nil, err
		}

		wg.Add(1)
		err := e.pool.Submit(func() {
			defer wg.Done()
			results[i] = e.Recommend(q)
		})
		if err != nil {
			wg.Done()
			wg.Wait()
			if errors.Is(err, ants.ErrPoolClosed) {
				return nil, ErrPoolClosed
			}
			return nil, err
		}
	}
	wg.Wait()

	return results, nil
}

// CategoryStats returns the number of items per category, sorted by name
// case-insensitively. Names differing only in case are counted together.
func (e *Engine) CategoryStats() []core.CategoryCount {
	snap := e.current.Load()
	if snap == nil {
		return []core.CategoryCount{}
	}
	return slices.Clone(snap.categoryStats)
}

// PriceRange returns the smallest and largest positive prices in the
// current catalog.
func (e *Engine) PriceRange() core.PriceRange {
	snap := e.current.Load()
	if snap == nil {
		return core.PriceRange{}
	}
	return snap.priceRange
}

// TotalItems returns the number of items in the current catalog.
func (e *Engine) TotalItems() int {
	snap := e.current.Load()
	if snap == nil {
		return 0
	}
	return len(snap.items)
}

// VocabularySize returns the number of terms learned by the last fit.
func (e *Engine) VocabularySize() int {
	snap := e.current.Load()
	if snap == nil {
		return 0
	}
	return snap.vectorizer.Size()
}

// Release releases the worker pool. Recommend keeps working afterwards;
// RecommendBatch returns ErrPoolClosed.
func (e *Engine) Release() {
	if e.pool != nil {
		e.pool.Release()
	}
}
