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

package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/catalogrank/core"
)

// Loader parses review exports concurrently.
type Loader struct {
	pool   *ants.Pool
	logger *slog.Logger
}

// Option configures a Loader.
type Option func(*Loader) error

// WithPoolSize sets the number of files parsed at once.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(l *Loader) error {
		if size < 1 {
			size = 1
		}

		// Release old pool
		if l.pool != nil {
			l.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		l.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) error {
		if logger == nil {
			logger = slog.Default()
		}
		l.logger = logger
		return nil
	}
}

// NewLoader creates a loader backed by a worker pool.
// Call Release when the loader is no longer needed.
func NewLoader(opts ...Option) (*Loader, error) {
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	l := &Loader{
		pool:   pool,
		logger: slog.Default(),
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(l); optErr != nil {
			l.Release()
			return nil, optErr
		}
	}

	return l, nil
}

// LoadFiles parses every path and returns the items of all files
// concatenated in the order of paths. Files are parsed independently, so an
// item listed in two files appears twice. If any file fails the errors of all
// failed files are returned joined and no items are returned.
func (l *Loader) LoadFiles(ctx context.Context, paths ...string) ([]*core.Item, error) {
	perFile := make([][]*core.Item, len(paths))
	errs := make([]error, len(paths))

	var wg sync.WaitGroup
	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return nil, err
		}

		wg.Add(1)
		err := l.pool.Submit(func() {
			defer wg.Done()
			items, err := LoadFile(path)
			if err != nil {
				errs[i] = err
				return
			}
			perFile[i] = items
			l.logger.Debug("loaded csv", "path", path, "items", len(items))
		})
		if err != nil {
			wg.Done()
			wg.Wait()
			return nil, fmt.Errorf("submitting %s: %w", path, err)
		}
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	var total int
	for _, items := range perFile {
		total += len(items)
	}
	all := make([]*core.Item, 0, total)
	for _, items := range perFile {
		all = append(all, items...)
	}

	l.logger.Info("loaded catalog files", "files", len(paths), "items", len(all))
	return all, nil
}

// Release stops the worker pool.
func (l *Loader) Release() {
	if l.pool != nil {
		l.pool.Release()
	}
}
