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
	"io"
	"log/slog"
	"time"

	"github.com/poiesic/catalogrank/core"
	"github.com/poiesic/catalogrank/storage"
)

const (
	// DefaultBatchSize is the number of items written per transaction.
	DefaultBatchSize = 100

	defaultMaxAttempts = 3
	defaultRetryDelay  = 50 * time.Millisecond
)

// ImportResult summarises an import run.
type ImportResult struct {
	Stored  int // items written (new or replaced)
	Skipped int // items rejected by validation
}

// Importer writes items into a catalog repository in batches.
type Importer struct {
	repository     storage.CatalogRepository
	batchSize      int
	maxAttempts    int
	retryDelay     time.Duration
	progress       io.Writer
	reportInterval int
	logger         *slog.Logger
}

// ImporterOption configures an Importer.
type ImporterOption func(*Importer) error

// WithBatchSize sets how many items are stored per write.
func WithBatchSize(size int) ImporterOption {
	return func(im *Importer) error {
		if size < 1 {
			return fmt.Errorf("%w: %d", ErrInvalidBatchSize, size)
		}
		im.batchSize = size
		return nil
	}
}

// WithRetry sets how often a failed batch write is attempted and the delay
// before the first retry. The delay doubles on each retry.
func WithRetry(maxAttempts int, baseDelay time.Duration) ImporterOption {
	return func(im *Importer) error {
		if maxAttempts <= 0 {
			return ErrInvalidMaxAttempts
		}
		im.maxAttempts = maxAttempts
		im.retryDelay = baseDelay
		return nil
	}
}

// WithProgress reports progress to w every reportInterval items.
// Progress is not reported by default.
func WithProgress(w io.Writer, reportInterval int) ImporterOption {
	return func(im *Importer) error {
		im.progress = w
		im.reportInterval = reportInterval
		return nil
	}
}

// WithImporterLogger sets a custom logger.
// Default is slog.Default().
func WithImporterLogger(logger *slog.Logger) ImporterOption {
	return func(im *Importer) error {
		if logger == nil {
			logger = slog.Default()
		}
		im.logger = logger
		return nil
	}
}

// NewImporter creates an importer writing to repository.
func NewImporter(repository storage.CatalogRepository, opts ...ImporterOption) (*Importer, error) {
	if repository == nil {
		return nil, ErrRepositoryRequired
	}

	im := &Importer{
		repository:  repository,
		batchSize:   DefaultBatchSize,
		maxAttempts: defaultMaxAttempts,
		retryDelay:  defaultRetryDelay,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(im); err != nil {
			return nil, err
		}
	}
	return im, nil
}

// Import validates items and stores the valid ones. Items failing
// validation are logged and skipped. Batches are written in order; when a
// batch cannot be stored the import stops and the result reflects the
// batches already written.
func (im *Importer) Import(ctx context.Context, items []*core.Item) (ImportResult, error) {
	var result ImportResult

	valid := make([]*core.Item, 0, len(items))
	for _, item := range items {
		if err := core.ValidateItem(item); err != nil {
			im.logger.Warn("skipping invalid item", "err", err)
			result.Skipped++
			continue
		}
		valid = append(valid, item)
	}

	im.logger.Info("Starting catalog import", "items", len(valid), "skipped", result.Skipped, "batchSize", im.batchSize)

	var tracker *ProgressTracker
	if im.progress != nil {
		tracker = NewProgressTracker(im.progress, len(valid), im.reportInterval)
		tracker.Start()
		defer tracker.Finish()
	}

	start := time.Now()
	for lo := 0; lo < len(valid); lo += im.batchSize {
		batch := valid[lo:min(lo+im.batchSize, len(valid))]

		err := RetryWithBackoff(ctx, func() error {
			_, err := im.repository.AddItems(ctx, batch...)
			if isPermanent(err) {
				return Permanent(err)
			}
			return err
		}, im.maxAttempts, im.retryDelay)
		if err != nil {
			return result, fmt.Errorf("storing batch at %d: %w", lo, err)
		}

		result.Stored += len(batch)
		if tracker != nil {
			tracker.Increment(len(batch))
		}
	}

	im.logger.Info("Catalog import complete", "stored", result.Stored, "skipped", result.Skipped, "elapsed", time.Since(start))
	return result, nil
}

// isPermanent reports whether a write failure cannot succeed on retry.
func isPermanent(err error) bool {
	return errors.Is(err, core.ErrInvalidItem) ||
		errors.Is(err, storage.ErrStorageClosed) ||
		errors.Is(err, storage.ErrSerializationFailed) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}
