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

// Package catalogrank ties the catalog store, CSV ingestion and the ranking
// engine together.
package catalogrank

import (
	"context"
	"errors"
	"log/slog"
	"runtime"

	"github.com/poiesic/catalogrank/ingestion"
	"github.com/poiesic/catalogrank/ranking"
	"github.com/poiesic/catalogrank/storage"
	"github.com/poiesic/catalogrank/storage/badger"
)

// Catalog is a persistent product catalog that can be ranked.
type Catalog struct {
	backend  *badger.Backend
	repo     *badger.CatalogRepository
	poolSize int
	logger   *slog.Logger
}

// CatalogOption configures a Catalog.
type CatalogOption func(*catalogOptions)

type catalogOptions struct {
	logger   *slog.Logger
	poolSize int
	inMemory bool
}

// WithLogger sets the logger handed to every component the catalog creates.
func WithLogger(logger *slog.Logger) CatalogOption {
	return func(o *catalogOptions) {
		o.logger = logger
	}
}

// WithPoolSize sets the worker pool size of loaders and engines created by
// the catalog.
func WithPoolSize(size int) CatalogOption {
	return func(o *catalogOptions) {
		o.poolSize = size
	}
}

// InMemory keeps the catalog in memory; the path passed to Open is ignored.
func InMemory() CatalogOption {
	return func(o *catalogOptions) {
		o.inMemory = true
	}
}

// Open opens or creates the catalog stored at path.
func Open(path string, opts ...CatalogOption) (*Catalog, error) {
	options := &catalogOptions{
		logger:   slog.Default(),
		poolSize: runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(options)
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}

	backend, err := badger.OpenBackend(path, options.inMemory, badger.WithLogger(options.logger))
	if err != nil {
		return nil, err
	}

	repo, err := badger.NewCatalogRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	return &Catalog{
		backend:  backend,
		repo:     repo,
		poolSize: max(options.poolSize, 1),
		logger:   options.logger,
	}, nil
}

// Close closes the repository and the underlying store.
func (c *Catalog) Close() error {
	if err := c.repo.Close(); err != nil {
		c.logger.Error("error closing catalog repository", "err", err)
		return errors.Join(err, c.backend.Close())
	}

	if err := c.backend.Close(); err != nil {
		c.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// Repository returns the catalog's item repository.
func (c *Catalog) Repository() storage.CatalogRepository {
	return c.repo
}

// NewLoader creates a CSV loader using the catalog's logger and pool size.
// Options given here take precedence.
func (c *Catalog) NewLoader(opts ...ingestion.Option) (*ingestion.Loader, error) {
	defaults := []ingestion.Option{
		ingestion.WithLogger(c.logger),
		ingestion.WithPoolSize(c.poolSize),
	}
	return ingestion.NewLoader(append(defaults, opts...)...)
}

// NewImporter creates an importer writing to the catalog.
func (c *Catalog) NewImporter(opts ...ingestion.ImporterOption) (*ingestion.Importer, error) {
	defaults := []ingestion.ImporterOption{ingestion.WithImporterLogger(c.logger)}
	return ingestion.NewImporter(c.repo, append(defaults, opts...)...)
}

// ImportFiles loads the given CSV exports and stores their items.
func (c *Catalog) ImportFiles(ctx context.Context, paths []string, opts ...ingestion.ImporterOption) (ingestion.ImportResult, error) {
	loader, err := c.NewLoader()
	if err != nil {
		return ingestion.ImportResult{}, err
	}
	defer loader.Release()

	items, err := loader.LoadFiles(ctx, paths...)
	if err != nil {
		return ingestion.ImportResult{}, err
	}

	importer, err := c.NewImporter(opts...)
	if err != nil {
		return ingestion.ImportResult{}, err
	}
	return importer.Import(ctx, items)
}

// NewEngine creates a ranking engine fitted on the catalog's current items.
// The caller must Release the engine.
func (c *Catalog) NewEngine(ctx context.Context, opts ...ranking.Option) (*ranking.Engine, error) {
	defaults := []ranking.Option{
		ranking.WithLogger(c.logger),
		ranking.WithPoolSize(c.poolSize),
	}
	engine, err := ranking.NewEngine(append(defaults, opts...)...)
	if err != nil {
		return nil, err
	}

	if err := c.Refresh(ctx, engine); err != nil {
		engine.Release()
		return nil, err
	}
	return engine, nil
}

// Refresh refits engine on the items currently stored in the catalog.
// Queries running on engine keep the snapshot they started with.
func (c *Catalog) Refresh(ctx context.Context, engine *ranking.Engine) error {
	items, err := c.repo.AllItems(ctx)
	if err != nil {
		return err
	}
	engine.Fit(items)
	return nil
}
