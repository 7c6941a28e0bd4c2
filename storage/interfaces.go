package storage

import (
	"context"

	"github.com/poiesic/catalogrank/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// Close closes the repository and releases resources.
	Close() error
}

// CatalogRepository stores catalog items keyed by item ID and remembers the
// order in which items were first added.
type CatalogRepository interface {
	Repository

	// AddItems validates and stores items. An item whose ID is already
	// stored replaces the stored copy but keeps its original position.
	// Either every item is stored or none is.
	AddItems(ctx context.Context, items ...*core.Item) ([]*core.Item, error)

	// GetItem retrieves a single item by ID.
	// Returns ErrNotFound if the item doesn't exist.
	GetItem(ctx context.Context, id string) (*core.Item, error)

	// GetItems retrieves multiple items by their IDs.
	// Returns only the items that exist (no error for missing items).
	GetItems(ctx context.Context, ids ...string) ([]*core.Item, error)

	// AllItems returns every stored item in first-insertion order.
	AllItems(ctx context.Context) ([]*core.Item, error)

	// DeleteItems removes items by their IDs.
	// Returns ErrNotFound if any item doesn't exist.
	DeleteItems(ctx context.Context, ids ...string) error

	// Count returns the number of stored items.
	Count(ctx context.Context) (int, error)
}
