package badger

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/catalogrank/core"
	"github.com/poiesic/catalogrank/storage"
)

// CatalogRepository implements storage.CatalogRepository for BadgerDB.
type CatalogRepository struct {
	backend     *Backend
	orderSeq    *badger.Sequence
	ownsBackend bool
}

var _ storage.CatalogRepository = (*CatalogRepository)(nil)

// NewCatalogRepository creates a CatalogRepository on an open backend.
// Closing the repository does not close the backend.
func NewCatalogRepository(backend *Backend) (*CatalogRepository, error) {
	orderSeq, err := backend.GetSequence(itemOrderSeq)
	if err != nil {
		return nil, err
	}

	return &CatalogRepository{
		backend:  backend,
		orderSeq: orderSeq,
	}, nil
}

// Open opens an on-disk catalog store at path. Closing the returned
// repository also closes the database.
func Open(path string, opts ...Option) (storage.CatalogRepository, error) {
	repo, err := open(path, false, opts...)
	if err != nil {
		return nil, err
	}
	return repo, nil
}

func open(path string, inMemory bool, opts ...Option) (*CatalogRepository, error) {
	backend, err := OpenBackend(path, inMemory, opts...)
	if err != nil {
		return nil, err
	}
	repo, err := NewCatalogRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}
	repo.ownsBackend = true
	return repo, nil
}

// Close releases the order sequence, and the database when the repository
// opened it.
func (r *CatalogRepository) Close() error {
	err := r.orderSeq.Release()
	if r.ownsBackend {
		err = errors.Join(err, r.backend.Close())
	}
	return err
}

func (r *CatalogRepository) checkOpen() error {
	if r.backend.IsClosed() {
		return storage.ErrStorageClosed
	}
	return nil
}

// nextSeq returns the next insertion position.
func (r *CatalogRepository) nextSeq() (uint64, error) {
	seq, err := r.orderSeq.Next()
	if err != nil {
		return 0, err
	}
	// BadgerDB sequences can return 0 on first call, so we skip it
	if seq == 0 {
		return r.orderSeq.Next()
	}
	return seq, nil
}

// AddItems validates and stores items in a single transaction.
func (r *CatalogRepository) AddItems(ctx context.Context, items ...*core.Item) ([]*core.Item, error) {
	if err := r.checkOpen(); err != nil {
		return nil, err
	}
	for _, item := range items {
		if err := core.ValidateItem(item); err != nil {
			return nil, err
		}
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, item := range items {
			seqKey := makeItemSeqKey(item.ID)
			_, err := tx.Get(seqKey)
			switch {
			case errors.Is(err, badger.ErrKeyNotFound):
				// First insertion fixes the item's position
				seq, err := r.nextSeq()
				if err != nil {
					return err
				}
				if err := tx.Set(seqKey, encodeSeq(seq)); err != nil {
					return err
				}
				if err := tx.Set(makeItemOrderKey(seq), storage.MarshalString(item.ID)); err != nil {
					return err
				}
			case err != nil:
				return err
			}

			if err := tx.Set(makeItemKey(item.ID), storage.MarshalItem(item)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}

	return items, nil
}

// GetItem retrieves a single item by ID.
func (r *CatalogRepository) GetItem(ctx context.Context, id string) (*core.Item, error) {
	if err := r.checkOpen(); err != nil {
		return nil, err
	}

	var result *core.Item
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readItem(tx, makeItemKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return fmt.Errorf("%w: item %q", storage.ErrNotFound, id)
		}
		return nil
	}, false)
	return result, err
}

// GetItems retrieves multiple items by their IDs.
func (r *CatalogRepository) GetItems(ctx context.Context, ids ...string) ([]*core.Item, error) {
	if err := r.checkOpen(); err != nil {
		return nil, err
	}

	var result []*core.Item
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			item, err := readItem(tx, makeItemKey(id))
			if err != nil {
				return err
			}
			if item != nil {
				result = append(result, item)
			}
		}
		return nil
	}, false)
	return result, err
}

// AllItems returns every stored item in first-insertion order.
func (r *CatalogRepository) AllItems(ctx context.Context) ([]*core.Item, error) {
	if err := r.checkOpen(); err != nil {
		return nil, err
	}

	var results []*core.Item
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(itemOrderPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			// Read the ID from the index
			var id string
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				id, err = storage.UnmarshalString(val)
				return err
			}); err != nil {
				return err
			}

			// Look up the full item
			item, err := readItem(tx, makeItemKey(id))
			if err != nil {
				return err
			}
			if item != nil {
				results = append(results, item)
			}
		}
		return nil
	}, false)

	return results, err
}

// DeleteItems removes items by their IDs, together with their index entries.
func (r *CatalogRepository) DeleteItems(ctx context.Context, ids ...string) error {
	if err := r.checkOpen(); err != nil {
		return err
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			seqKey := makeItemSeqKey(id)
			entry, err := tx.Get(seqKey)
			if errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("%w: item %q", storage.ErrNotFound, id)
			}
			if err != nil {
				return err
			}

			var seq uint64
			if err := entry.Value(func(val []byte) error {
				var ok bool
				if seq, ok = decodeSeq(val); !ok {
					return storage.ErrTruncatedData
				}
				return nil
			}); err != nil {
				return err
			}

			if err := tx.Delete(makeItemOrderKey(seq)); err != nil {
				return err
			}
			if err := tx.Delete(seqKey); err != nil {
				return err
			}
			if err := tx.Delete(makeItemKey(id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// Count returns the number of stored items.
func (r *CatalogRepository) Count(ctx context.Context) (int, error) {
	if err := r.checkOpen(); err != nil {
		return 0, err
	}

	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(itemOrderPrefix)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	return count, err
}

// Helper methods

// readItem reads an item from the transaction.
func readItem(tx *badger.Txn, key []byte) (*core.Item, error) {
	entry, err := tx.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var item *core.Item
	err = entry.Value(func(val []byte) error {
		var unmarshalErr error
		item, unmarshalErr = storage.UnmarshalItem(val)
		return unmarshalErr
	})
	return item, err
}
