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

// Package storage provides the storage abstraction layer for catalogrank.
//
// The ranking engine never touches storage itself: a CatalogRepository keeps
// the items produced by ingestion between runs, and a caller loads them with
// AllItems to fit an engine.
//
// # Constructor Return Type Pattern
//
// Public constructors of storage backends return the CatalogRepository
// interface to keep callers decoupled from BadgerDB specifics:
//
//	repo, err := badger.Open("/path/to/db")  // returns storage.CatalogRepository
//
// Constructors that take an explicit *badger.Backend return concrete types,
// since they are only used by code that already depends on the backend.
//
// # Usage
//
//	repo, err := badger.Open("/path/to/db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer repo.Close()
//
// Use in tests with in-memory storage:
//
//	repo, err := badger.NewMemoryRepository()
//
// # Serialization
//
// Items are stored in a compact binary form built on mus-go serializers;
// see ItemMUS and ReviewMUS.
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
package storage
