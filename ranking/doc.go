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

// Package ranking ranks catalog items against a free-text query.
//
// An Engine is fitted once per catalog snapshot. Fitting learns a TF-IDF
// vocabulary over every item's title and description and caches one vector
// per item. Each query then:
//   - filters items by price window and category
//   - scores the survivors by cosine similarity plus title, category and
//     fuzzy keyword bonuses
//   - excludes items that match none of the query keywords, even fuzzily
//   - blends similarity with rating, review volume and price into a
//     composite score
//   - sorts, ranks, drops results below ScoreThreshold and truncates
//
// Fitted snapshots are immutable and swapped atomically, so any number of
// queries may run concurrently with each other and with a re-fit.
package ranking
