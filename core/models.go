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

package core

import (
	"encoding/hex"
	"strconv"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// UnknownItemID is assigned to items whose canonical URL is empty.
const UnknownItemID = "unknown"

// ItemIDFromURL derives a stable item identifier from a canonical URL using
// a 64-bit BLAKE2b digest. Identical URLs always produce identical IDs.
func ItemIDFromURL(url string) string {
	if url == "" {
		return UnknownItemID
	}
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(url))
	return "item_" + hex.EncodeToString(h.Sum(nil))
}

// Review is a single customer review attached to an item.
type Review struct {
	Author string
	Rating float64 // 0.0 - 5.0
	Title  string
	Body   string
	Date   time.Time // zero when the source had no parseable date
}

// HasDate reports whether the review carries a date.
func (r *Review) HasDate() bool {
	return !r.Date.IsZero()
}

// Item is a catalog entry with its aggregated reviews.
// AvgRating and ReviewCount are maintained by AddReview and are treated as
// read-only by the ranking engine.
type Item struct {
	ID          string
	Title       string
	Price       float64 // currency-agnostic, >= 0
	Link        string
	ImageURL    string
	Description string
	Category    string
	Reviews     []Review
	AvgRating   float64
	ReviewCount int
}

// AddReview attaches a review and recomputes the rating aggregates.
func (it *Item) AddReview(r Review) {
	it.Reviews = append(it.Reviews, r)
	it.recomputeAggregates()
}

func (it *Item) recomputeAggregates() {
	it.ReviewCount = len(it.Reviews)
	if it.ReviewCount == 0 {
		it.AvgRating = 0
		return
	}
	var sum float64
	for _, r := range it.Reviews {
		sum += r.Rating
	}
	it.AvgRating = sum / float64(it.ReviewCount)
}

// Text returns the text the vectorizer is fitted on: title and description.
func (it *Item) Text() string {
	return it.Title + " " + it.Description
}

// ScoredItem pairs an item of any type with a score. It is only used as an
// intermediate sorting primitive while ranking.
type ScoredItem[T any] struct {
	Item  T
	Score float64
}

// RankedResult is one entry of a completed ranking call.
// Rank is 1-based and only meaningful within the result list it came from.
type RankedResult struct {
	ItemID      string
	Title       string
	Price       float64
	ImageURL    string
	Link        string
	Description string
	AvgRating   float64
	ReviewCount int
	Category    string
	Score       float64
	Rank        int
}

// NewRankedResult copies the presentation fields of an item.
// Rank is left at zero; it is assigned after sorting.
func NewRankedResult(item *Item, score float64) *RankedResult {
	return &RankedResult{
		ItemID:      item.ID,
		Title:       item.Title,
		Price:       item.Price,
		ImageURL:    item.ImageURL,
		Link:        item.Link,
		Description: item.Description,
		AvgRating:   item.AvgRating,
		ReviewCount: item.ReviewCount,
		Category:    item.Category,
		Score:       score,
	}
}

// Badge returns a short label for the result's position.
func (r *RankedResult) Badge() string {
	if r.Rank == 1 {
		return "BEST"
	}
	return "#" + strconv.Itoa(r.Rank)
}

// CategoryCount is the number of catalog items carrying a category label.
type CategoryCount struct {
	Name  string
	Count int
}

// PriceRange is the span of positive prices in a catalog.
// Both bounds are zero when no item has a positive price.
type PriceRange struct {
	Min float64
	Max float64
}
