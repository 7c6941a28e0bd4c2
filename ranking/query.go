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
	"math"
	"strings"
)

const (
	// AllCategories is the category filter value that matches every item.
	AllCategories = "All Categories"

	// DefaultMaxResults is the result cap used by NewQuery.
	DefaultMaxResults = 10
)

// NoPriceLimit is the MaxPrice of an unbounded price window.
var NoPriceLimit = math.Inf(1)

// Query holds the parameters of one ranking call.
//
// Items are kept when MinPrice <= price <= MaxPrice. An empty Category or
// AllCategories disables category filtering; any other value must match an
// item's category case-insensitively. MaxResults caps the result list; a
// value of zero or less yields no results.
type Query struct {
	Text       string
	MinPrice   float64
	MaxPrice   float64
	Category   string
	MaxResults int
}

// NewQuery returns a query over the whole catalog with no price limit and
// DefaultMaxResults.
func NewQuery(text string) Query {
	return Query{
		Text:       text,
		MaxPrice:   NoPriceLimit,
		MaxResults: DefaultMaxResults,
	}
}

// filtersCategory reports whether the query restricts results to one category.
func (q *Query) filtersCategory() bool {
	return q.Category != "" && !strings.EqualFold(q.Category, AllCategories)
}

// accepts reports whether an item's price and category pass the filters.
func (q *Query) accepts(price float64, category string) bool {
	if price < q.MinPrice || price > q.MaxPrice {
		return false
	}
	if q.filtersCategory() && !strings.EqualFold(category, q.Category) {
		return false
	}
	return true
}
