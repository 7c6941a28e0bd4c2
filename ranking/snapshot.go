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
	"cmp"
	"math"
	"slices"
	"strings"

	"github.com/poiesic/catalogrank/core"
	"github.com/poiesic/catalogrank/fuzzy"
	"github.com/poiesic/catalogrank/similarity"
	"github.com/poiesic/catalogrank/tfidf"
)

// Composite score weights. They sum to 1.
const (
	weightSimilarity = 0.40
	weightRating     = 0.30
	weightReviews    = 0.15
	weightPrice      = 0.15
)

// Similarity bonuses.
const (
	titleBonus    = 0.20
	categoryBonus = 0.15
	keywordBonus  = 0.15
)

// Fixed reference scales for the review and price signals.
const (
	reviewScale = 100.0
	priceScale  = 1000.0
)

// ScoreThreshold is the lowest composite score a result may carry.
const ScoreThreshold = 0.15

// snapshot is the immutable state of one fitted catalog. Every slice is
// indexed like items.
type snapshot struct {
	items      []*core.Item
	vectorizer *tfidf.Vectorizer
	vectors    [][]float64
	titles     []string // normalized titles
	texts      []string // normalized title + description
	categories []string // normalized categories

	categoryStats []core.CategoryCount
	priceRange    core.PriceRange
}

// newSnapshot fits a vectorizer on the items and caches everything a query
// needs. Items are copied; nil entries are skipped.
func newSnapshot(items []*core.Item) *snapshot {
	s := &snapshot{items: make([]*core.Item, 0, len(items))}
	for _, item := range items {
		if item == nil {
			continue
		}
		clone := *item
		s.items = append(s.items, &clone)
	}

	b := tfidf.NewBuilder()
	for _, item := range s.items {
		b.Add(item.Text())
	}
	s.vectorizer = b.Build()

	s.vectors = make([][]float64, len(s.items))
	s.titles = make([]string, len(s.items))
	s.texts = make([]string, len(s.items))
	s.categories = make([]string, len(s.items))
	for i, item := range s.items {
		// The vectorizer was just built, so Transform cannot fail.
		s.vectors[i], _ = s.vectorizer.Transform(item.Text())
		s.titles[i] = normalize(item.Title)
		s.texts[i] = normalize(item.Text())
		s.categories[i] = normalize(item.Category)
	}

	s.categoryStats = computeCategoryStats(s.items)
	s.priceRange = computePriceRange(s.items)
	return s
}

// computeCategoryStats counts items per category. Categories differing only
// in case are merged under the first spelling seen, and the result is sorted
// case-insensitively. Items without a category are not counted.
func computeCategoryStats(items []*core.Item) []core.CategoryCount {
	index := make(map[string]int)
	var stats []core.CategoryCount
	for _, item := range items {
		if item.Category == "" {
			continue
		}
		key := strings.ToLower(item.Category)
		if i, ok := index[key]; ok {
			stats[i].Count++
			continue
		}
		index[key] = len(stats)
		stats = append(stats, core.CategoryCount{Name: item.Category, Count: 1})
	}
	slices.SortFunc(stats, func(a, b core.CategoryCount) int {
		return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})
	return stats
}

// computePriceRange returns the smallest and largest positive prices.
func computePriceRange(items []*core.Item) core.PriceRange {
	var r core.PriceRange
	found := false
	for _, item := range items {
		if item.Price <= 0 {
			continue
		}
		if !found {
			r = core.PriceRange{Min: item.Price, Max: item.Price}
			found = true
			continue
		}
		r.Min = math.Min(r.Min, item.Price)
		r.Max = math.Max(r.Max, item.Price)
	}
	return r
}

// compositeScore blends query similarity with the item's quality signals.
func compositeScore(item *core.Item, sim float64) float64 {
	rating := item.AvgRating / core.MaxRating
	reviews := math.Min(float64(item.ReviewCount)/reviewScale, 1)
	price := 1 - math.Min(item.Price/priceScale, 1)

	return sim*weightSimilarity +
		rating*weightRating +
		reviews*weightReviews +
		price*weightPrice
}

// queryTerms is the query text prepared once per ranking call.
type queryTerms struct {
	normalized string
	words      int      // every word of the normalized query
	keywords   []string // words long enough to be matched fuzzily
	vector     []float64
}

func (s *snapshot) prepare(text string) queryTerms {
	normalized := normalize(text)
	words := strings.Fields(normalized)
	vector, _ := s.vectorizer.Transform(text)
	return queryTerms{
		normalized: normalized,
		words:      len(words),
		keywords:   keywords(words),
		vector:     vector,
	}
}

// match scores the similarity of item i to the query. The second result is
// false when the query has keywords and none of them matches the item.
func (s *snapshot) match(i int, qt *queryTerms) (float64, bool) {
	sim := similarity.Cosine(qt.vector, s.vectors[i])

	if qt.normalized != "" {
		if strings.Contains(s.titles[i], qt.normalized) {
			sim += titleBonus
		}
		if c := s.categories[i]; strings.Contains(qt.normalized, c) || strings.Contains(c, qt.normalized) {
			sim += categoryBonus
		}
	}

	if len(qt.keywords) > 0 {
		matches := 0
		for _, kw := range qt.keywords {
			if fuzzy.Match(s.texts[i], kw) {
				matches++
			}
		}
		if matches == 0 {
			return 0, false
		}
		sim += float64(matches) / float64(qt.words) * keywordBonus
	}

	return math.Min(sim, 1), true
}

// rank runs one query against the snapshot and reports how many filtered
// items were excluded for matching no keyword.
func (s *snapshot) rank(q Query, monitor Monitor) ([]*core.RankedResult, int) {
	results := []*core.RankedResult{}
	if q.MaxResults <= 0 {
		return results, 0
	}

	candidates := make([]int, 0, len(s.items))
	for i, item := range s.items {
		if q.accepts(item.Price, item.Category) {
			candidates = append(candidates, i)
		}
	}
	monitor.AfterFilter(len(candidates))
	if len(candidates) == 0 {
		return results, 0
	}

	qt := s.prepare(q.Text)
	scored := make([]core.ScoredItem[*core.Item], 0, len(candidates))
	excluded := 0
	for _, i := range candidates {
		item := s.items[i]
		sim, ok := s.match(i, &qt)
		if !ok {
			excluded++
			monitor.Excluded(item)
			continue
		}
		score := compositeScore(item, sim)
		monitor.Scored(item, score)
		scored = append(scored, core.ScoredItem[*core.Item]{Item: item, Score: score})
	}

	slices.SortStableFunc(scored, func(a, b core.ScoredItem[*core.Item]) int {
		return cmp.Compare(b.Score, a.Score)
	})

	// Ranks follow sorted position; the threshold only trims the tail.
	for pos, si := range scored {
		if !(si.Score >= ScoreThreshold) || len(results) == q.MaxResults {
			break
		}
		r := core.NewRankedResult(si.Item, si.Score)
		r.Rank = pos + 1
		results = append(results, r)
	}
	return results, excluded
}
