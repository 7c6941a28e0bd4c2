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
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/poiesic/catalogrank/core"
)

// Column positions of a review export row.
const (
	colTitle = iota
	colPrice
	colLink
	colImage
	colDescription
	colReviewAuthor
	colReviewRating
	colReviewTitle
	colReviewBody
	colReviewDate

	// minFields is the number of columns a row needs to be used.
	minFields
)

// LoadCSV reads a review export and merges its rows into items.
// The first record is treated as a header. Rows with fewer than ten fields
// are skipped. Items are returned in the order their link first appears and
// every one of them is labelled with category.
func LoadCSV(r io.Reader, category string) ([]*core.Item, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.ReuseRecord = true

	var (
		items  []*core.Item
		byLink = make(map[string]*core.Item)
		header = true
	)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedRow, err)
		}
		if header {
			header = false
			continue
		}
		if len(record) < minFields {
			continue
		}

		link := CleanText(record[colLink])
		item, ok := byLink[link]
		if !ok {
			item = &core.Item{
				ID:          core.ItemIDFromURL(link),
				Title:       CleanText(record[colTitle]),
				Price:       ParsePrice(record[colPrice]),
				Link:        link,
				ImageURL:    CleanText(record[colImage]),
				Description: CleanText(record[colDescription]),
				Category:    category,
			}
			byLink[link] = item
			items = append(items, item)
		}

		author := CleanText(record[colReviewAuthor])
		if author == "" {
			continue
		}
		review := core.Review{
			Author: author,
			Rating: ParseRating(record[colReviewRating]),
			Title:  CleanText(record[colReviewTitle]),
			Body:   CleanText(record[colReviewBody]),
		}
		if date, ok := ParseDate(record[colReviewDate]); ok {
			review.Date = date
		}
		item.AddReview(review)
	}

	return items, nil
}

// LoadFile opens path and loads it with LoadCSV, deriving the category from
// the file name.
func LoadFile(path string) ([]*core.Item, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	items, err := LoadCSV(f, CategoryFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return items, nil
}
