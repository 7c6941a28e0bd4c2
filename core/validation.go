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
	"fmt"
	"math"
)

// MaxRating is the upper bound of a review rating.
const MaxRating = 5.0

// aggregateTolerance absorbs floating point drift in AvgRating.
const aggregateTolerance = 1e-9

// ValidateItem validates an Item according to domain rules.
//
// Validation rules:
//   - ID must not be empty
//   - Price must be finite and >= 0
//   - Every review must pass ValidateReview
//   - ReviewCount and AvgRating must match the attached reviews
//
// NOT validated:
//   - Title and Description (empty text simply contributes nothing to ranking)
//   - Category (empty means uncategorised)
func ValidateItem(item *Item) error {
	if item == nil {
		return fmt.Errorf("%w: item is nil", ErrInvalidItem)
	}

	if item.ID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidItem, ErrEmptyID)
	}

	if item.Price < 0 || math.IsNaN(item.Price) || math.IsInf(item.Price, 0) {
		return fmt.Errorf("%w: %w: %v", ErrInvalidItem, ErrNegativePrice, item.Price)
	}

	for i := range item.Reviews {
		if err := ValidateReview(&item.Reviews[i]); err != nil {
			return fmt.Errorf("%w: review %d: %w", ErrInvalidItem, i, err)
		}
	}

	if item.ReviewCount != len(item.Reviews) {
		return fmt.Errorf("%w: %w: count %d, reviews %d",
			ErrInvalidItem, ErrInconsistentAggregates, item.ReviewCount, len(item.Reviews))
	}
	if len(item.Reviews) > 0 {
		var sum float64
		for _, r := range item.Reviews {
			sum += r.Rating
		}
		if math.Abs(sum/float64(len(item.Reviews))-item.AvgRating) > aggregateTolerance {
			return fmt.Errorf("%w: %w: average %v", ErrInvalidItem, ErrInconsistentAggregates, item.AvgRating)
		}
	} else if item.AvgRating != 0 {
		return fmt.Errorf("%w: %w: average %v without reviews", ErrInvalidItem, ErrInconsistentAggregates, item.AvgRating)
	}

	return nil
}

// ValidateReview checks that a review rating lies in [0, MaxRating].
func ValidateReview(review *Review) error {
	if review == nil {
		return fmt.Errorf("%w: review is nil", ErrInvalidReview)
	}
	if review.Rating < 0 || review.Rating > MaxRating || math.IsNaN(review.Rating) {
		return fmt.Errorf("%w: %w: %v", ErrInvalidReview, ErrRatingOutOfRange, review.Rating)
	}
	return nil
}
