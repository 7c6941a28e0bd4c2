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

import "errors"

// Domain validation errors
var (
	// ErrInvalidItem indicates an Item failed validation.
	ErrInvalidItem = errors.New("invalid item")

	// ErrInvalidReview indicates a Review failed validation.
	ErrInvalidReview = errors.New("invalid review")

	// ErrEmptyID indicates the item ID is empty.
	ErrEmptyID = errors.New("item id cannot be empty")

	// ErrNegativePrice indicates a price below zero or not a finite number.
	ErrNegativePrice = errors.New("price must be a finite number >= 0")

	// ErrRatingOutOfRange indicates a rating outside [0, 5].
	ErrRatingOutOfRange = errors.New("rating must be between 0 and 5")

	// ErrInconsistentAggregates indicates AvgRating/ReviewCount disagree with Reviews.
	ErrInconsistentAggregates = errors.New("review aggregates do not match reviews")
)
