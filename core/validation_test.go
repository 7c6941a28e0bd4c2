package core

import (
	"errors"
	"math"
	"testing"
)

func TestValidateItem(t *testing.T) {
	withReviews := &Item{ID: "p2", Price: 10}
	withReviews.AddReview(Review{Rating: 2})
	withReviews.AddReview(Review{Rating: 5})

	tests := []struct {
		name    string
		item    *Item
		wantErr error
	}{
		{
			name:    "valid item",
			item:    &Item{ID: "p1", Title: "Phone", Price: 199.99},
			wantErr: nil,
		},
		{
			name:    "valid item with zero price",
			item:    &Item{ID: "p1", Price: 0},
			wantErr: nil,
		},
		{
			name:    "valid item with reviews",
			item:    withReviews,
			wantErr: nil,
		},
		{
			name:    "nil item",
			item:    nil,
			wantErr: ErrInvalidItem,
		},
		{
			name:    "empty id",
			item:    &Item{Price: 1},
			wantErr: ErrEmptyID,
		},
		{
			name:    "negative price",
			item:    &Item{ID: "p1", Price: -1},
			wantErr: ErrNegativePrice,
		},
		{
			name:    "NaN price",
			item:    &Item{ID: "p1", Price: math.NaN()},
			wantErr: ErrNegativePrice,
		},
		{
			name:    "infinite price",
			item:    &Item{ID: "p1", Price: math.Inf(1)},
			wantErr: ErrNegativePrice,
		},
		{
			name:    "rating out of range",
			item:    &Item{ID: "p1", Reviews: []Review{{Rating: 6}}, ReviewCount: 1, AvgRating: 6},
			wantErr: ErrRatingOutOfRange,
		},
		{
			name:    "count mismatch",
			item:    &Item{ID: "p1", Reviews: []Review{{Rating: 3}}, ReviewCount: 2, AvgRating: 3},
			wantErr: ErrInconsistentAggregates,
		},
		{
			name:    "average mismatch",
			item:    &Item{ID: "p1", Reviews: []Review{{Rating: 3}}, ReviewCount: 1, AvgRating: 4},
			wantErr: ErrInconsistentAggregates,
		},
		{
			name:    "average without reviews",
			item:    &Item{ID: "p1", AvgRating: 4},
			wantErr: ErrInconsistentAggregates,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateItem(tt.item)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateItem() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateItem() error = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidItem) {
				t.Errorf("ValidateItem() error = %v, want wrapped ErrInvalidItem", err)
			}
		})
	}
}

func TestValidateReview(t *testing.T) {
	tests := []struct {
		name    string
		review  *Review
		wantErr bool
	}{
		{"zero rating", &Review{Rating: 0}, false},
		{"max rating", &Review{Rating: 5}, false},
		{"fractional rating", &Review{Rating: 3.5}, false},
		{"negative rating", &Review{Rating: -0.5}, true},
		{"too high", &Review{Rating: 5.1}, true},
		{"NaN", &Review{Rating: math.NaN()}, true},
		{"nil", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateReview(tt.review)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateReview() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidReview) {
				t.Errorf("ValidateReview() error = %v, want wrapped ErrInvalidReview", err)
			}
		})
	}
}
