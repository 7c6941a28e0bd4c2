package core

import (
	"math"
	"strings"
	"testing"
)

func TestItemIDFromURL(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		wantSame bool
	}{
		{
			name:     "same url produces same ID",
			url:      "https://www.cdiscount.com/p-123.html",
			wantSame: true,
		},
		{
			name:     "long url",
			url:      "https://www.example.com/catalog/phones/samsung-galaxy-s23-ultra-256go-noir.html?ref=search",
			wantSame: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := ItemIDFromURL(tt.url)
			id2 := ItemIDFromURL(tt.url)

			if tt.wantSame && id1 != id2 {
				t.Errorf("ItemIDFromURL() produced different IDs for same url: %s vs %s", id1, id2)
			}
			if !strings.HasPrefix(id1, "item_") {
				t.Errorf("ItemIDFromURL() = %s, want item_ prefix", id1)
			}
			if len(id1) != len("item_")+16 {
				t.Errorf("ItemIDFromURL() = %s, want 16 hex digits", id1)
			}
		})
	}
}

func TestItemIDFromURL_Different(t *testing.T) {
	id1 := ItemIDFromURL("https://example.com/a")
	id2 := ItemIDFromURL("https://example.com/b")

	if id1 == id2 {
		t.Errorf("ItemIDFromURL() produced same ID for different urls")
	}
}

func TestItemIDFromURL_Empty(t *testing.T) {
	if got := ItemIDFromURL(""); got != UnknownItemID {
		t.Errorf("ItemIDFromURL(\"\") = %q, want %q", got, UnknownItemID)
	}
}

func TestItem_AddReview(t *testing.T) {
	item := &Item{ID: "p1", Title: "Phone"}

	if item.AvgRating != 0 || item.ReviewCount != 0 {
		t.Fatalf("new item should have zero aggregates, got %v/%d", item.AvgRating, item.ReviewCount)
	}

	item.AddReview(Review{Author: "a", Rating: 4})
	item.AddReview(Review{Author: "b", Rating: 5})
	item.AddReview(Review{Author: "c", Rating: 3})

	if item.ReviewCount != 3 {
		t.Errorf("ReviewCount = %d, want 3", item.ReviewCount)
	}
	if math.Abs(item.AvgRating-4.0) > 1e-12 {
		t.Errorf("AvgRating = %v, want 4.0", item.AvgRating)
	}
}

func TestItem_Text(t *testing.T) {
	item := &Item{Title: "Dell XPS 13", Description: "Laptop"}
	if got := item.Text(); got != "Dell XPS 13 Laptop" {
		t.Errorf("Text() = %q", got)
	}
}

func TestRankedResult_Badge(t *testing.T) {
	tests := []struct {
		rank int
		want string
	}{
		{1, "BEST"},
		{2, "#2"},
		{10, "#10"},
	}

	for _, tt := range tests {
		r := &RankedResult{Rank: tt.rank}
		if got := r.Badge(); got != tt.want {
			t.Errorf("Badge() for rank %d = %q, want %q", tt.rank, got, tt.want)
		}
	}
}

func TestNewRankedResult(t *testing.T) {
	item := &Item{
		ID:          "p1",
		Title:       "Samsung Galaxy S23",
		Price:       800,
		Link:        "link1",
		ImageURL:    "img1",
		Description: "Smartphone",
		Category:    "Smartphones",
	}
	item.AddReview(Review{Rating: 4.5})

	r := NewRankedResult(item, 0.42)
	if r.ItemID != "p1" || r.Title != item.Title || r.Link != "link1" || r.ImageURL != "img1" {
		t.Errorf("NewRankedResult() did not copy identity fields: %+v", r)
	}
	if r.AvgRating != 4.5 || r.ReviewCount != 1 {
		t.Errorf("NewRankedResult() did not copy aggregates: %+v", r)
	}
	if r.Score != 0.42 || r.Rank != 0 {
		t.Errorf("NewRankedResult() score/rank = %v/%d", r.Score, r.Rank)
	}
}
