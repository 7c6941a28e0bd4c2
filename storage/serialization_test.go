package storage

import (
	"testing"
	"time"

	"github.com/poiesic/catalogrank/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalItem(t *testing.T) {
	date := time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC)

	reviewed := &core.Item{
		ID:          core.ItemIDFromURL("https://example.com/p/1"),
		Title:       "Casque audio sans fil",
		Price:       89.99,
		Link:        "https://example.com/p/1",
		ImageURL:    "https://example.com/p/1.jpg",
		Description: "Réduction de bruit, 30h d'autonomie",
		Category:    "audio",
	}
	reviewed.AddReview(core.Review{Author: "Marie", Rating: 4.5, Title: "Top", Body: "Très bon son", Date: date})
	reviewed.AddReview(core.Review{Author: "Paul", Rating: 2, Body: "Arceau fragile"})

	tests := []struct {
		name string
		item *core.Item
	}{
		{"minimal item", &core.Item{ID: "item_1"}},
		{"item without reviews", &core.Item{ID: "item_2", Title: "Kettle", Price: 25, Category: "kitchen"}},
		{"item with reviews", reviewed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalItem(tt.item)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalItem(data)
			require.NoError(t, err)
			assert.Equal(t, tt.item, decoded)
		})
	}
}

func TestUnmarshalItem_ReviewDates(t *testing.T) {
	item := &core.Item{ID: "item_1"}
	item.AddReview(core.Review{Author: "a", Rating: 3})

	decoded, err := UnmarshalItem(MarshalItem(item))
	require.NoError(t, err)
	require.Len(t, decoded.Reviews, 1)
	assert.False(t, decoded.Reviews[0].HasDate(), "missing dates stay missing")
}

func TestUnmarshalItem_Invalid(t *testing.T) {
	item := &core.Item{ID: "item_1", Title: "Kettle", Price: 25}
	item.AddReview(core.Review{Author: "a", Rating: 3, Body: "fine"})
	data := MarshalItem(item)

	tests := []struct {
		name string
		data []byte
	}{
		{"empty data", []byte{}},
		{"truncated data", data[:len(data)/2]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalItem(tt.data)
			assert.ErrorIs(t, err, ErrSerializationFailed)
		})
	}
}

func TestMarshalUnmarshalString(t *testing.T) {
	for _, s := range []string{"", "item_0123456789abcdef", "unicode: écran"} {
		decoded, err := UnmarshalString(MarshalString(s))
		require.NoError(t, err)
		assert.Equal(t, s, decoded)
	}

	_, err := UnmarshalString(nil)
	assert.ErrorIs(t, err, ErrSerializationFailed)
}
