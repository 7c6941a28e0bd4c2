package ingestion

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/catalogrank/core"
)

const sampleHeader = "Title,Price,Link,Image,Description,ReviewAuthor,ReviewRating,ReviewTitle,ReviewBody,ReviewDate\n"

const sampleCSV = sampleHeader +
	`Phone A,"199,99 €",https://shop.example/a,https://img.example/a.jpg,"Great phone, big screen",Alice,"4,0",Nice,Works  well,28/10/2024` + "\n" +
	`Phone A,"199,99 €",https://shop.example/a,https://img.example/a.jpg,"Great phone, big screen",Bob,2,Meh,Battery weak,not-a-date` + "\n" +
	`Phone B,"1 250,00 €",https://shop.example/b,,Flagship,,,,,` + "\n" +
	"short,row\n"

func writeCSV(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadCSV(t *testing.T) {
	items, err := LoadCSV(strings.NewReader(sampleCSV), "phones")
	require.NoError(t, err)
	require.Len(t, items, 2)

	a := items[0]
	assert.Equal(t, core.ItemIDFromURL("https://shop.example/a"), a.ID)
	assert.Equal(t, "Phone A", a.Title)
	assert.InDelta(t, 199.99, a.Price, 1e-9)
	assert.Equal(t, "https://img.example/a.jpg", a.ImageURL)
	assert.Equal(t, "Great phone, big screen", a.Description)
	assert.Equal(t, "phones", a.Category)
	require.Len(t, a.Reviews, 2)
	assert.Equal(t, 2, a.ReviewCount)
	assert.InDelta(t, 3.0, a.AvgRating, 1e-9)

	first := a.Reviews[0]
	assert.Equal(t, "Alice", first.Author)
	assert.Equal(t, "Works well", first.Body)
	assert.True(t, first.HasDate())
	assert.False(t, a.Reviews[1].HasDate())

	b := items[1]
	assert.Equal(t, "Phone B", b.Title)
	assert.InDelta(t, 1250.0, b.Price, 1e-9)
	assert.Empty(t, b.Reviews)
	assert.Zero(t, b.AvgRating)

	for _, item := range items {
		assert.NoError(t, core.ValidateItem(item))
	}
}

func TestLoadCSV_FirstRowWins(t *testing.T) {
	data := sampleHeader +
		"Original,10,https://x/1,,first,,,,,\n" +
		"Renamed,99,https://x/1,,second,Carol,5,,,\n"

	items, err := LoadCSV(strings.NewReader(data), "misc")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Original", items[0].Title)
	assert.InDelta(t, 10.0, items[0].Price, 1e-9)
	assert.Equal(t, 1, items[0].ReviewCount)
}

func TestLoadCSV_EmptyLink(t *testing.T) {
	data := sampleHeader + "No link,5,,,,,,,,\n"

	items, err := LoadCSV(strings.NewReader(data), "misc")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, core.UnknownItemID, items[0].ID)
}

func TestLoadCSV_Empty(t *testing.T) {
	items, err := LoadCSV(strings.NewReader(""), "misc")
	require.NoError(t, err)
	assert.Empty(t, items)

	items, err = LoadCSV(strings.NewReader(sampleHeader), "misc")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestLoadCSV_ReadError(t *testing.T) {
	boom := errors.New("boom")
	_, err := LoadCSV(iotest.ErrReader(boom), "misc")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedRow)
	assert.ErrorIs(t, err, boom)
}

func TestLoadFile(t *testing.T) {
	path := writeCSV(t, "cdiscount_smartphones.csv", sampleCSV)

	items, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, items, 2)
	for _, item := range items {
		assert.Equal(t, "smartphones", item.Category)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
