package catalogrank

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/catalogrank/core"
	"github.com/poiesic/catalogrank/ingestion"
	"github.com/poiesic/catalogrank/ranking"
)

const phonesCSV = `Title,Price,Link,Image,Description,ReviewAuthor,ReviewRating,ReviewTitle,ReviewBody,ReviewDate
Samsung Galaxy S23,"799,00 €",https://shop.example/s23,,Android smartphone with a bright screen,Ana,5,Superb,Excellent phone,12/03/2024
Samsung Galaxy S23,"799,00 €",https://shop.example/s23,,Android smartphone with a bright screen,Ben,"4,0",Good,Great battery,14/03/2024
iPhone 15 Pro,"1 229,00 €",https://shop.example/ip15,,Apple smartphone,Cleo,4,Nice,Good camera,02/02/2024
`

const laptopsCSV = `Title,Price,Link,Image,Description,ReviewAuthor,ReviewRating,ReviewTitle,ReviewBody,ReviewDate
Dell XPS 13,"1 499,00 €",https://shop.example/xps,,Compact laptop,Dee,5,Love it,Fast and light,05/05/2024
`

func openTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := Open("", InMemory(), WithPoolSize(2))
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func writeExports(t *testing.T) []string {
	t.Helper()
	dir := t.TempDir()
	phones := filepath.Join(dir, "cdiscount_smartphones.csv")
	laptops := filepath.Join(dir, "cdiscount_laptops.csv")
	require.NoError(t, os.WriteFile(phones, []byte(phonesCSV), 0o644))
	require.NoError(t, os.WriteFile(laptops, []byte(laptopsCSV), 0o644))
	return []string{phones, laptops}
}

func TestOpen(t *testing.T) {
	t.Run("on disk", func(t *testing.T) {
		c, err := Open(filepath.Join(t.TempDir(), "catalog"))
		require.NoError(t, err)
		assert.NotNil(t, c.Repository())
		assert.NotNil(t, c.logger)
		assert.NoError(t, c.Close())
	})

	t.Run("in memory", func(t *testing.T) {
		c := openTestCatalog(t)
		count, err := c.Repository().Count(context.Background())
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("error with invalid path", func(t *testing.T) {
		tmpFile := filepath.Join(t.TempDir(), "not_a_dir")
		require.NoError(t, os.WriteFile(tmpFile, []byte("test"), 0o644))

		c, err := Open(tmpFile)
		assert.Error(t, err)
		assert.Nil(t, c)
	})
}

func TestCatalog_ImportFiles(t *testing.T) {
	ctx := context.Background()
	c := openTestCatalog(t)

	result, err := c.ImportFiles(ctx, writeExports(t), ingestion.WithBatchSize(2))
	require.NoError(t, err)
	assert.Equal(t, ingestion.ImportResult{Stored: 3}, result)

	items, err := c.Repository().AllItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "Samsung Galaxy S23", items[0].Title)
	assert.Equal(t, "smartphones", items[0].Category)
	assert.Equal(t, 2, items[0].ReviewCount)
	assert.InDelta(t, 4.5, items[0].AvgRating, 1e-9)
	assert.Equal(t, "laptops", items[2].Category)

	// Importing the same exports again replaces items in place.
	_, err = c.ImportFiles(ctx, writeExports(t))
	require.NoError(t, err)
	count, err := c.Repository().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestCatalog_ImportFilesMissing(t *testing.T) {
	c := openTestCatalog(t)
	_, err := c.ImportFiles(context.Background(), []string{filepath.Join(t.TempDir(), "nope.csv")})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCatalog_NewEngine(t *testing.T) {
	ctx := context.Background()
	c := openTestCatalog(t)
	_, err := c.ImportFiles(ctx, writeExports(t))
	require.NoError(t, err)

	metrics := ranking.NewMetrics()
	require.NoError(t, metrics.Register(prometheus.NewRegistry()))

	engine, err := c.NewEngine(ctx, ranking.WithMetrics(metrics))
	require.NoError(t, err)
	t.Cleanup(engine.Release)

	assert.True(t, engine.Ready())
	assert.Equal(t, 3, engine.TotalItems())

	q := ranking.NewQuery("samsung galaxy")
	results := engine.Recommend(q)
	require.NotEmpty(t, results)
	assert.Equal(t, "Samsung Galaxy S23", results[0].Title)
	assert.Equal(t, "BEST", results[0].Badge())

	stats := engine.CategoryStats()
	assert.Equal(t, []core.CategoryCount{{Name: "laptops", Count: 1}, {Name: "smartphones", Count: 2}}, stats)
}

func TestCatalog_Refresh(t *testing.T) {
	ctx := context.Background()
	c := openTestCatalog(t)

	engine, err := c.NewEngine(ctx)
	require.NoError(t, err)
	t.Cleanup(engine.Release)
	assert.Zero(t, engine.TotalItems())

	_, err = c.ImportFiles(ctx, writeExports(t))
	require.NoError(t, err)
	require.NoError(t, c.Refresh(ctx, engine))
	assert.Equal(t, 3, engine.TotalItems())
}

func TestCatalog_Close(t *testing.T) {
	c, err := Open("", InMemory())
	require.NoError(t, err)
	assert.NoError(t, c.Close())
}
