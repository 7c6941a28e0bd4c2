package ingestion

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLoader(t *testing.T, opts ...Option) *Loader {
	t.Helper()
	l, err := NewLoader(opts...)
	require.NoError(t, err)
	t.Cleanup(l.Release)
	return l
}

func TestNewLoader(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		l := newTestLoader(t)
		assert.NotNil(t, l.pool)
		assert.NotNil(t, l.logger)
	})

	t.Run("with options", func(t *testing.T) {
		l := newTestLoader(t, WithPoolSize(4), WithLogger(slog.Default()))
		assert.Equal(t, 4, l.pool.Cap())
	})

	t.Run("pool size clamped", func(t *testing.T) {
		l := newTestLoader(t, WithPoolSize(0))
		assert.Equal(t, 1, l.pool.Cap())
	})

	t.Run("nil logger falls back", func(t *testing.T) {
		l := newTestLoader(t, WithLogger(nil))
		assert.Equal(t, slog.Default(), l.logger)
	})
}

func TestLoader_LoadFiles(t *testing.T) {
	dir := t.TempDir()
	phones := filepath.Join(dir, "cdiscount_phones.csv")
	tvs := filepath.Join(dir, "cdiscount_tv.csv")
	require.NoError(t, os.WriteFile(phones, []byte(sampleCSV), 0o644))
	require.NoError(t, os.WriteFile(tvs, []byte(sampleHeader+
		"Sony Bravia,\"899,00 €\",https://shop.example/tv1,,4K television,Dan,5,Great,Sharp picture,01/01/2024\n"), 0o644))

	l := newTestLoader(t, WithPoolSize(2))

	items, err := l.LoadFiles(context.Background(), tvs, phones)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "Sony Bravia", items[0].Title)
	assert.Equal(t, "tv", items[0].Category)
	assert.Equal(t, "Phone A", items[1].Title)
	assert.Equal(t, "phones", items[1].Category)
	assert.Equal(t, "Phone B", items[2].Title)
}

func TestLoader_LoadFiles_NoPaths(t *testing.T) {
	l := newTestLoader(t)
	items, err := l.LoadFiles(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestLoader_LoadFiles_MissingFile(t *testing.T) {
	good := writeCSV(t, "cdiscount_phones.csv", sampleCSV)
	missing := filepath.Join(t.TempDir(), "missing.csv")

	l := newTestLoader(t)
	items, err := l.LoadFiles(context.Background(), good, missing)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "missing.csv")
	assert.Nil(t, items)
}

func TestLoader_LoadFiles_Cancelled(t *testing.T) {
	path := writeCSV(t, "cdiscount_phones.csv", sampleCSV)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l := newTestLoader(t)
	_, err := l.LoadFiles(ctx, path)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoader_LoadFiles_AfterRelease(t *testing.T) {
	path := writeCSV(t, "cdiscount_phones.csv", sampleCSV)

	l, err := NewLoader()
	require.NoError(t, err)
	l.Release()

	_, err = l.LoadFiles(context.Background(), path)
	assert.Error(t, err)
}
