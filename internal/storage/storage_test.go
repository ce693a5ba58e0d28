package storage

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldsafe/safecheck"
)

func TestLocalStorage(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(dir, "http://localhost:8080/uploads/")
	require.NoError(t, err)
	ctx := context.Background()

	url, err := store.Upload(ctx, "inspections/abc/photo.jpg", strings.NewReader("jpeg-bytes"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/uploads/inspections/abc/photo.jpg", url)

	data, err := os.ReadFile(filepath.Join(dir, "inspections", "abc", "photo.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(data))

	ok, err := store.Exists(ctx, "inspections/abc/photo.jpg")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, store.Delete(ctx, "inspections/abc/photo.jpg"))
	ok, err = store.Exists(ctx, "inspections/abc/photo.jpg")
	require.NoError(t, err)
	assert.False(t, ok)

	// Deleting a missing file is not an error.
	assert.NoError(t, store.Delete(ctx, "inspections/abc/photo.jpg"))
}

func TestMemoryStorage(t *testing.T) {
	store := NewMemoryStorage()
	ctx := context.Background()

	url, err := store.Upload(ctx, "photo.png", strings.NewReader("png-bytes"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "memory://photo.png", url)
	assert.Equal(t, url, store.GetURL("photo.png"))

	data, ok := store.File("photo.png")
	require.True(t, ok)
	assert.Equal(t, "png-bytes", string(data))

	ok, err = store.Exists(ctx, "photo.png")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, store.Delete(ctx, "photo.png"))
	ok, err = store.Exists(ctx, "photo.png")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNewFileStorageProviders(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	ctx := context.Background()

	store, err := NewFileStorage(ctx, logger, safecheck.StorageConfig{Provider: "memory"})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStorage{}, store)

	store, err = NewFileStorage(ctx, logger, safecheck.StorageConfig{
		Provider:  "local",
		LocalPath: t.TempDir(),
		LocalURL:  "http://localhost:8080/uploads",
	})
	require.NoError(t, err)
	assert.IsType(t, &LocalStorage{}, store)
}
