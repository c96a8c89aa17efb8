package storage

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"strings"
	"testing"

	"piquant/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) (*localStorage, string) {
	t.Helper()

	dir := t.TempDir()
	fs, err := NewLocalStorage(&config.Config{
		Storage: &config.StorageConfig{
			ImageDir: dir,
			BaseURL:  "/images/",
		},
	})
	require.NoError(t, err)

	ls, ok := fs.(*localStorage)
	require.True(t, ok)

	return ls, dir
}

func TestNewLocalStorage_RequiresConfig(t *testing.T) {
	_, err := NewLocalStorage(&config.Config{})
	assert.Error(t, err)

	_, err = NewLocalStorage(&config.Config{Storage: &config.StorageConfig{ImageDir: t.TempDir()}})
	assert.Error(t, err)
}

func TestLocalStorage_StoreAndRemove(t *testing.T) {
	ls, dir := newTestStorage(t)
	ctx := context.Background()

	url, err := ls.Store(ctx, strings.NewReader("pretend this is a png"), "reaper.png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/images/reaper_"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	onDisk := filepath.Join(dir, path.Base(url))
	written, err := os.ReadFile(onDisk)
	require.NoError(t, err)
	assert.Equal(t, "pretend this is a png", string(written))

	require.NoError(t, ls.Remove(ctx, url))
	_, err = os.Stat(onDisk)
	assert.True(t, os.IsNotExist(err))
}

func TestLocalStorage_StoreSanitizesName(t *testing.T) {
	ls, _ := newTestStorage(t)
	ctx := context.Background()

	url, err := ls.Store(ctx, strings.NewReader("x"), "my hot sauce.jpg")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/images/my_hot_sauce_"))
	assert.NotContains(t, url, " ")

	// Path traversal in the client name must not escape the image dir.
	url, err = ls.Store(ctx, strings.NewReader("x"), "../../etc/passwd")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/images/passwd_"))
}

func TestLocalStorage_StoreUniqueNames(t *testing.T) {
	ls, _ := newTestStorage(t)
	ctx := context.Background()

	first, err := ls.Store(ctx, strings.NewReader("a"), "dup.png")
	require.NoError(t, err)
	second, err := ls.Store(ctx, strings.NewReader("b"), "dup.png")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestLocalStorage_RemoveMissingFileIsNoError(t *testing.T) {
	ls, _ := newTestStorage(t)

	assert.NoError(t, ls.Remove(context.Background(), "/images/never_existed.png"))
}
