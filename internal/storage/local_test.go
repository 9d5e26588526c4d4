package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocal(t *testing.T, baseURL string) *LocalStorage {
	t.Helper()
	s, err := NewLocalStorage(Config{BasePath: t.TempDir(), BaseURL: baseURL})
	require.NoError(t, err)
	return s
}

func TestLocalStorage_SaveAndDelete(t *testing.T) {
	s := newTestLocal(t, "")
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "glbiashara/user-1/images/a.png", strings.NewReader("first"), "image/png"))

	data, err := os.ReadFile(filepath.Join(s.BasePath(), "glbiashara", "user-1", "images", "a.png"))
	require.NoError(t, err)
	assert.Equal(t, "first", string(data))

	require.NoError(t, s.Delete(ctx, "glbiashara/user-1/images/a.png"))
	assert.ErrorIs(t, s.Delete(ctx, "glbiashara/user-1/images/a.png"), ErrNotFound)
}

func TestLocalStorage_SaveOverwrites(t *testing.T) {
	s := newTestLocal(t, "")
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "k.txt", strings.NewReader("old content"), "text/plain"))
	require.NoError(t, s.Save(ctx, "k.txt", strings.NewReader("new"), "text/plain"))

	data, err := os.ReadFile(filepath.Join(s.BasePath(), "k.txt"))
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestLocalStorage_RejectsEscapingKeys(t *testing.T) {
	s := newTestLocal(t, "")
	ctx := context.Background()

	for _, key := range []string{"../outside.txt", "a/../../b", ".", ""} {
		assert.Error(t, s.Save(ctx, key, strings.NewReader("x"), "text/plain"), key)
	}
}

func TestLocalStorage_SaveHonoursCancellation(t *testing.T) {
	s := newTestLocal(t, "")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Save(ctx, "cancelled.bin", strings.NewReader("data"), "application/octet-stream")
	require.ErrorIs(t, err, context.Canceled)

	_, statErr := os.Stat(filepath.Join(s.BasePath(), "cancelled.bin"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestLocalStorage_GetURL(t *testing.T) {
	assert.Equal(t, "/files/a/b.png", newTestLocal(t, "").GetURL("a/b.png"))
	assert.Equal(t, "https://cdn.example.com/a/b.png", newTestLocal(t, "https://cdn.example.com/").GetURL("a/b.png"))
}
