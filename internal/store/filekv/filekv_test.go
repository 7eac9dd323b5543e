package filekv

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	t.Run("creates missing directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "data")
		s, err := Open(dir)
		require.NoError(t, err)
		assert.Equal(t, dir, s.dir)

		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("empty dir is rejected", func(t *testing.T) {
		_, err := Open("  ")
		require.Error(t, err)
	})
}

func TestGetSet(t *testing.T) {
	ctx := context.Background()
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	_, ok, err := s.Get(ctx, "tasks")
	require.NoError(t, err)
	assert.False(t, ok, "missing key")

	require.NoError(t, s.Set(ctx, "tasks", `[{"title":"a","description":""}]`))
	v, ok, err := s.Get(ctx, "tasks")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"title":"a","description":""}]`, v)

	raw, err := os.ReadFile(filepath.Join(s.dir, "tasks.json"))
	require.NoError(t, err)
	assert.Equal(t, v, string(raw), "value is stored verbatim")

	require.NoError(t, s.Set(ctx, "tasks", "[]"))
	v, _, err = s.Get(ctx, "tasks")
	require.NoError(t, err)
	assert.Equal(t, "[]", v, "set overwrites")

}

func TestSetLeavesNoTempFiles(t *testing.T) {
	ctx := context.Background()
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Set(ctx, "tasks", "[]"))
	require.NoError(t, s.Set(ctx, "tasks.corrupt", "{"))

	entries, err := os.ReadDir(s.dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"tasks.json", "tasks.corrupt.json"}, names)
}

func TestInvalidKeys(t *testing.T) {
	ctx := context.Background()
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", ".", "..", "../escape", "a/b", `a\b`} {
		err := s.Set(ctx, key, "x")
		assert.True(t, errors.Is(err, ErrInvalidKey), "key %q", key)
		_, _, err = s.Get(ctx, key)
		assert.True(t, errors.Is(err, ErrInvalidKey), "key %q", key)
	}
}
