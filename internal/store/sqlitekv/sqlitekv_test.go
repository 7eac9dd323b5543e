package sqlitekv

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), MemoryPath, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestGetMissingKey(t *testing.T) {
	s := setupTestStore(t)
	v, ok, err := s.Get(context.Background(), "tasks")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestSetUpserts(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)

	require.NoError(t, s.Set(ctx, "tasks", `[{"title":"a","description":""}]`))
	require.NoError(t, s.Set(ctx, "tasks", "[]"))

	v, ok, err := s.Get(ctx, "tasks")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", v)

	var n int
	require.NoError(t, s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM preferences`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestOpenDirPersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "data")

	s, err := OpenDir(ctx, dir, nil)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "tasks", `[{"title":"Buy milk","description":""}]`))
	require.NoError(t, s.Close())

	_, err = os.Stat(filepath.Join(dir, FileName))
	require.NoError(t, err)

	s, err = OpenDir(ctx, dir, nil)
	require.NoError(t, err)
	defer s.Close()

	v, ok, err := s.Get(ctx, "tasks")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"title":"Buy milk","description":""}]`, v)
}
