package history

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, limit int) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"), limit)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndGet(t *testing.T) {
	s := newTestStore(t, 0)
	s.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("X", 3600)) }
	ctx := context.Background()

	p, err := s.Save(ctx, "write a haiku", "You are a poet.\n\nwrite a haiku")
	require.NoError(t, err)
	_, err = uuid.Parse(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "write a haiku...", p.Original)
	assert.Equal(t, "2026-03-01T11:00:00Z", p.Timestamp)

	got, err := s.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestPreviewTruncates(t *testing.T) {
	long := strings.Repeat("é", 80)
	assert.Equal(t, strings.Repeat("é", 50)+"...", Preview(long))
	assert.Equal(t, "...", Preview(""))
}

func TestListKeepsNewestTen(t *testing.T) {
	s := newTestStore(t, 0)
	ctx := context.Background()

	for i := 0; i < 13; i++ {
		_, err := s.Save(ctx, fmt.Sprintf("prompt %d", i), "enhanced")
		require.NoError(t, err)
	}

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, DefaultLimit)
	assert.Equal(t, "prompt 12...", list[0].Original)
	assert.Equal(t, "prompt 3...", list[len(list)-1].Original)
}

func TestCustomLimit(t *testing.T) {
	s := newTestStore(t, 2)
	ctx := context.Background()
	for _, p := range []string{"a", "b", "c"} {
		_, err := s.Save(ctx, p, p)
		require.NoError(t, err)
	}
	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "c...", list[0].Original)
}

func TestDeleteAndNotFound(t *testing.T) {
	s := newTestStore(t, 0)
	ctx := context.Background()

	p, err := s.Save(ctx, "x", "y")
	require.NoError(t, err)
	require.NoError(t, s.Delete(ctx, p.ID))

	_, err = s.Get(ctx, p.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, p.ID), ErrNotFound)

	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NotNil(t, list)
}

func TestInMemory(t *testing.T) {
	s, err := Open(":memory:", 3)
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Save(context.Background(), "mem", "ory")
	require.NoError(t, err)
	list, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
