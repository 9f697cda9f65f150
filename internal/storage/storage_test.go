package storage

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/XJIeI5/calcengine/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Load(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Save(ctx, "a", 42))
	require.NoError(t, s.Save(ctx, "b", 1729.6896))
	require.NoError(t, s.Save(ctx, "a", 13.335))

	v, err := s.Load(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, float32(13.335), v)

	v, err = s.Load(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, float32(1729.6896), v)

	require.NoError(t, s.Save(ctx, "inf", float32(math.Inf(1))))
	v, err = s.Load(ctx, "inf")
	require.NoError(t, err)
	assert.True(t, math.IsInf(float64(v), 1))

	require.NoError(t, s.Delete(ctx, "a"))
	_, err = s.Load(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore(t *testing.T) {
	s := NewMemory()
	defer s.Close()
	exerciseStore(t, s)
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.db")
	s, err := NewSQLite(context.Background(), path)
	require.NoError(t, err)
	exerciseStore(t, s)
	require.NoError(t, s.Close())

	// values survive reopening
	s, err = NewSQLite(context.Background(), path)
	require.NoError(t, err)
	defer s.Close()
	v, err := s.Load(context.Background(), "b")
	require.NoError(t, err)
	assert.Equal(t, float32(1729.6896), v)
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("CALC_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("CALC_TEST_REDIS_ADDR not set")
	}
	s, err := NewRedis(context.Background(), &config.Storage{
		KeyPrefix: "calc:test:" + time.Now().Format("150405.000") + ":",
		TTL:       time.Minute,
		Redis:     &config.Redis{Addr: addr},
	})
	require.NoError(t, err)
	defer s.Close()
	exerciseStore(t, s)
}

func TestNewSelectsDriver(t *testing.T) {
	s, err := New(context.Background(), &config.Storage{Driver: "memory"})
	require.NoError(t, err)
	assert.IsType(t, &memoryStore{}, s)

	s, err = New(context.Background(), &config.Storage{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "x.db")})
	require.NoError(t, err)
	assert.IsType(t, &sqliteStore{}, s)
	s.Close()

	_, err = New(context.Background(), &config.Storage{Driver: "mongo"})
	assert.Error(t, err)
}
