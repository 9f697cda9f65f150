package session

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/XJIeI5/calcengine/internal/calcerr"
	"github.com/XJIeI5/calcengine/internal/config"
	"github.com/XJIeI5/calcengine/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func testConfig() *config.Session {
	return &config.Session{IdleTimeout: time.Minute, SweepInterval: time.Hour, ResetOnError: true}
}

func tokens(expr string) []string {
	return strings.Fields(expr)
}

func TestInputChainsCurrentValue(t *testing.T) {
	m := NewManager(storage.NewMemory(), testConfig())
	defer m.Close()
	ctx := context.Background()

	id, err := m.Create(ctx)
	require.NoError(t, err)

	res, err := m.Input(ctx, id, tokens("2 + 3"))
	require.NoError(t, err)
	assert.Equal(t, Result{Result: "5", Current: "5"}, res)

	res, err = m.Input(ctx, id, tokens("* 2"))
	require.NoError(t, err)
	assert.Equal(t, "10", res.Result)

	postfix, err := m.Postfix(ctx, id, tokens("- 7"))
	require.NoError(t, err)
	assert.Equal(t, []string{"10", "7", "-"}, postfix)

	cur, err := m.Current(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "10", cur)
}

func TestInputResetsOnError(t *testing.T) {
	m := NewManager(storage.NewMemory(), testConfig())
	defer m.Close()
	ctx := context.Background()
	id, _ := m.Create(ctx)

	_, err := m.Input(ctx, id, tokens("6 * 7"))
	require.NoError(t, err)

	res, err := m.Input(ctx, id, tokens("( 1 + 2"))
	assert.ErrorIs(t, err, calcerr.ErrInvalidExpression)
	assert.Equal(t, "0", res.Current)

	_, err = m.Input(ctx, id, tokens("6 * 7"))
	require.NoError(t, err)
	res, err = m.Input(ctx, id, tokens("1 / 0"))
	assert.ErrorIs(t, err, calcerr.ErrInfinity)
	assert.Equal(t, "0", res.Current)
}

func TestInputKeepsValueWithoutReset(t *testing.T) {
	cfg := testConfig()
	cfg.ResetOnError = false
	m := NewManager(storage.NewMemory(), cfg)
	defer m.Close()
	ctx := context.Background()
	id, _ := m.Create(ctx)

	_, err := m.Input(ctx, id, tokens("F 4"))
	require.NoError(t, err)

	res, err := m.Input(ctx, id, tokens("P 4 6 7"))
	assert.ErrorIs(t, err, calcerr.ErrInvalidInput)
	assert.Equal(t, "24", res.Current)
}

func TestUnknownSession(t *testing.T) {
	m := NewManager(storage.NewMemory(), testConfig())
	defer m.Close()

	_, err := m.Input(context.Background(), "nope", tokens("1 + 1"))
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, m.Clear(context.Background(), "nope"), ErrSessionNotFound)
}

func TestSweepEvictsAndRestores(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1700000000, 0)}
	store := storage.NewMemory()
	m := NewManager(store, testConfig(), WithClock(clock.Now))
	defer m.Close()
	ctx := context.Background()

	id, _ := m.Create(ctx)
	_, err := m.Input(ctx, id, tokens("M 4"))
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		v, err := store.Load(ctx, id)
		return err == nil && v == float32(10.16)
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, 0, m.Sweep())
	clock.Advance(2 * time.Minute)
	require.Eventually(t, func() bool { return m.Sweep() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 0, m.Len())

	cur, err := m.Current(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "10.16", cur)
	assert.Equal(t, 1, m.Len())
}

func TestDeleteRemovesFromStore(t *testing.T) {
	store := storage.NewMemory()
	m := NewManager(store, testConfig())
	ctx := context.Background()

	id, _ := m.Create(ctx)
	require.NoError(t, m.Delete(ctx, id))

	_, err := m.Current(ctx, id)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	require.NoError(t, m.Close())
	_, err = store.Load(ctx, id)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.Equal(t, 0, m.Len())
}

type failingDeleteStore struct {
	storage.Store
	mu       sync.Mutex
	failures int
}

func (s *failingDeleteStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failures > 0 {
		s.failures--
		return errors.New("store unavailable")
	}
	return s.Store.Delete(ctx, id)
}

func TestFailedDeleteKeepsSessionHidden(t *testing.T) {
	store := &failingDeleteStore{Store: storage.NewMemory(), failures: 1}
	m := NewManager(store, testConfig())
	defer m.Close()
	ctx := context.Background()

	id, _ := m.Create(ctx)
	_, err := m.Input(ctx, id, tokens("F 4"))
	require.NoError(t, err)
	require.NoError(t, m.Delete(ctx, id))

	m.mu.RLock()
	s := m.sessions[id]
	m.mu.RUnlock()
	require.NotNil(t, s)
	require.Eventually(t, func() bool { return s.pending.Load() == 0 }, time.Second, 5*time.Millisecond)

	_, err = m.Current(ctx, id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Equal(t, 1, m.Len())
	_, err = store.Load(ctx, id)
	require.NoError(t, err)

	m.Sweep()
	require.Eventually(t, func() bool { return m.Len() == 0 }, time.Second, 5*time.Millisecond)
	_, err = store.Load(ctx, id)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = m.Current(ctx, id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionsSurviveRestart(t *testing.T) {
	ctx := context.Background()
	store, err := storage.NewSQLite(ctx, filepath.Join(t.TempDir(), "store.db"))
	require.NoError(t, err)
	defer store.Close()

	m := NewManager(store, testConfig())
	id, _ := m.Create(ctx)
	_, err = m.Input(ctx, id, tokens("P 0 15 17"))
	require.NoError(t, err)
	require.NoError(t, m.Close())

	m = NewManager(store, testConfig())
	defer m.Close()
	res, err := m.Input(ctx, id, tokens("+ 2"))
	require.NoError(t, err)
	assert.Equal(t, "10", res.Result)
}

func TestConcurrentInputIsSerialized(t *testing.T) {
	m := NewManager(storage.NewMemory(), testConfig())
	defer m.Close()
	ctx := context.Background()
	id, _ := m.Create(ctx)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := m.Input(ctx, id, tokens("+ 1"))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	cur, err := m.Current(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "50", cur)
}

func TestStartStopsOnClose(t *testing.T) {
	cfg := testConfig()
	cfg.SweepInterval = time.Millisecond
	m := NewManager(storage.NewMemory(), cfg)
	m.Start(context.Background())
	time.Sleep(5 * time.Millisecond)
	require.NoError(t, m.Close())
}
