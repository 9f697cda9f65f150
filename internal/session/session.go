// Package session gives every client its own evaluation engine. Calls on one
// session are serialized; idle sessions are evicted from memory and reloaded
// from the store on their next use.
package session

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/XJIeI5/calcengine/internal/calculator"
	"github.com/XJIeI5/calcengine/internal/config"
	"github.com/XJIeI5/calcengine/internal/custom"
	datastructs "github.com/XJIeI5/calcengine/internal/datastructs"
	op "github.com/XJIeI5/calcengine/internal/operation"
	"github.com/XJIeI5/calcengine/internal/storage"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var ErrSessionNotFound = errors.New("session not found")

type session struct {
	id       string
	calc     *calculator.Calculator
	lastUsed time.Time
	deleted  bool
	evicted  bool
	// writes queued but not yet in the store
	pending atomic.Int32

	mu sync.Mutex
}

// Result is the outcome of one input line.
type Result struct {
	Result  string `json:"result,omitempty"`
	Current string `json:"current"`
}

type snapshot struct {
	s     *session
	value float32
	// tombstone marks deletions; the session leaves memory once the store
	// forgot the id.
	tombstone bool
}

type Manager struct {
	store    storage.Store
	registry *custom.Registry
	cfg      *config.Session
	log      logrus.FieldLogger
	now      func() time.Time

	sessions map[string]*session
	mu       sync.RWMutex

	writes *datastructs.CQueue[snapshot]
	done   chan struct{}
	once   sync.Once
	wg     sync.WaitGroup
}

type Option func(*Manager)

func WithLogger(l logrus.FieldLogger) Option {
	return func(m *Manager) { m.log = l }
}

// WithRegistry sets the custom operations every new engine gets.
func WithRegistry(r *custom.Registry) Option {
	return func(m *Manager) { m.registry = r }
}

// WithClock replaces time.Now for idle tracking.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// NewManager starts the background writer that persists session values to
// store. Call Close to flush it.
func NewManager(store storage.Store, cfg *config.Session, opts ...Option) *Manager {
	m := &Manager{
		store:    store,
		registry: custom.DefaultRegistry(),
		cfg:      cfg,
		now:      time.Now,
		sessions: make(map[string]*session),
		writes:   datastructs.NewCQueue[snapshot](),
		done:     make(chan struct{}),
	}
	for _, o := range opts {
		o(m)
	}
	if m.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		m.log = l
	}

	m.wg.Add(1)
	go m.persistLoop()
	return m
}

// Create opens a new session with a current value of 0.
func (m *Manager) Create(ctx context.Context) (string, error) {
	s := m.newSession(uuid.NewString(), 0)

	m.mu.Lock()
	m.sessions[s.id] = s
	m.mu.Unlock()

	s.mu.Lock()
	m.persist(s)
	s.mu.Unlock()

	m.log.WithField("session", s.id).Info("session created")
	return s.id, nil
}

// Input evaluates tokens on the session's engine. Results the display cannot
// show count as failures. With reset_on_error the current value drops to 0
// after any failure.
func (m *Manager) Input(ctx context.Context, id string, tokens []string) (Result, error) {
	s, err := m.acquire(ctx, id)
	if err != nil {
		return Result{}, err
	}
	defer s.mu.Unlock()

	result, err := s.calc.AcceptInputArray(tokens)
	if err == nil {
		err = calculator.CheckResult(result)
	}
	if err != nil {
		m.log.WithFields(logrus.Fields{"session": id, "error": err}).Debug("input rejected")
		if m.cfg.ResetOnError {
			s.calc.SetCurrentValue(0)
		}
		m.persist(s)
		return Result{Current: op.FormatNumber(s.calc.CurrentValue())}, err
	}

	m.persist(s)
	return Result{Result: result, Current: result}, nil
}

// Postfix converts an infix expression against the session's current value
// without evaluating it.
func (m *Manager) Postfix(ctx context.Context, id string, tokens []string) ([]string, error) {
	s, err := m.acquire(ctx, id)
	if err != nil {
		return nil, err
	}
	defer s.mu.Unlock()
	return s.calc.InfixToPostfix(tokens)
}

// Current returns the session's current value as text.
func (m *Manager) Current(ctx context.Context, id string) (string, error) {
	s, err := m.acquire(ctx, id)
	if err != nil {
		return "", err
	}
	defer s.mu.Unlock()
	return op.FormatNumber(s.calc.CurrentValue()), nil
}

// Clear resets the current value to 0.
func (m *Manager) Clear(ctx context.Context, id string) error {
	s, err := m.acquire(ctx, id)
	if err != nil {
		return err
	}
	defer s.mu.Unlock()
	s.calc.SetCurrentValue(0)
	m.persist(s)
	return nil
}

// Delete forgets the session in memory and in the store.
func (m *Manager) Delete(ctx context.Context, id string) error {
	s, err := m.acquire(ctx, id)
	if err != nil {
		return err
	}
	defer s.mu.Unlock()

	s.deleted = true
	s.pending.Add(1)
	m.writes.Enqueue(snapshot{s: s, tombstone: true})

	m.log.WithField("session", id).Info("session deleted")
	return nil
}

// Registry returns the custom operations available to sessions.
func (m *Manager) Registry() *custom.Registry {
	return m.registry
}

// Len returns the number of sessions held in memory, including deleted ones
// whose removal from the store is still pending.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Close stops the sweeper and waits until every pending write reached the
// store.
func (m *Manager) Close() error {
	m.once.Do(func() {
		close(m.done)
		m.writes.Close()
	})
	m.wg.Wait()
	return nil
}

func (m *Manager) newSession(id string, value float32) *session {
	return &session{
		id: id,
		calc: calculator.New(
			calculator.WithRegistry(m.registry),
			calculator.WithLogger(m.log.WithField("session", id)),
			calculator.WithCurrentValue(value),
		),
		lastUsed: m.now(),
	}
}

// acquire returns the session locked, loading it from the store when it is
// not in memory.
func (m *Manager) acquire(ctx context.Context, id string) (*session, error) {
	for {
		m.mu.RLock()
		s, ok := m.sessions[id]
		m.mu.RUnlock()

		if !ok {
			value, err := m.store.Load(ctx, id)
			if errors.Is(err, storage.ErrNotFound) {
				return nil, ErrSessionNotFound
			}
			if err != nil {
				return nil, err
			}

			m.mu.Lock()
			if s, ok = m.sessions[id]; !ok {
				s = m.newSession(id, value)
				m.sessions[id] = s
				m.log.WithField("session", id).Debug("session restored")
			}
			m.mu.Unlock()
		}

		s.mu.Lock()
		switch {
		case s.deleted:
			s.mu.Unlock()
			return nil, ErrSessionNotFound
		case s.evicted:
			// swept between the lookup and the lock; reload it
			s.mu.Unlock()
			continue
		}
		s.lastUsed = m.now()
		return s, nil
	}
}

// persist queues the session's value. Callers hold s.mu so writes for one
// session stay in order.
func (m *Manager) persist(s *session) {
	s.pending.Add(1)
	m.writes.Enqueue(snapshot{s: s, value: s.calc.CurrentValue()})
}

func (m *Manager) persistLoop() {
	defer m.wg.Done()
	for {
		snap, ok := m.writes.Dequeue()
		if !ok {
			return
		}

		id := snap.s.id
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		var err error
		if snap.tombstone {
			// on failure the tombstone stays so the id cannot be reloaded;
			// Sweep retries the delete
			if err = m.store.Delete(ctx, id); err == nil {
				m.mu.Lock()
				if m.sessions[id] == snap.s {
					delete(m.sessions, id)
				}
				m.mu.Unlock()
			}
		} else {
			err = m.store.Save(ctx, id, snap.value)
		}
		cancel()
		snap.s.pending.Add(-1)
		if err != nil {
			m.log.WithFields(logrus.Fields{"session": id, "error": err}).Error("persist session")
		}
	}
}
