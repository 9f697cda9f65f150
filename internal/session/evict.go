package session

import (
	"context"
	"time"
)

// Start runs the idle sweeper until ctx is done or the manager is closed.
func (m *Manager) Start(ctx context.Context) {
	interval := m.cfg.SweepInterval
	if interval <= 0 {
		interval = time.Minute
	}

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-m.done:
				return
			case <-ticker.C:
				if n := m.Sweep(); n > 0 {
					m.log.WithField("evicted", n).Debug("idle sessions evicted")
				}
			}
		}
	}()
}

// Sweep drops sessions idle for longer than the idle timeout from memory.
// Their values stay in the store. Busy sessions and sessions with writes still
// in flight are skipped. Deleted sessions whose store delete failed are
// queued for deletion again.
func (m *Manager) Sweep() int {
	if m.cfg.IdleTimeout <= 0 {
		return 0
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var evicted int
	now := m.now()
	for id, s := range m.sessions {
		if !s.mu.TryLock() {
			continue
		}
		switch {
		case s.pending.Load() > 0:
		case s.deleted:
			s.pending.Add(1)
			m.writes.Enqueue(snapshot{s: s, tombstone: true})
		case now.Sub(s.lastUsed) > m.cfg.IdleTimeout:
			s.evicted = true
			delete(m.sessions, id)
			evicted++
		}
		s.mu.Unlock()
	}
	return evicted
}
