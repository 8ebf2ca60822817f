// README: Session manager; at most one tracking session per order id.
package tracking

import (
	"context"
	"errors"
	"sync"
	"time"

	"ordertrack/internal/types"
)

var ErrSessionNotFound = errors.New("tracking session not found")

type Manager struct {
	base context.Context
	deps Deps
	cfg  Config

	mu       sync.Mutex
	sessions map[types.ID]*Session
}

// NewManager runs every session under base, not under the caller's request context.
func NewManager(base context.Context, deps Deps, cfg Config) *Manager {
	if base == nil {
		base = context.Background()
	}
	return &Manager{base: base, deps: deps, cfg: cfg.withDefaults(), sessions: make(map[types.ID]*Session)}
}

// Open returns the session for id, starting one if needed. A finished session is
// returned until its retention lapses. created reports whether a new session was started.
func (m *Manager) Open(id types.ID) (s *Session, created bool, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.sessions[id]; ok {
		return existing, false, nil
	}
	s = NewSession(m.deps, m.cfg)
	if err := s.Start(m.base, id); err != nil {
		return nil, false, err
	}
	m.sessions[id] = s
	go m.watch(id, s)
	return s, true, nil
}

// watch drops s once it is done and FinishedRetention has passed.
func (m *Manager) watch(id types.ID, s *Session) {
	select {
	case <-s.Done():
	case <-m.base.Done():
		return
	}
	if r := m.cfg.FinishedRetention; r > 0 {
		time.AfterFunc(r, func() { m.drop(id, s) })
		return
	}
	m.drop(id, s)
}

func (m *Manager) drop(id types.ID, s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if cur, ok := m.sessions[id]; ok && cur == s {
		delete(m.sessions, id)
	}
}

func (m *Manager) Get(id types.ID) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	return s, ok
}

func (m *Manager) Close(id types.ID) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}
	s.Stop()
	return nil
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// CloseAll stops every session concurrently and waits for them.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	all := make([]*Session, 0, len(m.sessions))
	for id, s := range m.sessions {
		all = append(all, s)
		delete(m.sessions, id)
	}
	m.mu.Unlock()

	var wg sync.WaitGroup
	for _, s := range all {
		wg.Add(1)
		go func(s *Session) {
			defer wg.Done()
			s.Stop()
		}(s)
	}
	wg.Wait()
}
