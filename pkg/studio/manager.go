package studio

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Manager owns the live editing sessions, keyed by id. Closing a session
// through the manager both tears down its timer and drops it from the
// table, so nothing can address a dead session.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	quiet    time.Duration
	logger   *zap.SugaredLogger
}

func NewManager(logger *zap.SugaredLogger) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		quiet:    DefaultQuietPeriod,
		logger:   logger,
	}
}

// NewManagerWithQuietPeriod overrides the auto-save debounce, for tests
// that cannot wait out the real quiet period.
func NewManagerWithQuietPeriod(logger *zap.SugaredLogger, quiet time.Duration) *Manager {
	m := NewManager(logger)
	m.quiet = quiet
	return m
}

// Open creates a session in template selection and returns it.
func (m *Manager) Open() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := newSession(uuid.NewString(), m.quiet)
	m.sessions[s.ID()] = s
	m.logger.Infof("studio session opened: %s", s.ID())
	return s
}

func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Close ends the session and forgets it. Unknown ids are a no-op.
func (m *Manager) Close(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[id]; ok {
		s.Close()
		delete(m.sessions, id)
		m.logger.Infof("studio session closed: %s", id)
	}
}

// CloseAll tears down every session, for server shutdown.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, s := range m.sessions {
		s.Close()
		delete(m.sessions, id)
	}
}
