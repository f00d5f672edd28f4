package composer

import (
	"sync"

	"github.com/google/uuid"
)

// Manager tracks open drafts by id so HTTP handlers can address them
// across requests.
type Manager struct {
	mu     sync.Mutex
	drafts map[string]*Draft
}

func NewManager() *Manager {
	return &Manager{drafts: make(map[string]*Draft)}
}

func (m *Manager) Create() (string, *Draft) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.NewString()
	d := NewDraft()
	m.drafts[id] = d
	return id, d
}

func (m *Manager) Get(id string) (*Draft, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.drafts[id]
	return d, ok
}

func (m *Manager) Close(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.drafts, id)
}
