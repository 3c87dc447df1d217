package session

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Manager hands out one protocol session per open editor.
type Manager struct {
	svc GuideService
	inv Invalidator

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager(svc GuideService, inv Invalidator) *Manager {
	return &Manager{
		svc:      svc,
		inv:      inv,
		sessions: make(map[string]*Session),
	}
}

func (m *Manager) Open(objectiveID string) (*Session, error) {
	objectiveID = normalizeObjectiveID(objectiveID)
	if objectiveID == "" {
		return nil, fmt.Errorf("objective_id is required")
	}
	s := newSession(uuid.NewString(), objectiveID, m.svc, m.inv)
	m.mu.Lock()
	m.sessions[s.ID()] = s
	m.mu.Unlock()
	return s, nil
}

func (m *Manager) Get(sessionID string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	return s, ok
}

// Close tears down a session; the session discards any open prompt.
func (m *Manager) Close(sessionID string) {
	m.mu.Lock()
	s, ok := m.sessions[sessionID]
	delete(m.sessions, sessionID)
	m.mu.Unlock()
	if ok {
		s.Close()
	}
}
