package artifact

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Put(_ context.Context, personaID, name string, content []byte) error {
	key, err := memKey(personaID, name)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = append([]byte(nil), content...)
	return nil
}

func (s *MemoryStore) Get(_ context.Context, personaID, name string) ([]byte, error) {
	key, err := memKey(personaID, name)
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	raw, ok := s.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), raw...), nil
}

func (s *MemoryStore) List(_ context.Context, personaID string) ([]string, error) {
	personaID = strings.TrimSpace(personaID)
	if personaID == "" {
		return nil, fmt.Errorf("persona_id is required")
	}
	prefix := personaID + "/"
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, 8)
	for key := range s.data {
		if strings.HasPrefix(key, prefix) {
			out = append(out, strings.TrimPrefix(key, prefix))
		}
	}
	sort.Strings(out)
	return out, nil
}

func memKey(personaID, name string) (string, error) {
	personaID = strings.TrimSpace(personaID)
	name = strings.TrimSpace(name)
	if personaID == "" {
		return "", fmt.Errorf("persona_id is required")
	}
	if name == "" {
		return "", fmt.Errorf("name is required")
	}
	return personaID + "/" + strings.TrimLeft(name, "/"), nil
}
