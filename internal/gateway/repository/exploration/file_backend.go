package exploration

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
)

func (s *Store) loadFile() {
	s.loadOnce.Do(func() {
		data, err := os.ReadFile(s.path)
		if err != nil {
			if !os.IsNotExist(err) {
				log.Printf("exploration store: read %s: %v", s.path, err)
			}
			return
		}
		var list []State
		if err := json.Unmarshal(data, &list); err != nil {
			log.Printf("exploration store: parse %s: %v", s.path, err)
			return
		}
		s.mu.Lock()
		for _, st := range list {
			s.byID[st.ObjectiveID] = st
		}
		s.mu.Unlock()
	})
}

func (s *Store) getFile(id string) (State, error) {
	s.loadFile()
	s.mu.RLock()
	st, ok := s.byID[id]
	s.mu.RUnlock()
	if !ok {
		return State{}, ErrNotFound
	}
	return st, nil
}

func (s *Store) putFile(st State) error {
	s.loadFile()
	s.mu.Lock()
	s.byID[st.ObjectiveID] = st
	list := make([]State, 0, len(s.byID))
	for _, v := range s.byID {
		list = append(list, v)
	}
	s.mu.Unlock()
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." {
		_ = os.MkdirAll(dir, 0o755)
	}
	return os.WriteFile(s.path, data, 0o644)
}
