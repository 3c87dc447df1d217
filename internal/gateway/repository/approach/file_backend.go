package approach

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"

	"explora/internal/wizard"
)

func (s *Store) loadFile() {
	s.loadOnce.Do(func() {
		data, err := os.ReadFile(s.path)
		if err != nil {
			if !os.IsNotExist(err) {
				log.Printf("approach store: read %s: %v", s.path, err)
			}
			return
		}
		m := make(map[string]string)
		if err := json.Unmarshal(data, &m); err != nil {
			log.Printf("approach store: parse %s: %v", s.path, err)
			return
		}
		s.mu.Lock()
		s.byID = m
		s.mu.Unlock()
	})
}

func (s *Store) getFile(id string) (wizard.Approach, bool) {
	s.loadFile()
	s.mu.RLock()
	raw, ok := s.byID[id]
	s.mu.RUnlock()
	if !ok {
		return wizard.ApproachUnset, false
	}
	a := wizard.ParseApproach(raw)
	return a, a != wizard.ApproachUnset
}

func (s *Store) setFile(id, value string) {
	s.loadFile()
	s.mu.Lock()
	s.byID[id] = value
	data, err := json.MarshalIndent(s.byID, "", "  ")
	s.mu.Unlock()
	if err != nil {
		log.Printf("approach store: encode: %v", err)
		return
	}
	if dir := filepath.Dir(s.path); dir != "." {
		_ = os.MkdirAll(dir, 0o755)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		log.Printf("approach store: write %s: %v", s.path, err)
	}
}
