package personastore

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"

	"explora/internal/persona"
)

func layerKey(personaID, layer string) string {
	return personaID + "/" + layer
}

func (s *Store) loadFile() {
	s.loadOnce.Do(func() {
		data, err := os.ReadFile(s.path)
		if err != nil {
			if !os.IsNotExist(err) {
				log.Printf("persona store: read %s: %v", s.path, err)
			}
			return
		}
		m := make(map[string]persona.TraitLayer)
		if err := json.Unmarshal(data, &m); err != nil {
			log.Printf("persona store: parse %s: %v", s.path, err)
			return
		}
		s.mu.Lock()
		s.byKey = m
		s.mu.Unlock()
	})
}

func (s *Store) getFile(personaID, layer string) (persona.TraitLayer, error) {
	s.loadFile()
	s.mu.RLock()
	stored, ok := s.byKey[layerKey(personaID, layer)]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	out := make(persona.TraitLayer, len(stored))
	for k, v := range stored {
		out[k] = v
	}
	return out, nil
}

func (s *Store) putFile(personaID, layer string, payload persona.TraitLayer) error {
	s.loadFile()
	copied := make(persona.TraitLayer, len(payload))
	for k, v := range payload {
		copied[k] = v
	}
	s.mu.Lock()
	s.byKey[layerKey(personaID, layer)] = copied
	data, err := json.MarshalIndent(s.byKey, "", "  ")
	s.mu.Unlock()
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." {
		_ = os.MkdirAll(dir, 0o755)
	}
	return os.WriteFile(s.path, data, 0o644)
}
