package guidestore

import (
	"context"

	"explora/internal/guide"
)

func (s *Store) Sections(ctx context.Context, objectiveID string) ([]guide.Section, error) {
	if s.db != nil {
		return s.sectionsDB(ctx, objectiveID)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return guide.CloneSections(s.guides[objectiveID]), nil
}

func (s *Store) Apply(ctx context.Context, objectiveID string, req guide.MutationRequest) ([]guide.Section, error) {
	if s.db != nil {
		return s.applyDB(ctx, objectiveID, req)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := applyMutation(guide.CloneSections(s.guides[objectiveID]), req)
	if err != nil {
		return nil, err
	}
	s.guides[objectiveID] = next
	return guide.CloneSections(next), nil
}

// Seed replaces the stored guide for an objective. Memory backend only.
func (s *Store) Seed(objectiveID string, sections []guide.Section) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.guides[objectiveID] = guide.CloneSections(sections)
}
