package guide

import (
	"context"
	"fmt"
	"strings"
)

// Repository owns the persisted guide. Sections returns the ordered guide;
// Apply performs one mutation and returns the resulting guide.
type Repository interface {
	Sections(ctx context.Context, objectiveID string) ([]Section, error)
	Apply(ctx context.Context, objectiveID string, req MutationRequest) ([]Section, error)
}

// TopicSource supplies the objective's topic for validation context.
type TopicSource interface {
	Topic(ctx context.Context, objectiveID string) (string, error)
}

// Service fronts the guide repository with thematic validation. A rejected
// mutation changes nothing; force_insert skips validation entirely, so a
// replayed decision always reaches the repository.
type Service struct {
	repo      Repository
	validator Validator
	topics    TopicSource
}

func NewService(repo Repository, validator Validator, topics TopicSource) *Service {
	return &Service{repo: repo, validator: validator, topics: topics}
}

func (s *Service) Guide(ctx context.Context, objectiveID string) ([]Section, error) {
	objectiveID = strings.TrimSpace(objectiveID)
	if objectiveID == "" {
		return nil, fmt.Errorf("objective_id is required")
	}
	return s.repo.Sections(ctx, objectiveID)
}

func (s *Service) Mutate(ctx context.Context, objectiveID string, req MutationRequest) (MutationResult, error) {
	objectiveID = strings.TrimSpace(objectiveID)
	if objectiveID == "" {
		return MutationResult{}, fmt.Errorf("objective_id is required")
	}
	if !req.Kind.Valid() {
		return MutationResult{}, fmt.Errorf("unknown mutation kind %q", req.Kind)
	}
	if req.Kind.NeedsTarget() && strings.TrimSpace(req.TargetID) == "" {
		return MutationResult{}, fmt.Errorf("%s requires a target_id", req.Kind)
	}
	if req.Kind.ContentBearing() && strings.TrimSpace(req.Payload) == "" {
		return MutationResult{}, fmt.Errorf("%s requires a payload", req.Kind)
	}

	if req.Kind.ContentBearing() && !req.ForceInsert && s.validator != nil {
		topic := ""
		if s.topics != nil {
			// Best effort; a missing topic must not block editing.
			topic, _ = s.topics.Topic(ctx, objectiveID)
		}
		verdict, err := s.validator.Check(ctx, topic, req.Payload)
		if err != nil {
			return MutationResult{}, err
		}
		if !verdict.Consistent {
			reason := strings.TrimSpace(verdict.Reason)
			if reason == "" {
				reason = "content is thematically inconsistent with the objective"
			}
			return MutationResult{
				ValidationStatus: ValidationFailed,
				Reason:           reason,
			}, nil
		}
	}

	sections, err := s.repo.Apply(ctx, objectiveID, req)
	if err != nil {
		return MutationResult{}, err
	}
	return MutationResult{
		ValidationStatus: ValidationOK,
		Sections:         sections,
	}, nil
}
