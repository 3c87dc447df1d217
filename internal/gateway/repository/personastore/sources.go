package personastore

import (
	"context"
	"errors"
	"fmt"

	"explora/internal/gateway/repository/artifact"
	"explora/internal/persona"
	"explora/internal/util/jsonutil"
)

// PreviewArtifactName is the artifact file that holds the full generated
// persona preview payload.
const PreviewArtifactName = "preview.json"

// SourceSet adapts the layer store and the artifact store into the four
// assembly sources. The preview payload is the raw generator output and is
// parsed leniently because models occasionally emit fenced or escaped JSON.
type SourceSet struct {
	layers    *Store
	artifacts artifact.Store
}

func NewSourceSet(layers *Store, artifacts artifact.Store) *SourceSet {
	return &SourceSet{layers: layers, artifacts: artifacts}
}

var _ persona.Sources = (*SourceSet)(nil)

func (s *SourceSet) Details(ctx context.Context, personaID string) (persona.TraitLayer, error) {
	return s.storedLayer(ctx, personaID, LayerDetails)
}

func (s *SourceSet) Traits(ctx context.Context, personaID string) (persona.TraitLayer, error) {
	return s.storedLayer(ctx, personaID, LayerTraits)
}

func (s *SourceSet) ManualRecord(ctx context.Context, personaID string) (persona.TraitLayer, error) {
	return s.storedLayer(ctx, personaID, LayerManual)
}

func (s *SourceSet) PreviewPayload(ctx context.Context, personaID string) (persona.TraitLayer, error) {
	if s.artifacts == nil {
		return nil, persona.ErrLayerMissing
	}
	raw, err := s.artifacts.Get(ctx, personaID, PreviewArtifactName)
	if errors.Is(err, artifact.ErrNotFound) {
		return nil, persona.ErrLayerMissing
	}
	if err != nil {
		return nil, err
	}
	var layer persona.TraitLayer
	if err := jsonutil.UnmarshalFlex(raw, &layer); err != nil {
		return nil, fmt.Errorf("parse preview payload: %w", err)
	}
	return layer, nil
}

func (s *SourceSet) storedLayer(ctx context.Context, personaID, layer string) (persona.TraitLayer, error) {
	if s.layers == nil {
		return nil, persona.ErrLayerMissing
	}
	out, err := s.layers.Layer(ctx, personaID, layer)
	if errors.Is(err, ErrNotFound) {
		return nil, persona.ErrLayerMissing
	}
	return out, err
}
