package persona

import (
	"context"
	"errors"
	"fmt"
)

// ErrLayerMissing marks a source layer that simply does not exist for a
// persona. Missing layers are a data-completeness state, not a fault, and
// are skipped during assembly. Any other source error propagates.
var ErrLayerMissing = errors.New("persona layer missing")

// Sources supplies the independently-fetched attribute maps for one
// persona, in ascending authority: stored details, trait rows, the full
// generated preview payload, the manually edited record.
type Sources interface {
	Details(ctx context.Context, personaID string) (TraitLayer, error)
	Traits(ctx context.Context, personaID string) (TraitLayer, error)
	PreviewPayload(ctx context.Context, personaID string) (TraitLayer, error)
	ManualRecord(ctx context.Context, personaID string) (TraitLayer, error)
}

// View is the reconciled, display-ready representation of a persona.
type View struct {
	PersonaID string     `json:"persona_id"`
	Merged    TraitLayer `json:"merged"`
	Extra     []Trait    `json:"extra"`
}

type Assembler struct {
	src Sources
}

func NewAssembler(src Sources) *Assembler {
	return &Assembler{src: src}
}

// View fetches whichever layers exist and merges them in authority order.
func (a *Assembler) View(ctx context.Context, personaID string) (View, error) {
	if a == nil || a.src == nil {
		return View{}, fmt.Errorf("assembler has no sources")
	}
	fetchers := []struct {
		name  string
		fetch func(context.Context, string) (TraitLayer, error)
	}{
		{"details", a.src.Details},
		{"traits", a.src.Traits},
		{"preview", a.src.PreviewPayload},
		{"manual", a.src.ManualRecord},
	}
	layers := make([]TraitLayer, 0, len(fetchers))
	for _, f := range fetchers {
		layer, err := f.fetch(ctx, personaID)
		if errors.Is(err, ErrLayerMissing) {
			continue
		}
		if err != nil {
			return View{}, fmt.Errorf("fetch %s layer: %w", f.name, err)
		}
		layers = append(layers, layer)
	}
	merged := Canonicalize(Merge(layers...))
	return View{
		PersonaID: personaID,
		Merged:    merged,
		Extra:     AdditionalTraits(merged),
	}, nil
}
