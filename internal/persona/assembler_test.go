package persona

import (
	"context"
	"errors"
	"testing"
)

type fakeSources struct {
	details TraitLayer
	traits  TraitLayer
	preview TraitLayer
	manual  TraitLayer

	previewErr error
}

func (f *fakeSources) Details(context.Context, string) (TraitLayer, error) {
	return f.details, nil
}

func (f *fakeSources) Traits(context.Context, string) (TraitLayer, error) {
	if f.traits == nil {
		return nil, ErrLayerMissing
	}
	return f.traits, nil
}

func (f *fakeSources) PreviewPayload(context.Context, string) (TraitLayer, error) {
	if f.previewErr != nil {
		return nil, f.previewErr
	}
	return f.preview, nil
}

func (f *fakeSources) ManualRecord(context.Context, string) (TraitLayer, error) {
	if f.manual == nil {
		return nil, ErrLayerMissing
	}
	return f.manual, nil
}

func TestAssemblerMergesInAuthorityOrder(t *testing.T) {
	src := &fakeSources{
		details: TraitLayer{"name": "Aiko", "occupation": "student"},
		preview: TraitLayer{"occupation": "barista", "coffee_budget": "500 yen"},
		manual:  TraitLayer{"occupation": "", "name": "Aiko T."},
	}
	view, err := NewAssembler(src).View(context.Background(), "p-1")
	if err != nil {
		t.Fatalf("View() error = %v", err)
	}
	if view.Merged["name"] != "Aiko T." {
		t.Fatalf("name = %v, want manual edit to win", view.Merged["name"])
	}
	if view.Merged["occupation"] != "barista" {
		t.Fatalf("occupation = %v, want preview value (manual edit was empty)", view.Merged["occupation"])
	}
	if len(view.Extra) != 1 || view.Extra[0].Key != "coffee_budget" {
		t.Fatalf("extra traits = %v, want coffee_budget only", view.Extra)
	}
}

func TestAssemblerSkipsMissingLayersButPropagatesFailures(t *testing.T) {
	src := &fakeSources{details: TraitLayer{"name": "Aiko"}}
	view, err := NewAssembler(src).View(context.Background(), "p-1")
	if err != nil {
		t.Fatalf("View() error = %v", err)
	}
	if view.Merged["name"] != "Aiko" {
		t.Fatalf("name = %v, want Aiko", view.Merged["name"])
	}

	src.previewErr = errors.New("object store unreachable")
	if _, err := NewAssembler(src).View(context.Background(), "p-1"); err == nil {
		t.Fatalf("View() error = nil, want transport failure to propagate")
	}
}
