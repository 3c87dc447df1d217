package artifact

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if err := s.Put(ctx, "per-1", "preview.json", []byte(`{"name":"Aiko"}`)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err := s.Get(ctx, "per-1", "preview.json")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != `{"name":"Aiko"}` {
		t.Fatalf("Get = %q", got)
	}

	names, err := s.List(ctx, "per-1")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(names) != 1 || names[0] != "preview.json" {
		t.Fatalf("List = %v", names)
	}
}

func TestMemoryStoreMissing(t *testing.T) {
	s := NewMemoryStore()
	_, err := s.Get(context.Background(), "per-1", "preview.json")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreCopiesContent(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	payload := []byte(`{"age":30}`)
	if err := s.Put(ctx, "per-1", "preview.json", payload); err != nil {
		t.Fatalf("Put: %v", err)
	}
	payload[2] = 'x'

	got, err := s.Get(ctx, "per-1", "preview.json")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != `{"age":30}` {
		t.Fatalf("stored content aliased caller slice: %q", got)
	}
}
