package guide

import (
	"context"
	"testing"
	"time"

	guidedomain "explora/internal/guide"
)

type fakeOrigin struct {
	calls    int
	sections []guidedomain.Section
}

func (f *fakeOrigin) Guide(_ context.Context, _ string) ([]guidedomain.Section, error) {
	f.calls++
	return guidedomain.CloneSections(f.sections), nil
}

func TestCachedStoreReadThrough(t *testing.T) {
	origin := &fakeOrigin{sections: []guidedomain.Section{
		{SectionID: "sec-1", Title: "Intro", Questions: []guidedomain.Question{{QuestionID: "q-1", Text: "Why?"}}},
	}}
	store := NewCachedStore(origin, CacheConfig{TTL: time.Minute, MaxEntries: 8})

	first, err := store.Guide(context.Background(), "obj-1")
	if err != nil {
		t.Fatalf("first get failed: %v", err)
	}
	second, err := store.Guide(context.Background(), "obj-1")
	if err != nil {
		t.Fatalf("second get failed: %v", err)
	}
	if origin.calls != 1 {
		t.Fatalf("origin calls = %d, want 1", origin.calls)
	}
	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("section counts = %d, %d, want 1, 1", len(first), len(second))
	}
}

func TestCachedStoreInvalidateForcesRefetch(t *testing.T) {
	origin := &fakeOrigin{sections: []guidedomain.Section{{SectionID: "sec-1", Title: "Intro"}}}
	store := NewCachedStore(origin, CacheConfig{})

	if _, err := store.Guide(context.Background(), "obj-1"); err != nil {
		t.Fatalf("get failed: %v", err)
	}
	store.Invalidate("obj-1")
	if _, err := store.Guide(context.Background(), "obj-1"); err != nil {
		t.Fatalf("get after invalidate failed: %v", err)
	}
	if origin.calls != 2 {
		t.Fatalf("origin calls = %d, want 2 after invalidation", origin.calls)
	}
}

func TestCachedStoreReturnsIsolatedCopies(t *testing.T) {
	origin := &fakeOrigin{sections: []guidedomain.Section{
		{SectionID: "sec-1", Title: "Intro", Questions: []guidedomain.Question{{QuestionID: "q-1", Text: "Why?"}}},
	}}
	store := NewCachedStore(origin, CacheConfig{})

	got, err := store.Guide(context.Background(), "obj-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	got[0].Title = "Mutated"
	got[0].Questions[0].Text = "Mutated"

	again, err := store.Guide(context.Background(), "obj-1")
	if err != nil {
		t.Fatalf("second get failed: %v", err)
	}
	if again[0].Title != "Intro" || again[0].Questions[0].Text != "Why?" {
		t.Fatalf("cached guide aliased a caller slice: %+v", again[0])
	}
}
