package guidestore

import (
	"context"
	"errors"
	"testing"

	"explora/internal/guide"
)

func TestMemoryStoreMutationKinds(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	sections, err := s.Apply(ctx, "obj-1", guide.MutationRequest{
		Kind:    guide.CreateSection,
		Payload: "Warm up",
	})
	if err != nil {
		t.Fatalf("create_section: %v", err)
	}
	if len(sections) != 1 || sections[0].Title != "Warm up" {
		t.Fatalf("sections = %+v, want one section titled Warm up", sections)
	}
	secID := sections[0].SectionID
	if secID == "" {
		t.Fatal("create_section assigned empty id")
	}

	sections, err = s.Apply(ctx, "obj-1", guide.MutationRequest{
		Kind:     guide.CreateQuestion,
		TargetID: secID,
		Payload:  "How often do you travel?",
	})
	if err != nil {
		t.Fatalf("create_question: %v", err)
	}
	if len(sections[0].Questions) != 1 {
		t.Fatalf("questions = %+v, want one", sections[0].Questions)
	}
	qID := sections[0].Questions[0].QuestionID

	sections, err = s.Apply(ctx, "obj-1", guide.MutationRequest{
		Kind:     guide.UpdateQuestion,
		TargetID: qID,
		Payload:  "How often do you travel abroad?",
	})
	if err != nil {
		t.Fatalf("update_question: %v", err)
	}
	if got := sections[0].Questions[0].Text; got != "How often do you travel abroad?" {
		t.Fatalf("question text = %q", got)
	}
	if got := sections[0].Questions[0].QuestionID; got != qID {
		t.Fatalf("update changed question id: %q != %q", got, qID)
	}

	sections, err = s.Apply(ctx, "obj-1", guide.MutationRequest{
		Kind:     guide.UpdateSection,
		TargetID: secID,
		Payload:  "Introduction",
	})
	if err != nil {
		t.Fatalf("update_section: %v", err)
	}
	if sections[0].Title != "Introduction" {
		t.Fatalf("section title = %q", sections[0].Title)
	}

	sections, err = s.Apply(ctx, "obj-1", guide.MutationRequest{
		Kind:     guide.DeleteQuestion,
		TargetID: qID,
	})
	if err != nil {
		t.Fatalf("delete_question: %v", err)
	}
	if len(sections[0].Questions) != 0 {
		t.Fatalf("questions after delete = %+v", sections[0].Questions)
	}

	sections, err = s.Apply(ctx, "obj-1", guide.MutationRequest{
		Kind:     guide.DeleteSection,
		TargetID: secID,
	})
	if err != nil {
		t.Fatalf("delete_section: %v", err)
	}
	if len(sections) != 0 {
		t.Fatalf("sections after delete = %+v", sections)
	}
}

func TestMemoryStorePreservesOrder(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	titles := []string{"Intro", "Habits", "Wrap up"}
	for _, title := range titles {
		if _, err := s.Apply(ctx, "obj-1", guide.MutationRequest{
			Kind:    guide.CreateSection,
			Payload: title,
		}); err != nil {
			t.Fatalf("create %q: %v", title, err)
		}
	}

	sections, err := s.Sections(ctx, "obj-1")
	if err != nil {
		t.Fatalf("Sections: %v", err)
	}
	for i, title := range titles {
		if sections[i].Title != title {
			t.Fatalf("sections[%d].Title = %q, want %q", i, sections[i].Title, title)
		}
	}
}

func TestMemoryStoreUnknownTarget(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	_, err := s.Apply(ctx, "obj-1", guide.MutationRequest{
		Kind:     guide.UpdateSection,
		TargetID: "sec-missing",
		Payload:  "x",
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreReturnsIsolatedCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	s.Seed("obj-1", []guide.Section{{
		SectionID: "sec-a",
		Title:     "Intro",
		Questions: []guide.Question{{QuestionID: "q-1", Text: "Why?"}},
	}})

	first, err := s.Sections(ctx, "obj-1")
	if err != nil {
		t.Fatalf("Sections: %v", err)
	}
	first[0].Title = "mutated"
	first[0].Questions[0].Text = "mutated"

	second, err := s.Sections(ctx, "obj-1")
	if err != nil {
		t.Fatalf("Sections: %v", err)
	}
	if second[0].Title != "Intro" || second[0].Questions[0].Text != "Why?" {
		t.Fatalf("stored guide aliased a returned copy: %+v", second[0])
	}
}
