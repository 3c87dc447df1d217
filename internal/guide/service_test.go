package guide

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"explora/internal/llmclient"
)

type recordingRepo struct {
	sections []Section
	applied  []MutationRequest
	err      error
}

func (r *recordingRepo) Sections(context.Context, string) ([]Section, error) {
	return CloneSections(r.sections), nil
}

func (r *recordingRepo) Apply(_ context.Context, _ string, req MutationRequest) ([]Section, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.applied = append(r.applied, req)
	return CloneSections(r.sections), nil
}

type scriptedValidator struct {
	verdict Verdict
	err     error
	calls   int
}

func (v *scriptedValidator) Check(context.Context, string, string) (Verdict, error) {
	v.calls++
	return v.verdict, v.err
}

type staticTopic string

func (t staticTopic) Topic(context.Context, string) (string, error) {
	return string(t), nil
}

func TestMutateRejectionLeavesRepositoryUntouched(t *testing.T) {
	repo := &recordingRepo{}
	val := &scriptedValidator{verdict: Verdict{Consistent: false, Reason: "off-topic"}}
	svc := NewService(repo, val, staticTopic("coffee habits"))

	res, err := svc.Mutate(context.Background(), "obj-1", MutationRequest{
		Kind:    CreateSection,
		Payload: "Favorite sports teams",
	})
	if err != nil {
		t.Fatalf("Mutate() error = %v", err)
	}
	if res.ValidationStatus != ValidationFailed {
		t.Fatalf("validation_status = %q, want failed", res.ValidationStatus)
	}
	if res.Reason != "off-topic" {
		t.Fatalf("reason = %q, want off-topic", res.Reason)
	}
	if len(repo.applied) != 0 {
		t.Fatalf("repository mutated on a failed validation")
	}
}

func TestMutateForceInsertSkipsValidation(t *testing.T) {
	repo := &recordingRepo{}
	val := &scriptedValidator{verdict: Verdict{Consistent: false, Reason: "off-topic"}}
	svc := NewService(repo, val, staticTopic("coffee habits"))

	res, err := svc.Mutate(context.Background(), "obj-1", MutationRequest{
		Kind:        CreateSection,
		Payload:     "Favorite sports teams",
		ForceInsert: true,
	})
	if err != nil {
		t.Fatalf("Mutate() error = %v", err)
	}
	if res.ValidationStatus != ValidationOK {
		t.Fatalf("validation_status = %q, want ok", res.ValidationStatus)
	}
	if val.calls != 0 {
		t.Fatalf("validator called %d times on a forced insert", val.calls)
	}
	if len(repo.applied) != 1 {
		t.Fatalf("applied %d mutations, want 1", len(repo.applied))
	}
}

func TestMutateDeleteSkipsValidation(t *testing.T) {
	repo := &recordingRepo{}
	val := &scriptedValidator{verdict: Verdict{Consistent: false}}
	svc := NewService(repo, val, nil)

	res, err := svc.Mutate(context.Background(), "obj-1", MutationRequest{
		Kind:     DeleteQuestion,
		TargetID: "q-1",
	})
	if err != nil {
		t.Fatalf("Mutate() error = %v", err)
	}
	if res.ValidationStatus != ValidationOK {
		t.Fatalf("validation_status = %q, want ok", res.ValidationStatus)
	}
	if val.calls != 0 {
		t.Fatalf("validator called for a delete")
	}
}

func TestMutateValidatorTransportFailureIsAnError(t *testing.T) {
	repo := &recordingRepo{}
	val := &scriptedValidator{err: errors.New("upstream timeout")}
	svc := NewService(repo, val, nil)

	_, err := svc.Mutate(context.Background(), "obj-1", MutationRequest{
		Kind:    CreateSection,
		Payload: "Morning routines",
	})
	if err == nil {
		t.Fatalf("Mutate() error = nil, want transport failure")
	}
	if len(repo.applied) != 0 {
		t.Fatalf("repository mutated despite validator failure")
	}
}

func TestMutateEnvelopeValidation(t *testing.T) {
	svc := NewService(&recordingRepo{}, nil, nil)
	cases := []MutationRequest{
		{Kind: "rename_section", Payload: "x"},
		{Kind: UpdateSection, Payload: "x"},       // missing target
		{Kind: CreateQuestion, TargetID: "sec-1"}, // missing payload
	}
	for _, req := range cases {
		if _, err := svc.Mutate(context.Background(), "obj-1", req); err == nil {
			t.Fatalf("Mutate(%+v) error = nil, want envelope rejection", req)
		}
	}
}

func TestOverlapValidator(t *testing.T) {
	val := NewOverlapValidator()
	verdict, err := val.Check(context.Background(), "remote work productivity",
		"How does remote collaboration affect your daily productivity and focus?")
	if err != nil || !verdict.Consistent {
		t.Fatalf("Check() = %+v, %v; want consistent", verdict, err)
	}

	verdict, err = val.Check(context.Background(), "remote work productivity",
		"Which football club do you support and why do you love them?")
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if verdict.Consistent {
		t.Fatalf("Check() consistent for unrelated content")
	}
	if verdict.Reason == "" {
		t.Fatalf("failed verdict carries no reason")
	}

	// Short fragments pass; there is not enough signal to reject.
	verdict, _ = val.Check(context.Background(), "remote work productivity", "Intro")
	if !verdict.Consistent {
		t.Fatalf("short fragment rejected")
	}
}

func TestThematicValidatorParsesVerdict(t *testing.T) {
	cli := llmclient.NewFakeClient(json.RawMessage(`{"consistent": false, "reason": "off-topic"}`))
	val := NewThematicValidator(cli)
	verdict, err := val.Check(context.Background(), "coffee habits", "Favorite sports teams")
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if verdict.Consistent || verdict.Reason != "off-topic" {
		t.Fatalf("verdict = %+v, want inconsistent/off-topic", verdict)
	}

	cli.Fail(errors.New("rate limited"))
	if _, err := val.Check(context.Background(), "coffee habits", "anything"); err == nil {
		t.Fatalf("Check() error = nil, want transport failure")
	}
}
