package wizard

import (
	"testing"
)

type fakeStore struct {
	values map[string]Approach
	sets   int
}

func newFakeStore() *fakeStore {
	return &fakeStore{values: make(map[string]Approach)}
}

func (f *fakeStore) Approach(objectiveID string) (Approach, bool) {
	a, ok := f.values[objectiveID]
	return a, ok
}

func (f *fakeStore) SetApproach(objectiveID string, approach Approach) {
	if approach == ApproachUnset {
		return
	}
	f.sets++
	f.values[objectiveID] = approach
}

func stepIDs(steps []Step) []string {
	out := make([]string, 0, len(steps))
	for _, s := range steps {
		out = append(out, s.ID)
	}
	return out
}

func TestResolveInfersQualitativeFromDepthInterviewPath(t *testing.T) {
	out := Resolve(ResolveInput{
		Path:  "/research/ws-1/obj-1/depth-interview",
		Store: newFakeStore(),
	})
	if out.Approach != ApproachQualitative {
		t.Fatalf("approach = %q, want %q", out.Approach, ApproachQualitative)
	}
	ids := stepIDs(out.Steps)
	want := []string{StepObjective, StepPersona, StepInterviews}
	if len(ids) != len(want) {
		t.Fatalf("steps = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("steps = %v, want %v", ids, want)
		}
	}
	if out.Position.Main != 2 {
		t.Fatalf("position.Main = %d, want 2", out.Position.Main)
	}
}

func TestResolveRemoteApproachWritesThrough(t *testing.T) {
	store := newFakeStore()
	out := Resolve(ResolveInput{
		Path:           "/research/ws-1/obj-7/persona",
		RemoteApproach: "quantitative",
		Store:          store,
	})
	if out.Approach != ApproachQuantitative {
		t.Fatalf("approach = %q, want quantitative", out.Approach)
	}
	if got, ok := store.Approach("obj-7"); !ok || got != ApproachQuantitative {
		t.Fatalf("store value = %q (%v), want quantitative", got, ok)
	}

	// Remote data gone on the next call; the cached value must hold.
	out = Resolve(ResolveInput{
		Path:  "/research/ws-1/obj-7/persona",
		Store: store,
	})
	if out.Approach != ApproachQuantitative {
		t.Fatalf("approach after remote loss = %q, want quantitative", out.Approach)
	}
}

func TestResolveOverrideWinsOverRemoteAndCache(t *testing.T) {
	store := newFakeStore()
	store.values["obj-2"] = ApproachQuantitative
	out := Resolve(ResolveInput{
		Path:           "/research/ws-1/obj-2/persona",
		Override:       ApproachQualitative,
		RemoteApproach: "quantitative",
		Store:          store,
	})
	if out.Approach != ApproachQualitative {
		t.Fatalf("approach = %q, want qualitative", out.Approach)
	}
	if store.sets != 0 {
		t.Fatalf("store writes = %d, want 0 (only the remote branch writes through)", store.sets)
	}
}

func TestResolveAddSentinelMeansNoObjective(t *testing.T) {
	store := newFakeStore()
	out := Resolve(ResolveInput{
		Path:           "/research/ws-1/add",
		RemoteApproach: "qualitative",
		Store:          store,
	})
	if out.ObjectiveID != "" {
		t.Fatalf("objectiveID = %q, want empty", out.ObjectiveID)
	}
	if store.sets != 0 {
		t.Fatalf("store writes = %d, want 0 without an objective id", store.sets)
	}
	for _, step := range out.Steps {
		if step.Navigable {
			t.Fatalf("step %q navigable without identifiers", step.ID)
		}
	}
}

func TestResolveRouteParamsWinOverPath(t *testing.T) {
	out := Resolve(ResolveInput{
		Path:             "/research/path-ws/path-obj/persona",
		RouteWorkspaceID: "route-ws",
		RouteObjectiveID: "route-obj",
	})
	if out.WorkspaceID != "route-ws" || out.ObjectiveID != "route-obj" {
		t.Fatalf("ids = (%q, %q), want route params", out.WorkspaceID, out.ObjectiveID)
	}
}

func TestResolveUnmappedPathIsTerminal(t *testing.T) {
	out := Resolve(ResolveInput{Path: "/research/ws-1/obj-1/report"})
	if out.Position != NoPosition {
		t.Fatalf("position = %+v, want %+v", out.Position, NoPosition)
	}
}

func TestResolveHiddenStepYieldsNoPosition(t *testing.T) {
	// Path says survey, but the explicit choice was qualitative-only, so the
	// surveys step is filtered out and the path cannot be positioned.
	out := Resolve(ResolveInput{
		Path:     "/research/ws-1/obj-1/survey",
		Override: ApproachQualitative,
	})
	if out.Position != NoPosition {
		t.Fatalf("position = %+v, want %+v", out.Position, NoPosition)
	}
	if idx := stepIndex(out.Steps, StepSurveys); idx != -1 {
		t.Fatalf("surveys step visible at %d under qualitative", idx)
	}
}

func TestResolvePositionAlwaysIndexesReturnedSteps(t *testing.T) {
	paths := []string{
		"",
		"/",
		"/research",
		"/research/ws-1",
		"/research/ws-1/add",
		"/research/ws-1/obj-1",
		"/research/ws-1/obj-1/objective",
		"/research/ws-1/obj-1/persona",
		"/research/ws-1/obj-1/depth-interview",
		"/research/ws-1/obj-1/depth-interview/guide",
		"/research/ws-1/obj-1/depth-interview/sessions",
		"/research/ws-1/obj-1/survey",
		"/research/ws-1/obj-1/survey/questionnaire",
		"/research/ws-1/obj-1/survey/responses",
		"/research/ws-1/obj-1/results",
	}
	overrides := []Approach{ApproachUnset, ApproachQualitative, ApproachQuantitative, ApproachBoth}
	for _, path := range paths {
		for _, override := range overrides {
			out := Resolve(ResolveInput{Path: path, Override: override, Store: newFakeStore()})
			if out.Position.Main == -1 {
				continue
			}
			if out.Position.Main < 0 || out.Position.Main >= len(out.Steps) {
				t.Fatalf("path %q override %q: main %d out of range of %d steps",
					path, override, out.Position.Main, len(out.Steps))
			}
			step := out.Steps[out.Position.Main]
			if out.Position.Sub >= len(step.SubSteps) {
				t.Fatalf("path %q override %q: sub %d out of range of %d sub-steps",
					path, override, out.Position.Sub, len(step.SubSteps))
			}
		}
	}
}

func TestResolveSubStepJumpPaths(t *testing.T) {
	out := Resolve(ResolveInput{
		Path:     "/research/ws-1/obj-1/depth-interview/guide",
		Override: ApproachQualitative,
	})
	if out.Position.Sub != 0 {
		t.Fatalf("position.Sub = %d, want 0", out.Position.Sub)
	}
	step := out.Steps[out.Position.Main]
	wantJump := "/research/ws-1/obj-1/guide"
	if step.SubSteps[0].JumpPath != wantJump {
		t.Fatalf("jump path = %q, want %q", step.SubSteps[0].JumpPath, wantJump)
	}

	// Without identifiers, no jump target can be built.
	out = Resolve(ResolveInput{Path: "/guide", Override: ApproachQualitative})
	step = out.Steps[stepIndex(out.Steps, StepInterviews)]
	if step.SubSteps[0].JumpPath != "" {
		t.Fatalf("jump path without ids = %q, want empty", step.SubSteps[0].JumpPath)
	}
}

func TestParseApproach(t *testing.T) {
	cases := map[string]Approach{
		"qualitative":  ApproachQualitative,
		"QUANTITATIVE": ApproachQuantitative,
		" both ":       ApproachBoth,
		"mixed":        ApproachBoth,
		"":             ApproachUnset,
		"nonsense":     ApproachUnset,
	}
	for raw, want := range cases {
		if got := ParseApproach(raw); got != want {
			t.Fatalf("ParseApproach(%q) = %q, want %q", raw, got, want)
		}
	}
}
