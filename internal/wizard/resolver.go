package wizard

import "strings"

// PathMarker is the segment that precedes "<workspaceID>/<objectiveID>" in
// authoring paths, e.g. /research/ws-1/obj-9/persona.
const PathMarker = "research"

// NewObjectiveSentinel is the objective-id segment used before the objective
// entity exists. It is treated as an absent identifier.
const NewObjectiveSentinel = "add"

// Position locates the user inside the filtered step list. Main indexes the
// Steps slice returned by the same Resolve call; Sub indexes the step's
// SubSteps. -1 means no match.
type Position struct {
	Main int `json:"main"`
	Sub  int `json:"sub"`
}

var NoPosition = Position{Main: -1, Sub: -1}

type ResolveInput struct {
	Path             string
	RouteWorkspaceID string
	RouteObjectiveID string

	// Override is the approach chosen by the navigation transition that led
	// here, if any. It wins over every other source.
	Override Approach

	// RemoteApproach is research_approach from the exploration entity, or ""
	// when the entity is absent or not loaded yet.
	RemoteApproach string

	// Store may be nil; resolution then falls back to path inference.
	Store ApproachStore
}

type ResolveOutput struct {
	Position    Position `json:"position"`
	Approach    Approach `json:"approach"`
	Steps       []Step   `json:"steps"`
	WorkspaceID string   `json:"workspace_id,omitempty"`
	ObjectiveID string   `json:"objective_id,omitempty"`
}

// Resolve derives the wizard position from the current location, the
// persisted approach and the remote exploration state. It is total: any
// combination of inputs yields an answer, unresolvable fields default to
// unset and (-1,-1).
func Resolve(in ResolveInput) ResolveOutput {
	workspaceID, objectiveID := Identifiers(in.Path, in.RouteWorkspaceID, in.RouteObjectiveID)
	approach := resolveApproach(in, objectiveID)
	steps := visibleSteps(approach, workspaceID, objectiveID)
	return ResolveOutput{
		Position:    classify(in.Path, steps),
		Approach:    approach,
		Steps:       steps,
		WorkspaceID: workspaceID,
		ObjectiveID: objectiveID,
	}
}

// Identifiers extracts the workspace and objective ids, preferring route
// parameters and falling back to the two segments after the path marker.
func Identifiers(path, routeWorkspaceID, routeObjectiveID string) (string, string) {
	workspaceID := strings.TrimSpace(routeWorkspaceID)
	objectiveID := strings.TrimSpace(routeObjectiveID)
	if workspaceID == "" || objectiveID == "" {
		pathWS, pathObj := idsFromPath(path)
		if workspaceID == "" {
			workspaceID = pathWS
		}
		if objectiveID == "" {
			objectiveID = pathObj
		}
	}
	if objectiveID == NewObjectiveSentinel {
		objectiveID = ""
	}
	return workspaceID, objectiveID
}

func idsFromPath(path string) (string, string) {
	segments := splitPath(path)
	for i, segment := range segments {
		if segment != PathMarker {
			continue
		}
		var workspaceID, objectiveID string
		if i+1 < len(segments) {
			workspaceID = segments[i+1]
		}
		if i+2 < len(segments) {
			objectiveID = segments[i+2]
		}
		return workspaceID, objectiveID
	}
	return "", ""
}

func splitPath(path string) []string {
	raw := strings.Split(strings.ToLower(strings.TrimSpace(path)), "/")
	out := make([]string, 0, len(raw))
	for _, segment := range raw {
		if segment == "" {
			continue
		}
		out = append(out, segment)
	}
	return out
}

// resolveApproach applies the precedence order: explicit override, remote
// exploration value (written through to the store), cached value, path
// keyword inference, unset. Only the remote branch writes to the store.
func resolveApproach(in ResolveInput, objectiveID string) Approach {
	if in.Override != ApproachUnset {
		return in.Override
	}
	if remote := ParseApproach(in.RemoteApproach); remote != ApproachUnset {
		if in.Store != nil && objectiveID != "" {
			in.Store.SetApproach(objectiveID, remote)
		}
		return remote
	}
	if in.Store != nil && objectiveID != "" {
		if cached, ok := in.Store.Approach(objectiveID); ok && cached != ApproachUnset {
			return cached
		}
	}
	return approachFromPath(in.Path)
}

func approachFromPath(path string) Approach {
	p := strings.ToLower(path)
	switch {
	case strings.Contains(p, "depth-interview") || strings.Contains(p, "interview"):
		return ApproachQualitative
	case strings.Contains(p, "survey") || strings.Contains(p, "questionnaire"):
		return ApproachQuantitative
	}
	return ApproachUnset
}

func visibleSteps(approach Approach, workspaceID, objectiveID string) []Step {
	navigable := workspaceID != "" && objectiveID != ""
	base := ""
	if navigable {
		base = "/" + PathMarker + "/" + workspaceID + "/" + objectiveID + "/"
	}
	steps := make([]Step, 0, 4)
	for _, step := range catalog() {
		switch step.ID {
		case StepInterviews:
			if !approach.Qualitative() {
				continue
			}
		case StepSurveys:
			if !approach.Quantitative() {
				continue
			}
		}
		step.Navigable = navigable
		for i := range step.SubSteps {
			if base != "" {
				step.SubSteps[i].JumpPath = base + step.SubSteps[i].Suffix
			}
		}
		steps = append(steps, step)
	}
	return steps
}

type pathRule struct {
	keyword string
	stepID  string
	sub     int
}

// pathRules are checked in order, most specific keyword first; the first
// rule whose step is visible under the resolved approach wins.
var pathRules = []pathRule{
	{"discussion-guide", StepInterviews, 0},
	{"guide", StepInterviews, 0},
	{"interview-session", StepInterviews, 1},
	{"sessions", StepInterviews, 1},
	{"depth-interview", StepInterviews, -1},
	{"interview", StepInterviews, -1},
	{"questionnaire", StepSurveys, 0},
	{"responses", StepSurveys, 1},
	{"survey", StepSurveys, -1},
	{"persona", StepPersona, -1},
	{"objective", StepObjective, -1},
	{"/" + NewObjectiveSentinel, StepObjective, -1},
}

func classify(path string, steps []Step) Position {
	p := strings.ToLower(strings.TrimSpace(path))
	if p == "" {
		return NoPosition
	}
	for _, rule := range pathRules {
		if !strings.Contains(p, rule.keyword) {
			continue
		}
		main := stepIndex(steps, rule.stepID)
		if main < 0 {
			// The path names a step the resolved approach hides.
			continue
		}
		return Position{Main: main, Sub: rule.sub}
	}
	return NoPosition
}

func stepIndex(steps []Step, stepID string) int {
	for i, step := range steps {
		if step.ID == stepID {
			return i
		}
	}
	return -1
}
