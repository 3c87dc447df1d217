package wizard

// Step ids referenced by the path rules in resolver.go.
const (
	StepObjective  = "objective"
	StepPersona    = "persona"
	StepInterviews = "interviews"
	StepSurveys    = "surveys"
)

type SubStep struct {
	Label string `json:"label"`
	// Suffix is the path segment appended to the objective base path when
	// jumping to this sub-step.
	Suffix   string `json:"suffix"`
	JumpPath string `json:"jump_path,omitempty"`
}

type Step struct {
	ID        string    `json:"id"`
	Label     string    `json:"label"`
	Navigable bool      `json:"navigable"`
	SubSteps  []SubStep `json:"sub_steps,omitempty"`
}

// catalog returns a fresh copy of the static step list. The objective and
// persona steps are always visible; the methodology steps are filtered by
// the resolved approach in visibleSteps.
func catalog() []Step {
	return []Step{
		{ID: StepObjective, Label: "Define Objective"},
		{ID: StepPersona, Label: "Audience Persona"},
		{
			ID:    StepInterviews,
			Label: "Depth Interviews",
			SubSteps: []SubStep{
				{Label: "Discussion Guide", Suffix: "guide"},
				{Label: "Sessions", Suffix: "sessions"},
			},
		},
		{
			ID:    StepSurveys,
			Label: "Surveys",
			SubSteps: []SubStep{
				{Label: "Questionnaire", Suffix: "questionnaire"},
				{Label: "Responses", Suffix: "responses"},
			},
		},
	}
}
