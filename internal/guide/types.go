package guide

// Question is one prompt inside a discussion guide section. Order within a
// section is presentation-significant and preserved by every store.
type Question struct {
	QuestionID string `json:"question_id"`
	Text       string `json:"text"`
}

// Section groups ordered questions under a title.
type Section struct {
	SectionID string     `json:"section_id"`
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

type MutationKind string

const (
	CreateSection  MutationKind = "create_section"
	UpdateSection  MutationKind = "update_section"
	DeleteSection  MutationKind = "delete_section"
	CreateQuestion MutationKind = "create_question"
	UpdateQuestion MutationKind = "update_question"
	DeleteQuestion MutationKind = "delete_question"
)

func (k MutationKind) Valid() bool {
	switch k {
	case CreateSection, UpdateSection, DeleteSection,
		CreateQuestion, UpdateQuestion, DeleteQuestion:
		return true
	}
	return false
}

// ContentBearing reports whether the mutation carries user-authored text
// that thematic validation applies to. Deletes carry none.
func (k MutationKind) ContentBearing() bool {
	switch k {
	case CreateSection, UpdateSection, CreateQuestion, UpdateQuestion:
		return true
	}
	return false
}

// NeedsTarget reports whether the mutation addresses an existing entity.
func (k MutationKind) NeedsTarget() bool {
	return k != CreateSection
}

// MutationRequest is the uniform envelope shared by all six edit kinds.
// TargetID is the section or question being edited, or the parent section
// for create_question. Payload is the new title or question text.
type MutationRequest struct {
	Kind        MutationKind `json:"kind"`
	TargetID    string       `json:"target_id,omitempty"`
	Payload     string       `json:"payload,omitempty"`
	ForceInsert bool         `json:"force_insert"`
}

type ValidationStatus string

const (
	ValidationOK     ValidationStatus = "ok"
	ValidationFailed ValidationStatus = "failed"
)

// MutationResult is the wire contract every mutation returns. Reason is set
// only when ValidationStatus is failed; Sections only on a committed change.
type MutationResult struct {
	ValidationStatus ValidationStatus `json:"validation_status"`
	Reason           string           `json:"reason,omitempty"`
	Sections         []Section        `json:"sections,omitempty"`
}

// CloneSections deep-copies a guide so cached copies cannot alias caller
// slices.
func CloneSections(sections []Section) []Section {
	if sections == nil {
		return nil
	}
	out := make([]Section, len(sections))
	for i, section := range sections {
		cloned := section
		cloned.Questions = append([]Question(nil), section.Questions...)
		out[i] = cloned
	}
	return out
}
