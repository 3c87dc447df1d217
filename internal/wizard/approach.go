package wizard

import "strings"

// Approach is the research methodology resolved for one objective.
// The zero value means the methodology has not been chosen yet.
type Approach string

const (
	ApproachUnset        Approach = ""
	ApproachQualitative  Approach = "qualitative"
	ApproachQuantitative Approach = "quantitative"
	ApproachBoth         Approach = "both"
)

// ParseApproach normalizes the spellings that show up across the exploration
// entity, navigation state and persisted rows. Unknown input maps to unset.
func ParseApproach(raw string) Approach {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "qualitative", "qual", "interview", "interviews":
		return ApproachQualitative
	case "quantitative", "quant", "survey", "surveys":
		return ApproachQuantitative
	case "both", "mixed", "qualitative_and_quantitative":
		return ApproachBoth
	}
	return ApproachUnset
}

func (a Approach) Qualitative() bool {
	return a == ApproachQualitative || a == ApproachBoth
}

func (a Approach) Quantitative() bool {
	return a == ApproachQuantitative || a == ApproachBoth
}

// ApproachStore persists the last resolved approach per objective. Once a
// non-unset value is stored for an objective it is never reset to unset;
// SetApproach implementations must ignore unset writes.
type ApproachStore interface {
	Approach(objectiveID string) (Approach, bool)
	SetApproach(objectiveID string, approach Approach)
}
