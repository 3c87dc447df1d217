package guide

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"explora/internal/llmclient"
	"explora/internal/util/jsonutil"
)

// Verdict is a thematic validation outcome. A negative verdict is a normal
// response, not an error; transport failures are returned as errors.
type Verdict struct {
	Consistent bool   `json:"consistent"`
	Reason     string `json:"reason,omitempty"`
}

// Validator judges whether guide content stays on the objective's theme.
type Validator interface {
	Check(ctx context.Context, topic, content string) (Verdict, error)
}

const thematicPrompt = `You review a research discussion guide. Decide whether
the proposed content is thematically consistent with the research objective.
Respond with JSON only: {"consistent": true|false, "reason": "short reason,
only when inconsistent"}.`

// ThematicValidator asks an LLM for the verdict.
type ThematicValidator struct {
	cli llmclient.Client
}

func NewThematicValidator(cli llmclient.Client) *ThematicValidator {
	return &ThematicValidator{cli: cli}
}

func (v *ThematicValidator) Check(ctx context.Context, topic, content string) (Verdict, error) {
	raw, err := v.cli.GenerateJSON(ctx, thematicPrompt, map[string]any{
		"objective": topic,
		"content":   content,
	})
	if err != nil {
		return Verdict{}, fmt.Errorf("thematic check: %w", err)
	}
	var verdict Verdict
	if err := jsonutil.UnmarshalFlex(raw, &verdict); err != nil {
		return Verdict{}, fmt.Errorf("thematic check: %w", llmclient.ErrInvalidJSON)
	}
	return verdict, nil
}

// OverlapValidator is the offline fallback: content passes when it shares at
// least one significant word with the objective topic. Short fragments and
// empty topics always pass; this is a coarse tripwire, not a judge.
type OverlapValidator struct {
	MinWordLen int
}

func NewOverlapValidator() *OverlapValidator {
	return &OverlapValidator{MinWordLen: 4}
}

func (v *OverlapValidator) Check(_ context.Context, topic, content string) (Verdict, error) {
	minLen := v.MinWordLen
	if minLen <= 0 {
		minLen = 4
	}
	topicWords := significantWords(topic, minLen)
	contentWords := significantWords(content, minLen)
	if len(topicWords) == 0 || len(contentWords) < 3 {
		return Verdict{Consistent: true}, nil
	}
	for word := range contentWords {
		if _, ok := topicWords[word]; ok {
			return Verdict{Consistent: true}, nil
		}
	}
	return Verdict{
		Consistent: false,
		Reason:     "content shares no theme words with the research objective",
	}, nil
}

func significantWords(text string, minLen int) map[string]struct{} {
	out := make(map[string]struct{})
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, word := range words {
		if len(word) >= minLen {
			out[word] = struct{}{}
		}
	}
	return out
}
