package persona

import (
	"sort"
	"strings"
)

// reservedKeys are never surfaced as additional traits: identifiers, the
// core demographic and behavioral fields the surface renders through
// dedicated slots, and bookkeeping columns. An explicit denylist is safer
// than guessing which keys "look internal"; new reserved fields must be
// added here when the surface grows a dedicated slot for them.
var reservedKeys = map[string]struct{}{
	"id":                  {},
	"persona_id":          {},
	"objective_id":        {},
	"workspace_id":        {},
	"name":                {},
	"age":                 {},
	"gender":              {},
	"occupation":          {},
	"location":            {},
	"household":           {},
	"summary":             {},
	"quote":               {},
	"goals":               {},
	"frustrations":        {},
	"information_sources": {},
	"avatar_url":          {},
	"created_at":          {},
	"updated_at":          {},
}

// Trait is one displayable attribute of a persona.
type Trait struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// AdditionalTraits projects merged keys the client has no compiled
// knowledge of: every non-reserved key holding a meaningful scalar or list
// becomes a trait with a generated label. Nested sub-objects are skipped.
// The result is sorted by key so repeated projection is stable.
func AdditionalTraits(merged TraitLayer) []Trait {
	keys := make([]string, 0, len(merged))
	for key := range merged {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := make([]Trait, 0, len(keys))
	for _, key := range keys {
		canonical := CanonicalKey(key)
		if _, reserved := reservedKeys[canonical]; reserved {
			continue
		}
		value := merged[key]
		if _, nested := value.(map[string]any); nested {
			continue
		}
		display := DisplayValue(value)
		if display == "" {
			continue
		}
		out = append(out, Trait{
			Key:   key,
			Label: TitleLabel(key),
			Value: display,
		})
	}
	return out
}

// TitleLabel turns a snake_case key into Title Case words, e.g.
// "coffee_budget" -> "Coffee Budget".
func TitleLabel(key string) string {
	words := strings.FieldsFunc(strings.TrimSpace(key), func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
