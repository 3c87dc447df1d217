package persona

import "sort"

// aliasTable maps historical and source-specific key spellings to one
// canonical key. The generated preview payloads, the trait rows and manual
// edits have drifted apart over time; this table is the single place that
// reconciles the spellings.
var aliasTable = map[string]string{
	"age_range":             "age",
	"persona_age":           "age",
	"job":                   "occupation",
	"job_title":             "occupation",
	"profession":            "occupation",
	"city":                  "location",
	"region":                "location",
	"residence":             "location",
	"family_status":         "household",
	"household_composition": "household",
	"media_habits":          "information_sources",
	"preferred_channels":    "information_sources",
	"pain_points":           "frustrations",
	"challenges":            "frustrations",
	"motivations":           "goals",
	"needs":                 "goals",
	"bio":                   "summary",
	"description":           "summary",
}

// CanonicalKey maps a raw source key to its canonical spelling. Keys without
// an alias entry are already canonical.
func CanonicalKey(key string) string {
	if canonical, ok := aliasTable[key]; ok {
		return canonical
	}
	return key
}

// Canonicalize rewrites a merged trait set onto canonical keys. A canonical
// spelling with a meaningful value always wins over an alias; between
// competing aliases the lexicographically first raw key wins, so the result
// is deterministic for a given input.
func Canonicalize(set TraitLayer) TraitLayer {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := TraitLayer{}
	for _, key := range keys {
		canonical := CanonicalKey(key)
		if canonical == key || !Meaningful(set[key]) {
			continue
		}
		if existing, ok := out[canonical]; ok && Meaningful(existing) {
			continue
		}
		out[canonical] = set[key]
	}
	for _, key := range keys {
		if CanonicalKey(key) != key || !Meaningful(set[key]) {
			continue
		}
		out[key] = set[key]
	}
	return out
}
