package persona

import (
	"reflect"
	"testing"
)

func TestMergeHigherLayerWinsOnlyWhenMeaningful(t *testing.T) {
	got := Merge(
		TraitLayer{"name": "A", "age": ""},
		TraitLayer{"age": "30"},
		TraitLayer{"name": ""},
	)
	want := TraitLayer{"name": "A", "age": "30"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Merge() = %v, want %v", got, want)
	}
}

func TestMergeNeverErases(t *testing.T) {
	lower := TraitLayer{
		"occupation": "teacher",
		"goals":      []string{"save time"},
	}
	higher := TraitLayer{
		"occupation": "",
		"goals":      []string{},
		"quote":      nil,
	}
	got := Merge(lower, higher)
	if got["occupation"] != "teacher" {
		t.Fatalf("occupation = %v, want teacher", got["occupation"])
	}
	if !reflect.DeepEqual(got["goals"], []string{"save time"}) {
		t.Fatalf("goals = %v, want [save time]", got["goals"])
	}
	if _, ok := got["quote"]; ok {
		t.Fatalf("quote surfaced from a nil value")
	}
}

func TestMergeIsAssociativeAndIdempotent(t *testing.T) {
	layers := []TraitLayer{
		{"name": "A", "age": "", "city": "Kyoto"},
		{"age": "30", "hobby": "running"},
		{"name": "", "city": "Osaka", "budget": []any{"low"}},
		{"hobby": ""},
	}
	full := Merge(layers...)
	for k := 1; k < len(layers); k++ {
		prefix := Merge(layers[:k]...)
		split := Merge(append([]TraitLayer{prefix}, layers[k:]...)...)
		if !reflect.DeepEqual(split, full) {
			t.Fatalf("split at %d: %v, want %v", k, split, full)
		}
	}
	if again := Merge(layers...); !reflect.DeepEqual(again, full) {
		t.Fatalf("repeated merge differs: %v vs %v", again, full)
	}
}

func TestMeaningful(t *testing.T) {
	cases := []struct {
		value any
		want  bool
	}{
		{nil, false},
		{"", false},
		{"  ", false},
		{"x", true},
		{[]any{}, false},
		{[]any{"a"}, true},
		{[]string{}, false},
		{[]string{"a"}, true},
		{0, true},
		{false, true},
	}
	for _, tc := range cases {
		if got := Meaningful(tc.value); got != tc.want {
			t.Fatalf("Meaningful(%v) = %v, want %v", tc.value, got, tc.want)
		}
	}
}

func TestCanonicalizeMapsAliases(t *testing.T) {
	got := Canonicalize(TraitLayer{
		"job_title": "nurse",
		"age_range": "25-34",
	})
	if got["occupation"] != "nurse" {
		t.Fatalf("occupation = %v, want nurse", got["occupation"])
	}
	if got["age"] != "25-34" {
		t.Fatalf("age = %v, want 25-34", got["age"])
	}
	if _, ok := got["job_title"]; ok {
		t.Fatalf("raw alias key survived canonicalization")
	}
}

func TestCanonicalizePrefersCanonicalSpelling(t *testing.T) {
	got := Canonicalize(TraitLayer{
		"occupation": "engineer",
		"job_title":  "nurse",
	})
	if got["occupation"] != "engineer" {
		t.Fatalf("occupation = %v, want canonical value to win", got["occupation"])
	}
}

func TestDisplayValueJoinsLists(t *testing.T) {
	if got := DisplayValue([]any{"a", "b", ""}); got != "a, b" {
		t.Fatalf("DisplayValue = %q, want %q", got, "a, b")
	}
	if got := DisplayValue([]string{" x ", "y"}); got != "x, y" {
		t.Fatalf("DisplayValue = %q, want %q", got, "x, y")
	}
	if got := DisplayValue(float64(42)); got != "42" {
		t.Fatalf("DisplayValue = %q, want 42", got)
	}
}

func TestAdditionalTraitsProjection(t *testing.T) {
	merged := TraitLayer{
		"persona_id":    "p-1",
		"name":          "Aiko",
		"coffee_budget": "under 500 yen",
		"weekend_plans": []any{"hiking", "reading"},
		"empty_field":   "",
		"nested":        map[string]any{"a": 1},
	}
	got := AdditionalTraits(merged)
	want := []Trait{
		{Key: "coffee_budget", Label: "Coffee Budget", Value: "under 500 yen"},
		{Key: "weekend_plans", Label: "Weekend Plans", Value: "hiking, reading"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("AdditionalTraits() = %v, want %v", got, want)
	}
}

func TestAdditionalTraitsExcludesAliasedReservedKeys(t *testing.T) {
	// job_title canonicalizes to occupation, which is reserved.
	got := AdditionalTraits(TraitLayer{"job_title": "nurse"})
	if len(got) != 0 {
		t.Fatalf("AdditionalTraits() = %v, want empty", got)
	}
}

func TestTitleLabel(t *testing.T) {
	cases := map[string]string{
		"coffee_budget":     "Coffee Budget",
		"preferred-snack":   "Preferred Snack",
		"single":            "Single",
		"double__underline": "Double Underline",
	}
	for key, want := range cases {
		if got := TitleLabel(key); got != want {
			t.Fatalf("TitleLabel(%q) = %q, want %q", key, got, want)
		}
	}
}
