package persona

import (
	"strconv"
	"strings"
)

// TraitLayer is one independently-sourced attribute map describing a
// persona. Values are scalars or lists; nested maps are structured
// sub-objects that the reconciler carries through untouched.
type TraitLayer map[string]any

// Meaningful reports whether v carries displayable content. Empty strings,
// nils and empty lists are not meaningful.
func Meaningful(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(x) != ""
	case []any:
		return len(x) > 0
	case []string:
		return len(x) > 0
	case map[string]any:
		return len(x) > 0
	default:
		return true
	}
}

// Merge layers lowest authority first. A key is overwritten only when the
// higher layer's value is meaningful, so a partially filled manual edit can
// never blank out fields it did not touch. Merging is associative: merging a
// prefix first and then the rest yields the same result as one pass.
func Merge(layers ...TraitLayer) TraitLayer {
	out := TraitLayer{}
	for _, layer := range layers {
		for key, value := range layer {
			if !Meaningful(value) {
				continue
			}
			out[key] = value
		}
	}
	return out
}

// DisplayValue renders a merged value as a single display string. Lists are
// comma-joined; everything else is formatted plainly.
func DisplayValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case []string:
		return strings.Join(trimAll(x), ", ")
	case []any:
		parts := make([]string, 0, len(x))
		for _, item := range x {
			if s := DisplayValue(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	default:
		return ""
	}
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if t := strings.TrimSpace(v); t != "" {
			out = append(out, t)
		}
	}
	return out
}
