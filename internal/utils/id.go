package utils

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// NewID builds a readable identifier "<prefix>-<slug>-<suffix>": the slug
// comes from the seed text (a section title, a question) and the suffix is
// random, so renames keep old ids and collisions cannot occur.
func NewID(prefix, seed string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	slug := slugifyASCII(seed)
	if len(slug) > 24 {
		slug = strings.Trim(slug[:24], "-")
	}
	if slug == "" {
		return prefix + "-" + suffix
	}
	return prefix + "-" + slug + "-" + suffix
}

func slugifyASCII(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}
	var b strings.Builder
	lastDash := false
	for _, r := range s {
		switch {
		case r < 128 && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}
