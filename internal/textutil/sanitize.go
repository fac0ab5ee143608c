package textutil

import (
	"strings"
	"unicode"
)

// SanitizeFileName makes name safe as a single path element. Path separators,
// colons, and asterisks become dashes; quotes, wildcards, pipes, angle
// brackets, and control characters are dropped.
func SanitizeFileName(name string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(name) {
		switch {
		case strings.ContainsRune(`/\:*`, r):
			b.WriteByte('-')
		case strings.ContainsRune(`?"<>|`, r), unicode.IsControl(r):
		default:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// SanitizeToken lowercases value, strips accents, and replaces anything other
// than ASCII letters, digits, and hyphens with underscores. Empty results
// become "unknown".
func SanitizeToken(value string) string {
	folded := strings.ToLower(StripAccents(strings.TrimSpace(value)))
	out := strings.Trim(strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return '_'
	}, folded), "_-")
	if out == "" {
		return "unknown"
	}
	return out
}
