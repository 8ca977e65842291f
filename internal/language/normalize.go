package language

import (
	"strings"

	xlanguage "golang.org/x/text/language"
)

// NormalizeTag normalizes a language tag to lowercase and "-" separators.
// Returns an empty string when the value is blank or contains invalid characters.
func NormalizeTag(raw string) string {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return ""
	}

	parts := strings.FieldsFunc(trimmed, func(r rune) bool {
		return r == '-' || r == '_'
	})
	if len(parts) == 0 {
		return ""
	}
	for _, part := range parts {
		if !isAlphaNumLower(part) {
			return ""
		}
	}
	return strings.Join(parts, "-")
}

// NormalizeCode returns the canonical primary language subtag, for example
// "en" from "en-US" and "mr" from "mar".
func NormalizeCode(raw string) string {
	tag := NormalizeTag(raw)
	if tag == "" {
		return ""
	}

	parsed, err := xlanguage.Parse(tag)
	if err != nil {
		if dash := strings.IndexByte(tag, '-'); dash >= 0 {
			return tag[:dash]
		}
		return tag
	}
	base, _ := parsed.Base()
	return base.String()
}

func isAlphaNumLower(value string) bool {
	for _, r := range value {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}
