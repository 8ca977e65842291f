package cache

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/sumitmahankale/ShabdSetu/internal/language"
)

// NormalizeText folds text into the form used for cache keys: NFC, trimmed,
// inner whitespace collapsed to single spaces, lower-cased.
func NormalizeText(text string) string {
	folded := norm.NFC.String(text)
	return strings.ToLower(strings.Join(strings.Fields(folded), " "))
}

// Key renders the cache key for one language pair, for example
// "good morning::en->mr".
func Key(text string, source, target language.Language) string {
	return NormalizeText(text) + "::" + source.Code() + "->" + target.Code()
}
