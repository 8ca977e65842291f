package translation

import (
	"strings"
	"unicode/utf8"

	"github.com/sumitmahankale/ShabdSetu/internal/langdetect"
	"github.com/sumitmahankale/ShabdSetu/internal/language"
)

// checkOutput rejects empty output, echoes of the input, and output in the
// wrong script for the target language.
func checkOutput(provider string, req ProviderRequest, output string) error {
	trimmed := strings.TrimSpace(output)
	if trimmed == "" {
		return newProviderError(provider, KindNotFound, "empty translation")
	}
	if strings.EqualFold(trimmed, strings.TrimSpace(req.Text)) {
		return newProviderError(provider, KindNotFound, "translation echoes input")
	}

	switch req.Target {
	case language.MR:
		if !langdetect.ContainsDevanagari(trimmed) {
			return newProviderError(provider, KindMalformed, "marathi output has no devanagari")
		}
	case language.EN:
		nonASCII := 0
		for _, r := range trimmed {
			if r > 0x7f {
				nonASCII++
			}
		}
		if nonASCII > max(2, utf8.RuneCountInString(trimmed)/3) {
			return newProviderError(provider, KindMalformed, "english output has %d non-ascii runes", nonASCII)
		}
	}
	return nil
}

// isGarbled reports text made only of question marks or replacement runes,
// which is what mis-encoded Devanagari usually arrives as.
func isGarbled(text string) bool {
	seen := false
	for _, r := range text {
		switch {
		case r == '?' || r == utf8.RuneError:
			seen = true
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
		default:
			return false
		}
	}
	return seen
}
