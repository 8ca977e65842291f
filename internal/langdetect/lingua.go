package langdetect

import (
	"strings"
	"sync"
	"unicode"

	lingua "github.com/pemistahl/lingua-go"
)

const minLinguaLetters = 6

// LinguaRefiner scores English likelihood with a lingua model restricted to
// English, Marathi and Hindi. The model is built on first use.
type LinguaRefiner struct {
	once     sync.Once
	detector lingua.LanguageDetector
}

func NewLinguaRefiner() *LinguaRefiner {
	return &LinguaRefiner{}
}

func (r *LinguaRefiner) EnglishConfidence(text string) (float64, bool) {
	sample := strings.TrimSpace(text)
	if sample == "" {
		return 0, false
	}

	letterCount := 0
	for _, ch := range sample {
		if unicode.IsLetter(ch) {
			letterCount++
		}
	}
	if letterCount < minLinguaLetters {
		return 0, false
	}

	confidence := r.model().ComputeLanguageConfidence(sample, lingua.English)
	return confidence, true
}

func (r *LinguaRefiner) model() lingua.LanguageDetector {
	r.once.Do(func() {
		r.detector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(lingua.English, lingua.Marathi, lingua.Hindi).
			WithPreloadedLanguageModels().
			Build()
	})
	return r.detector
}
