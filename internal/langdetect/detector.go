// Package langdetect decides whether free text is English or Marathi using
// cheap deterministic heuristics. Detection never fails and never touches
// the network.
package langdetect

import (
	"strings"
	"unicode"

	"github.com/sumitmahankale/ShabdSetu/internal/language"
)

// Signal names the rule that produced a detection.
type Signal string

const (
	SignalDevanagari       Signal = "DEVANAGARI"
	SignalRomanizedLexicon Signal = "ROMANIZED_LEXICON"
	SignalStatistical      Signal = "STATISTICAL"
	SignalDefault          Signal = "DEFAULT"
)

const (
	devanagariFirst = 'ऀ'
	devanagariLast  = 'ॿ'

	defaultConfidence = 0.5
)

// romanizedClues are common Marathi words as typically written in Latin script.
var romanizedClues = map[string]struct{}{
	"namaskar": {}, "dhanyawad": {}, "dhanyabad": {}, "kasa": {}, "kase": {},
	"kuthe": {}, "kiti": {}, "pani": {}, "anna": {}, "madad": {},
	"hoye": {}, "nahi": {}, "aaj": {}, "udya": {}, "kal": {},
	"sakal": {}, "sandhya": {}, "ratri": {}, "jevan": {}, "kaam": {},
	"mitra": {}, "maaf": {}, "krupa": {}, "tumhi": {}, "majhe": {},
	"maza": {},
}

// Result is one detection verdict.
type Result struct {
	Language   language.Language `json:"language"`
	Confidence float64           `json:"confidence"`
	Signal     Signal            `json:"signal"`
}

// Refiner may raise confidence in an English default. It is never asked about
// text that contains Devanagari or romanized Marathi clues.
type Refiner interface {
	EnglishConfidence(text string) (float64, bool)
}

// Detector classifies text as EN or MR.
type Detector struct {
	refiner Refiner
}

type Option func(*Detector)

// WithRefiner attaches a statistical refiner for the default branch.
func WithRefiner(r Refiner) Option {
	return func(d *Detector) {
		d.refiner = r
	}
}

func New(opts ...Option) *Detector {
	d := &Detector{}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Detect applies, in order: the Devanagari script test, the romanized lexicon
// test, and the English default.
func (d *Detector) Detect(text string) Result {
	if ratio, ok := devanagariRatio(text); ok {
		return Result{
			Language:   language.MR,
			Confidence: min(1.0, 0.95+0.05*ratio),
			Signal:     SignalDevanagari,
		}
	}

	tokens := Tokenize(text)
	if len(tokens) > 0 {
		hits := 0
		for _, token := range tokens {
			if IsRomanizedClue(token) {
				hits++
			}
		}
		if hits >= max(1, len(tokens)/3) {
			ratio := float64(hits) / float64(len(tokens))
			return Result{
				Language:   language.MR,
				Confidence: min(0.95, 0.5+0.5*ratio),
				Signal:     SignalRomanizedLexicon,
			}
		}
	}

	if d != nil && d.refiner != nil && len(tokens) > 0 {
		if confidence, ok := d.refiner.EnglishConfidence(text); ok && confidence >= defaultConfidence {
			return Result{
				Language:   language.EN,
				Confidence: min(1.0, confidence),
				Signal:     SignalStatistical,
			}
		}
	}

	return Result{
		Language:   language.EN,
		Confidence: defaultConfidence,
		Signal:     SignalDefault,
	}
}

// ContainsDevanagari reports whether any rune falls in U+0900..U+097F.
func ContainsDevanagari(text string) bool {
	for _, r := range text {
		if isDevanagari(r) {
			return true
		}
	}
	return false
}

// Tokenize splits on anything that is not a letter or digit and lower-cases.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// IsRomanizedClue reports whether token is in the romanized Marathi word list.
func IsRomanizedClue(token string) bool {
	_, ok := romanizedClues[strings.ToLower(token)]
	return ok
}

// devanagariRatio returns the share of Devanagari runes among letters and
// whether any Devanagari rune was present at all.
func devanagariRatio(text string) (float64, bool) {
	letters, deva := 0, 0
	for _, r := range text {
		switch {
		case isDevanagari(r):
			deva++
			letters++
		case unicode.IsLetter(r):
			letters++
		}
	}
	if deva == 0 {
		return 0, false
	}
	return float64(deva) / float64(letters), true
}

func isDevanagari(r rune) bool {
	return r >= devanagariFirst && r <= devanagariLast
}
