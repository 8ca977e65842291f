// Package language models the two languages the service translates between
// and normalizes caller-supplied language hints into them.
package language

import (
	"errors"
	"fmt"
	"strings"
)

// Language is one side of the English <-> Marathi pair.
type Language string

const (
	EN Language = "en"
	MR Language = "mr"
)

var ErrUnsupportedLanguage = errors.New("unsupported language")

// Code returns the ISO 639-1 code.
func (l Language) Code() string {
	return string(l)
}

// Name returns the English display name.
func (l Language) Name() string {
	switch l {
	case EN:
		return "English"
	case MR:
		return "Marathi"
	default:
		return strings.ToUpper(string(l))
	}
}

func (l Language) Valid() bool {
	return l == EN || l == MR
}

// Complement returns the other language of the pair. Unknown values map to EN.
func (l Language) Complement() Language {
	if l == EN {
		return MR
	}
	return EN
}

func (l Language) String() string {
	return string(l)
}

// Hint is a caller preference: either a concrete language or auto.
// The zero value is auto.
type Hint struct {
	lang Language
}

// Auto asks the service to decide.
var Auto = Hint{}

// Explicit wraps a concrete language.
func Explicit(l Language) Hint {
	return Hint{lang: l}
}

func (h Hint) IsAuto() bool {
	return h.lang == ""
}

// Language returns the concrete language and false for auto.
func (h Hint) Language() (Language, bool) {
	if h.IsAuto() {
		return "", false
	}
	return h.lang, true
}

func (h Hint) String() string {
	if h.IsAuto() {
		return "auto"
	}
	return h.lang.Code()
}

// ParseHint accepts "auto", display names ("English", "Marathi", "मराठी")
// and language tags ("en", "mr-IN", "mar").
func ParseHint(raw string) (Hint, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	switch value {
	case "", "auto", "detect":
		return Auto, nil
	case "english", "eng":
		return Explicit(EN), nil
	case "marathi", "मराठी":
		return Explicit(MR), nil
	}

	lang, err := Parse(value)
	if err != nil {
		return Auto, err
	}
	return Explicit(lang), nil
}

// Parse resolves a language tag to EN or MR.
func Parse(raw string) (Language, error) {
	code := NormalizeCode(raw)
	switch Language(code) {
	case EN:
		return EN, nil
	case MR:
		return MR, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, strings.TrimSpace(raw))
}
