package translation

import (
	"errors"
	"fmt"
	"time"

	"github.com/sumitmahankale/ShabdSetu/internal/language"
)

const (
	// UnavailableText is returned as the translation when every tier failed.
	UnavailableText = "Translation unavailable. Please try again."
	// MethodNone marks a result that no tier produced.
	MethodNone = "none"
)

// ErrInvalidInput is the only error Orchestrator.Translate returns.
var ErrInvalidInput = errors.New("invalid translation input")

// Request is one caller translation request.
type Request struct {
	Text   string
	Source language.Hint
	Target language.Hint
}

// Attempt records one tier call. An empty ErrorKind on a failed attempt
// means the provider answered with a miss.
type Attempt struct {
	Provider  string        `json:"provider"`
	Succeeded bool          `json:"succeeded"`
	Latency   time.Duration `json:"-"`
	LatencyMs int64         `json:"latency_ms"`
	ErrorKind ErrorKind     `json:"error_kind,omitempty"`
}

// String renders the attempt as provider:outcome:latency, for example
// "mymemory:TIMEOUT:8000ms".
func (a Attempt) String() string {
	outcome := "ok"
	if !a.Succeeded {
		outcome = string(a.ErrorKind)
		if outcome == "" {
			outcome = "miss"
		}
	}
	return fmt.Sprintf("%s:%s:%dms", a.Provider, outcome, a.LatencyMs)
}

// Result is the answer to one Request. Source and Target always differ.
type Result struct {
	OriginalText   string            `json:"original_text"`
	TranslatedText string            `json:"translated_text"`
	Source         language.Language `json:"source_language"`
	Target         language.Language `json:"target_language"`
	Method         string            `json:"translation_method"`
	Attempts       []Attempt         `json:"attempts,omitempty"`
	Cached         bool              `json:"cached"`
}

// AttemptStrings renders every attempt with Attempt.String.
func (r Result) AttemptStrings() []string {
	out := make([]string, 0, len(r.Attempts))
	for _, attempt := range r.Attempts {
		out = append(out, attempt.String())
	}
	return out
}

// IsUnavailable reports whether r is the total-failure sentinel.
func IsUnavailable(r Result) bool {
	return r.Method == MethodNone && r.TranslatedText == UnavailableText
}

func invalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
