package translation

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/sumitmahankale/ShabdSetu/internal/language"
)

// Provider translates text for one language pair. A provider either returns a
// hit, a miss (Outcome.Hit false, nil error), or a *ProviderError.
type Provider interface {
	Name() string
	Translate(ctx context.Context, req ProviderRequest) (Outcome, error)
}

// offlineProvider is implemented by providers that never issue network calls.
type offlineProvider interface {
	Offline() bool
}

func isOffline(p Provider) bool {
	o, ok := p.(offlineProvider)
	return ok && o.Offline()
}

// ProviderRequest is one tier call.
type ProviderRequest struct {
	Text   string
	Source language.Language
	Target language.Language
}

// Outcome is what a provider produced.
type Outcome struct {
	Text string
	Hit  bool
}

// ErrorKind classifies provider failures.
type ErrorKind string

const (
	KindTimeout     ErrorKind = "TIMEOUT"
	KindRateLimited ErrorKind = "RATE_LIMITED"
	KindMalformed   ErrorKind = "MALFORMED_RESPONSE"
	KindNetwork     ErrorKind = "NETWORK"
	KindNotFound    ErrorKind = "NOT_FOUND"
	KindCircuitOpen ErrorKind = "CIRCUIT_OPEN"
)

// ProviderError is a classified provider failure.
type ProviderError struct {
	Provider string
	Kind     ErrorKind
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Provider, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Provider, e.Kind, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func newProviderError(provider string, kind ErrorKind, format string, args ...any) *ProviderError {
	return &ProviderError{
		Provider: provider,
		Kind:     kind,
		Err:      fmt.Errorf(format, args...),
	}
}

// KindOf classifies any error returned by a provider. Errors that are not
// ProviderErrors are treated as transport failures.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var providerErr *ProviderError
	if errors.As(err, &providerErr) {
		return providerErr.Kind
	}
	if isTimeout(err) {
		return KindTimeout
	}
	return KindNetwork
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// isTransportKind reports kinds that say the provider is unreachable or
// refusing work, as opposed to answering badly.
func isTransportKind(kind ErrorKind) bool {
	switch kind {
	case KindTimeout, KindRateLimited, KindNetwork:
		return true
	default:
		return false
	}
}
