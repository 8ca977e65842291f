package translation

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
)

// BreakerSettings configures the per-provider circuit breaker. A zero
// FailureThreshold disables breaking.
type BreakerSettings struct {
	FailureThreshold uint32
	OpenTimeout      time.Duration
}

func (s BreakerSettings) enabled() bool {
	return s.FailureThreshold > 0
}

// breakerProvider stops calling a provider that keeps timing out, refusing
// work, or failing at the transport level. Bad answers do not count.
type breakerProvider struct {
	inner Provider
	cb    *gobreaker.CircuitBreaker
}

func withBreaker(p Provider, settings BreakerSettings, logger zerolog.Logger) Provider {
	if !settings.enabled() || isOffline(p) {
		return p
	}
	name := p.Name()
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     settings.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= settings.FailureThreshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || !isTransportKind(KindOf(err))
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().
				Str("provider", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("provider circuit state changed")
		},
	})
	return &breakerProvider{inner: p, cb: cb}
}

func (b *breakerProvider) Name() string {
	return b.inner.Name()
}

func (b *breakerProvider) State() gobreaker.State {
	return b.cb.State()
}

func (b *breakerProvider) Translate(ctx context.Context, req ProviderRequest) (Outcome, error) {
	out, err := b.cb.Execute(func() (interface{}, error) {
		return b.inner.Translate(ctx, req)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return Outcome{}, &ProviderError{Provider: b.Name(), Kind: KindCircuitOpen, Err: err}
	}
	if err != nil {
		return Outcome{}, err
	}
	outcome, _ := out.(Outcome)
	return outcome, nil
}
