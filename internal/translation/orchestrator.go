package translation

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sumitmahankale/ShabdSetu/internal/cache"
	"github.com/sumitmahankale/ShabdSetu/internal/langdetect"
	"github.com/sumitmahankale/ShabdSetu/internal/language"
	"github.com/sumitmahankale/ShabdSetu/internal/stats"
)

const storeTimeout = 2 * time.Second

// Cache is the in-memory result cache.
type Cache interface {
	Get(key string) (Result, bool)
	Put(key string, result Result)
}

// Detector picks the source language when both hints are auto.
type Detector interface {
	Detect(text string) langdetect.Result
}

// Orchestrator resolves languages, consults the caches and walks the tiers in
// order until one produces a usable translation.
type Orchestrator struct {
	registry *Registry
	detector Detector
	cache    Cache
	store    Store
	stats    *stats.Collector
	logger   zerolog.Logger
}

// Option configures optional Orchestrator collaborators.
type Option func(*Orchestrator)

// WithStore adds a persistent layer behind the memory cache.
func WithStore(store Store) Option {
	return func(o *Orchestrator) {
		o.store = store
	}
}

// WithStats records calls, hits and outcomes on collector.
func WithStats(collector *stats.Collector) Option {
	return func(o *Orchestrator) {
		o.stats = collector
	}
}

// NewOrchestrator walks registry tiers in order. A nil detector uses the
// default script and lexicon detector.
func NewOrchestrator(registry *Registry, detector Detector, cache Cache, logger zerolog.Logger, opts ...Option) *Orchestrator {
	if detector == nil {
		detector = langdetect.New()
	}
	o := &Orchestrator{
		registry: registry,
		detector: detector,
		cache:    cache,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Translate returns ErrInvalidInput for unusable requests. Every other failure
// is folded into the result; total failure yields the UnavailableText sentinel.
func (o *Orchestrator) Translate(ctx context.Context, req Request) (Result, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return Result{}, invalidInput("text is empty")
	}
	if isGarbled(text) {
		return Result{}, invalidInput("text looks mis-encoded; send Devanagari as UTF-8")
	}

	source, target, err := o.resolveLanguages(text, req.Source, req.Target)
	if err != nil {
		return Result{}, err
	}

	key := cache.Key(text, source, target)
	if cached, ok := o.lookupCached(ctx, key); ok {
		cached.OriginalText = text
		cached.Source = source
		cached.Target = target
		cached.Attempts = nil
		cached.Cached = true
		return cached, nil
	}

	providerReq := ProviderRequest{Text: text, Source: source, Target: target}
	tiers := o.registry.Tiers()
	attempts := make([]Attempt, 0, len(tiers))
	for _, tier := range tiers {
		outcome, attempt := o.runTier(ctx, tier, providerReq)
		attempts = append(attempts, attempt)
		if !attempt.Succeeded {
			continue
		}

		result := Result{
			OriginalText:   text,
			TranslatedText: strings.TrimSpace(outcome.Text),
			Source:         source,
			Target:         target,
			Method:         attempt.Provider,
			Attempts:       attempts,
		}
		o.remember(ctx, key, result)
		o.stats.RecordTranslation(result.Method)
		o.logger.Info().
			Str("method", result.Method).
			Str("source", source.Code()).
			Str("target", target.Code()).
			Int("attempts", len(attempts)).
			Msg("translation succeeded")
		return result, nil
	}

	o.stats.RecordFailure()
	o.logger.Warn().
		Str("source", source.Code()).
		Str("target", target.Code()).
		Strs("attempts", Result{Attempts: attempts}.AttemptStrings()).
		Msg("all translation tiers failed")
	return Result{
		OriginalText:   text,
		TranslatedText: UnavailableText,
		Source:         source,
		Target:         target,
		Method:         MethodNone,
		Attempts:       attempts,
	}, nil
}

// ProviderNames lists the tiers in the order they are tried.
func (o *Orchestrator) ProviderNames() []string {
	return o.registry.ProviderNames()
}

func (o *Orchestrator) resolveLanguages(text string, sourceHint, targetHint language.Hint) (language.Language, language.Language, error) {
	source, sourceSet := sourceHint.Language()
	target, targetSet := targetHint.Language()
	if (sourceSet && !source.Valid()) || (targetSet && !target.Valid()) {
		return "", "", invalidInput("unsupported language pair %s->%s", sourceHint, targetHint)
	}

	switch {
	case sourceSet && targetSet:
		if source == target {
			return "", "", invalidInput("source and target are both %s", source.Code())
		}
	case sourceSet:
		target = source.Complement()
	case targetSet:
		source = target.Complement()
	default:
		detected := o.detector.Detect(text)
		source = detected.Language
		target = source.Complement()
		o.logger.Debug().
			Str("language", detected.Language.Code()).
			Float64("confidence", detected.Confidence).
			Str("signal", string(detected.Signal)).
			Msg("detected source language")
	}
	return source, target, nil
}

func (o *Orchestrator) lookupCached(ctx context.Context, key string) (Result, bool) {
	if o.cache != nil {
		if cached, ok := o.cache.Get(key); ok {
			o.stats.RecordCacheHit(stats.LayerMemory)
			return cached, true
		}
	}
	if o.store == nil {
		return Result{}, false
	}

	storeCtx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	stored, ok, err := o.store.LookupTranslation(storeCtx, key)
	if err != nil {
		o.logger.Warn().Err(err).Str("key", key).Msg("translation store lookup failed")
		return Result{}, false
	}
	if !ok {
		return Result{}, false
	}
	if o.cache != nil {
		o.cache.Put(key, stored)
	}
	o.stats.RecordCacheHit(stats.LayerStore)
	return stored, true
}

func (o *Orchestrator) remember(ctx context.Context, key string, result Result) {
	entry := result
	entry.Attempts = nil
	entry.Cached = false
	if o.cache != nil {
		o.cache.Put(key, entry)
	}
	if o.store == nil {
		return
	}
	storeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), storeTimeout)
	defer cancel()
	if err := o.store.SaveTranslation(storeCtx, key, entry); err != nil {
		o.logger.Warn().Err(err).Str("key", key).Msg("translation store write failed")
	}
}

// runTier makes exactly one call to the tier's provider. The call is bounded
// only by the tier timeout; caller cancellation does not interrupt it.
func (o *Orchestrator) runTier(ctx context.Context, tier Tier, req ProviderRequest) (Outcome, Attempt) {
	name := tier.Provider.Name()
	callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), tier.Timeout)
	defer cancel()

	started := time.Now()
	outcome, err := tier.Provider.Translate(callCtx, req)
	latency := time.Since(started)

	if err == nil && outcome.Hit {
		err = checkOutput(name, req, outcome.Text)
	}
	if err != nil && errors.Is(callCtx.Err(), context.DeadlineExceeded) && KindOf(err) != KindCircuitOpen {
		err = &ProviderError{Provider: name, Kind: KindTimeout, Err: err}
	}

	kind := KindOf(err)
	if !isOffline(tier.Provider) && kind != KindCircuitOpen {
		o.stats.RecordAPICall(name)
	}

	attempt := Attempt{
		Provider:  name,
		Succeeded: err == nil && outcome.Hit,
		Latency:   latency,
		LatencyMs: latency.Milliseconds(),
		ErrorKind: kind,
	}

	label := "ok"
	if !attempt.Succeeded {
		label = string(kind)
		if label == "" {
			label = "miss"
		}
	}
	o.stats.RecordAttempt(name, label, latency)

	event := o.logger.Debug().
		Str("provider", name).
		Int64("latency_ms", attempt.LatencyMs).
		Str("outcome", label)
	if err != nil {
		event = event.Err(err)
	}
	event.Msg("translation tier attempted")

	return outcome, attempt
}
