package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"

	"github.com/sumitmahankale/ShabdSetu/internal/cache"
	"github.com/sumitmahankale/ShabdSetu/internal/config"
	"github.com/sumitmahankale/ShabdSetu/internal/db"
	"github.com/sumitmahankale/ShabdSetu/internal/globaltime"
	"github.com/sumitmahankale/ShabdSetu/internal/langdetect"
	"github.com/sumitmahankale/ShabdSetu/internal/logging"
	"github.com/sumitmahankale/ShabdSetu/internal/stats"
	"github.com/sumitmahankale/ShabdSetu/internal/translation"
)

// runtime is the translation stack shared by serve and translate.
type runtime struct {
	cache        *cache.ResponseCache[translation.Result]
	stats        *stats.Collector
	registry     *translation.Registry
	orchestrator *translation.Orchestrator
	dictionary   translation.Provider
	metrics      *prometheus.Registry
	pool         *db.Pool
}

type runtimeOptions struct {
	// connectStore opens DATABASE_URL when it is set.
	connectStore bool
	httpClient   translation.HTTPDoer
}

func newRuntime(ctx context.Context, cfg *config.Config, logger zerolog.Logger, opts runtimeOptions) (*runtime, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}

	responses, err := cache.New[translation.Result](cfg.CacheCapacity, globaltime.System)
	if err != nil {
		return nil, fmt.Errorf("build response cache: %w", err)
	}

	metrics := prometheus.NewRegistry()
	metrics.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := stats.New(metrics, responses.Size)

	client := opts.httpClient
	if client == nil {
		client = &http.Client{}
	}
	registry, err := translation.NewRegistryFromConfig(cfg, client, logging.Component(logger, "breaker"))
	if err != nil {
		return nil, fmt.Errorf("build provider registry: %w", err)
	}

	var detectorOpts []langdetect.Option
	if cfg.DetectorStatistical {
		detectorOpts = append(detectorOpts, langdetect.WithRefiner(langdetect.NewLinguaRefiner()))
	}

	rt := &runtime{
		cache:      responses,
		stats:      collector,
		registry:   registry,
		dictionary: findDictionary(registry),
		metrics:    metrics,
	}

	orchestratorOpts := []translation.Option{translation.WithStats(collector)}
	if opts.connectStore && cfg.PersistenceEnabled() {
		pool, err := db.NewPool(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("connect translation store: %w", err)
		}
		rt.pool = pool
		orchestratorOpts = append(orchestratorOpts, translation.WithStore(translation.NewDBStore(pool)))
	}

	rt.orchestrator = translation.NewOrchestrator(
		registry,
		langdetect.New(detectorOpts...),
		responses,
		logging.Component(logger, "orchestrator"),
		orchestratorOpts...,
	)
	return rt, nil
}

func (r *runtime) Close() {
	if r == nil || r.pool == nil {
		return
	}
	_ = r.pool.Close()
}

func findDictionary(registry *translation.Registry) translation.Provider {
	for _, tier := range registry.Tiers() {
		if tier.Provider.Name() == translation.DictionaryProviderName {
			return tier.Provider
		}
	}
	return nil
}
