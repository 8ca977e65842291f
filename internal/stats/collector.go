// Package stats counts what the translation service did. Counters are kept in
// process for the /stats endpoint and mirrored to Prometheus.
package stats

import (
	"strings"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	LayerMemory = "memory"
	LayerStore  = "store"
)

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	APICallsMade   int64 `json:"api_calls_made"`
	CacheSize      int   `json:"cache_size"`
	CacheHits      int64 `json:"cache_hits"`
	StoreHits      int64 `json:"store_hits"`
	DictionaryHits int64 `json:"dictionary_hits"`
	Translations   int64 `json:"translations"`
	Failures       int64 `json:"failures"`
}

// Collector is safe for concurrent use.
type Collector struct {
	apiCalls       atomic.Int64
	cacheHits      atomic.Int64
	storeHits      atomic.Int64
	dictionaryHits atomic.Int64
	translations   atomic.Int64
	failures       atomic.Int64

	cacheSize func() int

	providerCalls    *prometheus.CounterVec
	providerAttempts *prometheus.CounterVec
	providerLatency  *prometheus.HistogramVec
	cacheHitsTotal   *prometheus.CounterVec
	resultsTotal     *prometheus.CounterVec
}

// New builds a collector. Metrics are registered with reg; a nil reg keeps
// them unregistered. cacheSize may be nil.
func New(reg prometheus.Registerer, cacheSize func() int) *Collector {
	factory := promauto.With(reg)
	c := &Collector{
		cacheSize: cacheSize,
		providerCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shabdsetu_provider_calls_total",
				Help: "Outbound calls issued to external translation providers",
			},
			[]string{"provider"},
		),
		providerAttempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shabdsetu_provider_attempts_total",
				Help: "Translation tier attempts by outcome",
			},
			[]string{"provider", "outcome"},
		),
		providerLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "shabdsetu_provider_latency_seconds",
				Help:    "Latency of translation tier attempts in seconds",
				Buckets: []float64{0.005, 0.05, 0.25, 0.5, 1, 2, 4, 8, 10},
			},
			[]string{"provider"},
		),
		cacheHitsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shabdsetu_cache_hits_total",
				Help: "Translations served from a cache layer",
			},
			[]string{"layer"},
		),
		resultsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shabdsetu_translations_total",
				Help: "Completed translation requests by method",
			},
			[]string{"method"},
		),
	}

	factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "shabdsetu_cache_entries",
			Help: "Entries currently held in the in-memory response cache",
		},
		func() float64 { return float64(c.currentCacheSize()) },
	)

	return c
}

// RecordAPICall counts one outbound provider request.
func (c *Collector) RecordAPICall(provider string) {
	if c == nil {
		return
	}
	c.apiCalls.Add(1)
	c.providerCalls.WithLabelValues(provider).Inc()
}

// RecordAttempt records one tier attempt. outcome is "ok", "miss" or an
// error kind.
func (c *Collector) RecordAttempt(provider, outcome string, latency time.Duration) {
	if c == nil {
		return
	}
	c.providerAttempts.WithLabelValues(provider, strings.ToLower(outcome)).Inc()
	c.providerLatency.WithLabelValues(provider).Observe(latency.Seconds())
}

func (c *Collector) RecordCacheHit(layer string) {
	if c == nil {
		return
	}
	if layer == LayerStore {
		c.storeHits.Add(1)
	} else {
		c.cacheHits.Add(1)
	}
	c.cacheHitsTotal.WithLabelValues(layer).Inc()
}

// RecordTranslation counts one successful translation produced by a tier.
func (c *Collector) RecordTranslation(method string) {
	if c == nil {
		return
	}
	c.translations.Add(1)
	if method == "dictionary" {
		c.dictionaryHits.Add(1)
	}
	c.resultsTotal.WithLabelValues(method).Inc()
}

// RecordFailure counts one request where every tier failed.
func (c *Collector) RecordFailure() {
	if c == nil {
		return
	}
	c.failures.Add(1)
	c.resultsTotal.WithLabelValues("none").Inc()
}

func (c *Collector) APICalls() int64 {
	if c == nil {
		return 0
	}
	return c.apiCalls.Load()
}

func (c *Collector) Snapshot() Snapshot {
	if c == nil {
		return Snapshot{}
	}
	return Snapshot{
		APICallsMade:   c.apiCalls.Load(),
		CacheSize:      c.currentCacheSize(),
		CacheHits:      c.cacheHits.Load(),
		StoreHits:      c.storeHits.Load(),
		DictionaryHits: c.dictionaryHits.Load(),
		Translations:   c.translations.Load(),
		Failures:       c.failures.Load(),
	}
}

func (c *Collector) currentCacheSize() int {
	if c.cacheSize == nil {
		return 0
	}
	return c.cacheSize()
}
