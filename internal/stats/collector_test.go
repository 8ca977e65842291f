package stats

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollectorSnapshot(t *testing.T) {
	t.Parallel()

	size := 3
	c := New(nil, func() int { return size })

	c.RecordAPICall("mymemory")
	c.RecordAPICall("lingva")
	c.RecordCacheHit(LayerMemory)
	c.RecordCacheHit(LayerStore)
	c.RecordTranslation("dictionary")
	c.RecordTranslation("lingva")
	c.RecordFailure()

	got := c.Snapshot()
	want := Snapshot{
		APICallsMade:   2,
		CacheSize:      3,
		CacheHits:      1,
		StoreHits:      1,
		DictionaryHits: 1,
		Translations:   2,
		Failures:       1,
	}
	if got != want {
		t.Fatalf("Snapshot() = %+v, want %+v", got, want)
	}
	if c.APICalls() != 2 {
		t.Fatalf("APICalls() = %d, want 2", c.APICalls())
	}
}

func TestCollectorRegistersMetrics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	c := New(reg, func() int { return 7 })
	c.RecordAPICall("google_free")
	c.RecordAttempt("google_free", "TIMEOUT", 8*time.Second)

	if got := testutil.ToFloat64(c.providerCalls.WithLabelValues("google_free")); got != 1 {
		t.Fatalf("provider calls = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.providerAttempts.WithLabelValues("google_free", "timeout")); got != 1 {
		t.Fatalf("provider attempts = %v, want 1", got)
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	found := false
	for _, family := range families {
		if family.GetName() == "shabdsetu_cache_entries" {
			found = true
			if v := family.GetMetric()[0].GetGauge().GetValue(); v != 7 {
				t.Fatalf("cache entries gauge = %v, want 7", v)
			}
		}
	}
	if !found {
		t.Fatalf("shabdsetu_cache_entries was not registered")
	}
}

func TestNilCollectorIsSafe(t *testing.T) {
	t.Parallel()

	var c *Collector
	c.RecordAPICall("x")
	c.RecordFailure()
	if c.Snapshot() != (Snapshot{}) {
		t.Fatalf("nil collector snapshot should be zero")
	}
}
