package translation

import (
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/sumitmahankale/ShabdSetu/internal/config"
)

func TestNewRegistryFromConfig_Order(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		BreakerFailureThreshold:   3,
		BreakerOpenTimeout:        time.Minute,
		MyMemoryTimeout:           5 * time.Second,
		GoogleFreeTimeout:         6 * time.Second,
		LingvaTimeout:             7 * time.Second,
		LibreTranslateTimeout:     10 * time.Second,
		LibreTranslateMarathiCode: "hi",
	}
	registry, err := NewRegistryFromConfig(cfg, nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewRegistryFromConfig() error = %v", err)
	}

	want := []string{"dictionary", "mymemory", "google_free", "lingva", "libretranslate"}
	got := registry.ProviderNames()
	if len(got) != len(want) {
		t.Fatalf("ProviderNames() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ProviderNames()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	tiers := registry.Tiers()
	if tiers[0].Timeout != DefaultDictionaryTimeout || tiers[4].Timeout != 10*time.Second {
		t.Fatalf("unexpected tier timeouts: %v / %v", tiers[0].Timeout, tiers[4].Timeout)
	}
	if _, ok := tiers[1].Provider.(*breakerProvider); !ok {
		t.Fatalf("network tier should be wrapped in a breaker")
	}
	if _, ok := tiers[0].Provider.(*DictionaryProvider); !ok {
		t.Fatalf("dictionary tier should not be wrapped")
	}
}

func TestRegistry_RejectsDuplicatesAndDefaultsTimeout(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	if err := registry.Register(Tier{Provider: succeeding("stub", "x")}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := registry.Register(Tier{Provider: succeeding(" STUB ", "y")}); err == nil {
		t.Fatalf("expected duplicate provider name to be rejected")
	}
	if err := registry.Register(Tier{}); err == nil {
		t.Fatalf("expected nil provider to be rejected")
	}
	if got := registry.Tiers()[0].Timeout; got != DefaultProviderTimeout {
		t.Fatalf("timeout = %v, want %v", got, DefaultProviderTimeout)
	}
}
