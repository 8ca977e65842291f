package translation

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sumitmahankale/ShabdSetu/internal/config"
)

const DefaultDictionaryTimeout = time.Second

// Tier is one provider in the fallback chain with its own call timeout.
type Tier struct {
	Provider Provider
	Timeout  time.Duration
}

// Registry holds the tiers in the order they are tried.
type Registry struct {
	tiers []Tier
	names map[string]struct{}
}

func NewRegistry() *Registry {
	return &Registry{names: make(map[string]struct{})}
}

// NewRegistryFromConfig builds the standard chain: dictionary, mymemory,
// google_free, lingva, libretranslate. Network tiers get a circuit breaker
// when the config enables one.
func NewRegistryFromConfig(cfg *config.Config, client HTTPDoer, logger zerolog.Logger) (*Registry, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	if client == nil {
		client = &http.Client{}
	}
	breaker := BreakerSettings{
		FailureThreshold: cfg.BreakerFailureThreshold,
		OpenTimeout:      cfg.BreakerOpenTimeout,
	}

	registry := NewRegistry()
	tiers := []Tier{
		{Provider: NewDictionaryProvider(), Timeout: DefaultDictionaryTimeout},
		{
			Provider: NewMyMemoryProvider(HTTPOptions{
				BaseURL:     cfg.MyMemoryURL,
				MarathiCode: cfg.MyMemoryMarathiCode,
				Client:      client,
			}, cfg.MyMemoryEmail),
			Timeout: cfg.MyMemoryTimeout,
		},
		{
			Provider: NewGoogleFreeProvider(HTTPOptions{
				BaseURL:     cfg.GoogleFreeURL,
				MarathiCode: cfg.GoogleFreeMarathiCode,
				Client:      client,
			}),
			Timeout: cfg.GoogleFreeTimeout,
		},
		{
			Provider: NewLingvaProvider(HTTPOptions{
				BaseURL:     cfg.LingvaURL,
				MarathiCode: cfg.LingvaMarathiCode,
				Client:      client,
			}),
			Timeout: cfg.LingvaTimeout,
		},
		{
			Provider: NewLibreTranslateProvider(HTTPOptions{
				BaseURL:     cfg.LibreTranslateURL,
				MarathiCode: cfg.LibreTranslateMarathiCode,
				Client:      client,
			}, cfg.LibreTranslateAPIKey),
			Timeout: cfg.LibreTranslateTimeout,
		},
	}
	for _, tier := range tiers {
		tier.Provider = withBreaker(tier.Provider, breaker, logger)
		if err := registry.Register(tier); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

// Register appends a tier to the end of the chain.
func (r *Registry) Register(tier Tier) error {
	if r == nil {
		return fmt.Errorf("registry is nil")
	}
	if tier.Provider == nil {
		return fmt.Errorf("provider is nil")
	}
	name := normalizeProviderName(tier.Provider.Name())
	if name == "" {
		return fmt.Errorf("provider name is required")
	}
	if _, exists := r.names[name]; exists {
		return fmt.Errorf("translation provider %q is already registered", name)
	}
	if tier.Timeout <= 0 {
		tier.Timeout = DefaultProviderTimeout
	}
	r.names[name] = struct{}{}
	r.tiers = append(r.tiers, tier)
	return nil
}

// Tiers returns a copy of the chain in order.
func (r *Registry) Tiers() []Tier {
	if r == nil {
		return nil
	}
	return append([]Tier(nil), r.tiers...)
}

// ProviderNames lists tier names in the order they are tried.
func (r *Registry) ProviderNames() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.tiers))
	for _, tier := range r.tiers {
		names = append(names, tier.Provider.Name())
	}
	return names
}

func normalizeProviderName(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
