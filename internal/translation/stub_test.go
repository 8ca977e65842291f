package translation

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/sumitmahankale/ShabdSetu/internal/cache"
	"github.com/sumitmahankale/ShabdSetu/internal/stats"
)

type stubProvider struct {
	name    string
	offline bool
	outcome Outcome
	err     error
	// echo makes the stub return the request text unchanged.
	echo bool
	// wait makes the stub block until its context ends.
	wait bool

	mu    sync.Mutex
	calls int
	last  ProviderRequest
}

func (p *stubProvider) Name() string {
	return p.name
}

func (p *stubProvider) Offline() bool {
	return p.offline
}

func (p *stubProvider) Translate(ctx context.Context, req ProviderRequest) (Outcome, error) {
	p.mu.Lock()
	p.calls++
	p.last = req
	p.mu.Unlock()

	if p.wait {
		<-ctx.Done()
		return Outcome{}, ctx.Err()
	}
	if p.echo {
		return Outcome{Text: req.Text, Hit: true}, nil
	}
	return p.outcome, p.err
}

func (p *stubProvider) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

func failing(name string, kind ErrorKind) *stubProvider {
	return &stubProvider{name: name, err: &ProviderError{Provider: name, Kind: kind}}
}

func succeeding(name, text string) *stubProvider {
	return &stubProvider{name: name, outcome: Outcome{Text: text, Hit: true}}
}

type harness struct {
	orchestrator *Orchestrator
	cache        *cache.ResponseCache[Result]
	stats        *stats.Collector
}

func newHarness(t *testing.T, providers ...Provider) harness {
	t.Helper()

	registry := NewRegistry()
	for _, p := range providers {
		if err := registry.Register(Tier{Provider: p, Timeout: time.Second}); err != nil {
			t.Fatalf("register %s: %v", p.Name(), err)
		}
	}
	c, err := cache.New[Result](16, nil)
	if err != nil {
		t.Fatalf("cache.New() error = %v", err)
	}
	collector := stats.New(nil, c.Size)
	return harness{
		orchestrator: NewOrchestrator(registry, nil, c, zerolog.Nop(), WithStats(collector)),
		cache:        c,
		stats:        collector,
	}
}
