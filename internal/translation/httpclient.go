package translation

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sumitmahankale/ShabdSetu/internal/language"
)

const (
	DefaultProviderTimeout = 8 * time.Second
	maxResponseBytes       = 1 << 20
	userAgent              = "shabdsetu/1.0"
)

// HTTPDoer is satisfied by *http.Client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTPOptions is shared by the network providers.
type HTTPOptions struct {
	BaseURL     string
	MarathiCode string
	Client      HTTPDoer
}

func (o HTTPOptions) client() HTTPDoer {
	if o.Client != nil {
		return o.Client
	}
	return http.DefaultClient
}

func (o HTTPOptions) baseURL(fallback string) string {
	base := strings.TrimSpace(o.BaseURL)
	if base == "" {
		return fallback
	}
	return base
}

// languageCodes maps the two supported languages to one provider's codes.
type languageCodes struct {
	marathi string
}

func newLanguageCodes(marathi string) languageCodes {
	code := language.NormalizeTag(marathi)
	if code == "" {
		code = language.MR.Code()
	}
	return languageCodes{marathi: code}
}

func (c languageCodes) code(l language.Language) string {
	if l == language.MR {
		return c.marathi
	}
	return language.EN.Code()
}

// doJSON executes req and decodes a 2xx JSON body into out, classifying every
// failure into a ProviderError.
func doJSON(client HTTPDoer, provider string, req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return classifyTransportError(provider, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return classifyTransportError(provider, err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return newProviderError(provider, KindRateLimited, "status %d", resp.StatusCode)
	case resp.StatusCode == http.StatusNotFound:
		return newProviderError(provider, KindNotFound, "status %d", resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return newProviderError(provider, KindNetwork, "status %d: %s", resp.StatusCode, snippet(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return newProviderError(provider, KindMalformed, "decode response: %v", err)
	}
	return nil
}

func classifyTransportError(provider string, err error) *ProviderError {
	if isTimeout(err) {
		return &ProviderError{Provider: provider, Kind: KindTimeout, Err: err}
	}
	return &ProviderError{Provider: provider, Kind: KindNetwork, Err: err}
}

func newRequest(ctx context.Context, method, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	return req, nil
}

func snippet(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) > 200 {
		return text[:200]
	}
	return text
}
