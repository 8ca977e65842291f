package translation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	LibreTranslateProviderName   = "libretranslate"
	DefaultLibreTranslateBaseURL = "https://libretranslate.de/translate"
	DefaultLibreTranslateTimeout = 10 * time.Second
	// DefaultLibreTranslateMarathiCode approximates Marathi with Hindi, which
	// public LibreTranslate instances support and which shares the script.
	DefaultLibreTranslateMarathiCode = "hi"
)

// LibreTranslateProvider posts JSON to a LibreTranslate server.
type LibreTranslateProvider struct {
	endpoint string
	apiKey   string
	codes    languageCodes
	client   HTTPDoer
}

func NewLibreTranslateProvider(opts HTTPOptions, apiKey string) *LibreTranslateProvider {
	if strings.TrimSpace(opts.MarathiCode) == "" {
		opts.MarathiCode = DefaultLibreTranslateMarathiCode
	}
	return &LibreTranslateProvider{
		endpoint: opts.baseURL(DefaultLibreTranslateBaseURL),
		apiKey:   strings.TrimSpace(apiKey),
		codes:    newLanguageCodes(opts.MarathiCode),
		client:   opts.client(),
	}
}

func (p *LibreTranslateProvider) Name() string {
	return LibreTranslateProviderName
}

func (p *LibreTranslateProvider) Translate(ctx context.Context, req ProviderRequest) (Outcome, error) {
	body, err := json.Marshal(libreTranslateRequest{
		Q:      req.Text,
		Source: p.codes.code(req.Source),
		Target: p.codes.code(req.Target),
		Format: "text",
		APIKey: p.apiKey,
	})
	if err != nil {
		return Outcome{}, &ProviderError{Provider: p.Name(), Kind: KindNetwork, Err: fmt.Errorf("marshal request: %w", err)}
	}

	httpReq, err := newRequest(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return Outcome{}, &ProviderError{Provider: p.Name(), Kind: KindNetwork, Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	var parsed struct {
		TranslatedText string `json:"translatedText"`
		Error          string `json:"error"`
	}
	if err := doJSON(p.client, p.Name(), httpReq, &parsed); err != nil {
		return Outcome{}, err
	}
	if msg := strings.TrimSpace(parsed.Error); msg != "" {
		return Outcome{}, newProviderError(p.Name(), KindMalformed, "provider error: %s", msg)
	}

	text := strings.TrimSpace(parsed.TranslatedText)
	if err := checkOutput(p.Name(), req, text); err != nil {
		return Outcome{}, err
	}
	return Outcome{Text: text, Hit: true}, nil
}

type libreTranslateRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
	APIKey string `json:"api_key,omitempty"`
}
