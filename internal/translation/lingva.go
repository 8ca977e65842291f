package translation

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

const (
	LingvaProviderName   = "lingva"
	DefaultLingvaBaseURL = "https://lingva.ml"
)

// LingvaProvider calls a Lingva Translate instance. The text travels in the
// URL path.
type LingvaProvider struct {
	baseURL string
	codes   languageCodes
	client  HTTPDoer
}

func NewLingvaProvider(opts HTTPOptions) *LingvaProvider {
	return &LingvaProvider{
		baseURL: strings.TrimRight(opts.baseURL(DefaultLingvaBaseURL), "/"),
		codes:   newLanguageCodes(opts.MarathiCode),
		client:  opts.client(),
	}
}

func (p *LingvaProvider) Name() string {
	return LingvaProviderName
}

func (p *LingvaProvider) Translate(ctx context.Context, req ProviderRequest) (Outcome, error) {
	endpoint := strings.Join([]string{
		p.baseURL,
		"api", "v1",
		p.codes.code(req.Source),
		p.codes.code(req.Target),
		url.PathEscape(req.Text),
	}, "/")

	httpReq, err := newRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Outcome{}, &ProviderError{Provider: p.Name(), Kind: KindNetwork, Err: err}
	}

	var parsed struct {
		Translation string `json:"translation"`
		Error       string `json:"error"`
	}
	if err := doJSON(p.client, p.Name(), httpReq, &parsed); err != nil {
		return Outcome{}, err
	}
	if msg := strings.TrimSpace(parsed.Error); msg != "" {
		return Outcome{}, newProviderError(p.Name(), KindMalformed, "provider error: %s", msg)
	}

	text := strings.TrimSpace(parsed.Translation)
	if err := checkOutput(p.Name(), req, text); err != nil {
		return Outcome{}, err
	}
	return Outcome{Text: text, Hit: true}, nil
}
