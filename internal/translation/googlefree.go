package translation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
)

const (
	GoogleFreeProviderName   = "google_free"
	DefaultGoogleFreeBaseURL = "https://translate.googleapis.com/translate_a/single"
)

// GoogleFreeProvider uses the unauthenticated gtx endpoint, which answers
// with nested arrays rather than objects.
type GoogleFreeProvider struct {
	endpoint string
	codes    languageCodes
	client   HTTPDoer
}

func NewGoogleFreeProvider(opts HTTPOptions) *GoogleFreeProvider {
	return &GoogleFreeProvider{
		endpoint: opts.baseURL(DefaultGoogleFreeBaseURL),
		codes:    newLanguageCodes(opts.MarathiCode),
		client:   opts.client(),
	}
}

func (p *GoogleFreeProvider) Name() string {
	return GoogleFreeProviderName
}

func (p *GoogleFreeProvider) Translate(ctx context.Context, req ProviderRequest) (Outcome, error) {
	params := url.Values{}
	params.Set("client", "gtx")
	params.Set("sl", p.codes.code(req.Source))
	params.Set("tl", p.codes.code(req.Target))
	params.Set("dt", "t")
	params.Set("q", req.Text)

	httpReq, err := newRequest(ctx, http.MethodGet, p.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return Outcome{}, &ProviderError{Provider: p.Name(), Kind: KindNetwork, Err: err}
	}

	var parsed []json.RawMessage
	if err := doJSON(p.client, p.Name(), httpReq, &parsed); err != nil {
		return Outcome{}, err
	}

	text, err := joinSentenceFragments(parsed)
	if err != nil {
		return Outcome{}, newProviderError(p.Name(), KindMalformed, "decode sentences: %v", err)
	}
	if err := checkOutput(p.Name(), req, text); err != nil {
		return Outcome{}, err
	}
	return Outcome{Text: text, Hit: true}, nil
}

// joinSentenceFragments concatenates data[0][i][0] for every sentence.
func joinSentenceFragments(data []json.RawMessage) (string, error) {
	if len(data) == 0 {
		return "", nil
	}
	var sentences [][]json.RawMessage
	if err := json.Unmarshal(data[0], &sentences); err != nil {
		return "", err
	}

	var b strings.Builder
	for _, sentence := range sentences {
		if len(sentence) == 0 {
			continue
		}
		var fragment *string
		if err := json.Unmarshal(sentence[0], &fragment); err != nil {
			return "", err
		}
		if fragment != nil {
			b.WriteString(*fragment)
		}
	}
	return strings.TrimSpace(b.String()), nil
}
