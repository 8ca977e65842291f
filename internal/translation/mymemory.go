package translation

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const (
	MyMemoryProviderName   = "mymemory"
	DefaultMyMemoryBaseURL = "https://api.mymemory.translated.net/get"
)

// MyMemoryProvider calls the public MyMemory GET endpoint.
type MyMemoryProvider struct {
	endpoint string
	email    string
	codes    languageCodes
	client   HTTPDoer
}

func NewMyMemoryProvider(opts HTTPOptions, email string) *MyMemoryProvider {
	return &MyMemoryProvider{
		endpoint: opts.baseURL(DefaultMyMemoryBaseURL),
		email:    strings.TrimSpace(email),
		codes:    newLanguageCodes(opts.MarathiCode),
		client:   opts.client(),
	}
}

func (p *MyMemoryProvider) Name() string {
	return MyMemoryProviderName
}

func (p *MyMemoryProvider) Translate(ctx context.Context, req ProviderRequest) (Outcome, error) {
	params := url.Values{}
	params.Set("q", req.Text)
	params.Set("langpair", p.codes.code(req.Source)+"|"+p.codes.code(req.Target))
	if p.email != "" {
		params.Set("de", p.email)
	}

	httpReq, err := newRequest(ctx, http.MethodGet, p.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return Outcome{}, &ProviderError{Provider: p.Name(), Kind: KindNetwork, Err: err}
	}

	var parsed myMemoryResponse
	if err := doJSON(p.client, p.Name(), httpReq, &parsed); err != nil {
		return Outcome{}, err
	}

	text := strings.TrimSpace(parsed.ResponseData.TranslatedText)
	switch status := int(parsed.ResponseStatus); {
	case status == http.StatusTooManyRequests || strings.HasPrefix(strings.ToUpper(text), "MYMEMORY WARNING"):
		return Outcome{}, newProviderError(p.Name(), KindRateLimited, "quota exhausted: %s", parsed.ResponseDetails)
	case status == http.StatusNotFound:
		return Outcome{}, newProviderError(p.Name(), KindNotFound, "status %d", status)
	case status != 0 && status != http.StatusOK:
		return Outcome{}, newProviderError(p.Name(), KindMalformed, "response status %d: %s", status, parsed.ResponseDetails)
	}

	if err := checkOutput(p.Name(), req, text); err != nil {
		return Outcome{}, err
	}
	return Outcome{Text: text, Hit: true}, nil
}

type myMemoryResponse struct {
	ResponseData struct {
		TranslatedText string `json:"translatedText"`
	} `json:"responseData"`
	ResponseStatus  flexibleInt `json:"responseStatus"`
	ResponseDetails string      `json:"responseDetails"`
}

// flexibleInt accepts both 200 and "200"; MyMemory sends either.
type flexibleInt int

func (f *flexibleInt) UnmarshalJSON(data []byte) error {
	raw := bytes.Trim(bytes.TrimSpace(data), `"`)
	if len(raw) == 0 || string(raw) == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.ParseFloat(string(raw), 64)
	if err != nil {
		return fmt.Errorf("parse response status %q: %w", raw, err)
	}
	*f = flexibleInt(n)
	return nil
}
