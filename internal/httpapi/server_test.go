package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/sumitmahankale/ShabdSetu/internal/cache"
	"github.com/sumitmahankale/ShabdSetu/internal/db"
	"github.com/sumitmahankale/ShabdSetu/internal/globaltime"
	"github.com/sumitmahankale/ShabdSetu/internal/language"
	"github.com/sumitmahankale/ShabdSetu/internal/stats"
	"github.com/sumitmahankale/ShabdSetu/internal/translation"
)

type fakeTranslator struct {
	result   translation.Result
	err      error
	requests []translation.Request
}

func (f *fakeTranslator) Translate(_ context.Context, req translation.Request) (translation.Result, error) {
	f.requests = append(f.requests, req)
	return f.result, f.err
}

func (f *fakeTranslator) ProviderNames() []string {
	return []string{"dictionary", "mymemory", "google_free", "lingva", "libretranslate"}
}

type fakeStore struct {
	pingErr       error
	count         int64
	byMethod      []db.MethodCount
	deleted       int64
	deleteCalls   int
	countErr      error
	byMethodCalls int
}

func (s *fakeStore) Ping(context.Context) error { return s.pingErr }

func (s *fakeStore) CountTranslations(context.Context) (int64, error) {
	return s.count, s.countErr
}

func (s *fakeStore) CountTranslationsByMethod(context.Context) ([]db.MethodCount, error) {
	s.byMethodCalls++
	return s.byMethod, nil
}

func (s *fakeStore) DeleteAllTranslations(context.Context) (int64, error) {
	s.deleteCalls++
	return s.deleted, nil
}

type testServer struct {
	server     *Server
	translator *fakeTranslator
	cache      *cache.ResponseCache[translation.Result]
	stats      *stats.Collector
}

func newTestServer(t *testing.T, store StoreAdmin) testServer {
	t.Helper()

	responses, err := cache.New[translation.Result](16, globaltime.System)
	if err != nil {
		t.Fatalf("cache.New() error = %v", err)
	}
	registry := prometheus.NewRegistry()
	collector := stats.New(registry, responses.Size)
	translator := &fakeTranslator{}

	deps := Deps{
		Translator: translator,
		Cache:      responses,
		Stats:      collector,
		Dictionary: translation.NewDictionaryProvider(),
		Gatherer:   registry,
	}
	if store != nil {
		deps.Store = store
	}
	return testServer{
		server:     NewServer(deps, zerolog.Nop(), Options{}),
		translator: translator,
		cache:      responses,
		stats:      collector,
	}
}

func newJSONContext(
	method string,
	path string,
	body string,
) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e, e.NewContext(req, rec), rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v (%q)", err, rec.Body.String())
	}
	return body
}

func TestNewServerDefaults(t *testing.T) {
	t.Parallel()

	srv := NewServer(Deps{}, zerolog.Nop(), Options{})
	if srv.opts.Host != "0.0.0.0" || srv.opts.Port != DefaultPort {
		t.Fatalf("unexpected bind defaults: %s:%d", srv.opts.Host, srv.opts.Port)
	}
	if srv.opts.Version != DefaultVersion {
		t.Fatalf("version = %q, want %q", srv.opts.Version, DefaultVersion)
	}
	if len(srv.opts.CORSAllowedOrigins) != 1 || srv.opts.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("cors origins = %v, want [*]", srv.opts.CORSAllowedOrigins)
	}
	if srv.gatherer != prometheus.DefaultGatherer {
		t.Fatalf("expected default gatherer")
	}
}

func TestHandleTranslate_ReturnsResultWithAttempts(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t, nil)
	ts.translator.result = translation.Result{
		OriginalText:   "Good morning",
		TranslatedText: "सुप्रभात",
		Source:         language.EN,
		Target:         language.MR,
		Method:         "dictionary",
		Attempts:       []translation.Attempt{{Provider: "dictionary", Succeeded: true, LatencyMs: 0}},
	}

	_, c, rec := newJSONContext(http.MethodPost, "/translate",
		`{"text":"Good morning","source_language":"English","target_language":"auto"}`)
	if err := ts.server.handleTranslate(c); err != nil {
		t.Fatalf("handleTranslate returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got %d want %d", rec.Code, http.StatusOK)
	}

	var resp translateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.TranslatedText != "सुप्रभात" || resp.TranslationMethod != "dictionary" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.SourceLanguage != "en" || resp.TargetLanguage != "mr" {
		t.Fatalf("languages = %s->%s, want en->mr", resp.SourceLanguage, resp.TargetLanguage)
	}
	if len(resp.Attempts) != 1 || resp.Attempts[0] != "dictionary:ok:0ms" {
		t.Fatalf("attempts = %v, want [dictionary:ok:0ms]", resp.Attempts)
	}

	if len(ts.translator.requests) != 1 {
		t.Fatalf("expected one translate call, got %d", len(ts.translator.requests))
	}
	got := ts.translator.requests[0]
	if lang, ok := got.Source.Language(); !ok || lang != language.EN {
		t.Fatalf("source hint = %v, want explicit en", got.Source)
	}
	if !got.Target.IsAuto() {
		t.Fatalf("target hint = %v, want auto", got.Target)
	}
}

func TestHandleTranslate_RejectsBlankText(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t, nil)
	_, c, rec := newJSONContext(http.MethodPost, "/translate", `{"text":"   "}`)
	if err := ts.server.handleTranslate(c); err != nil {
		t.Fatalf("handleTranslate returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: got %d want %d", rec.Code, http.StatusBadRequest)
	}
	if body := decodeBody(t, rec); body["status"] != "fail" {
		t.Fatalf("status = %v, want fail", body["status"])
	}
	if len(ts.translator.requests) != 0 {
		t.Fatalf("translator called for blank text")
	}
}

func TestHandleTranslate_RejectsUnknownLanguage(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t, nil)
	_, c, rec := newJSONContext(http.MethodPost, "/translate",
		`{"text":"hello","source_language":"Klingon"}`)
	if err := ts.server.handleTranslate(c); err != nil {
		t.Fatalf("handleTranslate returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: got %d want %d", rec.Code, http.StatusBadRequest)
	}
	body := decodeBody(t, rec)
	data, _ := body["data"].(map[string]any)
	fields, _ := data["validation_errors"].(map[string]any)
	if _, ok := fields["source_language"]; !ok {
		t.Fatalf("expected source_language validation error, got %v", body)
	}
}

func TestHandleTranslate_InvalidInputFromOrchestrator(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t, nil)
	ts.translator.err = translation.ErrInvalidInput
	_, c, rec := newJSONContext(http.MethodPost, "/translate",
		`{"text":"hello","source_language":"en","target_language":"en"}`)
	if err := ts.server.handleTranslate(c); err != nil {
		t.Fatalf("handleTranslate returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: got %d want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestHandleTranslate_UnexpectedErrorIsInternal(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t, nil)
	ts.translator.err = errors.New("boom")
	_, c, rec := newJSONContext(http.MethodPost, "/translate", `{"text":"hello"}`)
	if err := ts.server.handleTranslate(c); err != nil {
		t.Fatalf("handleTranslate returned error: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("unexpected status: got %d want %d", rec.Code, http.StatusInternalServerError)
	}
	if body := decodeBody(t, rec); body["status"] != "error" {
		t.Fatalf("status = %v, want error", body["status"])
	}
}

func TestHandleTranslate_TotalFailureIsSuccessfulResponse(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t, nil)
	ts.translator.result = translation.Result{
		OriginalText:   "धन्यवाद",
		TranslatedText: translation.UnavailableText,
		Source:         language.MR,
		Target:         language.EN,
		Method:         translation.MethodNone,
	}
	_, c, rec := newJSONContext(http.MethodPost, "/translate", `{"text":"धन्यवाद"}`)
	if err := ts.server.handleTranslate(c); err != nil {
		t.Fatalf("handleTranslate returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got %d want %d", rec.Code, http.StatusOK)
	}
	body := decodeBody(t, rec)
	if body["translated_text"] != translation.UnavailableText {
		t.Fatalf("translated_text = %v, want sentinel", body["translated_text"])
	}
}

func TestHandleRoot(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t, nil)
	ts.stats.RecordAPICall("mymemory")
	_, c, rec := newJSONContext(http.MethodGet, "/", "")
	if err := ts.server.handleRoot(c); err != nil {
		t.Fatalf("handleRoot returned error: %v", err)
	}
	body := decodeBody(t, rec)
	if body["version"] != DefaultVersion {
		t.Fatalf("version = %v, want %s", body["version"], DefaultVersion)
	}
	if apis, _ := body["translation_apis"].([]any); len(apis) != 5 || apis[0] != "dictionary" {
		t.Fatalf("translation_apis = %v", body["translation_apis"])
	}
	if body["api_calls_made"] != float64(1) {
		t.Fatalf("api_calls_made = %v, want 1", body["api_calls_made"])
	}
}

func TestHandleHealth_DictionarySelfTest(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t, nil)
	_, c, rec := newJSONContext(http.MethodGet, "/health", "")
	if err := ts.server.handleHealth(c); err != nil {
		t.Fatalf("handleHealth returned error: %v", err)
	}
	body := decodeBody(t, rec)
	if body["status"] != "healthy" {
		t.Fatalf("status = %v, want healthy", body["status"])
	}
	tests, _ := body["test_translations"].(map[string]any)
	if tests["en_to_mr"] != "नमस्कार" {
		t.Fatalf("en_to_mr = %v, want नमस्कार", tests["en_to_mr"])
	}
	if tests["mr_to_en"] == dictionaryTestFailed {
		t.Fatalf("mr_to_en self-test failed")
	}
	store, _ := body["store"].(map[string]any)
	if store["enabled"] != false {
		t.Fatalf("store.enabled = %v, want false", store["enabled"])
	}
}

func TestHandleHealth_UnreachableStoreIsDegraded(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t, &fakeStore{pingErr: errors.New("connection refused")})
	_, c, rec := newJSONContext(http.MethodGet, "/health", "")
	if err := ts.server.handleHealth(c); err != nil {
		t.Fatalf("handleHealth returned error: %v", err)
	}
	body := decodeBody(t, rec)
	if body["status"] != "degraded" {
		t.Fatalf("status = %v, want degraded", body["status"])
	}
	store, _ := body["store"].(map[string]any)
	if store["status"] != "unreachable" {
		t.Fatalf("store.status = %v, want unreachable", store["status"])
	}
}

func TestHandleStats_ListsCachedKeys(t *testing.T) {
	t.Parallel()

	store := &fakeStore{byMethod: []db.MethodCount{{Method: "mymemory", Count: 4}}}
	ts := newTestServer(t, store)
	for i := 0; i < 12; i++ {
		ts.cache.Put(strings.Repeat("k", i+1), translation.Result{})
	}
	ts.stats.RecordAPICall("lingva")
	ts.stats.RecordAPICall("lingva")

	_, c, rec := newJSONContext(http.MethodGet, "/stats", "")
	if err := ts.server.handleStats(c); err != nil {
		t.Fatalf("handleStats returned error: %v", err)
	}
	body := decodeBody(t, rec)
	if body["api_calls_made"] != float64(2) {
		t.Fatalf("api_calls_made = %v, want 2", body["api_calls_made"])
	}
	if body["cache_size"] != float64(12) {
		t.Fatalf("cache_size = %v, want 12", body["cache_size"])
	}
	if keys, _ := body["cached_translations"].([]any); len(keys) != cachedKeysLimit {
		t.Fatalf("cached_translations has %d keys, want %d", len(keys), cachedKeysLimit)
	}
	if store.byMethodCalls != 1 {
		t.Fatalf("expected one store method count query, got %d", store.byMethodCalls)
	}
	if _, ok := body["stored_translations_by_method"]; !ok {
		t.Fatalf("missing stored_translations_by_method")
	}
}

func TestHandleClearCache(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t, nil)
	ts.cache.Put("a", translation.Result{})
	ts.cache.Put("b", translation.Result{})

	_, c, rec := newJSONContext(http.MethodPost, "/clear-cache", "")
	if err := ts.server.handleClearCache(c); err != nil {
		t.Fatalf("handleClearCache returned error: %v", err)
	}
	body := decodeBody(t, rec)
	if body["message"] != "Cache cleared. Removed 2 cached translations." {
		t.Fatalf("message = %v", body["message"])
	}
	if ts.cache.Size() != 0 {
		t.Fatalf("cache size after clear = %d, want 0", ts.cache.Size())
	}
}

func TestHandleClearCache_Persistent(t *testing.T) {
	t.Parallel()

	store := &fakeStore{deleted: 7}
	ts := newTestServer(t, store)
	_, c, rec := newJSONContext(http.MethodPost, "/clear-cache?persistent=true", "")
	if err := ts.server.handleClearCache(c); err != nil {
		t.Fatalf("handleClearCache returned error: %v", err)
	}
	if store.deleteCalls != 1 {
		t.Fatalf("expected one store delete, got %d", store.deleteCalls)
	}
	if body := decodeBody(t, rec); body["persistent_removed"] != float64(7) {
		t.Fatalf("persistent_removed = %v, want 7", body["persistent_removed"])
	}
}

func TestHandleClearCache_PersistentWithoutStore(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t, nil)
	ts.cache.Put("a", translation.Result{})
	_, c, rec := newJSONContext(http.MethodPost, "/clear-cache?persistent=true", "")
	if err := ts.server.handleClearCache(c); err != nil {
		t.Fatalf("handleClearCache returned error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("unexpected status: got %d want %d", rec.Code, http.StatusConflict)
	}
	if ts.cache.Size() != 1 {
		t.Fatalf("memory cache cleared despite rejected request")
	}
}

func TestHandleClearCache_RejectsBadFlag(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t, nil)
	_, c, rec := newJSONContext(http.MethodPost, "/clear-cache?persistent=maybe", "")
	if err := ts.server.handleClearCache(c); err != nil {
		t.Fatalf("handleClearCache returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: got %d want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestHandleTestEncoding(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t, nil)
	_, c, rec := newJSONContext(http.MethodPost, "/test-encoding", `{"text":"नमस्कार मित्रा"}`)
	if err := ts.server.handleTestEncoding(c); err != nil {
		t.Fatalf("handleTestEncoding returned error: %v", err)
	}
	body := decodeBody(t, rec)
	if body["is_devanagari"] != true {
		t.Fatalf("is_devanagari = %v, want true", body["is_devanagari"])
	}
	if body["text_length"] != float64(len([]rune("नमस्कार मित्रा"))) {
		t.Fatalf("text_length = %v", body["text_length"])
	}
	codes, _ := body["char_codes"].([]any)
	if len(codes) != charCodesLimit || codes[0] != float64('न') {
		t.Fatalf("char_codes = %v", codes)
	}
}

func TestRoutes_UnknownPathIsJSendFail(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	ts.server.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("unexpected status: got %d want %d", rec.Code, http.StatusNotFound)
	}
	if body := decodeBody(t, rec); body["status"] != "fail" {
		t.Fatalf("status = %v, want fail", body["status"])
	}
}

func TestRoutes_MetricsExposesCollector(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t, nil)
	ts.stats.RecordAPICall("mymemory")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	ts.server.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got %d want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), `shabdsetu_provider_calls_total{provider="mymemory"} 1`) {
		t.Fatalf("metrics output missing provider counter:\n%s", rec.Body.String())
	}
}

func TestRoutes_TranslateEndToEndWithDictionary(t *testing.T) {
	t.Parallel()

	responses, err := cache.New[translation.Result](16, globaltime.System)
	if err != nil {
		t.Fatalf("cache.New() error = %v", err)
	}
	registry := translation.NewRegistry()
	dictionary := translation.NewDictionaryProvider()
	if err := registry.Register(translation.Tier{Provider: dictionary}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	collector := stats.New(nil, responses.Size)
	orchestrator := translation.NewOrchestrator(registry, nil, responses, zerolog.Nop(), translation.WithStats(collector))

	srv := NewServer(Deps{
		Translator: orchestrator,
		Cache:      responses,
		Stats:      collector,
		Dictionary: dictionary,
		Gatherer:   prometheus.NewRegistry(),
	}, zerolog.Nop(), Options{})
	handler := srv.Handler()

	send := func() translateResponse {
		req := httptest.NewRequest(http.MethodPost, "/translate", strings.NewReader(`{"text":"Good morning"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("unexpected status: got %d want %d (%s)", rec.Code, http.StatusOK, rec.Body.String())
		}
		var resp translateResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		return resp
	}

	first := send()
	if first.TranslatedText != "सुप्रभात" || first.TranslationMethod != "dictionary" || first.Cached {
		t.Fatalf("first response = %+v", first)
	}
	if len(first.Attempts) != 1 || !strings.HasPrefix(first.Attempts[0], "dictionary:ok:") {
		t.Fatalf("first attempts = %v", first.Attempts)
	}

	second := send()
	if !second.Cached || len(second.Attempts) != 0 || second.TranslatedText != first.TranslatedText {
		t.Fatalf("second response = %+v", second)
	}
	if got := collector.APICalls(); got != 0 {
		t.Fatalf("api calls = %d, want 0 for dictionary hits", got)
	}
}
