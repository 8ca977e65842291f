package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sumitmahankale/ShabdSetu/internal/langdetect"
	"github.com/sumitmahankale/ShabdSetu/internal/language"
	"github.com/sumitmahankale/ShabdSetu/internal/payloadschema"
	"github.com/sumitmahankale/ShabdSetu/internal/translation"
)

const (
	cachedKeysLimit   = 10
	charCodesLimit    = 10
	storeCheckTimeout = 3 * time.Second

	dictionaryTestFailed = "dictionary test failed"
)

var features = []string{"English to Marathi", "Marathi to English", "Auto-detection", "Real-time"}

type translateResponse struct {
	OriginalText      string   `json:"original_text"`
	TranslatedText    string   `json:"translated_text"`
	SourceLanguage    string   `json:"source_language"`
	TargetLanguage    string   `json:"target_language"`
	TranslationMethod string   `json:"translation_method"`
	Attempts          []string `json:"attempts,omitempty"`
	Cached            bool     `json:"cached"`
}

type storeStatus struct {
	Enabled      bool   `json:"enabled"`
	Status       string `json:"status,omitempty"`
	Translations *int64 `json:"translations,omitempty"`
	Error        string `json:"error,omitempty"`
}

func (s *Server) handleRoot(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"message":          "ShabdSetu Bidirectional Translation API is running!",
		"version":          s.opts.Version,
		"features":         features,
		"translation_apis": s.translator.ProviderNames(),
		"api_calls_made":   s.stats.APICalls(),
	})
}

func (s *Server) handleTranslate(c echo.Context) error {
	body, err := readBody(c)
	if err != nil {
		return err
	}
	payload, err := payloadschema.ValidateTranslateRequest(body)
	if err != nil {
		if errors.Is(err, payloadschema.ErrInvalidPayload) {
			return fail(c, http.StatusBadRequest, err.Error(), nil)
		}
		s.logger.Error().Err(err).Msg("translate payload validation failed")
		return internalError(c, "Failed to validate request")
	}

	req, fieldErrors := parseTranslateRequest(payload)
	if len(fieldErrors) > 0 {
		return failValidation(c, fieldErrors)
	}

	result, err := s.translator.Translate(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, translation.ErrInvalidInput) {
			return fail(c, http.StatusBadRequest, err.Error(), nil)
		}
		s.logger.Error().Err(err).Msg("translate failed")
		return internalError(c, "Internal server error")
	}

	return c.JSON(http.StatusOK, translateResponse{
		OriginalText:      result.OriginalText,
		TranslatedText:    result.TranslatedText,
		SourceLanguage:    result.Source.Code(),
		TargetLanguage:    result.Target.Code(),
		TranslationMethod: result.Method,
		Attempts:          result.AttemptStrings(),
		Cached:            result.Cached,
	})
}

func parseTranslateRequest(payload *payloadschema.TranslateRequest) (translation.Request, map[string]string) {
	fieldErrors := map[string]string{}
	source, err := language.ParseHint(payload.SourceLanguage)
	if err != nil {
		fieldErrors["source_language"] = err.Error()
	}
	target, err := language.ParseHint(payload.TargetLanguage)
	if err != nil {
		fieldErrors["target_language"] = err.Error()
	}
	if len(fieldErrors) > 0 {
		return translation.Request{}, fieldErrors
	}
	return translation.Request{Text: payload.Text, Source: source, Target: target}, nil
}

func (s *Server) handleHealth(c echo.Context) error {
	enToMr := s.dictionaryProbe(c.Request().Context(), "hello", language.EN, language.MR)
	mrToEn := s.dictionaryProbe(c.Request().Context(), "नमस्कार", language.MR, language.EN)

	status := "healthy"
	if enToMr == dictionaryTestFailed || mrToEn == dictionaryTestFailed {
		status = "degraded"
	}
	store := s.storeStatus(c.Request().Context())
	if store.Enabled && store.Status != "ok" {
		status = "degraded"
	}

	return c.JSON(http.StatusOK, map[string]any{
		"status":         status,
		"version":        s.opts.Version,
		"api_calls_made": s.stats.APICalls(),
		"cache_size":     s.cacheSize(),
		"test_translations": map[string]string{
			"en_to_mr": enToMr,
			"mr_to_en": mrToEn,
		},
		"store": store,
	})
}

func (s *Server) dictionaryProbe(ctx context.Context, text string, source, target language.Language) string {
	if s.dictionary == nil {
		return dictionaryTestFailed
	}
	outcome, err := s.dictionary.Translate(ctx, translation.ProviderRequest{Text: text, Source: source, Target: target})
	if err != nil || !outcome.Hit {
		return dictionaryTestFailed
	}
	return outcome.Text
}

func (s *Server) storeStatus(ctx context.Context) storeStatus {
	if s.store == nil {
		return storeStatus{Enabled: false}
	}
	ctx, cancel := context.WithTimeout(ctx, storeCheckTimeout)
	defer cancel()

	if err := s.store.Ping(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("store health check failed")
		return storeStatus{Enabled: true, Status: "unreachable", Error: err.Error()}
	}
	count, err := s.store.CountTranslations(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("store count failed")
		return storeStatus{Enabled: true, Status: "degraded", Error: err.Error()}
	}
	return storeStatus{Enabled: true, Status: "ok", Translations: &count}
}

func (s *Server) handleStats(c echo.Context) error {
	snapshot := s.stats.Snapshot()
	snapshot.CacheSize = s.cacheSize()

	resp := map[string]any{
		"api_calls_made":      snapshot.APICallsMade,
		"cache_size":          snapshot.CacheSize,
		"cached_translations": s.cachedKeys(),
		"counters":            snapshot,
	}

	if s.store != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), storeCheckTimeout)
		defer cancel()
		byMethod, err := s.store.CountTranslationsByMethod(ctx)
		if err != nil {
			s.logger.Error().Err(err).Msg("query stored translation counts failed")
			return internalError(c, "Failed to load stats")
		}
		resp["stored_translations_by_method"] = byMethod
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleClearCache(c echo.Context) error {
	persistent := false
	if raw := c.QueryParam("persistent"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return failValidation(c, map[string]string{"persistent": "must be a boolean"})
		}
		persistent = parsed
	}

	if persistent && s.store == nil {
		return fail(c, http.StatusConflict, "Persistent store is not configured", nil)
	}

	removed := 0
	if s.cache != nil {
		removed = s.cache.Clear()
	}
	resp := map[string]any{
		"message":    fmt.Sprintf("Cache cleared. Removed %d cached translations.", removed),
		"cache_size": s.cacheSize(),
	}

	if persistent {
		deleted, err := s.store.DeleteAllTranslations(c.Request().Context())
		if err != nil {
			s.logger.Error().Err(err).Msg("clear persistent store failed")
			return internalError(c, "Failed to clear persistent store")
		}
		resp["persistent_removed"] = deleted
	}

	s.logger.Info().Int("removed", removed).Bool("persistent", persistent).Msg("cache cleared")
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleTestEncoding(c echo.Context) error {
	body, err := readBody(c)
	if err != nil {
		return err
	}
	payload, err := payloadschema.ValidateTranslateRequest(body)
	if err != nil {
		if errors.Is(err, payloadschema.ErrInvalidPayload) {
			return fail(c, http.StatusBadRequest, err.Error(), nil)
		}
		return internalError(c, "Failed to validate request")
	}

	runes := []rune(payload.Text)
	codes := make([]int, 0, min(len(runes), charCodesLimit))
	for _, r := range runes[:min(len(runes), charCodesLimit)] {
		codes = append(codes, int(r))
	}
	return c.JSON(http.StatusOK, map[string]any{
		"received_text": payload.Text,
		"text_length":   len(runes),
		"char_codes":    codes,
		"is_devanagari": langdetect.ContainsDevanagari(payload.Text),
	})
}

func (s *Server) cacheSize() int {
	if s.cache == nil {
		return 0
	}
	return s.cache.Size()
}

func (s *Server) cachedKeys() []string {
	if s.cache == nil {
		return []string{}
	}
	keys := s.cache.Keys(cachedKeysLimit)
	if keys == nil {
		return []string{}
	}
	return keys
}

func readBody(c echo.Context) ([]byte, error) {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) {
			return nil, he
		}
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Failed to read request body")
	}
	return body, nil
}
