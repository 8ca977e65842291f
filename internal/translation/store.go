package translation

import (
	"context"
	"fmt"

	"github.com/sumitmahankale/ShabdSetu/internal/db"
	"github.com/sumitmahankale/ShabdSetu/internal/language"
)

// Store is a persistent second cache layer behind the in-memory cache.
type Store interface {
	LookupTranslation(ctx context.Context, key string) (Result, bool, error)
	SaveTranslation(ctx context.Context, key string, result Result) error
}

// translationRows is the subset of *db.Pool the store needs.
type translationRows interface {
	LookupTranslation(ctx context.Context, cacheKey string) (*db.Translation, error)
	UpsertTranslation(ctx context.Context, row db.UpsertTranslationParams) error
}

// DBStore keeps translations in PostgreSQL.
type DBStore struct {
	rows translationRows
}

func NewDBStore(pool *db.Pool) *DBStore {
	return &DBStore{rows: pool}
}

func (s *DBStore) LookupTranslation(ctx context.Context, key string) (Result, bool, error) {
	row, err := s.rows.LookupTranslation(ctx, key)
	if err != nil {
		return Result{}, false, err
	}
	if row == nil {
		return Result{}, false, nil
	}

	source, err := language.Parse(row.SourceLang)
	if err != nil {
		return Result{}, false, fmt.Errorf("stored translation %q: %w", key, err)
	}
	target, err := language.Parse(row.TargetLang)
	if err != nil {
		return Result{}, false, fmt.Errorf("stored translation %q: %w", key, err)
	}
	return Result{
		OriginalText:   row.OriginalText,
		TranslatedText: row.TranslatedText,
		Source:         source,
		Target:         target,
		Method:         row.Method,
	}, true, nil
}

func (s *DBStore) SaveTranslation(ctx context.Context, key string, result Result) error {
	return s.rows.UpsertTranslation(ctx, db.UpsertTranslationParams{
		CacheKey:       key,
		OriginalText:   result.OriginalText,
		TranslatedText: result.TranslatedText,
		SourceLang:     result.Source.Code(),
		TargetLang:     result.Target.Code(),
		Method:         result.Method,
	})
}
