package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UpsertTranslationParams is one row to write. An existing row with the same
// cache key is overwritten.
type UpsertTranslationParams struct {
	CacheKey       string
	OriginalText   string
	TranslatedText string
	SourceLang     string
	TargetLang     string
	Method         string
}

var upsertColumns = []string{"original_text", "translated_text", "source_lang", "target_lang", "method", "updated_at"}

// LookupTranslation returns the row for cacheKey, or nil when absent.
func (p *Pool) LookupTranslation(ctx context.Context, cacheKey string) (*Translation, error) {
	tx, err := p.session(ctx)
	if err != nil {
		return nil, err
	}
	var row Translation
	err = tx.Where("cache_key = ?", cacheKey).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query translation: %w", err)
	}
	return &row, nil
}

func (p *Pool) UpsertTranslation(ctx context.Context, params UpsertTranslationParams) error {
	if strings.TrimSpace(params.CacheKey) == "" {
		return fmt.Errorf("cache key is required")
	}
	tx, err := p.session(ctx)
	if err != nil {
		return err
	}

	row := Translation{
		CacheKey:       params.CacheKey,
		OriginalText:   params.OriginalText,
		TranslatedText: params.TranslatedText,
		SourceLang:     params.SourceLang,
		TargetLang:     params.TargetLang,
		Method:         params.Method,
	}
	err = tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "cache_key"}},
		DoUpdates: clause.AssignmentColumns(upsertColumns),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("upsert translation: %w", err)
	}
	return nil
}

func (p *Pool) CountTranslations(ctx context.Context) (int64, error) {
	tx, err := p.session(ctx)
	if err != nil {
		return 0, err
	}
	var count int64
	if err := tx.Model(&Translation{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count translations: %w", err)
	}
	return count, nil
}

// DeleteAllTranslations empties the table and returns the number of rows removed.
func (p *Pool) DeleteAllTranslations(ctx context.Context) (int64, error) {
	tx, err := p.session(ctx)
	if err != nil {
		return 0, err
	}
	res := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&Translation{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete translations: %w", res.Error)
	}
	return res.RowsAffected, nil
}
