package db

import "time"

// Translation maps shabdsetu.translations. CacheKey is the normalized
// "<text>::<src>-><tgt>" key shared with the in-memory cache.
type Translation struct {
	TranslationID  int64     `gorm:"column:translation_id;primaryKey;autoIncrement"`
	CacheKey       string    `gorm:"column:cache_key;type:text;not null;uniqueIndex:translations_cache_key_key"`
	OriginalText   string    `gorm:"column:original_text;type:text;not null"`
	TranslatedText string    `gorm:"column:translated_text;type:text;not null"`
	SourceLang     string    `gorm:"column:source_lang;type:text;not null"`
	TargetLang     string    `gorm:"column:target_lang;type:text;not null"`
	Method         string    `gorm:"column:method;type:text;not null"`
	CreatedAt      time.Time `gorm:"column:created_at;type:timestamptz;not null;default:now()"`
	UpdatedAt      time.Time `gorm:"column:updated_at;type:timestamptz;not null;default:now()"`
}

func (Translation) TableName() string { return "shabdsetu.translations" }

func autoMigrateModels() []any {
	return []any{
		&Translation{},
	}
}
