package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Environment string `envconfig:"ENVIRONMENT" default:"local" validate:"required"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=trace debug info warn error fatal panic disabled"`

	// DatabaseURL enables the persistent translation store when set.
	DatabaseURL string `envconfig:"DATABASE_URL" default:""`
	DBMinConns  int32  `envconfig:"DB_MIN_CONNS" default:"1" validate:"gte=0"`
	DBMaxConns  int32  `envconfig:"DB_MAX_CONNS" default:"5" validate:"gte=1"`

	CacheCapacity       int  `envconfig:"CACHE_CAPACITY" default:"1000" validate:"gte=1"`
	DetectorStatistical bool `envconfig:"DETECTOR_STATISTICAL" default:"false"`

	BreakerFailureThreshold uint32        `envconfig:"BREAKER_FAILURE_THRESHOLD" default:"3"`
	BreakerOpenTimeout      time.Duration `envconfig:"BREAKER_OPEN_TIMEOUT" default:"30s" validate:"gte=0"`

	CORSAllowedOrigins string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000,http://localhost:3001,http://localhost:3002,http://localhost:3003"`

	MyMemoryURL         string        `envconfig:"MYMEMORY_URL" default:"https://api.mymemory.translated.net/get" validate:"url"`
	MyMemoryEmail       string        `envconfig:"MYMEMORY_EMAIL" default:"" validate:"omitempty,email"`
	MyMemoryTimeout     time.Duration `envconfig:"MYMEMORY_TIMEOUT" default:"8s" validate:"gt=0"`
	MyMemoryMarathiCode string        `envconfig:"MYMEMORY_MARATHI_CODE" default:"mr" validate:"required"`

	GoogleFreeURL         string        `envconfig:"GOOGLE_FREE_URL" default:"https://translate.googleapis.com/translate_a/single" validate:"url"`
	GoogleFreeTimeout     time.Duration `envconfig:"GOOGLE_FREE_TIMEOUT" default:"8s" validate:"gt=0"`
	GoogleFreeMarathiCode string        `envconfig:"GOOGLE_FREE_MARATHI_CODE" default:"mr" validate:"required"`

	LingvaURL         string        `envconfig:"LINGVA_URL" default:"https://lingva.ml" validate:"url"`
	LingvaTimeout     time.Duration `envconfig:"LINGVA_TIMEOUT" default:"8s" validate:"gt=0"`
	LingvaMarathiCode string        `envconfig:"LINGVA_MARATHI_CODE" default:"mr" validate:"required"`

	LibreTranslateURL         string        `envconfig:"LIBRETRANSLATE_URL" default:"https://libretranslate.de/translate" validate:"url"`
	LibreTranslateAPIKey      string        `envconfig:"LIBRETRANSLATE_API_KEY" default:""`
	LibreTranslateTimeout     time.Duration `envconfig:"LIBRETRANSLATE_TIMEOUT" default:"10s" validate:"gt=0"`
	LibreTranslateMarathiCode string        `envconfig:"LIBRETRANSLATE_MARATHI_CODE" default:"hi" validate:"required"`
}

var validate = validator.New()

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			msgs := make([]string, 0, len(fieldErrs))
			for _, fieldErr := range fieldErrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q%s", fieldErr.Field(), fieldErr.Tag(), paramSuffix(fieldErr.Param())))
			}
			return errors.New(strings.Join(msgs, "; "))
		}
		return err
	}
	if c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("DB_MIN_CONNS (%d) cannot exceed DB_MAX_CONNS (%d)", c.DBMinConns, c.DBMaxConns)
	}
	if c.BreakerFailureThreshold > 0 && c.BreakerOpenTimeout <= 0 {
		return fmt.Errorf("BREAKER_OPEN_TIMEOUT must be > 0 when BREAKER_FAILURE_THRESHOLD is set")
	}
	return nil
}

// PersistenceEnabled reports whether DATABASE_URL is configured.
func (c *Config) PersistenceEnabled() bool {
	return c != nil && strings.TrimSpace(c.DatabaseURL) != ""
}

func (c *Config) CORSAllowedOriginsList() []string {
	if c == nil {
		return nil
	}

	parts := strings.Split(c.CORSAllowedOrigins, ",")
	origins := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin == "" {
			continue
		}
		if _, exists := seen[origin]; exists {
			continue
		}
		seen[origin] = struct{}{}
		origins = append(origins, origin)
	}
	return origins
}

func paramSuffix(param string) string {
	if param == "" {
		return ""
	}
	return " (" + param + ")"
}
