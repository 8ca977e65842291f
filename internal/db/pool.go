// Package db persists translations in PostgreSQL through gorm.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sumitmahankale/ShabdSetu/internal/config"
)

var errPoolNotInitialized = errors.New("database pool is not initialized")

// PoolSettings sizes the connection pool.
type PoolSettings struct {
	MaxOpen     int
	MaxIdle     int
	MaxIdleTime time.Duration
	MaxLifetime time.Duration
}

func settingsFromConfig(cfg *config.Config) PoolSettings {
	maxOpen := int(cfg.DBMaxConns)
	if maxOpen <= 0 {
		maxOpen = 5
	}
	return PoolSettings{
		MaxOpen:     maxOpen,
		MaxIdle:     max(1, min(int(cfg.DBMinConns), maxOpen)),
		MaxIdleTime: 5 * time.Minute,
		MaxLifetime: 30 * time.Minute,
	}
}

func (s PoolSettings) apply(sqlDB *sql.DB) {
	sqlDB.SetMaxOpenConns(s.MaxOpen)
	sqlDB.SetMaxIdleConns(s.MaxIdle)
	sqlDB.SetConnMaxIdleTime(s.MaxIdleTime)
	sqlDB.SetConnMaxLifetime(s.MaxLifetime)
}

// Pool is the translation store handle.
type Pool struct {
	gdb   *gorm.DB
	sqlDB *sql.DB
}

// NewPool connects to DATABASE_URL and migrates the schema before returning.
func NewPool(ctx context.Context, cfg *config.Config) (*Pool, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	if !cfg.PersistenceEnabled() {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	gdb, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger:                 logger.Default.LogMode(resolveGormLogLevel(cfg.LogLevel)),
		SkipDefaultTransaction: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("resolve sql handle: %w", err)
	}
	settingsFromConfig(cfg).apply(sqlDB)

	pool := &Pool{gdb: gdb, sqlDB: sqlDB}
	if err := pool.Ping(ctx); err != nil {
		_ = pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := pool.Migrate(ctx); err != nil {
		_ = pool.Close()
		return nil, err
	}
	return pool, nil
}

func (p *Pool) session(ctx context.Context) (*gorm.DB, error) {
	if p == nil || p.gdb == nil {
		return nil, errPoolNotInitialized
	}
	return p.gdb.WithContext(ctx), nil
}

// Ping checks connectivity for health reporting.
func (p *Pool) Ping(ctx context.Context) error {
	if p == nil || p.sqlDB == nil {
		return errPoolNotInitialized
	}
	return p.sqlDB.PingContext(ctx)
}

func (p *Pool) Close() error {
	if p == nil || p.sqlDB == nil {
		return nil
	}
	return p.sqlDB.Close()
}

// resolveGormLogLevel keeps gorm quieter than the application: SQL traces
// only appear at debug and below. Levels are the LOG_LEVEL values config
// accepts; blank means info.
func resolveGormLogLevel(appLogLevel string) logger.LogLevel {
	switch strings.ToLower(strings.TrimSpace(appLogLevel)) {
	case "trace", "debug":
		return logger.Info
	case "error", "fatal", "panic":
		return logger.Error
	case "disabled":
		return logger.Silent
	default:
		return logger.Warn
	}
}
