package db

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

//go:embed sql/pre_automigrate.sql
var preAutoMigrateSQL string

//go:embed sql/post_automigrate.sql
var postAutoMigrateSQL string

type migrationStep struct {
	name string
	run  func(tx *gorm.DB) error
}

func migrationSteps() []migrationStep {
	return []migrationStep{
		{name: "create schema", run: rawSQL(preAutoMigrateSQL)},
		{name: "auto-migrate models", run: func(tx *gorm.DB) error {
			return tx.AutoMigrate(autoMigrateModels()...)
		}},
		{name: "create indexes", run: rawSQL(postAutoMigrateSQL)},
	}
}

func rawSQL(statement string) func(tx *gorm.DB) error {
	statement = strings.TrimSpace(statement)
	return func(tx *gorm.DB) error {
		if statement == "" {
			return nil
		}
		return tx.Exec(statement).Error
	}
}

// Migrate creates the schema, table and indexes. It is idempotent.
func (p *Pool) Migrate(ctx context.Context) error {
	tx, err := p.session(ctx)
	if err != nil {
		return err
	}
	for _, step := range migrationSteps() {
		if err := step.run(tx); err != nil {
			return fmt.Errorf("migrate: %s: %w", step.name, err)
		}
	}
	return nil
}
