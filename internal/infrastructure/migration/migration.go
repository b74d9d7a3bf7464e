// Package migration applies the versioned SQL scripts with goose, or the
// GORM models directly when auto-migrate is requested.
package migration

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	"github.com/helpdeskhq/helpdesk/internal/infrastructure/persistence/models"
	"github.com/helpdeskhq/helpdesk/internal/shared/logger"
)

//go:embed scripts
var scripts embed.FS

// Manager runs goose migrations for one dialect ("mysql", "postgres" or
// "sqlite3").
type Manager struct {
	db       *sql.DB
	dialect  string
	provider *goose.Provider
	logger   logger.Interface
}

func NewManager(db *gorm.DB, dialect string, log logger.Interface) (*Manager, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	gooseDialect, err := toGooseDialect(dialect)
	if err != nil {
		return nil, err
	}

	fsys, err := fs.Sub(scripts, "scripts/"+dialect)
	if err != nil {
		return nil, fmt.Errorf("failed to open migration scripts: %w", err)
	}

	provider, err := goose.NewProvider(gooseDialect, sqlDB, fsys)
	if err != nil {
		return nil, fmt.Errorf("failed to create goose provider: %w", err)
	}

	return &Manager{
		db:       sqlDB,
		dialect:  dialect,
		provider: provider,
		logger:   log.With("component", "migration.goose"),
	}, nil
}

func toGooseDialect(dialect string) (goose.Dialect, error) {
	switch dialect {
	case "mysql":
		return goose.DialectMySQL, nil
	case "postgres":
		return goose.DialectPostgres, nil
	case "sqlite3":
		return goose.DialectSQLite3, nil
	}
	return "", fmt.Errorf("unsupported migration dialect %q", dialect)
}

func (m *Manager) Up(ctx context.Context) error {
	from, err := m.provider.GetDBVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current version: %w", err)
	}

	m.logger.Infow("starting goose migration", "dialect", m.dialect, "version", from)

	results, err := m.provider.Up(ctx)
	if err != nil {
		m.logger.Errorw("migration failed", "error", err)
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	to, err := m.provider.GetDBVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to get final version: %w", err)
	}

	m.logger.Infow("migration completed successfully",
		"from_version", from,
		"to_version", to,
		"applied", len(results))
	return nil
}

// Down rolls back steps migrations, stopping early at version 0.
func (m *Manager) Down(ctx context.Context, steps int) error {
	m.logger.Infow("starting down migration", "steps", steps)

	for i := 0; i < steps; i++ {
		result, err := m.provider.Down(ctx)
		if errors.Is(err, goose.ErrNoNextVersion) {
			break
		}
		if err != nil {
			m.logger.Errorw("down migration failed", "error", err)
			return fmt.Errorf("failed to run down migration: %w", err)
		}
		m.logger.Infow("migration rolled back", "version", result.Source.Version)
	}

	m.logger.Infow("down migration completed successfully")
	return nil
}

func (m *Manager) Version(ctx context.Context) (int64, error) {
	version, err := m.provider.GetDBVersion(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get version: %w", err)
	}
	return version, nil
}

func (m *Manager) Status(ctx context.Context) ([]*goose.MigrationStatus, error) {
	statuses, err := m.provider.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get status: %w", err)
	}
	return statuses, nil
}

// Create writes a new timestamped SQL migration into dir, which must be the
// source tree directory for the dialect.
func Create(dir, name string) error {
	if name == "" {
		return fmt.Errorf("migration name is required")
	}
	if err := goose.Create(nil, dir, name, "sql"); err != nil {
		return fmt.Errorf("failed to create migration: %w", err)
	}
	return nil
}

// AutoMigrate creates or alters tables straight from the GORM models.
func AutoMigrate(db *gorm.DB, log logger.Interface) error {
	all := models.All()
	log.Infow("starting gorm auto migration", "models_count", len(all))

	if err := db.AutoMigrate(all...); err != nil {
		log.Errorw("auto migration failed", "error", err)
		return fmt.Errorf("auto migration failed: %w", err)
	}

	log.Infow("database migration completed successfully", "strategy", "gorm_auto_migrate")
	return nil
}
