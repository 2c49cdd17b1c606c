package database

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
)

// MigrationAction is one of the verbs understood by RunMigrations.
type MigrationAction string

const (
	MigrateUp      MigrationAction = "up"
	MigrateDown    MigrationAction = "down"
	MigrateVersion MigrationAction = "version"
)

func RunMigrations(dsn, migrationsDir string, action MigrationAction, logger *zap.Logger) error {
	absDir, err := filepath.Abs(migrationsDir)
	if err != nil {
		return fmt.Errorf("ошибка определения пути к миграциям %s: %w", migrationsDir, err)
	}

	m, err := migrate.New("file://"+filepath.ToSlash(absDir), dsn)
	if err != nil {
		return fmt.Errorf("ошибка инициализации миграций: %w", err)
	}
	defer m.Close()

	switch action {
	case MigrateUp:
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("ошибка при выполнении миграций: %w", err)
		}
	case MigrateDown:
		if err := m.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("ошибка при откате миграции: %w", err)
		}
	case MigrateVersion:
	default:
		return fmt.Errorf("неизвестное действие миграции %q", action)
	}

	version, dirty, err := m.Version()
	if err != nil {
		if errors.Is(err, migrate.ErrNilVersion) {
			logger.Info("миграции не применялись")
			return nil
		}
		return fmt.Errorf("ошибка получения версии схемы: %w", err)
	}

	logger.Info("версия схемы базы данных", zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}
