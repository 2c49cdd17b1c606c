package main

import (
	"flag"
	"os"

	"go.uber.org/zap"

	"salon/config"
	"salon/pkg/database"
	"salon/pkg/logger"
)

func main() {
	action := flag.String("action", string(database.MigrateUp), "up, down or version")
	dir := flag.String("dir", "", "migrations directory (defaults to MIGRATIONS_DIR)")
	flag.Parse()

	cfg, err := config.NewConfig()
	if err != nil {
		panic(err)
	}

	log, err := logger.NewLogger(cfg.Environment, cfg.Log)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	migrationsDir := cfg.Postgres.MigrationsDir
	if *dir != "" {
		migrationsDir = *dir
	}

	if err := database.RunMigrations(cfg.Postgres.DSN(), migrationsDir, database.MigrationAction(*action), log); err != nil {
		log.Error("ошибка миграции", zap.String("action", *action), zap.Error(err))
		os.Exit(1)
	}
}
