package main

import (
	"log/slog"
	"os"
	"phm/internal/config"
	"phm/internal/lib/setup"
	"phm/internal/lib/sl"
	"phm/migrations"

	"github.com/pressly/goose/v3"
)

// goose dialect names differ from the driver names used in DB_DRIVER
var dialects = map[string]string{
	"postgres": "postgres",
	"sqlite":   "sqlite3",
}

func main() {
	cfg := config.NewMigratorConfig()
	setup.SetupLogger(cfg.LogLevel, cfg.LogFormat)

	db := setup.ConnectToDatabase(cfg.DbDriver)
	defer db.Close()

	goose.SetBaseFS(migrations.FS)

	if err := goose.SetDialect(dialects[cfg.DbDriver]); err != nil {
		slog.Error("failed to set dialect", sl.Error(err))
		os.Exit(1)
	}

	if err := goose.Up(db.DB(), cfg.MigrationsFolder); err != nil {
		slog.Error("failed to apply migrations", sl.Error(err))
		os.Exit(1)
	}

	slog.Info("migrations applied", slog.String("folder", cfg.MigrationsFolder))
}
