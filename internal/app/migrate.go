package app

import (
	"context"
	"database/sql"
	"fmt"

	goose "github.com/pressly/goose/v3"
	"github.com/rs/zerolog"

	migrations "github.com/guttosm/tradedesk/db"
	"github.com/guttosm/tradedesk/internal/logger"
)

// gooseLogger routes goose output through zerolog.
type gooseLogger struct {
	log zerolog.Logger
}

func (g gooseLogger) Printf(format string, v ...interface{}) {
	g.log.Info().Msgf(format, v...)
}

func (g gooseLogger) Fatalf(format string, v ...interface{}) {
	g.log.Fatal().Msgf(format, v...)
}

// Migrate runs a goose command ("up", "down", "status", "version", "redo", "reset")
// against the embedded migrations.
func Migrate(ctx context.Context, db *sql.DB, command string, args ...string) error {
	goose.SetBaseFS(migrations.Migrations)
	defer goose.SetBaseFS(nil)
	goose.SetLogger(gooseLogger{log: logger.Component("migrate")})

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.RunContext(ctx, command, db, migrations.MigrationsDir, args...); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}
