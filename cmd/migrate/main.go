package main

import (
	"flag"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/anuragkar/scambait/internal/config"
	"github.com/anuragkar/scambait/internal/repository/postgres"
)

// Applies the report-archive schema migrations. The engagement pipeline
// itself needs no schema: sessions live in Redis as JSON documents.
func main() {
	down := flag.Bool("down", false, "roll back the most recent migration instead of migrating up")
	source := flag.String("source", "file://migrations", "migration source URL")
	flag.Parse()

	_ = godotenv.Load()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	dsn := cfg.Archive.Postgres.DSN()
	log.Info().
		Str("host", cfg.Archive.Postgres.Host).
		Str("database", cfg.Archive.Postgres.Database).
		Msg("Running report archive migrations")

	if *down {
		if err := postgres.RollbackMigration(dsn, *source); err != nil {
			log.Fatal().Err(err).Msg("Rollback failed")
		}
		return
	}

	if err := postgres.RunMigrations(dsn, *source); err != nil {
		log.Fatal().Err(err).Msg("Migration failed")
	}
}
