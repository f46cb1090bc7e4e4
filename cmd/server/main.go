package main

import (
	"context"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/anuragkar/scambait/internal/api"
	"github.com/anuragkar/scambait/internal/config"
	"github.com/anuragkar/scambait/internal/domain"
	"github.com/anuragkar/scambait/internal/repository/failover"
	"github.com/anuragkar/scambait/internal/repository/memory"
	"github.com/anuragkar/scambait/internal/repository/postgres"
	"github.com/anuragkar/scambait/internal/repository/redis"
	"github.com/anuragkar/scambait/internal/security"
)

func main() {
	// Load .env file - try multiple locations
	for _, p := range []string{".env", "../.env", "../../.env"} {
		if err := godotenv.Load(p); err == nil {
			break
		}
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	setupLogging(cfg.Logging)
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	log.Info().
		Str("host", cfg.Server.Host).
		Int("port", cfg.Server.Port).
		Msg("Starting scambait honeypot server")

	// Session stores: Redis is primary, the in-memory twin takes over when
	// Redis is unreachable. A failed startup ping is only a warning; go-redis
	// dials lazily, so a Redis that comes up later heals without a restart.
	redisClient, err := redis.NewClient(cfg.Redis)
	if err != nil {
		if redisClient == nil {
			log.Fatal().Err(err).Msg("Invalid Redis configuration")
		}
		log.Warn().Err(err).Msg("Redis unreachable at startup, sessions will fall back to in-memory storage")
	}
	defer redisClient.Close()

	var encryptor *security.Encryptor
	if key := cfg.Session.EncryptionKey; key != "" {
		encryptor, err = security.NewEncryptorFromBase64(key)
		if err != nil {
			log.Fatal().Err(err).Msg("Invalid session encryption key")
		}
		log.Info().Msg("Session encryption at rest enabled")
	}

	store := failover.New(
		redis.NewSessionStore(redisClient, cfg.Session.TTL(), encryptor),
		memory.NewSessionStore(cfg.Session.TTL()),
	)

	// Optional report archive. Losing it never blocks engagement turns, so a
	// down Postgres degrades to archiving disabled instead of refusing to boot.
	var archive domain.ReportArchive
	var archiveDB *postgres.DB
	if cfg.Archive.Enabled {
		archiveDB, err = postgres.NewDB(context.Background(), cfg.Archive.Postgres)
		if err != nil {
			log.Error().Err(err).Msg("Report archive unavailable, continuing without it")
		} else {
			defer archiveDB.Close()
			archive = postgres.NewReportRepository(archiveDB.Pool)
			log.Info().Msg("Report archive enabled")
		}
	}

	router := api.NewRouter(cfg, redisClient, store, archive)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info().Msgf("Server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}

// setupLogging configures the global logger: leveled, console outside
// production, and optionally duplicated into a daily-rotated file.
func setupLogging(cfg config.LoggingConfig) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	var console io.Writer = os.Stderr
	if os.Getenv("ENV") != "production" || cfg.Format == "console" {
		console = zerolog.ConsoleWriter{Out: os.Stderr}
	}

	if cfg.FilePath == "" {
		log.Logger = log.Output(console)
		return
	}

	rotator, err := rotatelogs.New(
		cfg.FilePath+".%Y%m%d",
		rotatelogs.WithLinkName(cfg.FilePath),
		rotatelogs.WithRotationTime(24*time.Hour),
		rotatelogs.WithMaxAge(cfg.MaxAge),
	)
	if err != nil {
		log.Logger = log.Output(console)
		log.Error().Err(err).Str("path", cfg.FilePath).Msg("Failed to open rotating log file")
		return
	}
	log.Logger = log.Output(zerolog.MultiLevelWriter(console, rotator))
}
