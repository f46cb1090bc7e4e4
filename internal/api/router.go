package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"github.com/anuragkar/scambait/internal/api/handler"
	customMiddleware "github.com/anuragkar/scambait/internal/api/middleware"
	"github.com/anuragkar/scambait/internal/config"
	"github.com/anuragkar/scambait/internal/detect"
	"github.com/anuragkar/scambait/internal/domain"
	"github.com/anuragkar/scambait/internal/llm"
	"github.com/anuragkar/scambait/internal/llm/anthropic"
	"github.com/anuragkar/scambait/internal/llm/deepseek"
	"github.com/anuragkar/scambait/internal/llm/gemini"
	"github.com/anuragkar/scambait/internal/llm/ollama"
	"github.com/anuragkar/scambait/internal/llm/openai"
	"github.com/anuragkar/scambait/internal/persona"
	"github.com/anuragkar/scambait/internal/report"
	"github.com/anuragkar/scambait/internal/repository/failover"
	redisrepo "github.com/anuragkar/scambait/internal/repository/redis"
	"github.com/anuragkar/scambait/internal/security"
	"github.com/anuragkar/scambait/internal/service"
)

// NewRouter creates and configures the HTTP router. archive may be nil when
// report archiving is disabled.
func NewRouter(cfg *config.Config, redisClient *redisrepo.Client, store *failover.Store, archive domain.ReportArchive) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(customMiddleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.Server.RequestTimeout))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-API-Key"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// LLM router with all configured providers
	llmRouter := llm.NewRouter(cfg.LLM.DefaultProvider)
	log.Info().Str("default", cfg.LLM.DefaultProvider).Msg("Initializing LLM providers")

	if cfg.LLM.OpenAI.APIKey != "" {
		llmRouter.RegisterProvider(openai.NewProvider(cfg.LLM.OpenAI.APIKey, cfg.LLM.OpenAI.Model))
	}
	if cfg.LLM.Gemini.APIKey != "" {
		llmRouter.RegisterProvider(gemini.NewProvider(cfg.LLM.Gemini.APIKey, cfg.LLM.Gemini.Model))
	}
	if cfg.LLM.Anthropic.APIKey != "" {
		llmRouter.RegisterProvider(anthropic.NewProvider(cfg.LLM.Anthropic.APIKey, cfg.LLM.Anthropic.Model))
	}
	if cfg.LLM.DeepSeek.APIKey != "" {
		llmRouter.RegisterProvider(deepseek.NewProvider(cfg.LLM.DeepSeek.APIKey, cfg.LLM.DeepSeek.Model))
	}
	if cfg.LLM.Ollama.Host != "" {
		log.Info().Str("host", cfg.LLM.Ollama.Host).Msg("Registering Ollama provider")
		llmRouter.RegisterProvider(ollama.NewProvider(cfg.LLM.Ollama.Host, cfg.LLM.Ollama.DefaultModel))
	}
	if names := llmRouter.ListProviders(); len(names) == 0 {
		log.Warn().Msg("No LLM provider configured, running on heuristics and canned replies only")
	} else {
		log.Info().Strs("providers", names).Msg("LLM providers registered")
	}

	// Engagement pipeline
	detector := detect.NewDetector(llmRouter, detect.Config{
		Threshold:     cfg.Detection.ConfidenceThreshold,
		LowFloor:      cfg.Detection.LowConfidenceFloor,
		HistoryWindow: cfg.Detection.HistoryWindow,
	})
	agent := persona.NewAgent(llmRouter, persona.Config{
		Temperature: cfg.LLM.OpenAI.Temperature,
	})
	reporter := report.NewReporter(report.Config{
		URL:         cfg.Callback.URL,
		Timeout:     cfg.Callback.Timeout(),
		MaxRetries:  cfg.Callback.MaxRetries,
		BackoffBase: cfg.Callback.BackoffBase,
	})
	if !reporter.Enabled() {
		log.Warn().Msg("No callback URL configured, final reports will not be delivered")
	}

	engagementService := service.NewEngagementService(
		store,
		detector,
		agent,
		reporter,
		archive,
		llmRouter,
		service.EngagementConfig{
			MinMessages:          cfg.Engagement.MinMessagesForCallback,
			MinIntelligenceItems: cfg.Engagement.MinIntelligenceItems,
			TypingDelay: persona.DelayConfig{
				Enabled:        cfg.Engagement.TypingDelay.Enabled,
				CharsPerSecond: cfg.Engagement.TypingDelay.CharsPerSecond,
				Min:            cfg.Engagement.TypingDelay.Min,
				Max:            cfg.Engagement.TypingDelay.Max,
				Jitter:         cfg.Engagement.TypingDelay.Jitter,
			},
		},
	)
	opsService := service.NewOpsService(store, archive)

	// Handlers
	chatHandler := handler.NewChatHandler(engagementService)
	opsHandler := handler.NewOpsHandler(opsService, llmRouter)

	// Auth middleware
	apiKeyMiddleware := customMiddleware.NewAPIKeyMiddleware(cfg.Auth.APIKey)
	jwtManager := security.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.OperatorTokenTTL)
	authMiddleware := customMiddleware.NewAuthMiddleware(jwtManager)

	// Public routes
	r.Get("/", handler.Root)
	r.Get("/health", handler.HealthCheck(store))

	// Engagement endpoint
	r.Group(func(r chi.Router) {
		r.Use(apiKeyMiddleware.Authenticate)
		if cfg.Server.RateLimit.Enabled && cfg.Server.RateLimit.RequestsPerMinute > 0 {
			rateLimiter := redisrepo.NewRateLimiter(
				redisClient,
				cfg.Server.RateLimit.RequestsPerMinute,
				cfg.Server.RateLimit.Burst,
			)
			r.Use(customMiddleware.NewRateLimitMiddleware(rateLimiter).Limit)
		}
		r.Post("/chat", chatHandler.Handle)
	})

	// Operator routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		r.Get("/llm-providers", opsHandler.ListProviders)
		r.Get("/reports", opsHandler.ListReports)

		r.Route("/sessions", func(r chi.Router) {
			r.Get("/", opsHandler.ListSessions)

			r.Route("/{sessionID}", func(r chi.Router) {
				r.Get("/", opsHandler.GetSession)
				r.Delete("/", opsHandler.DeleteSession)
			})
		})
	})

	return r
}
