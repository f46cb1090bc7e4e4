package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Session    SessionConfig    `mapstructure:"session"`
	LLM        LLMConfig        `mapstructure:"llm"`
	Detection  DetectionConfig  `mapstructure:"detection"`
	Engagement EngagementConfig `mapstructure:"engagement"`
	Callback   CallbackConfig   `mapstructure:"callback"`
	Archive    ArchiveConfig    `mapstructure:"archive"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

type ServerConfig struct {
	Host            string          `mapstructure:"host"`
	Port            int             `mapstructure:"port"`
	ReadTimeout     time.Duration   `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration   `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration   `mapstructure:"idle_timeout"`
	RequestTimeout  time.Duration   `mapstructure:"request_timeout"`
	ShutdownTimeout time.Duration   `mapstructure:"shutdown_timeout"`
	RateLimit       RateLimitConfig `mapstructure:"rate_limit"`
}

// RateLimitConfig bounds inbound /chat traffic per caller IP. Every accepted
// turn can fan out into LLM calls, so admission control caps the spend an
// abusive client can trigger.
type RateLimitConfig struct {
	Enabled           bool `mapstructure:"enabled"`
	RequestsPerMinute int  `mapstructure:"requests_per_minute"`
	Burst             int  `mapstructure:"burst"`
}

func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type AuthConfig struct {
	APIKey           string        `mapstructure:"api_key"`
	JWTSecret        string        `mapstructure:"jwt_secret"`
	OperatorTokenTTL time.Duration `mapstructure:"operator_token_ttl"`
}

type RedisConfig struct {
	URL      string `mapstructure:"url"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SessionConfig controls session persistence. The TTL is plain seconds so the
// REDIS_SESSION_TTL environment variable keeps its historical meaning.
type SessionConfig struct {
	TTLSeconds    int    `mapstructure:"ttl"`
	EncryptionKey string `mapstructure:"encryption_key"`
}

func (c SessionConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

type LLMConfig struct {
	DefaultProvider string          `mapstructure:"default_provider"`
	OpenAI          OpenAIConfig    `mapstructure:"openai"`
	Gemini          GeminiConfig    `mapstructure:"gemini"`
	Anthropic       AnthropicConfig `mapstructure:"anthropic"`
	DeepSeek        DeepSeekConfig  `mapstructure:"deepseek"`
	Ollama          OllamaConfig    `mapstructure:"ollama"`
}

type OpenAIConfig struct {
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	Temperature float64 `mapstructure:"temperature"`
}

type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type AnthropicConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type DeepSeekConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type OllamaConfig struct {
	Host         string `mapstructure:"host"`
	DefaultModel string `mapstructure:"default_model"`
}

type DetectionConfig struct {
	ConfidenceThreshold float64 `mapstructure:"confidence_threshold"`
	LowConfidenceFloor  float64 `mapstructure:"low_confidence_floor"`
	HistoryWindow       int     `mapstructure:"history_window"`
}

type EngagementConfig struct {
	MinMessagesForCallback int               `mapstructure:"min_messages_for_callback"`
	MinIntelligenceItems   int               `mapstructure:"min_intelligence_items"`
	TypingDelay            TypingDelayConfig `mapstructure:"typing_delay"`
}

type TypingDelayConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	CharsPerSecond float64       `mapstructure:"chars_per_second"`
	Min            time.Duration `mapstructure:"min"`
	Max            time.Duration `mapstructure:"max"`
	Jitter         time.Duration `mapstructure:"jitter"`
}

// CallbackConfig controls final report delivery. The per-attempt timeout is
// plain seconds so the CALLBACK_TIMEOUT environment variable keeps its
// historical meaning.
type CallbackConfig struct {
	URL            string        `mapstructure:"url"`
	TimeoutSeconds int           `mapstructure:"timeout"`
	MaxRetries     int           `mapstructure:"max_retries"`
	BackoffBase    time.Duration `mapstructure:"backoff_base"`
}

func (c CallbackConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

type ArchiveConfig struct {
	Enabled  bool           `mapstructure:"enabled"`
	Postgres PostgresConfig `mapstructure:"postgres"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
	SSLMode  string `mapstructure:"ssl_mode"`
	MaxConns int32  `mapstructure:"max_conns"`
	MinConns int32  `mapstructure:"min_conns"`
}

func (c PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Database, c.SSLMode,
	)
}

type LoggingConfig struct {
	Level    string        `mapstructure:"level"`
	Format   string        `mapstructure:"format"`
	FilePath string        `mapstructure:"file_path"`
	MaxAge   time.Duration `mapstructure:"max_age"`
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	v := viper.New()

	// Set config file path
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./configs/config.yaml"
	}

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	// Set defaults
	setDefaults(v)

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(configPath); !os.IsNotExist(statErr) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, use defaults and env vars
	}

	// Override with environment variables
	v.AutomaticEnv()
	bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Validate enforces the settings the service cannot start without.
func (c *Config) Validate() error {
	if c.Auth.APIKey == "" || c.Auth.APIKey == "your-secret-api-key-here" {
		return fmt.Errorf("auth.api_key must be set to a secure value (API_KEY)")
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret must be set (JWT_SECRET); the operator API signs tokens with it")
	}
	if c.Detection.ConfidenceThreshold <= 0 || c.Detection.ConfidenceThreshold > 1 {
		return fmt.Errorf("detection.confidence_threshold must be in (0, 1]")
	}
	if c.Detection.LowConfidenceFloor < 0 || c.Detection.LowConfidenceFloor >= c.Detection.ConfidenceThreshold {
		return fmt.Errorf("detection.low_confidence_floor must be in [0, confidence_threshold)")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	// Server
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.request_timeout", "60s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.rate_limit.enabled", true)
	v.SetDefault("server.rate_limit.requests_per_minute", 60)
	v.SetDefault("server.rate_limit.burst", 10)

	// Auth
	v.SetDefault("auth.operator_token_ttl", "12h")

	// Redis
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.db", 0)

	// Session
	v.SetDefault("session.ttl", 86400)

	// LLM
	v.SetDefault("llm.default_provider", "openai")
	v.SetDefault("llm.openai.model", "gpt-4o-mini")
	v.SetDefault("llm.openai.temperature", 0.7)
	v.SetDefault("llm.gemini.model", "gemini-2.5-flash")
	v.SetDefault("llm.ollama.host", "http://localhost:11434")
	v.SetDefault("llm.ollama.default_model", "llama3")

	// Detection
	v.SetDefault("detection.confidence_threshold", 0.7)
	v.SetDefault("detection.low_confidence_floor", 0.3)
	v.SetDefault("detection.history_window", 6)

	// Engagement
	v.SetDefault("engagement.min_messages_for_callback", 5)
	v.SetDefault("engagement.min_intelligence_items", 2)
	v.SetDefault("engagement.typing_delay.enabled", true)
	v.SetDefault("engagement.typing_delay.chars_per_second", 50)
	v.SetDefault("engagement.typing_delay.min", "2s")
	v.SetDefault("engagement.typing_delay.max", "8s")
	v.SetDefault("engagement.typing_delay.jitter", "500ms")

	// Callback
	v.SetDefault("callback.timeout", 30)
	v.SetDefault("callback.max_retries", 3)
	v.SetDefault("callback.backoff_base", "1s")

	// Archive
	v.SetDefault("archive.enabled", false)
	v.SetDefault("archive.postgres.host", "localhost")
	v.SetDefault("archive.postgres.port", 5432)
	v.SetDefault("archive.postgres.user", "scambait")
	v.SetDefault("archive.postgres.database", "scambait")
	v.SetDefault("archive.postgres.ssl_mode", "disable")
	v.SetDefault("archive.postgres.max_conns", 10)
	v.SetDefault("archive.postgres.min_conns", 2)

	// Logging
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.max_age", "168h")
}

func bindEnvVars(v *viper.Viper) {
	// Auth
	v.BindEnv("auth.api_key", "API_KEY")
	v.BindEnv("auth.jwt_secret", "JWT_SECRET")

	// Redis and sessions
	v.BindEnv("redis.url", "REDIS_URL")
	v.BindEnv("redis.password", "REDIS_PASSWORD")
	v.BindEnv("session.ttl", "REDIS_SESSION_TTL")
	v.BindEnv("session.encryption_key", "SESSION_ENCRYPTION_KEY")

	// LLM API keys
	v.BindEnv("llm.default_provider", "LLM_DEFAULT_PROVIDER")
	v.BindEnv("llm.openai.api_key", "OPENAI_API_KEY")
	v.BindEnv("llm.openai.model", "OPENAI_MODEL")
	v.BindEnv("llm.openai.temperature", "OPENAI_TEMPERATURE")
	v.BindEnv("llm.gemini.api_key", "GEMINI_API_KEY")
	v.BindEnv("llm.anthropic.api_key", "ANTHROPIC_API_KEY")
	v.BindEnv("llm.deepseek.api_key", "DEEPSEEK_API_KEY")
	v.BindEnv("llm.ollama.host", "OLLAMA_HOST")

	// Detection and engagement
	v.BindEnv("detection.confidence_threshold", "SCAM_DETECTION_CONFIDENCE_THRESHOLD")
	v.BindEnv("engagement.min_messages_for_callback", "MIN_MESSAGES_FOR_CALLBACK")
	v.BindEnv("engagement.min_intelligence_items", "MIN_INTELLIGENCE_ITEMS")

	// Callback
	v.BindEnv("callback.url", "CALLBACK_URL", "GUVI_CALLBACK_URL")
	v.BindEnv("callback.timeout", "CALLBACK_TIMEOUT")
	v.BindEnv("callback.max_retries", "CALLBACK_MAX_RETRIES")

	// Archive
	v.BindEnv("archive.postgres.password", "POSTGRES_PASSWORD")
}
