package config

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Supported recommendation providers
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr         string        `env:"SERVER_ADDR" envDefault:":8080"`
	ServerReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"15s"`
	ServerWriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"90s"`
	CORSAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`

	// Recommendation provider configuration
	LLMConnectorCfg LLMConnectorConfig `envPrefix:"LLM_"`
	OpenAICfg       OpenAIConfig       `envPrefix:"OPENAI_"`
	GeminiCfg       GeminiConfig       `envPrefix:"GEMINI_"`

	// In-memory questionnaire sessions
	SessionCfg SessionConfig `envPrefix:"SESSION_"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Telegram bot configuration (optional)
	TelegramCfg TelegramConfig `envPrefix:"TELEGRAM_"`

	// Environment (set from flag, not from env var)
	Environment string
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	BotToken        string `env:"BOT_TOKEN"`
	UpdateTimeout   int    `env:"UPDATE_TIMEOUT" envDefault:"60"`
	ShutdownTimeout int    `env:"SHUTDOWN_TIMEOUT" envDefault:"30"` // seconds
}

// LLMConnectorConfig holds provider-independent completion settings
type LLMConnectorConfig struct {
	HTTPClientConfig
	Provider    string  `env:"PROVIDER" envDefault:"openai"`
	Model       string  `env:"MODEL"`
	MaxTokens   int     `env:"MAX_TOKENS" envDefault:"300"`
	Temperature float32 `env:"TEMPERATURE" envDefault:"0.7"`
}

type OpenAIConfig struct {
	APIKey  string `env:"API_KEY"`
	BaseURL string `env:"BASE_URL"`
}

type GeminiConfig struct {
	APIKey string `env:"API_KEY"`
}

// HTTPClientConfig tunes the outbound HTTP client. Zero values keep pkg/http defaults.
type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT"`
	Token                 string        `env:"TOKEN"`
	Url                   string        `env:"SERVICE_URL"`
}

type SessionConfig struct {
	TTL             time.Duration `env:"TTL" envDefault:"30m"`
	CleanupInterval time.Duration `env:"CLEANUP_INTERVAL" envDefault:"10m"`
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	return Load(*envFlag)
}

// Load reads the env file for environment and parses the process environment into a Config
func Load(environment string) (*Config, error) {
	envFile := getEnvFile(environment)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = environment
	cfg.LLMConnectorCfg.Provider = strings.ToLower(strings.TrimSpace(cfg.LLMConnectorCfg.Provider))
	if cfg.LLMConnectorCfg.Model == "" {
		cfg.LLMConnectorCfg.Model = defaultModel(cfg.LLMConnectorCfg.Provider)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// ProviderAPIKey returns the credential of the selected provider; empty when not provisioned
func (c *Config) ProviderAPIKey() string {
	switch c.LLMConnectorCfg.Provider {
	case ProviderGemini:
		return c.GeminiCfg.APIKey
	default:
		return c.OpenAICfg.APIKey
	}
}

func defaultModel(provider string) string {
	switch provider {
	case ProviderGemini:
		return "gemini-2.0-flash"
	default:
		return "gpt-3.5-turbo"
	}
}

func validateConfig(cfg *Config) error {
	var errors []string

	switch cfg.LLMConnectorCfg.Provider {
	case ProviderOpenAI, ProviderGemini:
	default:
		errors = append(errors, fmt.Sprintf("LLM_PROVIDER must be one of %s, %s, got %q", ProviderOpenAI, ProviderGemini, cfg.LLMConnectorCfg.Provider))
	}

	if cfg.LLMConnectorCfg.MaxTokens < 1 || cfg.LLMConnectorCfg.MaxTokens > 4096 {
		errors = append(errors, fmt.Sprintf("LLM_MAX_TOKENS must be between 1 and 4096, got %d", cfg.LLMConnectorCfg.MaxTokens))
	}

	if cfg.LLMConnectorCfg.Temperature < 0 || cfg.LLMConnectorCfg.Temperature > 2 {
		errors = append(errors, fmt.Sprintf("LLM_TEMPERATURE must be between 0 and 2, got %v", cfg.LLMConnectorCfg.Temperature))
	}

	if cfg.SessionCfg.TTL <= 0 {
		errors = append(errors, fmt.Sprintf("SESSION_TTL must be positive, got %s", cfg.SessionCfg.TTL))
	}

	if cfg.TelegramCfg.ShutdownTimeout < 1 || cfg.TelegramCfg.ShutdownTimeout > 300 {
		errors = append(errors, fmt.Sprintf("TELEGRAM_SHUTDOWN_TIMEOUT must be between 1 and 300 seconds, got %d", cfg.TelegramCfg.ShutdownTimeout))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
