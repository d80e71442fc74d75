package builder

import (
	"fmt"
	"net/http"
	"time"

	"github.com/futig/puppy-picker/internal/api"
	recommendationapi "github.com/futig/puppy-picker/internal/api/recommendation"
	sessionapi "github.com/futig/puppy-picker/internal/api/session"
	"github.com/futig/puppy-picker/internal/config"
	"github.com/futig/puppy-picker/internal/entity"
	"github.com/futig/puppy-picker/internal/integration/llm"
	"github.com/futig/puppy-picker/internal/pkg/formatter"
	"github.com/futig/puppy-picker/internal/pkg/validator"
	"github.com/futig/puppy-picker/internal/repository"
	"github.com/futig/puppy-picker/internal/telegram"
	"github.com/futig/puppy-picker/internal/usecase/recommendation"
	"github.com/futig/puppy-picker/internal/usecase/session"
	"go.uber.org/zap"
)

// core holds the components shared by the HTTP server and the Telegram bot
type core struct {
	cfg            *config.Config
	logger         *zap.Logger
	sessions       *repository.SessionCache
	validator      *validator.Validator
	recommendation *recommendation.Usecase
	session        *session.SessionUsecase
}

func buildCore(component string) (*core, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building "+component,
		zap.String("environment", cfg.Environment),
		zap.String("llm_provider", cfg.LLMConnectorCfg.Provider),
		zap.String("llm_model", cfg.LLMConnectorCfg.Model),
		zap.Bool("llm_api_key_set", cfg.ProviderAPIKey() != ""),
	)

	sessions := repository.NewSessionCache(cfg.SessionCfg.TTL, cfg.SessionCfg.CleanupInterval)
	logger.Info("Session cache initialized",
		zap.Duration("ttl", cfg.SessionCfg.TTL),
	)

	completer := newCompleter(cfg, logger)
	if !completer.Configured() {
		logger.Warn("Recommendation provider has no API key; requests will fail until one is set",
			zap.String("llm_provider", cfg.LLMConnectorCfg.Provider),
		)
	}

	answerValidator := validator.NewAnswerValidator(entity.Questions())

	recommendationUC := recommendation.NewUsecase(
		completer,
		answerValidator,
		recommendation.Options{
			MaxTokens:   cfg.LLMConnectorCfg.MaxTokens,
			Temperature: cfg.LLMConnectorCfg.Temperature,
		},
		logger,
	)

	sessionUC := session.NewUsecase(sessions, recommendationUC, formatter.NewFactory(), logger)
	logger.Info("Use cases initialized")

	return &core{
		cfg:            cfg,
		logger:         logger,
		sessions:       sessions,
		validator:      answerValidator,
		recommendation: recommendationUC,
		session:        sessionUC,
	}, nil
}

// newCompleter picks the recommendation provider connector
func newCompleter(cfg *config.Config, logger *zap.Logger) recommendation.Completer {
	if cfg.EnableMocks {
		logger.Info("Using mock connector for the recommendation provider")
		return llm.NewMockConnector(logger)
	}

	switch cfg.LLMConnectorCfg.Provider {
	case config.ProviderGemini:
		logger.Info("Using Gemini connector")
		return llm.NewGeminiConnector(cfg.LLMConnectorCfg, cfg.GeminiCfg, logger)
	default:
		logger.Info("Using OpenAI connector")
		return llm.NewOpenAIConnector(cfg.LLMConnectorCfg, cfg.OpenAICfg, logger)
	}
}

func Build() (*App, error) {
	c, err := buildCore("application")
	if err != nil {
		return nil, err
	}
	cfg, logger := c.cfg, c.logger

	recommendationHandler := recommendationapi.NewHandler(c.recommendation, c.validator)
	sessionHandler := sessionapi.NewHandler(c.session)
	logger.Info("API handlers initialized")

	router := api.SetupRouter(
		api.RouterConfig{
			AllowedOrigins: cfg.CORSAllowedOrigins,
			RequestTimeout: cfg.ServerWriteTimeout,
		},
		recommendationHandler,
		sessionHandler,
		logger,
	)
	logger.Info("HTTP router configured")

	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server:   server,
		sessions: c.sessions,
		logger:   logger,
	}, nil
}

// BuildTelegramBot creates and initializes the Telegram bot
func BuildTelegramBot() (telegram.Bot, *zap.Logger, func(), error) {
	c, err := buildCore("Telegram bot")
	if err != nil {
		return nil, nil, nil, err
	}

	if c.cfg.TelegramCfg.BotToken == "" {
		c.sessions.Close()
		return nil, nil, nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}

	bot, err := telegram.NewBot(&c.cfg.TelegramCfg, c.session, c.logger)
	if err != nil {
		c.sessions.Close()
		return nil, nil, nil, fmt.Errorf("initialize telegram bot: %w", err)
	}

	c.logger.Info("Telegram bot built successfully",
		zap.String("environment", c.cfg.Environment),
	)

	return bot, c.logger, c.sessions.Close, nil
}
