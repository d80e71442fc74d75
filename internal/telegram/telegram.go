package telegram

import (
	"context"
	"fmt"

	"github.com/futig/puppy-picker/internal/config"
	"github.com/futig/puppy-picker/internal/questionnaire"
	"github.com/futig/puppy-picker/internal/telegram/bot"
	"github.com/futig/puppy-picker/internal/telegram/handlers"
	"github.com/futig/puppy-picker/internal/telegram/keyboard"
	"go.uber.org/zap"
)

// Bot is the main telegram bot interface
type Bot interface {
	Start(ctx context.Context) error
	Stop() error
}

// NewBot initializes the telegram bot with all dependencies
func NewBot(
	cfg *config.TelegramConfig,
	sessionUC handlers.SessionUsecase,
	logger *zap.Logger,
	engineOpts ...questionnaire.Option,
) (Bot, error) {
	b, err := bot.New(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	if err := registerHandlers(b, sessionUC, logger, engineOpts...); err != nil {
		return nil, err
	}

	logger.Info("telegram bot initialized successfully")

	return b, nil
}

func registerHandlers(
	b *bot.Bot,
	sessionUC handlers.SessionUsecase,
	logger *zap.Logger,
	engineOpts ...questionnaire.Option,
) error {
	api := b.API()
	sender := handlers.NewMessageSender(api, logger)
	kb := keyboard.NewBuilder()
	flow := handlers.NewFlow(sessionUC, sender, kb, logger, engineOpts...)

	for _, h := range []handlers.Handler{
		handlers.NewCommandHandler(sender, flow, kb, logger),
		handlers.NewCallbackHandler(api, sender, sessionUC, flow, logger),
	} {
		if err := b.RegisterHandler(h); err != nil {
			return fmt.Errorf("register handler: %w", err)
		}
	}

	return nil
}
