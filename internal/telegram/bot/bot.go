package bot

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/futig/puppy-picker/internal/config"
	"github.com/futig/puppy-picker/internal/telegram/handlers"
	"github.com/futig/puppy-picker/internal/telegram/middleware"
	"github.com/futig/puppy-picker/internal/telegram/render"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// API is the part of *tgbotapi.BotAPI the bot uses
type API interface {
	handlers.BotAPI
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Bot represents the Telegram bot
type Bot struct {
	api         API
	cfg         *config.TelegramConfig
	handlers    map[string]handlers.Handler
	logger      *zap.Logger
	loggingMW   *middleware.LoggingMiddleware
	recoveryMW  *middleware.RecoveryMiddleware
	updatesChan tgbotapi.UpdatesChannel
	stopChan    chan struct{}
	stopOnce    sync.Once
	wg          sync.WaitGroup
}

// New authorizes the bot token and creates the bot
func New(cfg *config.TelegramConfig, logger *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("create bot API: %w", err)
	}

	logger.Info("telegram bot authorized",
		zap.String("username", api.Self.UserName),
		zap.Int64("id", api.Self.ID),
	)

	return NewWithAPI(api, cfg, logger), nil
}

// NewWithAPI creates a bot over an already authorized API
func NewWithAPI(api API, cfg *config.TelegramConfig, logger *zap.Logger) *Bot {
	return &Bot{
		api:        api,
		cfg:        cfg,
		handlers:   make(map[string]handlers.Handler),
		logger:     logger,
		loggingMW:  middleware.NewLoggingMiddleware(logger),
		recoveryMW: middleware.NewRecoveryMiddleware(logger, api),
		stopChan:   make(chan struct{}),
	}
}

// Start starts receiving updates
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("starting telegram bot")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.UpdateTimeout
	b.updatesChan = b.api.GetUpdatesChan(u)

	ctx = ctxzap.ToContext(ctx, b.logger)
	go b.processUpdates(ctx)

	b.logger.Info("telegram bot started successfully")
	return nil
}

// Stop stops receiving updates and waits for running handlers
func (b *Bot) Stop() error {
	b.logger.Info("stopping telegram bot")

	b.stopOnce.Do(func() {
		close(b.stopChan)
		b.api.StopReceivingUpdates()
	})

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	shutdownTimeout := time.Duration(b.cfg.ShutdownTimeout) * time.Second
	select {
	case <-done:
		b.logger.Info("all handlers completed gracefully")
	case <-time.After(shutdownTimeout):
		b.logger.Warn("shutdown timeout exceeded, some handlers may not have completed",
			zap.Duration("timeout", shutdownTimeout),
		)
		return fmt.Errorf("shutdown timeout exceeded")
	}

	b.logger.Info("telegram bot stopped successfully")
	return nil
}

func (b *Bot) processUpdates(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			ctxzap.Info(ctx, "context cancelled, stopping update processing")
			return
		case <-b.stopChan:
			ctxzap.Info(ctx, "stop signal received, stopping update processing")
			return
		case update, ok := <-b.updatesChan:
			if !ok {
				return
			}
			b.wg.Add(1)
			go func(u tgbotapi.Update) {
				defer b.wg.Done()
				b.handleUpdateWithMiddleware(ctx, u)
			}(update)
		}
	}
}

func (b *Bot) handleUpdateWithMiddleware(ctx context.Context, update tgbotapi.Update) {
	b.loggingMW.Handle(update, func(u tgbotapi.Update) {
		b.recoveryMW.Handle(u, func(u2 tgbotapi.Update) {
			b.handleUpdate(ctx, u2)
		})
	})
}

// handleUpdate routes callbacks to the CALLBACK handler and messages to the COMMAND handler
func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	var (
		state string
		msg   *handlers.Message
	)

	switch {
	case update.CallbackQuery != nil && update.CallbackQuery.Message != nil:
		query := update.CallbackQuery
		state = handlers.HandlerStateCallback
		msg = &handlers.Message{
			ChatID:       query.Message.Chat.ID,
			UserID:       query.From.ID,
			MessageID:    query.Message.MessageID,
			CallbackData: query.Data,
			CallbackID:   query.ID,
		}
	case update.Message != nil && update.Message.From != nil:
		message := update.Message
		state = handlers.HandlerStateCommand
		msg = &handlers.Message{
			ChatID:    message.Chat.ID,
			UserID:    message.From.ID,
			MessageID: message.MessageID,
			Text:      message.Text,
			Command:   message.Command(),
		}
	default:
		return
	}

	ctx = ctxzap.ToContext(ctx, b.logger.With(
		zap.Int64("user_id", msg.UserID),
		zap.Int64("chat_id", msg.ChatID),
	))

	handler, exists := b.handlers[state]
	if !exists {
		ctxzap.Warn(ctx, "no handler for state", zap.String("state", state))
		b.sendError(msg.ChatID, render.ErrGeneric)
		return
	}

	if err := handler.Handle(ctx, msg); err != nil {
		ctxzap.Error(ctx, "handler error",
			zap.Error(err),
			zap.String("state", state),
		)
		if state == handlers.HandlerStateCommand {
			b.sendError(msg.ChatID, render.ErrGeneric)
		}
	}
}

func (b *Bot) sendError(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		b.logger.Error("failed to send error message",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
	}
}

// RegisterHandler registers a handler for a state
func (b *Bot) RegisterHandler(handler handlers.Handler) error {
	state := handler.GetState()
	if !handlers.IsValidState(state) {
		return fmt.Errorf("invalid handler state: %s", state)
	}

	b.handlers[state] = handler
	b.logger.Info("handler registered", zap.String("state", state))
	return nil
}

// API returns the Telegram API the bot talks to
func (b *Bot) API() API {
	return b.api
}
