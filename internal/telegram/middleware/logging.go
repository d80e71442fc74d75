package middleware

import (
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// LoggingMiddleware logs all incoming updates
type LoggingMiddleware struct {
	logger *zap.Logger
}

// NewLoggingMiddleware creates a new logging middleware
func NewLoggingMiddleware(logger *zap.Logger) *LoggingMiddleware {
	return &LoggingMiddleware{
		logger: logger,
	}
}

// Handle logs the update before and after next
func (m *LoggingMiddleware) Handle(update tgbotapi.Update, next func(tgbotapi.Update)) {
	start := time.Now()
	userID, chatID := updateParties(update)

	m.logger.Info("telegram update received",
		zap.Int64("user_id", userID),
		zap.Int64("chat_id", chatID),
		zap.String("type", updateType(update)),
		zap.Int("update_id", update.UpdateID),
	)

	next(update)

	m.logger.Info("telegram update processed",
		zap.Int64("user_id", userID),
		zap.Int64("chat_id", chatID),
		zap.Duration("duration", time.Since(start)),
	)
}

func updateType(update tgbotapi.Update) string {
	switch {
	case update.CallbackQuery != nil:
		return "callback"
	case update.Message == nil:
		return "other"
	case update.Message.IsCommand():
		return "command"
	case update.Message.Text != "":
		return "text"
	default:
		return "other"
	}
}

// updateParties returns the user and chat of an update, zero when absent
func updateParties(update tgbotapi.Update) (userID, chatID int64) {
	switch {
	case update.Message != nil:
		if update.Message.From != nil {
			userID = update.Message.From.ID
		}
		if update.Message.Chat != nil {
			chatID = update.Message.Chat.ID
		}
	case update.CallbackQuery != nil:
		if update.CallbackQuery.From != nil {
			userID = update.CallbackQuery.From.ID
		}
		if update.CallbackQuery.Message != nil && update.CallbackQuery.Message.Chat != nil {
			chatID = update.CallbackQuery.Message.Chat.ID
		}
	}
	return userID, chatID
}
