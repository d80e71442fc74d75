package middleware

import (
	"runtime/debug"

	"github.com/futig/puppy-picker/internal/telegram/render"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Sender sends messages to Telegram
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// RecoveryMiddleware recovers from panics
type RecoveryMiddleware struct {
	logger *zap.Logger
	bot    Sender
}

// NewRecoveryMiddleware creates a new recovery middleware
func NewRecoveryMiddleware(logger *zap.Logger, bot Sender) *RecoveryMiddleware {
	return &RecoveryMiddleware{
		logger: logger,
		bot:    bot,
	}
}

// Handle recovers from a panic in next and tells the user something went wrong
func (m *RecoveryMiddleware) Handle(update tgbotapi.Update, next func(tgbotapi.Update)) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}

		m.logger.Error("panic recovered in telegram handler",
			zap.Any("panic", r),
			zap.String("stack", string(debug.Stack())),
			zap.Int("update_id", update.UpdateID),
		)

		_, chatID := updateParties(update)
		if chatID == 0 {
			return
		}

		if _, err := m.bot.Send(tgbotapi.NewMessage(chatID, render.ErrGeneric)); err != nil {
			m.logger.Error("failed to send error message",
				zap.Error(err),
				zap.Int64("chat_id", chatID),
			)
		}
	}()

	next(update)
}
