package handlers

import (
	"context"

	"github.com/futig/puppy-picker/internal/entity"
	"github.com/futig/puppy-picker/internal/questionnaire"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// BotAPI is the part of *tgbotapi.BotAPI the handlers use
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// SessionUsecase defines the questionnaire operations used by the Telegram bot
type SessionUsecase interface {
	OpenSession(ctx context.Context, sessionID string, opts ...questionnaire.Option) (questionnaire.View, error)
	GetState(ctx context.Context, sessionID string) (questionnaire.View, error)
	SelectOption(ctx context.Context, sessionID, questionID, value string) (questionnaire.View, error)
	GoBack(ctx context.Context, sessionID string) (questionnaire.View, error)
	Submit(ctx context.Context, sessionID string) (questionnaire.View, error)
	Reset(ctx context.Context, sessionID string) (questionnaire.View, error)
	ExportResult(ctx context.Context, sessionID string, format entity.ResultFormat) (*entity.ExportedResult, error)
}
