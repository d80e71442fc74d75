package session

import (
	"context"

	"github.com/futig/puppy-picker/internal/entity"
	"github.com/futig/puppy-picker/internal/questionnaire"
)

type SessionUsecase interface {
	StartSession(ctx context.Context) (string, questionnaire.View, error)
	GetState(ctx context.Context, sessionID string) (questionnaire.View, error)
	SelectOption(ctx context.Context, sessionID, questionID, value string) (questionnaire.View, error)
	GoBack(ctx context.Context, sessionID string) (questionnaire.View, error)
	Submit(ctx context.Context, sessionID string) (questionnaire.View, error)
	Reset(ctx context.Context, sessionID string) (questionnaire.View, error)
	DeleteSession(ctx context.Context, sessionID string) error
	ExportResult(ctx context.Context, sessionID string, format entity.ResultFormat) (*entity.ExportedResult, error)
}
