package session

import (
	"context"
	"fmt"
	"time"

	"github.com/futig/puppy-picker/internal/entity"
	"github.com/futig/puppy-picker/internal/questionnaire"
	"github.com/futig/puppy-picker/internal/repository"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// SessionUsecase drives server-hosted questionnaire sessions
type SessionUsecase struct {
	sessionRepo repository.SessionRepository
	recommender questionnaire.Recommender
	formatters  FormatterFactory
	engineOpts  []questionnaire.Option
	now         func() time.Time
	logger      *zap.Logger
}

// NewUsecase creates a new session use case
func NewUsecase(
	sessionRepo repository.SessionRepository,
	recommender questionnaire.Recommender,
	formatters FormatterFactory,
	logger *zap.Logger,
	engineOpts ...questionnaire.Option,
) *SessionUsecase {
	return &SessionUsecase{
		sessionRepo: sessionRepo,
		recommender: recommender,
		formatters:  formatters,
		engineOpts:  engineOpts,
		now:         time.Now,
		logger:      logger,
	}
}

// StartSession creates a fresh engine under a new session ID
func (uc *SessionUsecase) StartSession(ctx context.Context) (string, questionnaire.View, error) {
	sessionID := uuid.New().String()

	view, err := uc.OpenSession(ctx, sessionID)
	if err != nil {
		return "", questionnaire.View{}, err
	}

	return sessionID, view, nil
}

// OpenSession creates a fresh engine under sessionID, closing any engine stored there before.
// opts are applied after the use case defaults.
func (uc *SessionUsecase) OpenSession(
	ctx context.Context,
	sessionID string,
	opts ...questionnaire.Option,
) (questionnaire.View, error) {
	engineOpts := append(append([]questionnaire.Option{}, uc.engineOpts...), opts...)

	session := &repository.Session{
		ID:        sessionID,
		Engine:    questionnaire.NewEngine(uc.recommender, engineOpts...),
		CreatedAt: uc.now(),
	}

	if err := uc.sessionRepo.SaveSession(ctx, session); err != nil {
		return questionnaire.View{}, fmt.Errorf("save session: %w", err)
	}

	ctxzap.Info(ctx, "session started", zap.String("session_id", session.ID))

	return session.Engine.View(), nil
}

func (uc *SessionUsecase) GetState(ctx context.Context, sessionID string) (questionnaire.View, error) {
	session, err := uc.sessionRepo.GetSession(ctx, sessionID)
	if err != nil {
		return questionnaire.View{}, fmt.Errorf("get session: %w", err)
	}

	return session.Engine.View(), nil
}

func (uc *SessionUsecase) SelectOption(ctx context.Context, sessionID, questionID, value string) (questionnaire.View, error) {
	session, err := uc.sessionRepo.GetSession(ctx, sessionID)
	if err != nil {
		return questionnaire.View{}, fmt.Errorf("get session: %w", err)
	}

	if err := session.Engine.SelectOption(questionID, value); err != nil {
		return questionnaire.View{}, fmt.Errorf("select option: %w", err)
	}

	return session.Engine.View(), nil
}

func (uc *SessionUsecase) GoBack(ctx context.Context, sessionID string) (questionnaire.View, error) {
	session, err := uc.sessionRepo.GetSession(ctx, sessionID)
	if err != nil {
		return questionnaire.View{}, fmt.Errorf("get session: %w", err)
	}

	session.Engine.GoBack()

	return session.Engine.View(), nil
}

// Submit blocks until the recommendation arrives.
// A provider failure is reported in the view, not as an error.
func (uc *SessionUsecase) Submit(ctx context.Context, sessionID string) (questionnaire.View, error) {
	session, err := uc.sessionRepo.GetSession(ctx, sessionID)
	if err != nil {
		return questionnaire.View{}, fmt.Errorf("get session: %w", err)
	}

	view, err := session.Engine.Submit(ctx)
	if err != nil {
		return questionnaire.View{}, fmt.Errorf("submit: %w", err)
	}

	ctxzap.Info(ctx, "session submitted",
		zap.String("session_id", sessionID),
		zap.Bool("failed", view.Error != ""),
	)

	return view, nil
}

func (uc *SessionUsecase) Reset(ctx context.Context, sessionID string) (questionnaire.View, error) {
	session, err := uc.sessionRepo.GetSession(ctx, sessionID)
	if err != nil {
		return questionnaire.View{}, fmt.Errorf("get session: %w", err)
	}

	if err := session.Engine.Reset(); err != nil {
		return questionnaire.View{}, fmt.Errorf("reset: %w", err)
	}

	return session.Engine.View(), nil
}

// DeleteSession removes the session and closes its engine
func (uc *SessionUsecase) DeleteSession(ctx context.Context, sessionID string) error {
	if err := uc.sessionRepo.DeleteSession(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	ctxzap.Info(ctx, "session deleted", zap.String("session_id", sessionID))
	return nil
}

// ExportResult renders the displayed result in the requested format
func (uc *SessionUsecase) ExportResult(
	ctx context.Context,
	sessionID string,
	format entity.ResultFormat,
) (*entity.ExportedResult, error) {
	fmtr, err := uc.formatters.Create(format)
	if err != nil {
		return nil, err
	}

	session, err := uc.sessionRepo.GetSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	view := session.Engine.View()
	if view.Mode != entity.ModeShowingResult {
		return nil, entity.ErrNoResult
	}

	report := entity.NewReport(session.Engine.Questions(), view.Answers, view.Result, view.Error, uc.now())
	content, err := fmtr.Format(report)
	if err != nil {
		return nil, fmt.Errorf("format result: %w", err)
	}

	return &entity.ExportedResult{
		Content:     content,
		ContentType: fmtr.ContentType(),
		FileName:    "puppy-match" + fmtr.FileExtension(),
	}, nil
}
