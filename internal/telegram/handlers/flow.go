package handlers

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/futig/puppy-picker/internal/entity"
	"github.com/futig/puppy-picker/internal/questionnaire"
	"github.com/futig/puppy-picker/internal/telegram/keyboard"
	"github.com/futig/puppy-picker/internal/telegram/render"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// chatRef is the message that shows a user's questionnaire
type chatRef struct {
	draw      sync.Mutex
	mu        sync.Mutex
	chatID    int64
	messageID int
}

func (c *chatRef) get() (int64, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.chatID, c.messageID
}

func (c *chatRef) set(chatID int64, messageID int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.chatID, c.messageID = chatID, messageID
}

// Flow runs one questionnaire per Telegram user on top of the session use case
type Flow struct {
	sessionUC     SessionUsecase
	messageSender *MessageSender
	keyboard      *keyboard.Builder
	engineOpts    []questionnaire.Option
	logger        *zap.Logger

	mu    sync.Mutex
	chats map[int64]*chatRef
}

func NewFlow(
	sessionUC SessionUsecase,
	messageSender *MessageSender,
	keyboard *keyboard.Builder,
	logger *zap.Logger,
	engineOpts ...questionnaire.Option,
) *Flow {
	return &Flow{
		sessionUC:     sessionUC,
		messageSender: messageSender,
		keyboard:      keyboard,
		engineOpts:    engineOpts,
		logger:        logger,
		chats:         make(map[int64]*chatRef),
	}
}

// SessionID is the session key of a Telegram user
func SessionID(userID int64) string {
	return fmt.Sprintf("tg:%d", userID)
}

// Start opens a new questionnaire for the user and posts its first question
func (f *Flow) Start(ctx context.Context, chatID, userID int64) error {
	ref := f.chat(userID)

	opts := append(append([]questionnaire.Option{}, f.engineOpts...),
		questionnaire.WithAdvanceHook(func(view questionnaire.View) {
			f.onAdvance(userID, ref, view)
		}),
	)

	view, err := f.sessionUC.OpenSession(ctx, SessionID(userID), opts...)
	if err != nil {
		return fmt.Errorf("open session: %w", err)
	}

	messageID, err := f.messageSender.Send(chatID, render.RenderQuestion(view), f.keyboard.QuestionKeyboard(view))
	if err != nil {
		return fmt.Errorf("send first question: %w", err)
	}
	ref.set(chatID, messageID)

	ctxzap.Info(ctx, "questionnaire started", zap.Int64("user_id", userID))
	return nil
}

// Show redraws the user's questionnaire message with the latest state
func (f *Flow) Show(ctx context.Context, chatID int64, messageID int, userID int64) error {
	ref := f.chat(userID)
	ref.set(chatID, messageID)
	return f.redraw(ctx, userID, ref)
}

func (f *Flow) onAdvance(userID int64, ref *chatRef, view questionnaire.View) {
	if err := f.redraw(context.Background(), userID, ref); err != nil {
		f.logger.Warn("failed to show next question",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.Int("step", view.Step),
		)
	}
}

// redraw renders the state read under the chat lock, so the last edit always shows the last change
func (f *Flow) redraw(ctx context.Context, userID int64, ref *chatRef) error {
	ref.draw.Lock()
	defer ref.draw.Unlock()

	chatID, messageID := ref.get()
	if messageID == 0 {
		return nil
	}

	view, err := f.sessionUC.GetState(ctx, SessionID(userID))
	if err != nil {
		if errors.Is(err, entity.ErrSessionNotFound) || errors.Is(err, entity.ErrClosed) {
			f.forget(userID, ref)
		}
		return err
	}

	return f.messageSender.Edit(chatID, messageID, render.Render(view), f.keyboard.ForView(view))
}

func (f *Flow) chat(userID int64) *chatRef {
	f.mu.Lock()
	defer f.mu.Unlock()

	ref, ok := f.chats[userID]
	if !ok {
		ref = &chatRef{}
		f.chats[userID] = ref
	}
	return ref
}

// Forget drops the message tracked for a user whose session is gone
func (f *Flow) Forget(userID int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.chats, userID)
}

// forget drops ref unless a newer Start already replaced it
func (f *Flow) forget(userID int64, ref *chatRef) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.chats[userID] == ref {
		delete(f.chats, userID)
	}
}
