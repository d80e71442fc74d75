package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/futig/puppy-picker/internal/entity"
	"github.com/futig/puppy-picker/internal/pkg/logger"
	"github.com/futig/puppy-picker/internal/telegram/keyboard"
	"github.com/futig/puppy-picker/internal/telegram/render"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// CallbackHandler handles inline button presses
type CallbackHandler struct {
	BaseHandler
	bot       BotAPI
	sessionUC SessionUsecase
	flow      *Flow
	logger    *zap.Logger
}

func NewCallbackHandler(
	bot BotAPI,
	messageSender *MessageSender,
	sessionUC SessionUsecase,
	flow *Flow,
	logger *zap.Logger,
) *CallbackHandler {
	return &CallbackHandler{
		BaseHandler: BaseHandler{
			stateName:     HandlerStateCallback,
			messageSender: messageSender,
		},
		bot:       bot,
		sessionUC: sessionUC,
		flow:      flow,
		logger:    logger,
	}
}

// Handle implements Handler
func (h *CallbackHandler) Handle(ctx context.Context, msg *Message) error {
	cb, err := keyboard.ParseCallback(msg.CallbackData)
	if err != nil {
		h.messageSender.AnswerCallback(msg.CallbackID, render.CbNotAvailable)
		return err
	}

	ctx = logger.WithSession(ctx, SessionID(msg.UserID), cb.Action)
	ctxzap.Debug(ctx, "callback routed",
		zap.String("callback_action", cb.Action),
		zap.String("callback_value", cb.Value),
	)

	switch cb.Action {
	case keyboard.ActionOption:
		return h.handleOption(ctx, msg, cb.Value)
	case keyboard.ActionControl:
		return h.handleControl(ctx, msg, cb.Value)
	case keyboard.ActionDownload:
		return h.handleDownload(ctx, msg, entity.ResultFormat(cb.Value))
	default:
		h.messageSender.AnswerCallback(msg.CallbackID, render.CbNotAvailable)
		return fmt.Errorf("unknown callback action: %s", cb.Action)
	}
}

func (h *CallbackHandler) handleOption(ctx context.Context, msg *Message, value string) error {
	questionID, option, err := keyboard.ParseOption(value)
	if err != nil {
		h.messageSender.AnswerCallback(msg.CallbackID, render.CbNotAvailable)
		return err
	}

	if _, err := h.sessionUC.SelectOption(ctx, SessionID(msg.UserID), questionID, option); err != nil {
		return h.rejectCallback(ctx, msg, err)
	}

	h.messageSender.AnswerCallback(msg.CallbackID, render.CbSelected)
	return h.flow.Show(ctx, msg.ChatID, msg.MessageID, msg.UserID)
}

func (h *CallbackHandler) handleControl(ctx context.Context, msg *Message, control string) error {
	sessionID := SessionID(msg.UserID)

	switch control {
	case keyboard.ControlStart:
		h.messageSender.AnswerCallback(msg.CallbackID, "")
		if err := h.flow.Start(ctx, msg.ChatID, msg.UserID); err != nil {
			h.HandleError(ctx, msg.ChatID, err)
		}
		return nil

	case keyboard.ControlBack:
		if _, err := h.sessionUC.GoBack(ctx, sessionID); err != nil {
			return h.rejectCallback(ctx, msg, err)
		}
		h.messageSender.AnswerCallback(msg.CallbackID, "")
		return h.flow.Show(ctx, msg.ChatID, msg.MessageID, msg.UserID)

	case keyboard.ControlSubmit:
		return h.handleSubmit(ctx, msg)

	case keyboard.ControlReset:
		if _, err := h.sessionUC.Reset(ctx, sessionID); err != nil {
			return h.rejectCallback(ctx, msg, err)
		}
		h.messageSender.AnswerCallback(msg.CallbackID, render.MsgStartOver)
		return h.flow.Show(ctx, msg.ChatID, msg.MessageID, msg.UserID)

	default:
		h.messageSender.AnswerCallback(msg.CallbackID, render.CbNotAvailable)
		return fmt.Errorf("unknown control: %s", control)
	}
}

func (h *CallbackHandler) handleSubmit(ctx context.Context, msg *Message) error {
	sessionID := SessionID(msg.UserID)

	current, err := h.sessionUC.GetState(ctx, sessionID)
	if err != nil {
		return h.rejectCallback(ctx, msg, err)
	}
	if current.Loading {
		h.messageSender.AnswerCallback(msg.CallbackID, render.CbWait)
		return nil
	}
	if !current.ReadyToSubmit {
		h.messageSender.AnswerCallback(msg.CallbackID, render.CbNotAvailable)
		return nil
	}

	h.messageSender.AnswerCallback(msg.CallbackID, "")
	if err := h.messageSender.Edit(msg.ChatID, msg.MessageID, render.MsgAnalysing, nil); err != nil {
		ctxzap.Warn(ctx, "failed to show analysing notice", zap.Error(err))
	}

	stopTyping := startTyping(ctx, h.bot, msg.ChatID, h.logger)
	view, err := h.sessionUC.Submit(ctx, sessionID)
	stopTyping()

	if errors.Is(err, entity.ErrSubmissionInFlight) {
		return nil
	}
	if err != nil {
		// Put the question back so the user can retry
		if showErr := h.flow.Show(ctx, msg.ChatID, msg.MessageID, msg.UserID); showErr != nil {
			ctxzap.Warn(ctx, "failed to restore question after submit", zap.Error(showErr))
		}
		h.HandleError(ctx, msg.ChatID, err)
		return nil
	}

	ctxzap.Info(ctx, "recommendation shown",
		zap.Int64("user_id", msg.UserID),
		zap.Bool("failed", view.Error != ""),
	)

	return h.flow.Show(ctx, msg.ChatID, msg.MessageID, msg.UserID)
}

func (h *CallbackHandler) handleDownload(ctx context.Context, msg *Message, format entity.ResultFormat) error {
	if !format.IsValid() {
		h.messageSender.AnswerCallback(msg.CallbackID, render.CbNotAvailable)
		return fmt.Errorf("%w: %s", entity.ErrUnsupportedFormat, format)
	}

	result, err := h.sessionUC.ExportResult(ctx, SessionID(msg.UserID), format)
	if err != nil {
		h.messageSender.AnswerCallback(msg.CallbackID, "")
		h.HandleError(ctx, msg.ChatID, err)
		return nil
	}

	h.messageSender.AnswerCallback(msg.CallbackID, "")
	if err := h.messageSender.SendDocument(msg.ChatID, result.FileName, result.Content); err != nil {
		h.HandleError(ctx, msg.ChatID, err)
	}
	return nil
}

// rejectCallback answers a press that the questionnaire refused
func (h *CallbackHandler) rejectCallback(ctx context.Context, msg *Message, err error) error {
	switch {
	case errors.Is(err, entity.ErrQuestionMismatch), errors.Is(err, entity.ErrNotInProgress):
		h.messageSender.AnswerCallback(msg.CallbackID, render.CbStaleButton)
	case errors.Is(err, entity.ErrSubmissionInFlight):
		h.messageSender.AnswerCallback(msg.CallbackID, render.CbWait)
	case errors.Is(err, entity.ErrInvalidOption):
		h.messageSender.AnswerCallback(msg.CallbackID, render.CbNotAvailable)
	default:
		if errors.Is(err, entity.ErrSessionNotFound) || errors.Is(err, entity.ErrClosed) {
			h.flow.Forget(msg.UserID)
		}
		h.messageSender.AnswerCallback(msg.CallbackID, "")
		h.HandleError(ctx, msg.ChatID, err)
	}

	ctxzap.Debug(ctx, "callback rejected", zap.Error(err))
	return nil
}
