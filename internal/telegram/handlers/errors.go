package handlers

import (
	"context"
	"errors"

	"github.com/futig/puppy-picker/internal/entity"
	"github.com/futig/puppy-picker/internal/telegram/render"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// ErrorSeverity represents the severity level of an error
type ErrorSeverity int

const (
	SeverityWarning ErrorSeverity = iota
	SeverityError
)

// HandlerError represents a structured error with user message and logging info
type HandlerError struct {
	Err         error
	UserMessage string
	LogMessage  string
	Severity    ErrorSeverity
}

// classifyHandlerError analyzes an error and returns a HandlerError with appropriate severity and messages
func classifyHandlerError(err error) *HandlerError {
	switch {
	case errors.Is(err, entity.ErrSessionNotFound), errors.Is(err, entity.ErrClosed):
		return &HandlerError{
			Err:         err,
			UserMessage: render.ErrSessionNotFound,
			LogMessage:  "session not found",
			Severity:    SeverityWarning,
		}
	case errors.Is(err, entity.ErrNoResult):
		return &HandlerError{
			Err:         err,
			UserMessage: render.ErrExport,
			LogMessage:  "no result to export",
			Severity:    SeverityWarning,
		}
	}

	return &HandlerError{
		Err:         err,
		UserMessage: render.ClassifyError(err),
		LogMessage:  "handler error",
		Severity:    SeverityError,
	}
}

// HandleError logs err with its severity and sends a user-friendly message
func (h *BaseHandler) HandleError(ctx context.Context, chatID int64, err error) {
	if err == nil {
		return
	}

	handlerErr := classifyHandlerError(err)

	switch handlerErr.Severity {
	case SeverityError:
		ctxzap.Error(ctx, handlerErr.LogMessage,
			zap.Error(handlerErr.Err),
			zap.Int64("chat_id", chatID),
		)
	case SeverityWarning:
		ctxzap.Warn(ctx, handlerErr.LogMessage,
			zap.Error(handlerErr.Err),
			zap.Int64("chat_id", chatID),
		)
	}

	h.sendMessage(chatID, handlerErr.UserMessage, nil)
}
