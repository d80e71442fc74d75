package handlers

import (
	"context"

	"github.com/futig/puppy-picker/internal/telegram/keyboard"
	"github.com/futig/puppy-picker/internal/telegram/render"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// CommandHandler handles slash commands and free text
type CommandHandler struct {
	BaseHandler
	flow     *Flow
	keyboard *keyboard.Builder
	logger   *zap.Logger
}

func NewCommandHandler(
	messageSender *MessageSender,
	flow *Flow,
	keyboard *keyboard.Builder,
	logger *zap.Logger,
) *CommandHandler {
	return &CommandHandler{
		BaseHandler: BaseHandler{
			stateName:     HandlerStateCommand,
			messageSender: messageSender,
		},
		flow:     flow,
		keyboard: keyboard,
		logger:   logger,
	}
}

// Handle implements Handler
func (h *CommandHandler) Handle(ctx context.Context, msg *Message) error {
	ctxzap.Info(ctx, "command received",
		zap.String("command", msg.Command),
		zap.Int64("user_id", msg.UserID),
	)

	switch msg.Command {
	case "start":
		h.sendMessage(msg.ChatID, render.MsgWelcome, h.keyboard.StartKeyboard())
	case "reset":
		if err := h.flow.Start(ctx, msg.ChatID, msg.UserID); err != nil {
			h.HandleError(ctx, msg.ChatID, err)
		}
	case "help":
		h.sendMessage(msg.ChatID, render.MsgHelp, nil)
	default:
		h.sendMessage(msg.ChatID, render.MsgUseButtons, nil)
	}

	return nil
}
