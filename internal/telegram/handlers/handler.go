package handlers

import (
	"context"
)

// Handler state constants
const (
	HandlerStateCallback = "CALLBACK"
	HandlerStateCommand  = "COMMAND"
)

// Message is an update reduced to what the handlers need.
// Callback presses fill CallbackData and CallbackID; MessageID is then the message holding the keyboard.
type Message struct {
	ChatID       int64
	UserID       int64
	MessageID    int
	Text         string
	Command      string
	CallbackData string
	CallbackID   string
}

// Handler defines the interface for update handlers
type Handler interface {
	// Handle processes a message for this state
	Handle(ctx context.Context, msg *Message) error

	// GetState returns the state this handler manages
	GetState() string
}

// BaseHandler provides common functionality for all handlers
type BaseHandler struct {
	stateName     string
	messageSender *MessageSender
}

// GetState implements Handler
func (h *BaseHandler) GetState() string {
	return h.stateName
}

// sendMessage sends a new message; failures are logged by the sender
func (h *BaseHandler) sendMessage(chatID int64, text string, markup interface{}) {
	if h.messageSender == nil {
		return
	}
	_, _ = h.messageSender.Send(chatID, text, markup)
}

// IsValidState checks if a state is valid for handler registration
func IsValidState(state string) bool {
	switch state {
	case HandlerStateCallback, HandlerStateCommand:
		return true
	default:
		return false
	}
}
