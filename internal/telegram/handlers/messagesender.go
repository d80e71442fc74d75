package handlers

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// MessageSender provides centralized message sending functionality
type MessageSender struct {
	bot    BotAPI
	logger *zap.Logger
}

// NewMessageSender creates a new MessageSender
func NewMessageSender(bot BotAPI, logger *zap.Logger) *MessageSender {
	return &MessageSender{
		bot:    bot,
		logger: logger,
	}
}

// Send sends a message to the specified chat and returns its ID
func (s *MessageSender) Send(chatID int64, text string, markup interface{}) (int, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	if markup != nil {
		msg.ReplyMarkup = markup
	}

	sent, err := s.bot.Send(msg)
	if err != nil {
		s.logger.Error("failed to send message",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
		return 0, err
	}

	return sent.MessageID, nil
}

// Edit replaces the text and keyboard of a message. A nil markup removes the keyboard.
func (s *MessageSender) Edit(chatID int64, messageID int, text string, markup *tgbotapi.InlineKeyboardMarkup) error {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ReplyMarkup = markup

	if _, err := s.bot.Send(edit); err != nil {
		// Telegram rejects edits that change nothing
		if strings.Contains(err.Error(), "message is not modified") {
			return nil
		}
		s.logger.Error("failed to edit message",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
			zap.Int("message_id", messageID),
		)
		return err
	}

	return nil
}

// SendDocument sends a file to the chat
func (s *MessageSender) SendDocument(chatID int64, filename string, data []byte) error {
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  filename,
		Bytes: data,
	})

	if _, err := s.bot.Send(doc); err != nil {
		return fmt.Errorf("send document: %w", err)
	}

	return nil
}

// AnswerCallback acknowledges a button press with a short notification
func (s *MessageSender) AnswerCallback(callbackID, text string) {
	if callbackID == "" {
		return
	}
	if _, err := s.bot.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		s.logger.Warn("failed to answer callback",
			zap.Error(err),
			zap.String("callback_id", callbackID),
		)
	}
}
