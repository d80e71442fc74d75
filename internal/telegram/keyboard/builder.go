package keyboard

import (
	"github.com/futig/puppy-picker/internal/entity"
	"github.com/futig/puppy-picker/internal/questionnaire"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const selectedMarker = "✅ "

// Builder creates inline keyboards
type Builder struct{}

// NewBuilder creates a keyboard builder
func NewBuilder() *Builder {
	return &Builder{}
}

// StartKeyboard creates the initial start button
func (b *Builder) StartKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🐾 Find my breed", EncodeCallback(ActionControl, ControlStart)),
		),
	)
}

// QuestionKeyboard creates one button per option plus the navigation row
func (b *Builder) QuestionKeyboard(view questionnaire.View) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{}

	selected, _ := view.Selected()
	for _, opt := range view.Question.Options {
		label := opt.Label
		if opt.Value == selected {
			label = selectedMarker + label
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, EncodeOption(view.Question.ID, opt.Value)),
		))
	}

	nav := []tgbotapi.InlineKeyboardButton{}
	if view.Step > 0 {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("⬅️ Back", EncodeCallback(ActionControl, ControlBack)))
	}
	if view.ReadyToSubmit {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("🔍 Find my match", EncodeCallback(ActionControl, ControlSubmit)))
	}
	if len(nav) > 0 {
		rows = append(rows, nav)
	}

	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// ResultKeyboard creates the start-over and download buttons
func (b *Builder) ResultKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Start over", EncodeCallback(ActionControl, ControlReset)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📄 PDF", EncodeCallback(ActionDownload, string(entity.FormatPDF))),
			tgbotapi.NewInlineKeyboardButtonData("📝 Word", EncodeCallback(ActionDownload, string(entity.FormatDOCX))),
			tgbotapi.NewInlineKeyboardButtonData("📋 Markdown", EncodeCallback(ActionDownload, string(entity.FormatMarkdown))),
		),
	)
}

// ForView picks the keyboard for the view's mode; nil while loading
func (b *Builder) ForView(view questionnaire.View) *tgbotapi.InlineKeyboardMarkup {
	var kb tgbotapi.InlineKeyboardMarkup
	switch {
	case view.Loading:
		return nil
	case view.Mode == entity.ModeShowingResult:
		kb = b.ResultKeyboard()
	default:
		kb = b.QuestionKeyboard(view)
	}
	return &kb
}
