package render

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/futig/puppy-picker/internal/entity"
	"github.com/futig/puppy-picker/internal/questionnaire"
)

const (
	// Welcome messages
	MsgWelcome = `🐶 Hi! I'm Puppy Picker.

Answer seven quick questions about your lifestyle and I'll suggest the dog breed that suits you best.`

	MsgHelp = `🐶 Bot commands:

/start - Start the questionnaire
/reset - Start over
/help - Show this help

Tap an option to answer. The next question appears on its own; use Back to change an earlier answer.`

	MsgUseButtons  = `Please use the buttons below the question, or /start to begin.`
	MsgAnalysing   = `⏳ Analysing your preferences...`
	MsgResultTitle = `🐾 Your puppy match`
	MsgStartOver   = `Ready when you are.`

	// Callback answers
	CbSelected     = "Saved"
	CbStaleButton  = "That question has moved on"
	CbWait         = "Still working on it..."
	CbNotAvailable = "Not available right now"

	// Errors
	ErrGeneric         = `❌ Something went wrong. Please try again or press /start`
	ErrSessionNotFound = `❌ Your questionnaire has expired. Press /start to begin again.`
	ErrNetworkIssue    = `❌ Connection problem. Please try again shortly.`
	ErrTimeout         = `❌ That took too long. Please try again.`
	ErrExport          = `❌ Could not prepare the file. Please try again.`
)

// RenderQuestion formats the current question with its progress bar
func RenderQuestion(view questionnaire.View) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Question %d of %d\n%s\n\n", view.Step+1, view.TotalSteps, renderProgressBar(view.Progress))
	fmt.Fprintf(&b, "%s\n", view.Question.Text)

	selected, _ := view.Selected()
	for _, opt := range view.Question.Options {
		marker := "•"
		if opt.Value == selected {
			marker = "✅"
		}
		fmt.Fprintf(&b, "\n%s %s - %s", marker, opt.Label, opt.Description)
	}

	return b.String()
}

// RenderResult formats the result screen
func RenderResult(view questionnaire.View) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n\n%s", MsgResultTitle, view.Result)
	if view.Error != "" {
		fmt.Fprintf(&b, "\n\n⚠️ %s", view.Error)
	}

	return b.String()
}

// Render picks the screen for the view's mode
func Render(view questionnaire.View) string {
	if view.Mode == entity.ModeShowingResult {
		return RenderResult(view)
	}
	if view.Loading {
		return MsgAnalysing
	}
	return RenderQuestion(view)
}

// renderProgressBar creates a visual progress bar
func renderProgressBar(percentage int) string {
	if percentage < 0 {
		percentage = 0
	}
	if percentage > 100 {
		percentage = 100
	}

	filled := percentage / 10
	bar := strings.Repeat("▓", filled) + strings.Repeat("░", 10-filled)

	return fmt.Sprintf("[%s] %d%%", bar, percentage)
}

// ClassifyError analyzes an error and returns an appropriate user-friendly message
func ClassifyError(err error) string {
	if err == nil {
		return ErrGeneric
	}

	switch {
	case errors.Is(err, entity.ErrSessionNotFound), errors.Is(err, entity.ErrClosed):
		return ErrSessionNotFound
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return ErrTimeout
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return ErrTimeout
		}
		return ErrNetworkIssue
	}

	return ErrGeneric
}
