package entity

import "errors"

// Domain errors
var (
	// Recommendation gateway errors
	ErrNotConfigured   = errors.New("recommendation provider is not configured")
	ErrInvalidInput    = errors.New("invalid answer set")
	ErrUpstreamFailure = errors.New("recommendation provider failure")

	// Questionnaire errors
	ErrNotInProgress      = errors.New("questionnaire is not in progress")
	ErrQuestionMismatch   = errors.New("question is not the current step")
	ErrInvalidOption      = errors.New("option is not legal for question")
	ErrNotReady           = errors.New("questionnaire is not ready to submit")
	ErrSubmissionInFlight = errors.New("submission already in progress")
	ErrClosed             = errors.New("questionnaire session is closed")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")
	ErrNoResult        = errors.New("session result not available")

	// Validation errors
	ErrMissingField      = errors.New("required field is missing")
	ErrUnsupportedFormat = errors.New("unsupported result format")
)

// User-facing messages for gateway failures
const (
	MsgNotConfigured   = "Recommendation provider is not configured"
	MsgInvalidInput    = "Invalid request data"
	MsgUpstreamFailure = "Failed to generate recommendations. Please try again later."
)

// UserMessage returns the message that may be shown to an end user for err.
// Provider detail is never part of it.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrNotConfigured):
		return MsgNotConfigured
	case errors.Is(err, ErrInvalidInput):
		return MsgInvalidInput
	default:
		return MsgUpstreamFailure
	}
}
