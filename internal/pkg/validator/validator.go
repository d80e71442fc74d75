package validator

import (
	"fmt"

	"github.com/futig/puppy-picker/internal/entity"
)

// Validator checks answer sets against the closed per-question allow-lists
type Validator struct {
	questions []entity.Question
}

func NewAnswerValidator(questions []entity.Question) *Validator {
	return &Validator{questions: questions}
}

// ValidateAnswers checks that every question is answered with a legal value and
// returns a sanitized copy holding only the known question IDs.
// Combinations of values are never cross-checked.
func (v *Validator) ValidateAnswers(answers entity.AnswerSet) (entity.AnswerSet, error) {
	sanitized := make(entity.AnswerSet, len(v.questions))
	for _, q := range v.questions {
		value, ok := answers[q.ID]
		if !ok {
			return nil, fmt.Errorf("%w: %w: %s", entity.ErrInvalidInput, entity.ErrMissingField, q.ID)
		}
		if !q.HasOption(value) {
			return nil, fmt.Errorf("%w: illegal value for %s", entity.ErrInvalidInput, q.ID)
		}
		sanitized[q.ID] = value
	}
	return sanitized, nil
}

// ValidateRawAnswers validates a decoded JSON object, rejecting non-string values
func (v *Validator) ValidateRawAnswers(raw map[string]any) (entity.AnswerSet, error) {
	if raw == nil {
		return nil, fmt.Errorf("%w: empty body", entity.ErrInvalidInput)
	}

	answers := make(entity.AnswerSet, len(v.questions))
	for _, q := range v.questions {
		value, ok := raw[q.ID]
		if !ok {
			continue
		}
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %s must be a string", entity.ErrInvalidInput, q.ID)
		}
		answers[q.ID] = s
	}

	return v.ValidateAnswers(answers)
}
