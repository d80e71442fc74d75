package validator

import (
	"testing"

	"github.com/futig/puppy-picker/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validAnswers() entity.AnswerSet {
	return entity.AnswerSet{
		"activityLevel":       "high",
		"livingSpace":         "house",
		"experience":          "experienced",
		"timeCommitment":      "high",
		"breedSize":           "large",
		"groomingWillingness": "moderate",
		"trainability":        "moderate",
	}
}

func TestValidateAnswers_AcceptsEveryLegalValue(t *testing.T) {
	v := NewAnswerValidator(entity.Questions())

	for _, q := range entity.Questions() {
		for _, opt := range q.Options {
			answers := validAnswers()
			answers[q.ID] = opt.Value

			got, err := v.ValidateAnswers(answers)
			require.NoError(t, err, "%s=%s", q.ID, opt.Value)
			assert.Equal(t, opt.Value, got[q.ID])
		}
	}
}

func TestValidateAnswers_NoCrossFieldRules(t *testing.T) {
	v := NewAnswerValidator(entity.Questions())

	answers := validAnswers()
	answers["livingSpace"] = "apartment"
	answers["breedSize"] = "extra-large"

	_, err := v.ValidateAnswers(answers)
	assert.NoError(t, err)
}

func TestValidateAnswers_Rejects(t *testing.T) {
	v := NewAnswerValidator(entity.Questions())

	tests := []struct {
		name   string
		mutate func(entity.AnswerSet)
	}{
		{name: "illegal value", mutate: func(a entity.AnswerSet) { a["activityLevel"] = "extreme" }},
		{name: "value from another question", mutate: func(a entity.AnswerSet) { a["livingSpace"] = "high" }},
		{name: "empty value", mutate: func(a entity.AnswerSet) { a["trainability"] = "" }},
		{name: "case sensitive", mutate: func(a entity.AnswerSet) { a["breedSize"] = "Large" }},
		{name: "missing key", mutate: func(a entity.AnswerSet) { delete(a, "experience") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			answers := validAnswers()
			tt.mutate(answers)

			got, err := v.ValidateAnswers(answers)
			assert.ErrorIs(t, err, entity.ErrInvalidInput)
			assert.Nil(t, got)
		})
	}
}

func TestValidateAnswers_DropsUnknownKeys(t *testing.T) {
	v := NewAnswerValidator(entity.Questions())

	answers := validAnswers()
	answers["favouriteColour"] = "blue"

	got, err := v.ValidateAnswers(answers)
	require.NoError(t, err)
	assert.Equal(t, validAnswers(), got)
}

func TestValidateRawAnswers(t *testing.T) {
	v := NewAnswerValidator(entity.Questions())

	raw := map[string]any{}
	for k, val := range validAnswers() {
		raw[k] = val
	}
	got, err := v.ValidateRawAnswers(raw)
	require.NoError(t, err)
	assert.Equal(t, validAnswers(), got)

	raw["activityLevel"] = 3.0
	_, err = v.ValidateRawAnswers(raw)
	assert.ErrorIs(t, err, entity.ErrInvalidInput)

	_, err = v.ValidateRawAnswers(nil)
	assert.ErrorIs(t, err, entity.ErrInvalidInput)
}
