package recommendation

import (
	"context"
	"errors"
	"testing"

	"github.com/futig/puppy-picker/internal/entity"
	"github.com/futig/puppy-picker/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingCompleter struct {
	configured bool
	reply      string
	err        error
	calls      int
	last       *entity.CompletionRequest
}

func (c *countingCompleter) Configured() bool { return c.configured }

func (c *countingCompleter) Complete(_ context.Context, req *entity.CompletionRequest) (string, error) {
	c.calls++
	c.last = req
	return c.reply, c.err
}

func newUsecase(c Completer) *Usecase {
	return NewUsecase(c, validator.NewAnswerValidator(entity.Questions()), DefaultOptions(), zap.NewNop())
}

func scenarioAnswers() entity.AnswerSet {
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

func TestRecommend_Success(t *testing.T) {
	c := &countingCompleter{configured: true, reply: "  German Shorthaired Pointer\n\nAn energetic, trainable gundog.  \n"}
	uc := newUsecase(c)

	got, err := uc.Recommend(context.Background(), scenarioAnswers())
	require.NoError(t, err)

	assert.Equal(t, "German Shorthaired Pointer\n\nAn energetic, trainable gundog.", got)
	require.Equal(t, 1, c.calls)
	assert.Equal(t, 300, c.last.MaxTokens)
	assert.InDelta(t, 0.7, c.last.Temperature, 1e-6)
	assert.Equal(t, systemPrompt, c.last.SystemPrompt)
	assert.Contains(t, c.last.Prompt,
		"Activity: high | Space: house | Experience: experienced | Time: high | Size: large | Grooming: moderate | Training: moderate")
}

func TestRecommend_PromptCarriesEveryValue(t *testing.T) {
	c := &countingCompleter{configured: true, reply: "Shih Tzu"}
	uc := newUsecase(c)

	answers := entity.AnswerSet{
		"activityLevel":       "low",
		"livingSpace":         "apartment",
		"experience":          "none",
		"timeCommitment":      "minimal",
		"breedSize":           "small",
		"groomingWillingness": "high",
		"trainability":        "easy",
	}
	_, err := uc.Recommend(context.Background(), answers)
	require.NoError(t, err)

	for _, value := range answers {
		assert.Contains(t, c.last.Prompt, value)
	}
	assert.Contains(t, c.last.Prompt, "British English")
	assert.Contains(t, c.last.Prompt, "ONE best dog breed")
}

func TestRecommend_InvalidInputMakesNoCall(t *testing.T) {
	tests := []struct {
		name    string
		answers entity.AnswerSet
	}{
		{name: "illegal value", answers: func() entity.AnswerSet {
			a := scenarioAnswers()
			a["activityLevel"] = "extreme"
			return a
		}()},
		{name: "missing key", answers: func() entity.AnswerSet {
			a := scenarioAnswers()
			delete(a, "trainability")
			return a
		}()},
		{name: "empty", answers: entity.AnswerSet{}},
		{name: "nil", answers: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &countingCompleter{configured: true, reply: "Poodle"}
			uc := newUsecase(c)

			got, err := uc.Recommend(context.Background(), tt.answers)
			assert.ErrorIs(t, err, entity.ErrInvalidInput)
			assert.Empty(t, got)
			assert.Zero(t, c.calls)
		})
	}
}

func TestRecommend_NotConfigured(t *testing.T) {
	c := &countingCompleter{configured: false}
	uc := newUsecase(c)

	_, err := uc.Recommend(context.Background(), scenarioAnswers())
	assert.ErrorIs(t, err, entity.ErrNotConfigured)
	assert.Zero(t, c.calls)

	// The credential is checked before the input.
	_, err = uc.Recommend(context.Background(), entity.AnswerSet{"activityLevel": "extreme"})
	assert.ErrorIs(t, err, entity.ErrNotConfigured)

	_, err = newUsecase(nil).Recommend(context.Background(), scenarioAnswers())
	assert.ErrorIs(t, err, entity.ErrNotConfigured)
}

func TestRecommend_EmptyReplyUsesPlaceholder(t *testing.T) {
	for _, reply := range []string{"", "   \n\t "} {
		c := &countingCompleter{configured: true, reply: reply}

		got, err := newUsecase(c).Recommend(context.Background(), scenarioAnswers())
		require.NoError(t, err)
		assert.Equal(t, EmptyRecommendation, got)
	}
}

func TestRecommend_ProviderFailureIsOpaque(t *testing.T) {
	c := &countingCompleter{configured: true, err: errors.New("429 quota exceeded for key sk-abc")}

	got, err := newUsecase(c).Recommend(context.Background(), scenarioAnswers())
	require.ErrorIs(t, err, entity.ErrUpstreamFailure)
	assert.Empty(t, got)
	assert.NotContains(t, err.Error(), "quota")
	assert.Equal(t, entity.MsgUpstreamFailure, entity.UserMessage(err))
}

func TestBuildPrompt_Deterministic(t *testing.T) {
	assert.Equal(t, BuildPrompt(scenarioAnswers()), BuildPrompt(scenarioAnswers()))
}
