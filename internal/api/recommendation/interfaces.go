package recommendation

import (
	"context"

	"github.com/futig/puppy-picker/internal/entity"
)

type RecommendationUsecase interface {
	Configured() bool
	Recommend(ctx context.Context, answers entity.AnswerSet) (string, error)
}

type AnswerValidator interface {
	ValidateRawAnswers(raw map[string]any) (entity.AnswerSet, error)
}
