package session

import (
	"github.com/futig/puppy-picker/internal/entity"
	"github.com/futig/puppy-picker/internal/questionnaire"
)

func toSessionStateDTO(sessionID string, view questionnaire.View) *entity.SessionStateDTO {
	return &entity.SessionStateDTO{
		SessionID:     sessionID,
		Step:          view.Step,
		TotalSteps:    view.TotalSteps,
		Progress:      view.Progress,
		Question:      view.Question,
		Answers:       view.Answers,
		Mode:          view.Mode,
		Loading:       view.Loading,
		ReadyToSubmit: view.ReadyToSubmit,
		Result:        view.Result,
		Error:         view.Error,
	}
}
