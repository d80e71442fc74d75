package entity

// AnalyzeResponse is the success body of the analyse endpoint
type AnalyzeResponse struct {
	Recommendation string `json:"recommendation"`
}

// ErrorResponse is the failure body of every endpoint
type ErrorResponse struct {
	Error string `json:"error"`
}

type SelectOptionRequest struct {
	QuestionID string `json:"question_id"`
	Value      string `json:"value"`
}

// SessionStateDTO is the wire form of a questionnaire snapshot
type SessionStateDTO struct {
	SessionID     string    `json:"session_id"`
	Step          int       `json:"step"`
	TotalSteps    int       `json:"total_steps"`
	Progress      int       `json:"progress"`
	Question      Question  `json:"question"`
	Answers       AnswerSet `json:"answers"`
	Mode          Mode      `json:"mode"`
	Loading       bool      `json:"loading"`
	ReadyToSubmit bool      `json:"ready_to_submit"`
	Result        string    `json:"result,omitempty"`
	Error         string    `json:"error,omitempty"`
}
