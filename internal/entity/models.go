package entity

import "time"

// Mode is the display mode of a questionnaire session
type Mode string

const (
	ModeInProgress    Mode = "in-progress"
	ModeShowingResult Mode = "showing-result"
)

// Option is one selectable value of a question
type Option struct {
	Value       string `json:"value"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// Question is one fixed step of the questionnaire with a closed set of options
type Question struct {
	ID      string   `json:"id"`
	Text    string   `json:"question"`
	Options []Option `json:"options"`
}

// HasOption reports whether value is one of the question's legal option values
func (q Question) HasOption(value string) bool {
	for _, opt := range q.Options {
		if opt.Value == value {
			return true
		}
	}
	return false
}

// Option returns the option with the given value
func (q Question) Option(value string) (Option, bool) {
	for _, opt := range q.Options {
		if opt.Value == value {
			return opt, true
		}
	}
	return Option{}, false
}

// AnswerSet maps question IDs to the chosen option value.
// A key is present only after an option has been selected for that question.
type AnswerSet map[string]string

// Clone returns an independent copy of the answer set
func (a AnswerSet) Clone() AnswerSet {
	out := make(AnswerSet, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// IsComplete reports whether every question has an answer
func (a AnswerSet) IsComplete(questions []Question) bool {
	for _, q := range questions {
		if _, ok := a[q.ID]; !ok {
			return false
		}
	}
	return true
}

// ResultFormat is the export format of a recommendation
type ResultFormat string

const (
	FormatMarkdown ResultFormat = "markdown"
	FormatPDF      ResultFormat = "pdf"
	FormatDOCX     ResultFormat = "docx"
)

func (f ResultFormat) IsValid() bool {
	switch f {
	case FormatMarkdown, FormatPDF, FormatDOCX:
		return true
	default:
		return false
	}
}

// AnswerLine is one answered question in human-readable form
type AnswerLine struct {
	Question string
	Answer   string
}

// Report is the displayed outcome of a questionnaire, ready for export
type Report struct {
	Recommendation string
	Answers        []AnswerLine
	Note           string
	GeneratedAt    time.Time
}

// NewReport pairs the recommendation with the labels of the chosen options
func NewReport(questions []Question, answers AnswerSet, recommendation, note string, at time.Time) *Report {
	r := &Report{
		Recommendation: recommendation,
		Note:           note,
		GeneratedAt:    at,
	}
	for _, q := range questions {
		value, ok := answers[q.ID]
		if !ok {
			continue
		}
		label := value
		if opt, found := q.Option(value); found {
			label = opt.Label
		}
		r.Answers = append(r.Answers, AnswerLine{Question: q.Text, Answer: label})
	}
	return r
}

// ExportedResult is a rendered report ready to be downloaded
type ExportedResult struct {
	Content     []byte
	ContentType string
	FileName    string
}
