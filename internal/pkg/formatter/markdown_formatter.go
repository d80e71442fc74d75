package formatter

import (
	"bytes"
	"fmt"

	"github.com/futig/puppy-picker/internal/entity"
)

const (
	markdownContentType   = "text/markdown; charset=utf-8"
	markdownFileExtension = ".md"
)

type MarkdownFormatter struct{}

func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

func (mf *MarkdownFormatter) Format(report *entity.Report) ([]byte, error) {
	headline, body := splitRecommendation(report.Recommendation)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n\n## %s\n\n", baseTitle, headline)
	if body != "" {
		fmt.Fprintf(&buf, "%s\n\n", body)
	}
	if report.Note != "" {
		fmt.Fprintf(&buf, "> %s\n\n", report.Note)
	}

	if len(report.Answers) > 0 {
		fmt.Fprintf(&buf, "### %s\n\n", answersTitle)
		for _, a := range report.Answers {
			fmt.Fprintf(&buf, "- **%s** %s\n", a.Question, a.Answer)
		}
		buf.WriteString("\n")
	}

	if !report.GeneratedAt.IsZero() {
		fmt.Fprintf(&buf, "_"+generatedNote+"_\n", report.GeneratedAt.Format(dateLayout))
	}
	return buf.Bytes(), nil
}

func (mf *MarkdownFormatter) ContentType() string {
	return markdownContentType
}

func (mf *MarkdownFormatter) FileExtension() string {
	return markdownFileExtension
}
