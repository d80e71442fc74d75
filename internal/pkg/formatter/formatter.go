package formatter

import (
	"fmt"
	"strings"

	"github.com/futig/puppy-picker/internal/entity"
)

const (
	baseTitle     = "Your Puppy Match"
	answersTitle  = "Your answers"
	dateLayout    = "2 January 2006"
	generatedNote = "Generated on %s"
)

type Formatter interface {
	Format(report *entity.Report) ([]byte, error)
	ContentType() string
	FileExtension() string
}

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Create(format entity.ResultFormat) (Formatter, error) {
	switch format {
	case entity.FormatMarkdown:
		return NewMarkdownFormatter(), nil
	case entity.FormatDOCX:
		return NewDOCXFormatter(), nil
	case entity.FormatPDF:
		return NewPDFFormatter(), nil
	default:
		return nil, fmt.Errorf("%w: %s", entity.ErrUnsupportedFormat, format)
	}
}

// splitRecommendation separates the breed line from the explanation
func splitRecommendation(text string) (headline, body string) {
	text = strings.TrimSpace(text)
	headline, body, _ = strings.Cut(text, "\n")
	return strings.TrimSpace(headline), strings.TrimSpace(body)
}
