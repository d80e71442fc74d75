package formatter

import (
	"bytes"
	"fmt"

	"github.com/futig/puppy-picker/internal/entity"
	"github.com/unidoc/unioffice/document"
)

const (
	docxContentType   = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	docxFileExtension = ".docx"
)

type DOCXFormatter struct{}

func NewDOCXFormatter() *DOCXFormatter {
	return &DOCXFormatter{}
}

func (df *DOCXFormatter) Format(report *entity.Report) ([]byte, error) {
	doc := document.New()
	defer doc.Close()

	headline, body := splitRecommendation(report.Recommendation)

	addHeading(doc, "Heading1", baseTitle)
	addHeading(doc, "Heading2", headline)

	if body != "" {
		doc.AddParagraph().AddRun().AddText(body)
	}
	if report.Note != "" {
		run := doc.AddParagraph().AddRun()
		run.Properties().SetItalic(true)
		run.AddText(report.Note)
	}

	if len(report.Answers) > 0 {
		addHeading(doc, "Heading3", answersTitle)
		for _, a := range report.Answers {
			par := doc.AddParagraph()
			q := par.AddRun()
			q.Properties().SetBold(true)
			q.AddText(a.Question + " ")
			par.AddRun().AddText(a.Answer)
		}
	}

	if !report.GeneratedAt.IsZero() {
		doc.AddParagraph().AddRun().AddText(fmt.Sprintf(generatedNote, report.GeneratedAt.Format(dateLayout)))
	}

	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func addHeading(doc *document.Document, style, text string) {
	par := doc.AddParagraph()
	par.SetStyle(style)
	par.AddRun().AddText(text)
}

func (df *DOCXFormatter) ContentType() string {
	return docxContentType
}

func (df *DOCXFormatter) FileExtension() string {
	return docxFileExtension
}
