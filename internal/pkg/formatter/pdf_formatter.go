package formatter

import (
	"bytes"
	"fmt"
	"os"

	"github.com/futig/puppy-picker/internal/entity"
	"github.com/jung-kurt/gofpdf"
)

const (
	pdfContentType   = "application/pdf"
	pdfFileExtension = ".pdf"

	// pdfFontName is the internal name used by gofpdf
	// for the UTF-8 capable font.
	pdfFontName = "DejaVuSans"

	// In the container image fonts live in ./ttf next to the binary.
	pdfFontRuntimePath = "ttf/DejaVuSans.ttf"
	pdfFontSourcePath  = "internal/pkg/formatter/ttf/DejaVuSans.ttf"
)

type PDFFormatter struct{}

func NewPDFFormatter() *PDFFormatter {
	return &PDFFormatter{}
}

// resolveFontPath looks for DejaVuSans next to the binary, then in the source tree
func resolveFontPath() string {
	for _, p := range []string{pdfFontRuntimePath, pdfFontSourcePath} {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

func (pf *PDFFormatter) Format(report *entity.Report) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	fontName := "Arial"
	if fontPath := resolveFontPath(); fontPath != "" {
		pdf.AddUTF8Font(pdfFontName, "", fontPath)
		pdf.AddUTF8Font(pdfFontName, "B", fontPath)
		fontName = pdfFontName
	}

	headline, body := splitRecommendation(report.Recommendation)

	pdf.SetFont(fontName, "B", 20)
	pdf.Cell(0, 10, baseTitle)
	pdf.Ln(14)

	pdf.SetFont(fontName, "B", 16)
	pdf.MultiCell(0, 8, headline, "", "", false)
	pdf.Ln(4)

	pdf.SetFont(fontName, "", 12)
	_, lineHeight := pdf.GetFontSize()
	if body != "" {
		pdf.MultiCell(0, lineHeight*1.5, body, "", "", false)
		pdf.Ln(4)
	}
	if report.Note != "" {
		pdf.MultiCell(0, lineHeight*1.5, report.Note, "", "", false)
		pdf.Ln(4)
	}

	if len(report.Answers) > 0 {
		pdf.SetFont(fontName, "B", 14)
		pdf.Cell(0, 8, answersTitle)
		pdf.Ln(10)

		pdf.SetFont(fontName, "", 11)
		for _, a := range report.Answers {
			pdf.MultiCell(0, lineHeight*1.3, a.Question+" "+a.Answer, "", "", false)
		}
	}

	if !report.GeneratedAt.IsZero() {
		pdf.Ln(6)
		pdf.SetFont(fontName, "", 9)
		pdf.Cell(0, 6, fmt.Sprintf(generatedNote, report.GeneratedAt.Format(dateLayout)))
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (pf *PDFFormatter) ContentType() string {
	return pdfContentType
}

func (pf *PDFFormatter) FileExtension() string {
	return pdfFileExtension
}
