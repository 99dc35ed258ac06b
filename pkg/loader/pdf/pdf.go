// Package pdf extracts text from PDF documents page by page.
package pdf

import (
	"context"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/tos-analyser/backend/pkg/loader"
)

// PDFLoader extracts the plain text of every page of a PDF document.
// Pages are concatenated with newline separators; a page that fails to
// extract aborts the whole document with a PDFExtractionError.
type PDFLoader struct{}

// NewPDFLoader creates a new PDF text loader.
func NewPDFLoader() *PDFLoader {
	return &PDFLoader{}
}

// LoadText extracts the text of the PDF at path.
func (l *PDFLoader) LoadText(ctx context.Context, path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", &loader.PDFExtractionError{Path: path, Err: err}
	}
	defer f.Close()

	var text strings.Builder
	totalPages := reader.NumPage()
	for i := 1; i <= totalPages; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", &loader.PDFExtractionError{Path: path, Page: i, Err: err}
		}

		if text.Len() > 0 {
			text.WriteString("\n")
		}
		text.WriteString(pageText)
	}

	return text.String(), nil
}
