package loader

import "fmt"

// PDFExtractionError reports that a PDF could not be processed or that
// text extraction failed for one of its pages.
type PDFExtractionError struct {
	Path string
	Page int
	Err  error
}

func (e *PDFExtractionError) Error() string {
	if e.Page > 0 {
		return fmt.Sprintf("pdf extraction failed for %s (page %d): %v", e.Path, e.Page, e.Err)
	}
	return fmt.Sprintf("pdf extraction failed for %s: %v", e.Path, e.Err)
}

func (e *PDFExtractionError) Unwrap() error { return e.Err }

// HTMLExtractionError reports that an HTML file could not be parsed
// into visible text.
type HTMLExtractionError struct {
	Path string
	Err  error
}

func (e *HTMLExtractionError) Error() string {
	return fmt.Sprintf("html extraction failed for %s: %v", e.Path, e.Err)
}

func (e *HTMLExtractionError) Unwrap() error { return e.Err }

// IngestionError reports a general ingestion failure, including
// unsupported file formats.
type IngestionError struct {
	Op  string
	Err error
}

func (e *IngestionError) Error() string {
	return fmt.Sprintf("ingestion failed: %s: %v", e.Op, e.Err)
}

func (e *IngestionError) Unwrap() error { return e.Err }

// ErrUnsupportedFormat is wrapped into an IngestionError when a file
// extension is not recognized.
var ErrUnsupportedFormat = fmt.Errorf("unsupported document format")
