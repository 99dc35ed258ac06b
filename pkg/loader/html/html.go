// Package html extracts the visible text of local HTML documents,
// dropping script, style and other non-content markup.
package html

import (
	"context"
	"net/url"
	"os"
	"strings"

	"codeberg.org/readeck/go-readability/v2"

	"github.com/tos-analyser/backend/pkg/loader"
)

// HTMLLoader parses an HTML file and returns its readable text content.
type HTMLLoader struct{}

// NewHTMLLoader creates a new HTML text loader.
func NewHTMLLoader() *HTMLLoader {
	return &HTMLLoader{}
}

// LoadText extracts the visible text of the HTML file at path.
func (l *HTMLLoader) LoadText(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", &loader.HTMLExtractionError{Path: path, Err: err}
	}
	defer f.Close()

	base, err := url.Parse("file://" + path)
	if err != nil {
		return "", &loader.HTMLExtractionError{Path: path, Err: err}
	}

	article, err := readability.FromReader(f, base)
	if err != nil {
		return "", &loader.HTMLExtractionError{Path: path, Err: err}
	}

	var builder strings.Builder
	if err := article.RenderText(&builder); err != nil {
		return "", &loader.HTMLExtractionError{Path: path, Err: err}
	}

	return builder.String(), nil
}
