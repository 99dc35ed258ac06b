// Package loader turns uploaded documents into raw text. Each supported
// format has its own loader implementation; Loader dispatches on the
// file extension and maps failures to distinct error kinds so callers
// can tell a bad file from a bad format from an unsupported type.
package loader

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// DocumentLoader extracts the raw text of a single document format.
type DocumentLoader interface {
	LoadText(ctx context.Context, path string) (string, error)
}

// Loader dispatches text extraction to a format-specific loader based
// on the file extension.
type Loader struct {
	byExt map[string]DocumentLoader
}

// NewLoaderParams configures a Loader. Every field is required.
type NewLoaderParams struct {
	PDF  DocumentLoader
	HTML DocumentLoader
	Text DocumentLoader
}

// NewLoader creates a Loader with the given format handlers.
func NewLoader(params NewLoaderParams) *Loader {
	return &Loader{
		byExt: map[string]DocumentLoader{
			"pdf":  params.PDF,
			"html": params.HTML,
			"htm":  params.HTML,
			"txt":  params.Text,
		},
	}
}

// Load extracts the text of the file at path. Unsupported extensions
// yield an IngestionError wrapping ErrUnsupportedFormat.
func (l *Loader) Load(ctx context.Context, path string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	dl, ok := l.byExt[ext]
	if !ok || dl == nil {
		return "", &IngestionError{
			Op:  "load " + path,
			Err: fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext),
		}
	}
	return dl.LoadText(ctx, path)
}
