// Package text reads plain-text documents from the local filesystem.
package text

import (
	"context"
	"os"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/tos-analyser/backend/pkg/loader"
)

// TextLoader reads UTF-8 text files from disk. Reads are cached, so a
// document consumed by multiple pipeline stages hits the disk once.
type TextLoader struct {
	cache   map[string]string
	cacheMu sync.RWMutex
	group   singleflight.Group
}

// NewTextLoader creates a new filesystem text loader.
func NewTextLoader() *TextLoader {
	return &TextLoader{
		cache: make(map[string]string),
	}
}

// LoadText reads the file at path as UTF-8 text. Invalid byte sequences
// are stripped rather than propagated into the graph store.
func (l *TextLoader) LoadText(ctx context.Context, path string) (string, error) {
	l.cacheMu.RLock()
	if cached, ok := l.cache[path]; ok {
		l.cacheMu.RUnlock()
		return cached, nil
	}
	l.cacheMu.RUnlock()

	result, err, _ := l.group.Do(path, func() (any, error) {
		raw, err := os.ReadFile(path)
		if err != nil {
			return "", &loader.IngestionError{Op: "read " + path, Err: err}
		}

		text := strings.ToValidUTF8(string(raw), "")
		text = strings.ReplaceAll(text, "\x00", "")

		l.cacheMu.Lock()
		l.cache[path] = text
		l.cacheMu.Unlock()

		return text, nil
	})
	if err != nil {
		return "", err
	}

	return result.(string), nil
}
