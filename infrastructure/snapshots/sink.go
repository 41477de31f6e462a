// Package snapshots persists username snapshots as flat text files: one login
// per line, sorted, newline terminated.
package snapshots

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ryan-williams/watchy/domain"
)

const (
	dirMode  = 0o755
	fileMode = 0o644
)

// Sink writes snapshot files to the local filesystem.
type Sink struct{}

// NewSink creates a filesystem sink.
func NewSink() *Sink {
	return &Sink{}
}

// WriteNames overwrites path with the sorted logins, creating parent
// directories as needed.
func (s *Sink) WriteNames(path string, names domain.NameSet) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	var buf bytes.Buffer
	for _, name := range names.Sorted() {
		buf.WriteString(name)
		buf.WriteByte('\n')
	}

	if err := os.WriteFile(path, buf.Bytes(), fileMode); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
