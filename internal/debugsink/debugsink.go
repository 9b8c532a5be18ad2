// Package debugsink persists raw pages and intermediate extraction artifacts
// so failed extractions can be diagnosed without re-fetching.
package debugsink

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"
)

// Sink receives extraction artifacts. Writes are best effort: diagnostics
// must never fail a download.
type Sink interface {
	Write(label string, content []byte)
}

// Nop discards everything. Used when debugging is disabled.
type Nop struct{}

func (Nop) Write(string, []byte) {}

// Dir writes each artifact as a timestamped file under a directory.
type Dir struct {
	path string
}

// NewDir creates the directory if needed and returns a sink writing into it.
func NewDir(path string) (*Dir, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("creating debug directory: %w", err)
	}
	return &Dir{path: path}, nil
}

var unsafeLabelChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

func (d *Dir) Write(label string, content []byte) {
	stamp := time.Now().UTC().Format("20060102T150405.000000000")
	name := stamp + "-" + unsafeLabelChars.ReplaceAllString(label, "_") + ".txt"
	_ = os.WriteFile(filepath.Join(d.path, name), content, 0o644)
}
