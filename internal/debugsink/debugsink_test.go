package debugsink

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDirWrite(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "debug")

	sink, err := NewDir(target)
	if err != nil {
		t.Fatalf("NewDir() error: %v", err)
	}

	sink.Write("raw page ABC/123", []byte("<html>body</html>"))

	entries, err := os.ReadDir(target)
	if err != nil {
		t.Fatalf("reading debug dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 artifact, got %d", len(entries))
	}

	name := entries[0].Name()
	if strings.Contains(name, "/") || !strings.Contains(name, "raw_page_ABC_123") {
		t.Errorf("artifact name = %q, want sanitized label", name)
	}

	data, err := os.ReadFile(filepath.Join(target, name))
	if err != nil {
		t.Fatalf("reading artifact: %v", err)
	}
	if string(data) != "<html>body</html>" {
		t.Errorf("artifact content = %q", data)
	}
}
