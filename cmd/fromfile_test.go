package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadURLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	content := `# my saved reels
https://www.instagram.com/p/ABC123xyz/

https://www.instagram.com/reel/Xy12_Q/
   https://instagram.com/tv/CCCC/
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	urls, err := readURLFile(path)
	if err != nil {
		t.Fatalf("readURLFile() error: %v", err)
	}

	want := []string{
		"https://www.instagram.com/p/ABC123xyz/",
		"https://www.instagram.com/reel/Xy12_Q/",
		"https://instagram.com/tv/CCCC/",
	}
	if len(urls) != len(want) {
		t.Fatalf("got %d urls, want %d: %v", len(urls), len(want), urls)
	}
	for i := range want {
		if urls[i] != want[i] {
			t.Errorf("urls[%d] = %q, want %q", i, urls[i], want[i])
		}
	}
}

func TestReadURLFileMissing(t *testing.T) {
	if _, err := readURLFile(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}
