// Package download streams remote media files to local storage. Writes go
// through a temp file that is renamed into place so an interrupted transfer
// never leaves a half-written video behind.
package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"reelgrab/internal/httputil"
)

// Options controls a single file download.
type Options struct {
	Dir          string
	SkipExisting bool
	Referer      string
	// Progress, when set, receives the running byte count and the total
	// (-1 when the server sent no Content-Length).
	Progress func(written, total int64)
}

// Result describes a completed (or skipped) download.
type Result struct {
	Path    string
	Bytes   int64
	Skipped bool
}

// File fetches rawURL into Options.Dir under the given name.
// When the target exists it is either skipped (SkipExisting) or the name is
// suffixed until it no longer collides.
func File(ctx context.Context, client *http.Client, rawURL, name string, opts Options) (*Result, error) {
	if err := httputil.ValidateURL(rawURL); err != nil {
		return nil, fmt.Errorf("invalid media URL: %w", err)
	}

	absDir, err := filepath.Abs(opts.Dir)
	if err != nil {
		return nil, fmt.Errorf("resolving output directory: %w", err)
	}
	if err := os.MkdirAll(absDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	path, err := httputil.SafeDownloadPath(absDir, name)
	if err != nil {
		return nil, fmt.Errorf("invalid output path: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		if opts.SkipExisting {
			return &Result{Path: path, Skipped: true}, nil
		}
		path = uniquePath(path)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "*/*")
	if opts.Referer != "" {
		req.Header.Set("Referer", opts.Referer)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d fetching media", resp.StatusCode)
	}

	tmp := path + ".part"
	f, err := os.Create(tmp)
	if err != nil {
		return nil, fmt.Errorf("creating output file: %w", err)
	}

	var dst io.Writer = f
	if opts.Progress != nil {
		dst = &countingWriter{w: f, total: resp.ContentLength, report: opts.Progress}
	}

	written, err := io.Copy(dst, resp.Body)
	if err != nil {
		f.Close()
		os.Remove(tmp)
		return nil, fmt.Errorf("writing media: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return nil, fmt.Errorf("closing output file: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return nil, fmt.Errorf("renaming output file: %w", err)
	}

	return &Result{Path: path, Bytes: written}, nil
}

// uniquePath appends _1, _2... before the extension until the name is free.
func uniquePath(path string) string {
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s_%d%s", base, i, ext)
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}

// countingWriter forwards writes and reports the running total.
type countingWriter struct {
	w       io.Writer
	written int64
	total   int64
	report  func(written, total int64)
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.written += int64(n)
	c.report(c.written, c.total)
	return n, err
}
