package httputil

import (
	"fmt"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"
)

// validShortcodePattern matches Instagram shortcodes (URL-safe base64 alphabet).
var validShortcodePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ValidateURL checks that a URL is well-formed and uses HTTPS.
func ValidateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("malformed URL: %w", err)
	}
	if u.Scheme != "https" {
		return fmt.Errorf("only HTTPS URLs are allowed, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("URL has no host")
	}
	return nil
}

// ValidateShortcode checks that a shortcode contains only safe characters
// before it is interpolated into request URLs and file names.
func ValidateShortcode(code string) error {
	if code == "" {
		return fmt.Errorf("shortcode cannot be empty")
	}
	if len(code) > 64 {
		return fmt.Errorf("shortcode too long: %d characters", len(code))
	}
	if !validShortcodePattern.MatchString(code) {
		return fmt.Errorf("shortcode contains invalid characters: %q", code)
	}
	return nil
}

// SanitizeFilename removes path traversal and dangerous characters from a filename.
// Returns just the base name, stripped of any directory components.
func SanitizeFilename(name string) string {
	// Take only the base name to strip directory components
	name = filepath.Base(name)

	// Replace characters that are problematic on various OSes
	replacer := strings.NewReplacer(
		"..", "_",
		"/", "_",
		"\\", "_",
		"\x00", "",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
	)
	name = replacer.Replace(name)

	if name == "" || name == "." || name == ".." {
		return "untitled"
	}

	return name
}

// SafeDownloadPath resolves and validates a download path ensuring it stays within the target directory.
func SafeDownloadPath(dir, filename string) (string, error) {
	sanitized := SanitizeFilename(filename)

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	full := filepath.Join(absDir, sanitized)

	resolved, err := filepath.Abs(full)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	if !strings.HasPrefix(resolved, absDir+string(filepath.Separator)) && resolved != absDir {
		return "", fmt.Errorf("path traversal detected: %q escapes %q", resolved, absDir)
	}

	return resolved, nil
}
