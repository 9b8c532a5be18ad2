// Package shortcode validates Instagram content URLs and derives the
// canonical shortcode embedded in them. Parsing is pure string work:
// no network I/O happens here.
package shortcode

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrInvalidDomain is returned when the URL does not belong to instagram.com.
var ErrInvalidDomain = errors.New("not an instagram.com URL")

// UnrecognizedURLError is returned for instagram.com URLs whose path does not
// look like a post, reel, or IGTV link. It carries the offending URL so the
// caller can show it to the user.
type UnrecognizedURLError struct {
	URL string
}

func (e *UnrecognizedURLError) Error() string {
	return fmt.Sprintf("unrecognized instagram URL shape: %q", e.URL)
}

// contentMarkers are the path segments that directly precede a shortcode.
var contentMarkers = map[string]bool{
	"p":    true, // regular post
	"reel": true,
	"tv":   true, // IGTV
}

// Parse extracts the shortcode from a post, reel, or IGTV URL.
// Accepted shapes include /p/{code}/, /reel/{code}/, /tv/{code}/ and the
// profile-prefixed /{user}/p/{code}/ variant.
func Parse(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parsing URL: %w", err)
	}

	switch strings.ToLower(u.Hostname()) {
	case "instagram.com", "www.instagram.com", "m.instagram.com":
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidDomain, rawURL)
	}

	path := strings.TrimSuffix(u.Path, "/")
	segments := strings.Split(path, "/")
	// A valid path splits into at least ["", marker, shortcode].
	if len(segments) < 3 {
		return "", &UnrecognizedURLError{URL: rawURL}
	}

	marker := segments[len(segments)-2]
	code := segments[len(segments)-1]
	if !contentMarkers[marker] || code == "" {
		return "", &UnrecognizedURLError{URL: rawURL}
	}

	return code, nil
}

// CanonicalURL returns the canonical post URL for a shortcode.
func CanonicalURL(code string) string {
	return "https://www.instagram.com/p/" + code + "/"
}
