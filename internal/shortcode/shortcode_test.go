package shortcode

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"post", "https://www.instagram.com/p/ABC123xyz/", "ABC123xyz"},
		{"post no trailing slash", "https://www.instagram.com/p/ABC123xyz", "ABC123xyz"},
		{"reel", "https://www.instagram.com/reel/Cx9_ab-12Qf/", "Cx9_ab-12Qf"},
		{"igtv", "https://www.instagram.com/tv/CWg8X2lq/", "CWg8X2lq"},
		{"bare domain", "https://instagram.com/p/ABC123xyz/", "ABC123xyz"},
		{"mobile domain", "https://m.instagram.com/reel/ABC123xyz/", "ABC123xyz"},
		{"profile prefixed", "https://www.instagram.com/alice/p/ABC123xyz/", "ABC123xyz"},
		{"query string ignored", "https://www.instagram.com/p/ABC123xyz/?utm_source=ig_web", "ABC123xyz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.url)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.url, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestParseInvalidDomain(t *testing.T) {
	urls := []string{
		"https://example.com/p/ABC123xyz/",
		"https://www.tiktok.com/@user/video/123",
		"https://notinstagram.com/reel/ABC/",
	}

	for _, u := range urls {
		if _, err := Parse(u); !errors.Is(err, ErrInvalidDomain) {
			t.Errorf("Parse(%q) error = %v, want ErrInvalidDomain", u, err)
		}
	}
}

func TestParseUnrecognizedShape(t *testing.T) {
	urls := []string{
		"https://www.instagram.com/",
		"https://www.instagram.com/alice/",
		"https://www.instagram.com/explore/tags/cats/",
		"https://www.instagram.com/stories/alice/123456/",
		"https://www.instagram.com/p//",
	}

	for _, u := range urls {
		_, err := Parse(u)
		var shapeErr *UnrecognizedURLError
		if !errors.As(err, &shapeErr) {
			t.Errorf("Parse(%q) error = %v, want UnrecognizedURLError", u, err)
			continue
		}
		if shapeErr.URL != u {
			t.Errorf("UnrecognizedURLError.URL = %q, want %q", shapeErr.URL, u)
		}
	}
}

func TestCanonicalURL(t *testing.T) {
	got := CanonicalURL("ABC123xyz")
	want := "https://www.instagram.com/p/ABC123xyz/"
	if got != want {
		t.Errorf("CanonicalURL() = %q, want %q", got, want)
	}
}
