package resolver

import "testing"

func TestUnescape(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			"unicode ampersand",
			"https://cdn/x.mp4?a=1\\u0026b=2",
			"https://cdn/x.mp4?a=1&b=2",
		},
		{
			"backslash slash",
			"https:\\/\\/cdn\\/x.mp4",
			"https://cdn/x.mp4",
		},
		{
			"mixed sequences",
			"https\\u003a\\u002f\\u002fcdn/x.mp4\\u003fsig\\u003dabc\\u0026k=v",
			"https://cdn/x.mp4?sig=abc&k=v",
		},
		{
			"uppercase hex",
			"https\\u003A//cdn/x.mp4\\u003Fa\\u003D1",
			"https://cdn/x.mp4?a=1",
		},
		{
			"html entity ampersand",
			"https://cdn/x.mp4?a=1&amp;b=2",
			"https://cdn/x.mp4?a=1&b=2",
		},
		{
			"already literal",
			"https://cdn/x.mp4?a=1&b=2",
			"https://cdn/x.mp4?a=1&b=2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Unescape(tt.input)
			if got != tt.want {
				t.Errorf("Unescape(%q) = %q, want %q", tt.input, got, tt.want)
			}
			// Round-trip stability: a second pass changes nothing.
			if again := Unescape(got); again != got {
				t.Errorf("Unescape not idempotent: %q -> %q", got, again)
			}
		})
	}
}
