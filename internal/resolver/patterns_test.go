package resolver

import (
	"os"
	"testing"
)

func loadFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile("testdata/" + name)
	if err != nil {
		t.Fatalf("reading fixture %s: %v", name, err)
	}
	return string(data)
}

func TestExtractDocumentSharedData(t *testing.T) {
	body := loadFixture(t, "shared_data_page.html")

	doc, pattern := extractDocument(body)
	if doc == nil {
		t.Fatal("extractDocument() returned no document")
	}
	if pattern != "shared-data" {
		t.Errorf("pattern = %q, want shared-data", pattern)
	}
	if _, ok := doc["entry_data"]; !ok {
		t.Error("parsed document missing entry_data key")
	}
}

func TestExtractDocumentScriptJSON(t *testing.T) {
	body := loadFixture(t, "script_json_page.html")

	doc, pattern := extractDocument(body)
	if doc == nil {
		t.Fatal("extractDocument() returned no document")
	}
	if pattern != "script-json" {
		t.Errorf("pattern = %q, want script-json", pattern)
	}
}

func TestExtractDocumentAdditionalData(t *testing.T) {
	body := `<script>window.__additionalDataLoaded('/p/ABC/', {"graphql":{"shortcode_media":{"video_url":"https://cdn/x.mp4"}}});</script>`

	doc, pattern := extractDocument(body)
	if doc == nil {
		t.Fatal("extractDocument() returned no document")
	}
	if pattern != "additional-data" {
		t.Errorf("pattern = %q, want additional-data", pattern)
	}
}

func TestExtractDocumentGQLData(t *testing.T) {
	body := `<script>{"seo":1,"gql_data":{"shortcode_media":{"video_url":"https://cdn/x.mp4"}},"tail":2}</script>`

	doc, pattern := extractDocument(body)
	if doc == nil {
		t.Fatal("extractDocument() returned no document")
	}
	if pattern != "gql-data" {
		t.Errorf("pattern = %q, want gql-data", pattern)
	}
	if _, ok := doc["shortcode_media"]; !ok {
		t.Error("gql-data fragment should be the inner object")
	}
}

func TestExtractDocumentPriorityOrder(t *testing.T) {
	// Both sharedData and a script JSON blob present: sharedData wins.
	body := `<script>window._sharedData = {"entry_data":{}};</script>` +
		`<script type="application/json">{"data":{"xdt_shortcode_media":{"video_url":"https://cdn/x.mp4"}}}</script>`

	_, pattern := extractDocument(body)
	if pattern != "shared-data" {
		t.Errorf("pattern = %q, want shared-data to win over later patterns", pattern)
	}
}

func TestExtractDocumentUnparseableFragmentSkipped(t *testing.T) {
	// Truncated sharedData assignment must not stop the script-json pattern.
	body := `<script>window._sharedData = {"entry_data": broken</script>` +
		`<script type="application/json">{"data":{"xdt_shortcode_media":{"video_url":"https://cdn/x.mp4"}}}</script>`

	doc, pattern := extractDocument(body)
	if doc == nil {
		t.Fatal("extractDocument() returned no document")
	}
	if pattern != "script-json" {
		t.Errorf("pattern = %q, want script-json after unparseable shared-data", pattern)
	}
}

func TestExtractDocumentNoMatch(t *testing.T) {
	doc, _ := extractDocument("<html><body>just a login wall</body></html>")
	if doc != nil {
		t.Errorf("extractDocument() = %v, want nil", doc)
	}
}

func TestBalancedJSON(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		start int
		want  string
		ok    bool
	}{
		{"flat", `{"a":1}`, 0, `{"a":1}`, true},
		{"nested", `{"a":{"b":2}} trailing`, 0, `{"a":{"b":2}}`, true},
		{"brace in string", `{"a":"}"}`, 0, `{"a":"}"}`, true},
		{"escaped quote in string", `{"a":"\"}"}`, 0, `{"a":"\"}"}`, true},
		{"unterminated", `{"a":1`, 0, "", false},
		{"not a brace", `x{"a":1}`, 0, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := balancedJSON(tt.body, tt.start)
			if ok != tt.ok || got != tt.want {
				t.Errorf("balancedJSON(%q) = %q, %v, want %q, %v", tt.body, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestExtractDirect(t *testing.T) {
	body := loadFixture(t, "og_video_page.html")

	m, pattern := extractDirect(body)
	if m == nil {
		t.Fatal("extractDirect() returned no media")
	}
	if pattern != "og-video" {
		t.Errorf("pattern = %q, want og-video", pattern)
	}
	if m.URL != "https://cdn.example.com/v/direct.mp4?sig=aa&tok=bb" {
		t.Errorf("URL = %q, want de-escaped query string", m.URL)
	}
	if m.ThumbnailURL != "https://cdn.example.com/t/direct.jpg" {
		t.Errorf("ThumbnailURL = %q", m.ThumbnailURL)
	}
	if m.Caption != "a video by bob" {
		t.Errorf("Caption = %q", m.Caption)
	}
}

func TestExtractDirectInlineFields(t *testing.T) {
	body := `<html>"video_url":"https://cdn/x.mp4","like_count":10,"comment_count":4,` +
		`"video_view_count":200,"owner":{"id":"1","username":"alice"}</html>`

	m, pattern := extractDirect(body)
	if m == nil {
		t.Fatal("extractDirect() returned no media")
	}
	if pattern != "video-url-field" {
		t.Errorf("pattern = %q, want video-url-field", pattern)
	}
	if m.URL != "https://cdn/x.mp4" {
		t.Errorf("URL = %q", m.URL)
	}
	if m.Likes != 10 || m.Comments != 4 || m.Views != 200 {
		t.Errorf("counts = %d/%d/%d, want 10/4/200", m.Likes, m.Comments, m.Views)
	}
	if m.Owner != "alice" {
		t.Errorf("Owner = %q, want alice", m.Owner)
	}
}

func TestExtractDirectCountersOptional(t *testing.T) {
	body := `"playable_url":"https://cdn/p.mp4"`

	m, pattern := extractDirect(body)
	if m == nil {
		t.Fatal("extractDirect() returned no media")
	}
	if pattern != "playable-url-field" {
		t.Errorf("pattern = %q, want playable-url-field", pattern)
	}
	if m.Likes != 0 || m.Comments != 0 || m.Views != 0 || m.Owner != "" || m.Caption != "" {
		t.Errorf("metadata should default to zero values, got %+v", m)
	}
}

func TestExtractDirectNoMatch(t *testing.T) {
	if m, _ := extractDirect("<html>nothing here</html>"); m != nil {
		t.Errorf("extractDirect() = %+v, want nil", m)
	}
}
