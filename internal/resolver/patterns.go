package resolver

import (
	"encoding/json"
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"reelgrab/internal/media"
)

// documentPattern isolates a JSON fragment embedded in page markup.
type documentPattern struct {
	name string
	find func(body string) (string, bool)
}

// Prefixes of the JSON payloads Instagram has embedded in markup over the
// years. Each regex ends at the payload's opening brace; the fragment is then
// taken with a balanced-brace scan so embedded "};" sequences inside strings
// cannot truncate it.
var (
	prefixSharedData = regexp.MustCompile(`window\._sharedData\s*=\s*\{`)
	prefixAdditional = regexp.MustCompile(`window\.__additionalDataLoaded\s*\(\s*[^,]*,\s*\{`)
	prefixGQLData    = regexp.MustCompile(`"gql_data"\s*:\s*\{`)
)

func prefixFinder(re *regexp.Regexp) func(string) (string, bool) {
	return func(body string) (string, bool) {
		loc := re.FindStringIndex(body)
		if loc == nil {
			return "", false
		}
		return balancedJSON(body, loc[1]-1)
	}
}

// findScriptJSON locates a <script type="application/json"> (or ld+json)
// payload that mentions post media fields.
func findScriptJSON(body string) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return "", false
	}

	var fragment string
	doc.Find(`script[type="application/json"], script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := strings.TrimSpace(s.Text())
		if !strings.HasPrefix(text, "{") {
			return true
		}
		if !strings.Contains(text, "shortcode_media") &&
			!strings.Contains(text, "xdt_shortcode_media") &&
			!strings.Contains(text, "video_url") &&
			!strings.Contains(text, "contentUrl") {
			return true
		}
		fragment = text
		return false
	})
	return fragment, fragment != ""
}

var documentPatterns = []documentPattern{
	{name: "shared-data", find: prefixFinder(prefixSharedData)},
	{name: "additional-data", find: prefixFinder(prefixAdditional)},
	{name: "script-json", find: findScriptJSON},
	{name: "gql-data", find: prefixFinder(prefixGQLData)},
}

// extractDocument scans the markup for an embedded JSON document, trying each
// pattern in priority order. The first pattern whose fragment parses as JSON
// wins; a fragment that does not parse does not stop later patterns.
func extractDocument(body string) (map[string]any, string) {
	for _, p := range documentPatterns {
		frag, ok := p.find(body)
		if !ok {
			continue
		}
		var doc map[string]any
		if err := json.Unmarshal([]byte(frag), &doc); err != nil {
			continue
		}
		return doc, p.name
	}
	return nil, ""
}

// balancedJSON returns the JSON object starting at body[start] (which must be
// an opening brace), scanning to the matching close brace while respecting
// string literals and escapes.
func balancedJSON(body string, start int) (string, bool) {
	if start < 0 || start >= len(body) || body[start] != '{' {
		return "", false
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(body); i++ {
		c := body[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return body[start : i+1], true
			}
		}
	}
	return "", false
}

// Direct-URL textual patterns, tried in order when no structured document was
// found. Meta tags come in both attribute orders.
var directURLPatterns = []struct {
	name string
	re   *regexp.Regexp
}{
	{"og-video", regexp.MustCompile(`<meta[^>]+property="og:video(?::secure_url)?"[^>]+content="([^"]+)"`)},
	{"og-video-rev", regexp.MustCompile(`<meta[^>]+content="([^"]+)"[^>]+property="og:video(?::secure_url)?"`)},
	{"video-url-field", regexp.MustCompile(`"video_url"\s*:\s*"([^"]+)"`)},
	{"playable-url-field", regexp.MustCompile(`"playable_url(?:_quality_hd)?"\s*:\s*"([^"]+)"`)},
	{"content-url-field", regexp.MustCompile(`"contentUrl"\s*:\s*"([^"]+)"`)},
}

// Narrow metadata patterns applied independently of the URL match. Each
// concern tries its variants in order; absence is not an error.
var (
	likeEdgeRe     = regexp.MustCompile(`"(?:edge_media_preview_like|edge_liked_by)"\s*:\s*\{\s*"count"\s*:\s*(\d+)`)
	likeFlatRe     = regexp.MustCompile(`"like_count"\s*:\s*(\d+)`)
	commentEdgeRe  = regexp.MustCompile(`"(?:edge_media_to_comment|edge_media_to_parent_comment)"\s*:\s*\{\s*"count"\s*:\s*(\d+)`)
	commentFlatRe  = regexp.MustCompile(`"comment_count"\s*:\s*(\d+)`)
	viewCountRe    = regexp.MustCompile(`"(?:video_view_count|view_count|play_count)"\s*:\s*(\d+)`)
	ownerNestedRe  = regexp.MustCompile(`"owner"\s*:\s*\{[^{}]*?"username"\s*:\s*"([^"]+)"`)
	ownerFlatRe    = regexp.MustCompile(`"username"\s*:\s*"([^"]+)"`)
	captionFieldRe = regexp.MustCompile(`"(?:caption|accessibility_caption)"\s*:\s*"([^"]*)"`)
	captionMetaRe  = regexp.MustCompile(`<meta[^>]+property="og:description"[^>]+content="([^"]*)"`)
	thumbMetaRe    = regexp.MustCompile(`<meta[^>]+property="og:image"[^>]+content="([^"]+)"`)
	thumbFieldRe   = regexp.MustCompile(`"(?:display_url|thumbnail_src)"\s*:\s*"([^"]+)"`)
)

// extractDirect scans raw markup for a media URL and adjacent metadata when
// no structured document matched. Returns nil when no URL pattern matches.
func extractDirect(body string) (*media.Media, string) {
	var rawURL, patternName string
	for _, p := range directURLPatterns {
		if m := p.re.FindStringSubmatch(body); m != nil {
			rawURL = m[1]
			patternName = p.name
			break
		}
	}
	if rawURL == "" {
		return nil, ""
	}

	out := &media.Media{URL: Unescape(rawURL)}

	if m := likeEdgeRe.FindStringSubmatch(body); m != nil {
		out.Likes = parseCount(m[1])
	} else if m := likeFlatRe.FindStringSubmatch(body); m != nil {
		out.Likes = parseCount(m[1])
	}

	if m := commentEdgeRe.FindStringSubmatch(body); m != nil {
		out.Comments = parseCount(m[1])
	} else if m := commentFlatRe.FindStringSubmatch(body); m != nil {
		out.Comments = parseCount(m[1])
	}

	if m := viewCountRe.FindStringSubmatch(body); m != nil {
		out.Views = parseCount(m[1])
	}

	if m := ownerNestedRe.FindStringSubmatch(body); m != nil {
		out.Owner = m[1]
	} else if m := ownerFlatRe.FindStringSubmatch(body); m != nil {
		out.Owner = m[1]
	}

	if m := captionFieldRe.FindStringSubmatch(body); m != nil {
		out.Caption = html.UnescapeString(m[1])
	} else if m := captionMetaRe.FindStringSubmatch(body); m != nil {
		out.Caption = html.UnescapeString(m[1])
	}

	if m := thumbMetaRe.FindStringSubmatch(body); m != nil {
		out.ThumbnailURL = Unescape(m[1])
	} else if m := thumbFieldRe.FindStringSubmatch(body); m != nil {
		out.ThumbnailURL = Unescape(m[1])
	}

	return out, patternName
}

func parseCount(s string) int64 {
	n, _ := strconv.ParseInt(s, 10, 64)
	return n
}
