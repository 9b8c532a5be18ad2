// Package resolver recovers a playable video URL and post metadata from
// Instagram's web responses. The page markup is not a stable surface, so the
// resolver negotiates several fetch variants and then applies an ordered
// cascade of extraction strategies until one recovers the media URL.
package resolver

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"reelgrab/internal/debugsink"
	"reelgrab/internal/httputil"
	"reelgrab/internal/media"
	"reelgrab/internal/shortcode"
)

// Fetcher is the HTTP-fetch capability injected into the resolver. The
// production implementation lives in internal/httputil; tests substitute
// a canned one.
type Fetcher interface {
	Fetch(ctx context.Context, url string, headers map[string]string) (status int, header http.Header, body []byte, err error)
}

// FetchExhaustedError means every fetch variant failed; nothing was extracted
// because no page was ever obtained.
type FetchExhaustedError struct {
	Shortcode string
	Attempts  int
}

func (e *FetchExhaustedError) Error() string {
	return fmt.Sprintf("all %d fetch attempts failed for %q", e.Attempts, e.Shortcode)
}

// NoMediaFoundError means a page was fetched but no strategy recovered a
// video URL. The markup likely changed, or the post is private or not a video.
type NoMediaFoundError struct {
	Shortcode string
	Stage     string // "patterns" or "shapes"
}

func (e *NoMediaFoundError) Error() string {
	return fmt.Sprintf("no video found for %q (failed at %s stage)", e.Shortcode, e.Stage)
}

// Resolver holds the injected collaborators. It keeps no per-call state, so
// one value may serve any number of sequential Resolve calls.
type Resolver struct {
	fetcher Fetcher
	sink    debugsink.Sink
	debug   bool
}

// New creates a Resolver. A nil sink disables diagnostics.
func New(f Fetcher, sink debugsink.Sink) *Resolver {
	if sink == nil {
		sink = debugsink.Nop{}
	}
	return &Resolver{fetcher: f, sink: sink}
}

// SetDebug enables verbose stderr logging of fetch attempts and strategy
// selection. Intended to be called once at construction time.
func (r *Resolver) SetDebug(on bool) {
	r.debug = on
}

func (r *Resolver) debugf(format string, args ...any) {
	if r.debug {
		log.Printf("[resolver] "+format, args...)
	}
}

// bodyPreviewLimit bounds how much of an unmatched page is written to the
// diagnostics sink.
const bodyPreviewLimit = 16 * 1024

// Resolve turns a shortcode into downloadable media. It fails with
// *FetchExhaustedError when no page could be fetched and *NoMediaFoundError
// when a page was fetched but no strategy matched.
func (r *Resolver) Resolve(ctx context.Context, code string) (*media.Media, error) {
	if err := httputil.ValidateShortcode(code); err != nil {
		return nil, fmt.Errorf("invalid shortcode: %w", err)
	}

	pg, att, err := r.fetch(ctx, code)
	if err != nil {
		return nil, err
	}
	r.debugf("fetched %s via %s identity (%d bytes)", att.url, att.identity.name, len(pg.body))

	// Machine-readable responses skip pattern matching entirely.
	if att.jsonHint && isJSONContentType(pg.contentType()) {
		var doc map[string]any
		if err := json.Unmarshal(pg.body, &doc); err == nil {
			return r.resolveStructured(doc, code, pg.body)
		}
		r.debugf("json-hint body did not parse, falling back to markup scan")
	}

	body := string(pg.body)

	if doc, pattern := extractDocument(body); doc != nil {
		r.debugf("document pattern %q matched", pattern)
		return r.resolveStructured(doc, code, pg.body)
	}

	if m, pattern := extractDirect(body); m != nil {
		r.debugf("direct pattern %q matched", pattern)
		return finish(m, code), nil
	}

	r.sink.Write("unmatched-page-"+code, unmatchedArtifact(pg))
	return nil, &NoMediaFoundError{Shortcode: code, Stage: "patterns"}
}

// resolveStructured runs the field-path shapes over a parsed document.
func (r *Resolver) resolveStructured(doc map[string]any, code string, raw []byte) (*media.Media, error) {
	m, name := resolveShapes(doc)
	if m == nil {
		r.sink.Write("unmatched-document-"+code, raw)
		return nil, &NoMediaFoundError{Shortcode: code, Stage: "shapes"}
	}
	r.debugf("field-path shape %q matched", name)
	return finish(m, code), nil
}

// finish applies the output invariants: fixed .mp4 filename, canonical source
// URL, zero-value defaults for anything unresolved.
func finish(m *media.Media, code string) *media.Media {
	m.FileName = code + ".mp4"
	m.SourceURL = shortcode.CanonicalURL(code)
	return m
}

func isJSONContentType(ct string) bool {
	return strings.Contains(ct, "application/json") || strings.Contains(ct, "text/javascript")
}

// unmatchedArtifact assembles the diagnostics payload for a page no strategy
// matched: response headers plus a bounded body prefix.
func unmatchedArtifact(pg *page) []byte {
	var b strings.Builder
	for k, vals := range pg.header {
		for _, v := range vals {
			b.WriteString(k)
			b.WriteString(": ")
			b.WriteString(v)
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	body := pg.body
	if len(body) > bodyPreviewLimit {
		body = body[:bodyPreviewLimit]
	}
	b.Write(body)
	return []byte(b.String())
}
