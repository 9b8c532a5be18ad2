package resolver

import (
	"context"
	"net/http"
)

// identity is a simulated browser fingerprint sent with a fetch attempt.
type identity struct {
	name    string
	headers map[string]string
}

var desktopIdentity = identity{
	name: "desktop",
	headers: map[string]string{
		"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8",
		"Accept-Language": "en-US,en;q=0.5",
		"Referer":         "https://www.instagram.com/",
		"Cache-Control":   "no-cache",
		"Sec-Fetch-Dest":  "document",
		"Sec-Fetch-Mode":  "navigate",
		"Sec-Fetch-Site":  "same-origin",
	},
}

var mobileIdentity = identity{
	name: "mobile",
	headers: map[string]string{
		"User-Agent":      "Mozilla/5.0 (iPhone; CPU iPhone OS 16_5 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/16.5 Mobile/15E148 Safari/604.1",
		"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
		"Accept-Language": "en-US,en;q=0.5",
		"Referer":         "https://www.instagram.com/",
		"Cache-Control":   "no-cache",
		"Sec-Fetch-Dest":  "document",
		"Sec-Fetch-Mode":  "navigate",
		"Sec-Fetch-Site":  "same-origin",
	},
}

// attempt is one (URL, identity) pair in the negotiation order.
type attempt struct {
	url      string
	identity identity
	jsonHint bool // URL carries the machine-readable response hint
}

// attemptsFor builds the ordered fetch plan for a shortcode. Instagram serves
// the same post under /p/ and /reel/, and the __a=1 query historically
// returned the post data as plain JSON for mobile clients.
func attemptsFor(code string) []attempt {
	post := "https://www.instagram.com/p/" + code + "/"
	reel := "https://www.instagram.com/reel/" + code + "/"
	return []attempt{
		{url: post, identity: desktopIdentity},
		{url: reel, identity: desktopIdentity},
		{url: post, identity: mobileIdentity},
		{url: post + "?__a=1&__d=dis", identity: mobileIdentity, jsonHint: true},
	}
}

// page is the usable response of a successful fetch attempt.
type page struct {
	body   []byte
	header http.Header
}

func (p *page) contentType() string {
	return p.header.Get("Content-Type")
}

// fetch tries each attempt in order and returns the first usable response.
// Attempts run strictly sequentially so the attempt priority is deterministic
// and the platform never sees a request burst.
func (r *Resolver) fetch(ctx context.Context, code string) (*page, attempt, error) {
	attempts := attemptsFor(code)
	for _, att := range attempts {
		if err := ctx.Err(); err != nil {
			return nil, attempt{}, err
		}

		status, header, body, err := r.fetcher.Fetch(ctx, att.url, att.identity.headers)
		if err != nil {
			r.debugf("fetch %s (%s): %v", att.url, att.identity.name, err)
			continue
		}
		if status < 200 || status > 299 || len(body) == 0 {
			r.debugf("fetch %s (%s): status %d, %d bytes", att.url, att.identity.name, status, len(body))
			continue
		}
		return &page{body: body, header: header}, att, nil
	}
	return nil, attempt{}, &FetchExhaustedError{Shortcode: code, Attempts: len(attempts)}
}
