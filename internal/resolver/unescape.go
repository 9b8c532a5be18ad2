package resolver

import "strings"

// urlUnescaper converts the escape sequences Instagram embeds in URL fields
// back into literal characters. Both hex cases appear in the wild.
var urlUnescaper = strings.NewReplacer(
	"\\u0026", "&",
	"\\u002F", "/",
	"\\u002f", "/",
	"\\u003A", ":",
	"\\u003a", ":",
	"\\u003D", "=",
	"\\u003d", "=",
	"\\u003F", "?",
	"\\u003f", "?",
	"\\/", "/",
	"&amp;", "&",
)

// Unescape de-escapes a media URL recovered from markup or JSON text.
// Already-literal input passes through unchanged, so a second pass is a no-op.
func Unescape(s string) string {
	return urlUnescaper.Replace(s)
}
