package dialog

import (
	"net/url"
	"strings"
)

// componentUnescaper restores the characters encodeURIComponent leaves alone
// but url.QueryEscape encodes, and switches spaces from '+' to %20.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EscapeComponent percent-escapes s the way encodeURIComponent does.
func EscapeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}

// AssetURL joins the sticker directory prefix and an escaped filename. The
// prefix is used verbatim, so it should carry its own trailing slash.
func AssetURL(dir, filename string) string {
	return dir + EscapeComponent(filename)
}
