package dialog

import (
	"regexp"
	"strings"
	"unicode"
)

// Role is the speaker a line is attributed to.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Kind distinguishes text utterances from sticker references.
type Kind string

const (
	KindText  Kind = "text"
	KindImage Kind = "image"
)

const (
	markerUser      = "A:"
	markerAssistant = "B:"
)

// imagePattern matches a whole line that is a single sticker filename.
// The non-space class follows ECMAScript's \S so transcripts written with
// ideographic or no-break spaces classify the same way they do in a browser.
var imagePattern = regexp.MustCompile(`(?i)^([^\s\v\p{Z}\x{FEFF}]+\.(?:png|jpg|jpeg))$`)

// Line is one classified transcript line.
type Line struct {
	Role    Role
	Kind    Kind
	Content string // utterance text, or the sticker filename for KindImage
}

// IsImage reports whether the line is a sticker reference.
func (l Line) IsImage() bool {
	return l.Kind == KindImage
}

// SplitMarker strips a leading speaker marker. Lines with no marker belong to
// the assistant and are returned unchanged.
func SplitMarker(raw string) (Role, string) {
	switch {
	case strings.HasPrefix(raw, markerUser):
		return RoleUser, trimSpace(raw[len(markerUser):])
	case strings.HasPrefix(raw, markerAssistant):
		return RoleAssistant, trimSpace(raw[len(markerAssistant):])
	default:
		return RoleAssistant, raw
	}
}

// Classify resolves the speaker first and only then tests the remaining
// content for a sticker filename, so "A:sticker.png" is a user sticker.
func Classify(raw string) Line {
	role, content := SplitMarker(raw)

	if m := imagePattern.FindStringSubmatch(content); m != nil {
		return Line{Role: role, Kind: KindImage, Content: m[1]}
	}
	return Line{Role: role, Kind: KindText, Content: content}
}

func trimSpace(s string) string {
	return strings.TrimFunc(s, isSpace)
}

// isSpace matches ECMAScript whitespace and line terminators.
func isSpace(r rune) bool {
	if r == '\uFEFF' {
		return true
	}
	return r != '\u0085' && unicode.IsSpace(r)
}
