// Package markup turns assistant replies into display lines with bullet and
// bold markers resolved.
package markup

import (
	"regexp"
	"strings"
)

// Kind classifies a rendered line.
type Kind int

const (
	Text Kind = iota
	Blank
	Bullet
)

func (k Kind) String() string {
	switch k {
	case Blank:
		return "blank"
	case Bullet:
		return "bullet"
	default:
		return "text"
	}
}

// MarshalText lets Kind encode as its name in JSON.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Span is a run of text, optionally emphasized.
type Span struct {
	Text     string `json:"text"`
	Emphasis bool   `json:"emphasis,omitempty"`
}

// Line is one display line.
type Line struct {
	Kind  Kind   `json:"kind"`
	Spans []Span `json:"spans,omitempty"`
}

const bulletMarker = "* "

var emphasisPattern = regexp.MustCompile(`\*\*.*?\*\*`)

// Parse splits text on newlines. Whitespace-only lines become Blank. Lines
// whose trimmed form starts with "* " become Bullet with the marker and
// surrounding whitespace removed; other lines keep their text as is. Within
// a line, "**x**" becomes an emphasized span "x".
func Parse(text string) []Line {
	raw := strings.Split(text, "\n")
	lines := make([]Line, 0, len(raw))
	for _, l := range raw {
		trimmed := strings.TrimSpace(l)
		switch {
		case trimmed == "":
			lines = append(lines, Line{Kind: Blank})
		case strings.HasPrefix(trimmed, bulletMarker):
			lines = append(lines, Line{Kind: Bullet, Spans: spans(trimmed[len(bulletMarker):])})
		default:
			lines = append(lines, Line{Kind: Text, Spans: spans(l)})
		}
	}
	return lines
}

func spans(s string) []Span {
	var out []Span
	last := 0
	for _, loc := range emphasisPattern.FindAllStringIndex(s, -1) {
		if loc[0] > last {
			out = append(out, Span{Text: s[last:loc[0]]})
		}
		out = append(out, Span{Text: s[loc[0]+2 : loc[1]-2], Emphasis: true})
		last = loc[1]
	}
	if last < len(s) {
		out = append(out, Span{Text: s[last:]})
	}
	return out
}

// PlainText joins a line's spans without markers.
func (l Line) PlainText() string {
	var sb strings.Builder
	for _, sp := range l.Spans {
		sb.WriteString(sp.Text)
	}
	return sb.String()
}
