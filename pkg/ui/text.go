package ui

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Segment is a string that has some style applied to it.
type Segment struct {
	Style
	Text string
}

// VTString renders the segment using VT-style escape sequences. Any existing
// SGR state will be cleared.
func (s *Segment) VTString() string {
	sgr := s.SGR()
	if sgr == "" {
		return "\033[m" + s.Text
	}
	return fmt.Sprintf("\033[;%sm%s\033[m", sgr, s.Text)
}

// Text contains of a list of styled Segments.
type Text []*Segment

// T constructs a new Text with the given content and the given Styling's
// applied.
func T(s string, ts ...Styling) Text {
	return StyleText(Text{&Segment{Text: s}}, ts...)
}

// Concat returns a new Text with the segments of t2 added to the end.
func (t Text) Concat(t2 Text) Text {
	return append(append(Text(nil), t...), t2...)
}

// Plain returns the text without styles.
func (t Text) Plain() string {
	var sb strings.Builder
	for _, seg := range t {
		sb.WriteString(seg.Text)
	}
	return sb.String()
}

// Width returns the visual width of the text.
func (t Text) Width() int {
	w := 0
	for _, seg := range t {
		w += runewidth.StringWidth(seg.Text)
	}
	return w
}

// TrimWidth returns the largest prefix of t that does not exceed the given
// visual width.
func (t Text) TrimWidth(wmax int) Text {
	var newt Text
	for _, seg := range t {
		w := runewidth.StringWidth(seg.Text)
		if w >= wmax {
			newt = append(newt, &Segment{seg.Style, runewidth.Truncate(seg.Text, wmax, "")})
			break
		}
		wmax -= w
		newt = append(newt, seg)
	}
	return newt
}

// PadWidth returns t trimmed or padded with spaces in the style of its last
// segment to exactly the given visual width.
func (t Text) PadWidth(w int) Text {
	t = t.TrimWidth(w)
	if pad := w - t.Width(); pad > 0 {
		var style Style
		if len(t) > 0 {
			style = t[len(t)-1].Style
		}
		t = append(t, &Segment{style, strings.Repeat(" ", pad)})
	}
	return t
}

// VTString renders the styled text using VT-style escape sequences.
func (t Text) VTString() string {
	var sb strings.Builder
	for _, seg := range t {
		sb.WriteString(seg.VTString())
	}
	return sb.String()
}
