// Package term contains the terminal screen buffer, a writer that renders
// buffers to a VT100 terminal, and a key reader.
package term

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"src.cellview.dev/pkg/ui"
)

// Cell is an indivisible unit on the screen. It is not necessarily 1 column
// wide.
type Cell struct {
	Text  string
	Style string
}

// Pos is a line/column position.
type Pos struct {
	Line, Col int
}

// Returns the total width of a Cell slice.
func cellsWidth(cs []Cell) int {
	w := 0
	for _, c := range cs {
		w += runewidth.StringWidth(c.Text)
	}
	return w
}

// Returns whether two Cell slices are equal, and when they are not, the first
// index at which they differ.
func compareCells(r1, r2 []Cell) (bool, int) {
	for i, c := range r1 {
		if i >= len(r2) || c != r2[i] {
			return false, i
		}
	}
	if len(r1) < len(r2) {
		return false, len(r1)
	}
	return true, 0
}

// Buffer reflects a rectangle area in the terminal, along with a cursor (called
// a "dot" here).
type Buffer struct {
	Width int
	// Lines the content of the buffer.
	Lines [][]Cell
	// Dot is what the user perceives as the cursor.
	Dot Pos
}

// Returns the position of the cursor after writing the entire buffer.
func endPos(b *Buffer) Pos {
	if len(b.Lines) == 0 {
		return Pos{}
	}
	return Pos{len(b.Lines) - 1, cellsWidth(b.Lines[len(b.Lines)-1])}
}

// SetLine replaces the line i, extending the buffer with empty lines if
// needed.
func (b *Buffer) SetLine(i int, line []Cell) {
	for len(b.Lines) <= i {
		b.Lines = append(b.Lines, nil)
	}
	b.Lines[i] = line
}

// TrimToLines trims a buffer to the lines [low, high).
func (b *Buffer) TrimToLines(low, high int) {
	low = max(0, low)
	high = min(high, len(b.Lines))
	b.Lines = b.Lines[low:high]
	b.Dot.Line = max(0, b.Dot.Line-low)
}

// PlainLines returns the text of each line, without styles.
func (b *Buffer) PlainLines() []string {
	lines := make([]string, len(b.Lines))
	for i, line := range b.Lines {
		var sb strings.Builder
		for _, c := range line {
			sb.WriteString(c.Text)
		}
		lines[i] = sb.String()
	}
	return lines
}

// TTYString returns a text representation of the buffer. It uses box drawing
// characters to represent the border of the buffer, and embeds SGR sequences to
// represent the style of the text.
func (b *Buffer) TTYString() string {
	if b == nil {
		return "nil"
	}
	sb := new(strings.Builder)
	fmt.Fprintf(sb, "Width = %d, Dot = (%d, %d)\n", b.Width, b.Dot.Line, b.Dot.Col)
	sb.WriteString("┌" + strings.Repeat("─", b.Width) + "┐\n")
	for _, line := range b.Lines {
		sb.WriteRune('│')
		lastStyle := ""
		usedWidth := 0
		for _, cell := range line {
			if cell.Style != lastStyle {
				switch {
				case lastStyle == "":
					sb.WriteString("\033[" + cell.Style + "m")
				case cell.Style == "":
					sb.WriteString("\033[m")
				default:
					sb.WriteString("\033[;" + cell.Style + "m")
				}
				lastStyle = cell.Style
			}
			sb.WriteString(cell.Text)
			usedWidth += runewidth.StringWidth(cell.Text)
		}
		if lastStyle != "" {
			sb.WriteString("\033[m")
		}
		if usedWidth < b.Width {
			sb.WriteString("$" + strings.Repeat(" ", b.Width-usedWidth-1))
		}
		sb.WriteString("│\n")
	}
	sb.WriteString("└" + strings.Repeat("─", b.Width) + "┘\n")
	return sb.String()
}

// Line converts a styled text to one line of cells, trimmed or padded to the
// given width. Newlines in the text are written as spaces.
func Line(t ui.Text, width int) []Cell {
	var cells []Cell
	for _, seg := range t.PadWidth(width) {
		style := seg.SGR()
		for _, r := range seg.Text {
			if r == '\n' || r == '\t' {
				r = ' '
			}
			cells = append(cells, Cell{string(r), style})
		}
	}
	return cells
}
