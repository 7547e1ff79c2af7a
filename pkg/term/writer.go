package term

import (
	"bytes"
	"fmt"
	"io"

	"src.cellview.dev/pkg/logutil"
)

var logger = logutil.GetLogger("[term] ")

// Writer represents the output to a terminal.
type Writer interface {
	// Buffer returns the current buffer.
	Buffer() *Buffer
	// ResetBuffer resets the current buffer.
	ResetBuffer()
	// UpdateBuffer updates the terminal display to reflect current buffer.
	UpdateBuffer(buf *Buffer, fullRefresh bool) error
	// ClearScreen clears the terminal screen and places the cursor at the top
	// left corner.
	ClearScreen()
}

// writer renders buffers using delta updates.
type writer struct {
	file   io.Writer
	curBuf *Buffer
}

// NewWriter returns a Writer that writes VT100 sequences to the given io.Writer.
func NewWriter(f io.Writer) Writer {
	return &writer{f, &Buffer{}}
}

func (w *writer) Buffer() *Buffer {
	return w.curBuf
}

func (w *writer) ResetBuffer() {
	w.curBuf = &Buffer{}
}

// deltaPos calculates the escape sequence needed to move the cursor from one
// position to another. It use relative movements to move to the destination
// line and absolute movement to move to the destination column.
func deltaPos(from, to Pos) []byte {
	buf := new(bytes.Buffer)
	if from.Line < to.Line {
		fmt.Fprintf(buf, "\033[%dB", to.Line-from.Line)
	} else if from.Line > to.Line {
		fmt.Fprintf(buf, "\033[%dA", from.Line-to.Line)
	}
	fmt.Fprint(buf, "\r")
	if to.Col > 0 {
		fmt.Fprintf(buf, "\033[%dC", to.Col)
	}
	return buf.Bytes()
}

const (
	hideCursor = "\033[?25l"
	showCursor = "\033[?25h"
)

// UpdateBuffer updates the terminal display to reflect current buffer. Lines
// that did not change are not written again.
func (w *writer) UpdateBuffer(buf *Buffer, fullRefresh bool) error {
	if buf.Width != w.curBuf.Width && w.curBuf.Lines != nil {
		// Delta rendering does not work across width changes.
		fullRefresh = true
	}

	output := new(bytes.Buffer)
	output.WriteString(hideCursor)

	// Rewind cursor.
	if pLine := w.curBuf.Dot.Line; pLine > 0 {
		fmt.Fprintf(output, "\033[%dA", pLine)
	}
	output.WriteString("\r")

	if fullRefresh {
		// Writing a space before erasing defeats tmux's heuristic of saving
		// the screen to the scrollback buffer.
		output.WriteString(" \033[J\r")
	}

	// style of last written cell.
	style := ""

	switchStyle := func(newstyle string) {
		if newstyle != style {
			fmt.Fprintf(output, "\033[0;%sm", newstyle)
			style = newstyle
		}
	}

	writeCells := func(cs []Cell) {
		for _, c := range cs {
			switchStyle(c.Style)
			output.WriteString(c.Text)
		}
	}

	changed := 0
	for i, line := range buf.Lines {
		if i > 0 {
			output.WriteString("\n")
		}
		if fullRefresh || i >= len(w.curBuf.Lines) {
			writeCells(line)
			changed++
			continue
		}
		eq, j := compareCells(line, w.curBuf.Lines[i])
		if eq {
			continue
		}
		changed++
		// Move to the first differing cell.
		if firstCol := cellsWidth(line[:j]); firstCol != 0 {
			fmt.Fprintf(output, "\033[%dC", firstCol)
		}
		// Erasing is not needed if the old line is a prefix of the new one.
		if j < len(w.curBuf.Lines[i]) {
			switchStyle("")
			output.WriteString("\033[K")
		}
		writeCells(line[j:])
	}
	if !fullRefresh && len(w.curBuf.Lines) > len(buf.Lines) {
		// Erase lines of the old buffer that are below the new one.
		switchStyle("")
		output.WriteString("\n\033[J\033[A")
	}
	switchStyle("")
	output.Write(deltaPos(endPos(buf), buf.Dot))
	output.WriteString(showCursor)

	logger.Printf("writing %d of %d lines, %d bytes", changed, len(buf.Lines), output.Len())
	_, err := w.file.Write(output.Bytes())
	if err != nil {
		return err
	}

	w.curBuf = buf
	return nil
}

func (w *writer) ClearScreen() {
	fmt.Fprint(w.file,
		"\033[H",  // move cursor to the top left corner
		"\033[2J", // clear entire buffer
	)
}
