package term

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"src.cellview.dev/pkg/ui"
)

func TestReader_ReadKey(t *testing.T) {
	r := NewReader(strings.NewReader("a\x1b[B\x1b[6~\x03\r \x1bOH\x7f"))
	want := []string{"a", "Down", "PageDown", "Ctrl-C", "Enter", "Space", "Home", "Backspace"}
	var got []string
	for {
		k, err := r.ReadKey()
		if err == io.EOF {
			break
		} else if err != nil {
			t.Fatal(err)
		}
		got = append(got, k.String())
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("keys (-want +got):\n%s", diff)
	}
}

func TestReader_BadEscape(t *testing.T) {
	r := NewReader(strings.NewReader("\x1b[99~x"))
	if _, err := r.ReadKey(); !errors.Is(err, ErrUnrecognized) {
		t.Errorf("got error %v for unknown escape sequence, want ErrUnrecognized", err)
	}
	if k, _ := r.ReadKey(); k.Rune != 'x' {
		t.Errorf("got %v after bad escape sequence, want x", k)
	}
}

func TestLine(t *testing.T) {
	got := Line(ui.T("ab", ui.Bold), 4)
	want := []Cell{{"a", "1"}, {"b", "1"}, {" ", "1"}, {" ", "1"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Line (-want +got):\n%s", diff)
	}
}

func TestWriter_DeltaUpdate(t *testing.T) {
	var out bytes.Buffer
	w := NewWriter(&out)
	buf := &Buffer{Width: 3, Lines: [][]Cell{Line(ui.T("abc"), 3), Line(ui.T("def"), 3)}}
	if err := w.UpdateBuffer(buf, false); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "abc") || !strings.Contains(out.String(), "def") {
		t.Errorf("first update %q does not contain both lines", out.String())
	}

	out.Reset()
	buf2 := &Buffer{Width: 3, Lines: [][]Cell{Line(ui.T("abc"), 3), Line(ui.T("dxf"), 3)}}
	if err := w.UpdateBuffer(buf2, false); err != nil {
		t.Fatal(err)
	}
	s := out.String()
	if strings.Contains(s, "abc") || !strings.Contains(s, "\033[1C\033[Kxf") {
		t.Errorf("delta update %q should only rewrite from the changed cell", s)
	}
	if w.Buffer() != buf2 {
		t.Errorf("Buffer() is not the last written buffer")
	}
}
