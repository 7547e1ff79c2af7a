//go:build unix

package sys

import (
	"os"
	"testing"

	"github.com/creack/pty"
)

func TestIsATTY(t *testing.T) {
	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skip("cannot open pty:", err)
	}
	defer ptmx.Close()
	defer tty.Close()

	if !IsATTY(tty.Fd()) {
		t.Errorf("IsATTY(pty) = false")
	}

	f, err := os.CreateTemp(t.TempDir(), "file")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if IsATTY(f.Fd()) {
		t.Errorf("IsATTY(regular file) = true")
	}
}

func TestWinSize(t *testing.T) {
	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skip("cannot open pty:", err)
	}
	defer ptmx.Close()
	defer tty.Close()

	if err := pty.Setsize(ptmx, &pty.Winsize{Rows: 30, Cols: 100}); err != nil {
		t.Fatal(err)
	}
	if row, col := WinSize(tty); row != 30 || col != 100 {
		t.Errorf("WinSize -> %d, %d, want 30, 100", row, col)
	}

	f, err := os.CreateTemp(t.TempDir(), "file")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if row, col := WinSize(f); row != -1 || col != -1 {
		t.Errorf("WinSize(regular file) -> %d, %d, want -1, -1", row, col)
	}
}

func TestNotifyResize(t *testing.T) {
	ch, stop := NotifyResize()
	defer stop()
	if ch == nil {
		t.Errorf("NotifyResize returned nil channel")
	}
}
