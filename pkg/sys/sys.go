// Package sys provides terminal-related system utilities with the same API
// across OSes.
package sys

import (
	"os"

	"github.com/mattn/go-isatty"
)

// IsATTY determines whether the given file is a terminal.
func IsATTY(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// WinSize queries the size of the terminal referenced by the given file. It
// returns -1, -1 if the file is not a terminal.
func WinSize(file *os.File) (row, col int) { return winSize(file) }

// NotifyResize returns a channel that receives a value whenever the size of
// the controlling terminal changes, and a function that stops the
// notification.
func NotifyResize() (<-chan os.Signal, func()) { return notifyResize() }

// Size assumed when a terminal reports zero rows or columns.
const (
	defaultRows = 24
	defaultCols = 80
)

func orDefault(n, def int) int {
	if n <= 0 {
		return def
	}
	return n
}
