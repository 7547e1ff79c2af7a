package sys

import (
	"os"

	"golang.org/x/sys/windows"
)

func winSize(file *os.File) (row, col int) {
	var info windows.ConsoleScreenBufferInfo
	if windows.GetConsoleScreenBufferInfo(windows.Handle(file.Fd()), &info) != nil {
		return -1, -1
	}
	// The window rectangle is inclusive.
	w := info.Window
	return orDefault(int(w.Bottom-w.Top)+1, defaultRows), orDefault(int(w.Right-w.Left)+1, defaultCols)
}

// Windows has no resize signal; the channel never receives.
func notifyResize() (<-chan os.Signal, func()) {
	return make(chan os.Signal), func() {}
}
