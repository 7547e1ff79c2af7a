package ui

import (
	"fmt"
	"strconv"
	"strings"
)

// Color represents a color.
type Color interface {
	String() string
	fgSGR() string
	bgSGR() string
}

// Builtin ANSI colors.
var (
	Black   Color = ansiColor(0)
	Red     Color = ansiColor(1)
	Green   Color = ansiColor(2)
	Yellow  Color = ansiColor(3)
	Blue    Color = ansiColor(4)
	Magenta Color = ansiColor(5)
	Cyan    Color = ansiColor(6)
	White   Color = ansiColor(7)

	BrightBlack Color = ansiBrightColor(0)
	BrightWhite Color = ansiBrightColor(7)
)

// XTerm256Color returns a color from the xterm 256-color palette.
func XTerm256Color(i uint8) Color { return xterm256Color(i) }

// TrueColor returns a 24-bit true color.
func TrueColor(r, g, b uint8) Color { return trueColor{r, g, b} }

var colorNames = []string{
	"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white",
}

type ansiColor uint8

func (c ansiColor) String() string { return colorNames[c] }
func (c ansiColor) fgSGR() string  { return strconv.Itoa(30 + int(c)) }
func (c ansiColor) bgSGR() string  { return strconv.Itoa(40 + int(c)) }

type ansiBrightColor uint8

func (c ansiBrightColor) String() string { return "bright-" + colorNames[c] }
func (c ansiBrightColor) fgSGR() string  { return strconv.Itoa(90 + int(c)) }
func (c ansiBrightColor) bgSGR() string  { return strconv.Itoa(100 + int(c)) }

type xterm256Color uint8

func (c xterm256Color) String() string { return "color" + strconv.Itoa(int(c)) }
func (c xterm256Color) fgSGR() string  { return "38;5;" + strconv.Itoa(int(c)) }
func (c xterm256Color) bgSGR() string  { return "48;5;" + strconv.Itoa(int(c)) }

type trueColor struct{ r, g, b uint8 }

func (c trueColor) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.r, c.g, c.b)
}

func (c trueColor) fgSGR() string { return "38;2;" + c.rgbSGR() }
func (c trueColor) bgSGR() string { return "48;2;" + c.rgbSGR() }

func (c trueColor) rgbSGR() string {
	return fmt.Sprintf("%d;%d;%d", c.r, c.g, c.b)
}

// parseColor parses a color name, like "red", "bright-blue", "color208" or
// "#ff8000". It returns nil for invalid names.
func parseColor(name string) Color {
	for i, s := range colorNames {
		if name == s {
			return ansiColor(i)
		}
		if name == "bright-"+s {
			return ansiBrightColor(i)
		}
	}
	if strings.HasPrefix(name, "color") {
		i, err := strconv.Atoi(name[len("color"):])
		if err == nil && 0 <= i && i < 256 {
			return xterm256Color(i)
		}
	} else if strings.HasPrefix(name, "#") && len(name) == 7 {
		rgb, err := strconv.ParseUint(name[1:], 16, 32)
		if err == nil {
			return trueColor{uint8(rgb >> 16), uint8(rgb >> 8), uint8(rgb)}
		}
	}
	return nil
}
