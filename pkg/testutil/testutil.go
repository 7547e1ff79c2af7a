// Package testutil contains common test utilities.
package testutil

import (
	"os"
	"regexp"
	"strings"
)

// Cleanuper wraps the Cleanup method. It is a subset of [testing.TB], thus
// satisfied by [*testing.T] and [*testing.B].
type Cleanuper interface {
	Cleanup(func())
}

// Setenv sets the value of an environment variable for the duration of a
// test. It returns value.
func Setenv(c Cleanuper, name, value string) string {
	oldValue, existed := os.LookupEnv(name)
	if existed {
		c.Cleanup(func() { os.Setenv(name, oldValue) })
	} else {
		c.Cleanup(func() { os.Unsetenv(name) })
	}
	os.Setenv(name, value)
	return value
}

var (
	whitespaceOnly    = regexp.MustCompile("(?m)^[ \t]+$")
	leadingWhitespace = regexp.MustCompile("(?m)(^[ \t]*)(?:[^ \t\n])")
)

// Dedent removes any common leading whitespace from every line in text. An
// initial newline is removed.
//
// It makes multi-line raw strings line up with the left edge while keeping
// them indented in the source.
func Dedent(text string) string {
	text = strings.TrimPrefix(text, "\n")
	text = whitespaceOnly.ReplaceAllString(text, "")

	var margin string
	for i, indent := range leadingWhitespace.FindAllStringSubmatch(text, -1) {
		switch {
		case i == 0:
			margin = indent[1]
		case strings.HasPrefix(indent[1], margin):
			// More deeply indented than the current margin.
		case strings.HasPrefix(margin, indent[1]):
			margin = indent[1]
		default:
			margin = ""
		}
		if margin == "" {
			break
		}
	}
	if margin == "" {
		return text
	}
	return regexp.MustCompile("(?m)^"+margin).ReplaceAllString(text, "")
}
