// Package progtest contains utilities for testing subprograms.
package progtest

import (
	"io"
	"os"
	"strings"
	"testing"

	"src.cellview.dev/pkg/must"
	"src.cellview.dev/pkg/prog"
)

// Case is a test case of a Program, built with ThatCellview and the methods
// of Case.
type Case struct {
	args  []string
	stdin string
	want  result
}

type result struct {
	exit        int
	out, err    output
	checkOutput bool
}

type output struct {
	content string
	partial bool
}

func (o output) String() string {
	if o.partial {
		return "text containing " + o.content
	}
	return o.content
}

func (o output) matches(s string) bool {
	if o.partial {
		return strings.Contains(s, o.content)
	}
	return s == o.content
}

// ThatCellview returns a Case that runs the program with the given
// arguments. By default, it expects the program to exit with 0 and write
// nothing.
func ThatCellview(args ...string) Case {
	return Case{args: append([]string{"cellview"}, args...)}
}

// WithStdin returns an altered Case that feeds s to the program's stdin.
func (c Case) WithStdin(s string) Case {
	c.stdin = s
	return c
}

// DoesNothing returns c itself. It is useful to mark that a case doesn't
// expect any output or a non-zero exit code.
func (c Case) DoesNothing() Case { return c }

// ExitsWith returns an altered Case that expects the given exit code.
func (c Case) ExitsWith(code int) Case {
	c.want.exit = code
	return c
}

// WritesStdout returns an altered Case that expects the program to write the
// given text to stdout.
func (c Case) WritesStdout(s string) Case {
	c.want.out = output{content: s}
	return c
}

// WritesStdoutContaining returns an altered Case that expects the program to
// write text containing the given text to stdout.
func (c Case) WritesStdoutContaining(s string) Case {
	c.want.out = output{content: s, partial: true}
	return c
}

// WritesStderr returns an altered Case that expects the program to write the
// given text to stderr.
func (c Case) WritesStderr(s string) Case {
	c.want.err = output{content: s}
	return c
}

// WritesStderrContaining returns an altered Case that expects the program to
// write text containing the given text to stderr.
func (c Case) WritesStderrContaining(s string) Case {
	c.want.err = output{content: s, partial: true}
	return c
}

// Test runs test cases against a given program.
func Test(t *testing.T, p prog.Program, cases ...Case) {
	t.Helper()
	for _, c := range cases {
		t.Run(strings.Join(c.args, " "), func(t *testing.T) {
			t.Helper()
			exit, stdout, stderr := Run(p, c.stdin, c.args...)
			if exit != c.want.exit {
				t.Errorf("got exit %v, want %v", exit, c.want.exit)
			}
			if !c.want.out.matches(stdout) {
				t.Errorf("got stdout %q, want %v", stdout, c.want.out)
			}
			if !c.want.err.matches(stderr) {
				t.Errorf("got stderr %q, want %v", stderr, c.want.err)
			}
		})
	}
}

// Run runs a Program with the given stdin and arguments, which include the
// program name. It returns the exit code and the output.
func Run(p prog.Program, stdin string, args ...string) (exit int, stdout, stderr string) {
	r0, w0 := must.OK2(os.Pipe())
	r1, w1 := must.OK2(os.Pipe())
	r2, w2 := must.OK2(os.Pipe())
	go func() {
		io.WriteString(w0, stdin)
		w0.Close()
	}()
	outCh, errCh := readAll(r1), readAll(r2)

	exit = prog.Run([3]*os.File{r0, w1, w2}, args, p)
	r0.Close()
	w1.Close()
	w2.Close()
	return exit, <-outCh, <-errCh
}

func readAll(r *os.File) <-chan string {
	ch := make(chan string, 1)
	go func() {
		defer r.Close()
		ch <- string(must.OK1(io.ReadAll(r)))
	}()
	return ch
}
