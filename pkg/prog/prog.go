// Package prog provides the entry point to cellview. Its subpackages
// correspond to subprograms of cellview.
package prog

// This package sets up the basic environment and calls the appropriate
// "subprogram": the interactive browser, the dumper, the importer or the
// server.

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"src.cellview.dev/pkg/logutil"
)

// Flags keeps command-line flags.
type Flags struct {
	Log, Config string

	Help bool

	DB, Remote string
	PageSize   int

	Import, Serve string
	Dump          bool
	Start         int
}

func newFlagSet(f *Flags) *flag.FlagSet {
	fs := flag.NewFlagSet("cellview", flag.ContinueOnError)
	// Error and usage will be printed explicitly.
	fs.SetOutput(io.Discard)

	fs.StringVar(&f.Log, "log", "", "a file to write debug log to")
	fs.StringVar(&f.Config, "config", "", "path to the YAML configuration file")

	fs.BoolVar(&f.Help, "help", false, "show usage help and quit")

	fs.StringVar(&f.DB, "db", "", "path to the row database")
	fs.StringVar(&f.Remote, "remote", "", "address of a row server to browse instead of the database")
	fs.IntVar(&f.PageSize, "page-size", 0, "number of rows on a page; overrides the configuration")

	fs.StringVar(&f.Import, "import", "", "add the lines of a file (- for stdin) to the database and quit")
	fs.StringVar(&f.Serve, "serve", "", "serve the database on a TCP address")
	fs.BoolVar(&f.Dump, "dump", false, "print one page of rows and quit")
	fs.IntVar(&f.Start, "start", 0, "index of the first row printed by -dump")

	return fs
}

func usage(out io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(out, "Usage: cellview [flags]")
	fmt.Fprintln(out, "Supported flags:")
	fs.SetOutput(out)
	fs.PrintDefaults()
}

// Run parses command-line flags and runs the first applicable subprogram. It
// returns the exit status of the program.
func Run(fds [3]*os.File, args []string, p Program) int {
	f := &Flags{}
	fs := newFlagSet(f)
	err := fs.Parse(args[1:])
	if err != nil {
		if err == flag.ErrHelp {
			// (*flag.FlagSet).Parse returns ErrHelp when -h or -help was
			// requested but *not* defined. cellview defines -help, but not
			// -h; so this means that -h has been requested. Handle this by
			// printing the same message as an undefined flag.
			fmt.Fprintln(fds[2], "flag provided but not defined: -h")
		} else {
			fmt.Fprintln(fds[2], err)
		}
		usage(fds[2], fs)
		return 2
	}

	if f.Log != "" {
		err = logutil.SetOutputFile(f.Log)
		if err != nil {
			fmt.Fprintln(fds[2], err)
		}
		defer logutil.SetOutputFile("")
	}

	if f.Help {
		usage(fds[1], fs)
		return 0
	}

	err = p.Run(fds, f, fs.Args())
	if err == nil {
		return 0
	}
	if msg := err.Error(); msg != "" {
		fmt.Fprintln(fds[2], msg)
	}
	var badUsage badUsageError
	var exit exitError
	switch {
	case errors.As(err, &badUsage):
		usage(fds[2], fs)
	case errors.As(err, &exit):
		return exit.exit
	}
	return 2
}

// Composite returns a Program that tries each of the given programs,
// terminating at the first one that doesn't return ErrNotSuitable.
func Composite(programs ...Program) Program {
	return compositeProgram(programs)
}

type compositeProgram []Program

func (cp compositeProgram) Run(fds [3]*os.File, f *Flags, args []string) error {
	for _, p := range cp {
		err := p.Run(fds, f, args)
		if err != ErrNotSuitable {
			return err
		}
	}
	// If we have reached here, all subprograms have returned ErrNotSuitable
	return ErrNotSuitable
}

// ErrNotSuitable is a special error that may be returned by Program.Run, to
// signify that this Program should not be run. It is useful when a Program is
// used in Composite.
var ErrNotSuitable = errors.New("internal error: no suitable subprogram")

// BadUsage returns a special error that may be returned by Program.Run. It
// causes the main function to print out a message, the usage information and
// exit with 2.
func BadUsage(msg string) error { return badUsageError{msg} }

type badUsageError struct{ msg string }

func (e badUsageError) Error() string { return e.msg }

// Exit returns a special error that may be returned by Program.Run. It causes
// the main function to exit with the given code without printing any error
// messages. Exit(0) returns nil.
func Exit(exit int) error {
	if exit == 0 {
		return nil
	}
	return exitError{exit}
}

type exitError struct{ exit int }

func (e exitError) Error() string { return "" }

// Program represents a subprogram.
type Program interface {
	// Run runs the subprogram.
	Run(fds [3]*os.File, f *Flags, args []string) error
}
