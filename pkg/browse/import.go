package browse

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"src.cellview.dev/pkg/prog"
	"src.cellview.dev/pkg/store"
)

// ImportProgram adds the lines of a file to the database. It runs when
// -import is given.
type ImportProgram struct{}

func (ImportProgram) Run(fds [3]*os.File, f *prog.Flags, args []string) error {
	if f.Import == "" {
		return prog.ErrNotSuitable
	}
	if len(args) > 0 {
		return prog.BadUsage("arguments are not allowed with -import")
	}
	cfg, err := loadConfig(f)
	if err != nil {
		return err
	}

	var in io.Reader = fds[0]
	if f.Import != "-" {
		file, err := os.Open(f.Import)
		if err != nil {
			return err
		}
		defer file.Close()
		in = file
	}
	lines, err := readLines(in)
	if err != nil {
		return err
	}

	st, err := store.NewStore(cfg.DB)
	if err != nil {
		return err
	}
	defer st.Close()
	if err := st.AddRows(lines); err != nil {
		return err
	}
	fmt.Fprintf(fds[1], "imported %d rows\n", len(lines))
	return nil
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}
