// Package browse contains the subprograms of cellview: the interactive row
// browser, and the dump, import and serve programs that work on the same row
// database.
package browse

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"src.cellview.dev/pkg/config"
	"src.cellview.dev/pkg/datasource"
	"src.cellview.dev/pkg/logutil"
	"src.cellview.dev/pkg/prog"
	"src.cellview.dev/pkg/rpc"
	"src.cellview.dev/pkg/store"
	"src.cellview.dev/pkg/ui"
)

var logger = logutil.GetLogger("[browse] ")

// Programs returns the subprograms in the order they should be tried.
func Programs() []prog.Program {
	return []prog.Program{ImportProgram{}, ServeProgram{}, DumpProgram{}, Program{}}
}

// Loads the configuration file named by -config, or the default
// configuration, and applies flags that override it.
func loadConfig(f *prog.Flags) (*config.Config, error) {
	cfg := config.Default()
	if f.Config != "" {
		var err error
		cfg, err = config.Load(f.Config)
		if err != nil {
			return nil, err
		}
	}
	if f.DB != "" {
		cfg.DB = f.DB
	}
	if f.Remote != "" {
		cfg.Remote = f.Remote
	}
	if f.PageSize != 0 {
		if f.PageSize < 0 {
			return nil, prog.BadUsage(fmt.Sprintf("-page-size must be positive, got %d", f.PageSize))
		}
		cfg.PageSize = f.PageSize
	}
	if cfg.DB == "" {
		p, err := dbPath()
		if err != nil {
			return nil, err
		}
		cfg.DB = p
	}
	return &cfg, nil
}

// Returns the default path of the database, creating its directory.
func dbPath() (string, error) {
	dir := os.Getenv("XDG_STATE_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot locate database: %w", err)
		}
		dir = filepath.Join(home, ".local", "state")
	}
	dir = filepath.Join(dir, "cellview")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", err
	}
	return filepath.Join(dir, "rows.db"), nil
}

// Opens the source of rows: the remote server if one is configured, or the
// database otherwise.
func openSource(ctx context.Context, cfg *config.Config) (datasource.Fetcher[store.Row], io.Closer, error) {
	if cfg.Remote != "" {
		c, err := rpc.Dial(ctx, cfg.Remote)
		if err != nil {
			return nil, nil, err
		}
		logger.Println("browsing remote rows at", cfg.Remote)
		return c, c, nil
	}
	st, err := store.NewStore(cfg.DB)
	if err != nil {
		return nil, nil, err
	}
	return st, st, nil
}

func formatRow(r store.Row) ui.Text {
	return ui.T(fmt.Sprintf("%3d ", r.Seq), ui.Dim).Concat(ui.T(r.Text))
}
