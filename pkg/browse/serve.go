package browse

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"

	"src.cellview.dev/pkg/prog"
	"src.cellview.dev/pkg/rpc"
	"src.cellview.dev/pkg/store"
)

// ServeProgram serves the database over JSON-RPC. It runs when -serve is
// given, and stops on interrupt. With "-serve -", it serves one connection on
// stdin and stdout.
type ServeProgram struct{}

func (ServeProgram) Run(fds [3]*os.File, f *prog.Flags, args []string) error {
	if f.Serve == "" {
		return prog.ErrNotSuitable
	}
	if len(args) > 0 {
		return prog.BadUsage("arguments are not allowed with -serve")
	}
	if f.Remote != "" {
		return prog.BadUsage("-serve and -remote cannot be used together")
	}
	cfg, err := loadConfig(f)
	if err != nil {
		return err
	}
	st, err := store.NewStore(cfg.DB)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if f.Serve == "-" {
		rpc.Serve(ctx, stdrwc{fds[0], fds[1]}, st)
		return nil
	}
	l, err := net.Listen("tcp", f.Serve)
	if err != nil {
		return err
	}
	fmt.Fprintln(fds[2], "serving rows on", l.Addr())
	return serve(ctx, l, st)
}

// A connection on stdin and stdout.
type stdrwc struct{ in, out *os.File }

func (c stdrwc) Read(p []byte) (int, error)  { return c.in.Read(p) }
func (c stdrwc) Write(p []byte) (int, error) { return c.out.Write(p) }

func (c stdrwc) Close() error {
	if err := c.in.Close(); err != nil {
		c.out.Close()
		return err
	}
	return c.out.Close()
}

// Serves st on l until ctx is done.
func serve(ctx context.Context, l net.Listener, st *store.Store) error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			l.Close()
		case <-done:
		}
	}()
	err := rpc.ServeListener(ctx, l, st)
	if ctx.Err() != nil && errors.Is(err, net.ErrClosed) {
		logger.Println("server stopped")
		return nil
	}
	return err
}
