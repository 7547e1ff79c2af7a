package rpc

import (
	"context"
	"fmt"
	"io"
	"net"

	"github.com/sourcegraph/jsonrpc2"

	"src.cellview.dev/pkg/datasource"
	"src.cellview.dev/pkg/presenter"
	"src.cellview.dev/pkg/store"
)

// Client fetches rows from a server. It implements
// datasource.Fetcher[store.Row] and can be used concurrently.
type Client struct {
	conn *jsonrpc2.Conn
}

// NewClient creates a Client on a connection.
func NewClient(ctx context.Context, rwc io.ReadWriteCloser) *Client {
	conn := jsonrpc2.NewConn(ctx,
		jsonrpc2.NewBufferedStream(rwc, jsonrpc2.VSCodeObjectCodec{}),
		routingHandler(nil))
	return &Client{conn}
}

// Dial connects to a server listening on a TCP address.
func Dial(ctx context.Context, addr string) (*Client, error) {
	var d net.Dialer
	c, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	return NewClient(ctx, c), nil
}

// Fetch calls rows/fetch.
func (c *Client) Fetch(ctx context.Context, r presenter.Range) (datasource.Page[store.Row], error) {
	var result FetchResult
	err := c.conn.Call(ctx, "rows/fetch", FetchParams{r.Start, r.Length}, &result)
	if err != nil {
		return datasource.Page[store.Row]{}, fmt.Errorf("rows/fetch %v: %w", r, err)
	}
	return datasource.Page[store.Row]{
		Start: result.Start, Rows: result.Rows, Count: result.Count, Exact: result.Exact,
	}, nil
}

// Count calls rows/count.
func (c *Client) Count(ctx context.Context) (int, error) {
	var result CountResult
	if err := c.conn.Call(ctx, "rows/count", nil, &result); err != nil {
		return 0, fmt.Errorf("rows/count: %w", err)
	}
	return result.Count, nil
}

// Close closes the connection.
func (c *Client) Close() error { return c.conn.Close() }
