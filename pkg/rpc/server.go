// Package rpc serves a row store over JSON-RPC 2.0, and implements a client
// that fetches rows from such a server.
//
// Messages are framed with Content-Length headers. The methods are:
//
//   - rows/fetch, with FetchParams, returning FetchResult
//   - rows/count, with no params, returning CountResult
package rpc

import (
	"context"
	"encoding/json"
	"io"
	"net"

	"github.com/sourcegraph/jsonrpc2"

	"src.cellview.dev/pkg/datasource"
	"src.cellview.dev/pkg/logutil"
	"src.cellview.dev/pkg/presenter"
	"src.cellview.dev/pkg/store"
)

var logger = logutil.GetLogger("[rpc] ")

var (
	errMethodNotFound = &jsonrpc2.Error{
		Code: jsonrpc2.CodeMethodNotFound, Message: "method not found"}
	errInvalidParams = &jsonrpc2.Error{
		Code: jsonrpc2.CodeInvalidParams, Message: "invalid params"}
)

// Source is a dataset that can be served.
type Source interface {
	datasource.Fetcher[store.Row]
	Count() (int, error)
}

// FetchParams are the params of rows/fetch.
type FetchParams struct {
	Start  int `json:"start"`
	Length int `json:"length"`
}

// FetchResult is the result of rows/fetch.
type FetchResult struct {
	Start int         `json:"start"`
	Rows  []store.Row `json:"rows"`
	Count int         `json:"count"`
	Exact bool        `json:"exact"`
}

// CountResult is the result of rows/count.
type CountResult struct {
	Count int `json:"count"`
}

type server struct {
	src Source
}

func handler(s *server) jsonrpc2.Handler {
	return routingHandler(map[string]method{
		"rows/fetch": s.fetch,
		"rows/count": s.count,
	})
}

type method func(context.Context, jsonrpc2.JSONRPC2, json.RawMessage) (any, error)

func routingHandler(methods map[string]method) jsonrpc2.Handler {
	return jsonrpc2.HandlerWithError(func(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (any, error) {
		logger.Println("request", req.Method)
		fn, ok := methods[req.Method]
		if !ok {
			return nil, errMethodNotFound
		}
		var params json.RawMessage
		if req.Params != nil {
			params = *req.Params
		}
		return fn(ctx, conn, params)
	})
}

func (s *server) fetch(ctx context.Context, _ jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params FetchParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}
	r, err := presenter.NewRange(params.Start, params.Length)
	if err != nil {
		return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: err.Error()}
	}
	page, err := s.src.Fetch(ctx, r)
	if err != nil {
		return nil, err
	}
	rows := page.Rows
	if rows == nil {
		rows = []store.Row{}
	}
	return FetchResult{Start: page.Start, Rows: rows, Count: page.Count, Exact: page.Exact}, nil
}

func (s *server) count(context.Context, jsonrpc2.JSONRPC2, json.RawMessage) (any, error) {
	n, err := s.src.Count()
	if err != nil {
		return nil, err
	}
	return CountResult{n}, nil
}

// Serve serves src on a connection until the peer disconnects or ctx is
// done.
func Serve(ctx context.Context, rwc io.ReadWriteCloser, src Source) {
	conn := jsonrpc2.NewConn(ctx,
		jsonrpc2.NewBufferedStream(rwc, jsonrpc2.VSCodeObjectCodec{}),
		handler(&server{src}))
	select {
	case <-conn.DisconnectNotify():
	case <-ctx.Done():
		conn.Close()
	}
}

// ServeListener serves src on every connection accepted from l. It returns
// when l fails to accept, typically because it has been closed.
func ServeListener(ctx context.Context, l net.Listener, src Source) error {
	for {
		c, err := l.Accept()
		if err != nil {
			return err
		}
		logger.Println("accepted connection from", c.RemoteAddr())
		go Serve(ctx, c, src)
	}
}
