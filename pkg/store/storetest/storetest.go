// Package storetest provides a row store for tests.
package storetest

import (
	"path/filepath"
	"testing"

	"src.cellview.dev/pkg/store"
)

// TempStore returns a Store in a temporary directory holding the given rows.
// The Store is closed when the test finishes.
func TempStore(t testing.TB, rows ...string) *store.Store {
	t.Helper()
	st, err := store.NewStore(filepath.Join(t.TempDir(), "rows.db"))
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	t.Cleanup(func() {
		if err := st.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})
	if len(rows) > 0 {
		if err := st.AddRows(rows); err != nil {
			t.Fatalf("add rows: %v", err)
		}
	}
	return st
}
