package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/wires/internal/badgerkv"
	"github.com/roach88/wires/internal/hexastore"
	"github.com/roach88/wires/internal/kv"
	"github.com/roach88/wires/internal/store"
)

// MemoryTriples returns an empty triple store on an in-memory Badger
// backend, closed when the test ends.
func MemoryTriples(t testing.TB) *hexastore.Store {
	t.Helper()
	db, err := badgerkv.Open(badgerkv.InMemoryConfig())
	require.NoError(t, err)
	return wrap(t, db)
}

// SQLiteTriples returns an empty triple store in a SQLite file under the
// test's temp directory, closed when the test ends.
func SQLiteTriples(t testing.TB) *hexastore.Store {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "triples.db"))
	require.NoError(t, err)
	return wrap(t, db)
}

func wrap(t testing.TB, backend kv.Backend) *hexastore.Store {
	t.Helper()
	s, err := hexastore.New(context.Background(), backend)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}
