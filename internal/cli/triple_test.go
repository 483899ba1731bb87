package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/wires/internal/hexastore"
)

// storeArgs returns the --db/--backend flags for a fresh store of backend.
func storeArgs(t *testing.T, backend string) []string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "facts")
	if backend == BackendSQLite {
		path += ".db"
	}
	return []string{"--db", path, "--backend", backend}
}

func forEachBackend(t *testing.T, fn func(t *testing.T, db []string)) {
	for _, backend := range []string{BackendSQLite, BackendBadger} {
		t.Run(backend, func(t *testing.T) {
			fn(t, storeArgs(t, backend))
		})
	}
}

func TestTripleConnectAndQuery(t *testing.T) {
	forEachBackend(t, func(t *testing.T, db []string) {
		for _, fact := range [][]string{
			{"alice", "knows", "bob"},
			{"alice", "knows", "carol"},
			{"bob", "likes", "carol"},
		} {
			out, _, err := execute(t, append(append([]string{"triple", "connect"}, fact...), db...)...)
			require.NoError(t, err)
			assert.Contains(t, out, "✓ connected "+fact[0])
		}

		out, _, err := execute(t, append([]string{"triple", "query", "alice", "*", "*"}, db...)...)
		require.NoError(t, err)
		assert.Equal(t, "alice knows bob\nalice knows carol\n", out)

		out, _, err = execute(t, append([]string{"triple", "query", "*", "*", "carol"}, db...)...)
		require.NoError(t, err)
		assert.Contains(t, out, "alice knows carol\n")
		assert.Contains(t, out, "bob likes carol\n")
	})
}

func TestTripleDisconnect(t *testing.T) {
	forEachBackend(t, func(t *testing.T, db []string) {
		_, _, err := execute(t, append([]string{"triple", "connect", "a", "p", "b"}, db...)...)
		require.NoError(t, err)

		out, _, err := execute(t, append([]string{"triple", "disconnect", "a", "p", "b"}, db...)...)
		require.NoError(t, err)
		assert.Equal(t, "✓ disconnected a p b\n", out)

		out, _, err = execute(t, append([]string{"triple", "query", "*", "*", "*"}, db...)...)
		require.NoError(t, err)
		assert.Empty(t, out)
	})
}

func TestTripleQueryJSON(t *testing.T) {
	db := storeArgs(t, BackendSQLite)
	_, _, err := execute(t, append([]string{"triple", "connect", "s", "p", "o"}, db...)...)
	require.NoError(t, err)

	out, _, err := execute(t, append([]string{"--format", "json", "triple", "query", "*", "p", "*"}, db...)...)
	require.NoError(t, err)

	var resp struct {
		Status string      `json:"status"`
		Data   QueryResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, []string{"*", "p", "*"}, resp.Data.Pattern)
	assert.Equal(t, []hexastore.Triple{{Subject: "s", Predicate: "p", Object: "o"}}, resp.Data.Facts)

	out, _, err = execute(t, append([]string{"--format", "json", "triple", "query", "nobody", "*", "*"}, db...)...)
	require.NoError(t, err)
	assert.Contains(t, out, `"facts": []`)
}

func TestTripleSubjects(t *testing.T) {
	forEachBackend(t, func(t *testing.T, db []string) {
		for _, fact := range [][]string{{"x", "feeds", "y"}, {"w", "feeds", "y"}, {"x", "names", "z"}} {
			_, _, err := execute(t, append(append([]string{"triple", "connect"}, fact...), db...)...)
			require.NoError(t, err)
		}

		out, _, err := execute(t, append([]string{"triple", "subjects", "feeds"}, db...)...)
		require.NoError(t, err)
		assert.Contains(t, out, "w feeds y")
		assert.Contains(t, out, "x feeds y")
		assert.NotContains(t, out, "names")

		out, _, err = execute(t, append([]string{"--format", "json", "triple", "subjects", "feeds"}, db...)...)
		require.NoError(t, err)
		var resp struct {
			Data QueryResult `json:"data"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &resp))
		assert.Len(t, resp.Data.Facts, 2)
	})
}

func TestTripleRequiresDB(t *testing.T) {
	_, _, err := execute(t, "triple", "query", "*", "*", "*")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `required flag(s) "db" not set`)
}

func TestTripleUnknownBackend(t *testing.T) {
	_, _, err := execute(t, "triple", "query", "*", "*", "*", "--db", filepath.Join(t.TempDir(), "x"), "--backend", "bolt")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), ErrCodeStoreFailed)
	assert.Contains(t, err.Error(), "unknown backend")
}

func TestExport(t *testing.T) {
	forEachBackend(t, func(t *testing.T, db []string) {
		out, _, err := execute(t, append([]string{"export", "testdata/levels.cue"}, db...)...)
		require.NoError(t, err)
		assert.Contains(t, out, "✓ Exported 2 fact(s) to ")

		_, _, err = execute(t, append([]string{"export", "testdata/levels.cue"}, db...)...)
		require.NoError(t, err, "exporting twice is harmless")

		out, _, err = execute(t, append([]string{"triple", "query", "*", "feeds", "*"}, db...)...)
		require.NoError(t, err)
		assert.Equal(t, "source feeds amp\nsource.level feeds amp.input\n", out)
	})
}

func TestExportJSONWithPredicate(t *testing.T) {
	db := storeArgs(t, BackendBadger)
	out, _, err := execute(t, append([]string{"--format", "json", "export", "testdata/levels.cue", "--predicate", "wired"}, db...)...)
	require.NoError(t, err)

	var resp struct {
		Status string       `json:"status"`
		Data   ExportResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "wired", resp.Data.Predicate)
	assert.ElementsMatch(t, []hexastore.Triple{
		{Subject: "source", Predicate: "wired", Object: "amp"},
		{Subject: "source.level", Predicate: "wired", Object: "amp.input"},
	}, resp.Data.Facts)
}

func TestExportInvalidDefinition(t *testing.T) {
	_, _, err := execute(t, append([]string{"export", "testdata/bad_ref.cue"}, storeArgs(t, BackendSQLite)...)...)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "E006")
}
