// Package kvtest holds behavior tests shared by every kv.Backend.
package kvtest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/wires/internal/kv"
)

// Opener returns a fresh, empty backend. The suite closes it.
type Opener func(t *testing.T) kv.Backend

type entry struct {
	key, value string
}

func collect(t *testing.T, b kv.Backend, prefix []byte) []entry {
	t.Helper()
	var out []entry
	err := b.Scan(context.Background(), prefix, func(k, v []byte) error {
		out = append(out, entry{string(k), string(v)})
		return nil
	})
	require.NoError(t, err)
	return out
}

// Run exercises the kv.Backend contract against backends produced by open.
func Run(t *testing.T, open Opener) {
	ctx := context.Background()

	t.Run("get missing", func(t *testing.T) {
		b := open(t)
		defer b.Close()

		_, err := b.Get(ctx, []byte("nope"))
		assert.ErrorIs(t, err, kv.ErrNotFound)
	})

	t.Run("put then get", func(t *testing.T) {
		b := open(t)
		defer b.Close()

		require.NoError(t, b.Write(ctx, []kv.Mutation{kv.Put([]byte("a"), []byte("1"))}))
		got, err := b.Get(ctx, []byte("a"))
		require.NoError(t, err)
		assert.Equal(t, "1", string(got))
	})

	t.Run("put overwrites", func(t *testing.T) {
		b := open(t)
		defer b.Close()

		require.NoError(t, b.Write(ctx, []kv.Mutation{kv.Put([]byte("a"), []byte("1"))}))
		require.NoError(t, b.Write(ctx, []kv.Mutation{kv.Put([]byte("a"), []byte("2"))}))
		got, err := b.Get(ctx, []byte("a"))
		require.NoError(t, err)
		assert.Equal(t, "2", string(got))
	})

	t.Run("empty value", func(t *testing.T) {
		b := open(t)
		defer b.Close()

		require.NoError(t, b.Write(ctx, []kv.Mutation{kv.Put([]byte("a"), nil)}))
		got, err := b.Get(ctx, []byte("a"))
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("delete", func(t *testing.T) {
		b := open(t)
		defer b.Close()

		require.NoError(t, b.Write(ctx, []kv.Mutation{kv.Put([]byte("a"), []byte("1"))}))
		require.NoError(t, b.Write(ctx, []kv.Mutation{kv.Delete([]byte("a"))}))
		_, err := b.Get(ctx, []byte("a"))
		assert.ErrorIs(t, err, kv.ErrNotFound)

		// Deleting again is not an error.
		require.NoError(t, b.Write(ctx, []kv.Mutation{kv.Delete([]byte("a"))}))
	})

	t.Run("batch applies in order", func(t *testing.T) {
		b := open(t)
		defer b.Close()

		require.NoError(t, b.Write(ctx, []kv.Mutation{
			kv.Put([]byte("a"), []byte("1")),
			kv.Put([]byte("b"), []byte("2")),
			kv.Delete([]byte("a")),
		}))
		assert.Equal(t, []entry{{"b", "2"}}, collect(t, b, nil))
	})

	t.Run("invalid batch writes nothing", func(t *testing.T) {
		b := open(t)
		defer b.Close()

		err := b.Write(ctx, []kv.Mutation{
			kv.Put([]byte("a"), []byte("1")),
			kv.Put(nil, []byte("2")),
		})
		require.Error(t, err)
		assert.Empty(t, collect(t, b, nil))
	})

	t.Run("scan is ordered and bounded by prefix", func(t *testing.T) {
		b := open(t)
		defer b.Close()

		require.NoError(t, b.Write(ctx, []kv.Mutation{
			kv.Put([]byte("ab\xff"), []byte("4")),
			kv.Put([]byte("b"), []byte("5")),
			kv.Put([]byte("ab"), []byte("2")),
			kv.Put([]byte("a"), []byte("1")),
			kv.Put([]byte("ab\x00"), []byte("3")),
			kv.Put([]byte("aa"), []byte("0")),
		}))

		assert.Equal(t, []entry{
			{"ab", "2"},
			{"ab\x00", "3"},
			{"ab\xff", "4"},
		}, collect(t, b, []byte("ab")))

		assert.Equal(t, []entry{
			{"a", "1"},
			{"aa", "0"},
			{"ab", "2"},
			{"ab\x00", "3"},
			{"ab\xff", "4"},
			{"b", "5"},
		}, collect(t, b, nil))

		assert.Empty(t, collect(t, b, []byte("c")))
	})

	t.Run("scan with all-ff prefix is unbounded above", func(t *testing.T) {
		b := open(t)
		defer b.Close()

		require.NoError(t, b.Write(ctx, []kv.Mutation{
			kv.Put([]byte{0xff}, []byte("1")),
			kv.Put([]byte{0xff, 0x01}, []byte("2")),
			kv.Put([]byte{0xfe}, []byte("0")),
		}))
		assert.Equal(t, []entry{
			{"\xff", "1"},
			{"\xff\x01", "2"},
		}, collect(t, b, []byte{0xff}))
	})

	t.Run("scan stops on callback error", func(t *testing.T) {
		b := open(t)
		defer b.Close()

		require.NoError(t, b.Write(ctx, []kv.Mutation{
			kv.Put([]byte("a"), []byte("1")),
			kv.Put([]byte("b"), []byte("2")),
		}))

		stop := errors.New("stop")
		var seen int
		err := b.Scan(ctx, nil, func(k, v []byte) error {
			seen++
			return stop
		})
		assert.ErrorIs(t, err, stop)
		assert.Equal(t, 1, seen)
	})
}
