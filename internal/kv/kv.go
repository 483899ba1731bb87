// Package kv defines the ordered key/value boundary that persistent indexes
// are written against.
//
// Keys and values are opaque byte strings. Keys are compared bytewise. A
// backend guarantees that a Write is atomic and that Scan visits keys in
// ascending order.
package kv

import (
	"bytes"
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key is absent.
var ErrNotFound = errors.New("kv: key not found")

// Op is the kind of a Mutation.
type Op uint8

const (
	OpPut Op = iota + 1
	OpDelete
)

func (o Op) String() string {
	switch o {
	case OpPut:
		return "put"
	case OpDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Mutation is one change inside an atomic batch.
type Mutation struct {
	Op    Op
	Key   []byte
	Value []byte
}

// Put returns a mutation that sets key to value.
func Put(key, value []byte) Mutation {
	return Mutation{Op: OpPut, Key: key, Value: value}
}

// Delete returns a mutation that removes key. Deleting an absent key is not
// an error.
func Delete(key []byte) Mutation {
	return Mutation{Op: OpDelete, Key: key}
}

// Backend is an ordered key/value store.
type Backend interface {
	// Write applies every mutation or none of them.
	Write(ctx context.Context, batch []Mutation) error

	// Get returns the value stored at key, or ErrNotFound.
	Get(ctx context.Context, key []byte) ([]byte, error)

	// Scan calls fn for every key with the given prefix, in ascending key
	// order. Returning an error from fn stops the scan and Scan returns
	// that error. fn must not retain k or v after it returns.
	Scan(ctx context.Context, prefix []byte, fn func(k, v []byte) error) error

	Close() error
}

// PrefixEnd returns the smallest key greater than every key that starts
// with prefix. It returns nil when no such key exists, which callers treat
// as an unbounded upper end.
func PrefixEnd(prefix []byte) []byte {
	end := bytes.Clone(prefix)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}

// Validate rejects batches a backend cannot apply.
func Validate(batch []Mutation) error {
	for _, m := range batch {
		if len(m.Key) == 0 {
			return errors.New("kv: empty key")
		}
		if m.Op != OpPut && m.Op != OpDelete {
			return errors.New("kv: unknown mutation op")
		}
	}
	return nil
}
