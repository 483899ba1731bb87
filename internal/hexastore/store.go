package hexastore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/wires/internal/kv"
)

// ErrFormatVersion is returned by New when the backend was written with a
// different key layout.
var ErrFormatVersion = errors.New("hexastore: unsupported format version")

// Store is a triple index over a kv.Backend. It owns the backend and
// closes it on Close.
//
// A Store adds no locking of its own; it is as safe for concurrent use as
// its backend.
type Store struct {
	backend kv.Backend
	logger  *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger for write and query diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New wraps backend, stamping the format version on an empty backend and
// checking it on one that was written before.
func New(ctx context.Context, backend kv.Backend, opts ...Option) (*Store, error) {
	if backend == nil {
		return nil, errors.New("hexastore: nil backend")
	}
	s := &Store{
		backend: backend,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}

	got, err := backend.Get(ctx, formatKey)
	switch {
	case errors.Is(err, kv.ErrNotFound):
		if err := backend.Write(ctx, []kv.Mutation{kv.Put(formatKey, []byte(formatVersion))}); err != nil {
			return nil, fmt.Errorf("hexastore: write format version: %w", err)
		}
		s.logger.Debug("format version stamped", "version", formatVersion)
	case err != nil:
		return nil, fmt.Errorf("hexastore: read format version: %w", err)
	case string(got) != formatVersion:
		return nil, fmt.Errorf("%w: have %q, want %q", ErrFormatVersion, got, formatVersion)
	}
	return s, nil
}

// Close closes the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

// Connect records t under all six orders in one atomic batch. Connecting
// an existing fact rewrites the same keys.
func (s *Store) Connect(ctx context.Context, t Triple) error {
	t = t.normalize()
	payload, err := encodeRecord(t)
	if err != nil {
		return fmt.Errorf("connect %s: %w", t, err)
	}

	batch := make([]kv.Mutation, 0, len(Orders))
	for _, o := range Orders {
		batch = append(batch, kv.Put(encodeKey(o, t), payload))
	}
	if err := s.backend.Write(ctx, batch); err != nil {
		return fmt.Errorf("connect %s: %w", t, err)
	}
	s.logger.Debug("connected", "subject", t.Subject, "predicate", t.Predicate, "object", t.Object)
	return nil
}

// Disconnect removes all six keys of t in one atomic batch. Disconnecting
// an absent fact is not an error.
func (s *Store) Disconnect(ctx context.Context, t Triple) error {
	t = t.normalize()
	batch := make([]kv.Mutation, 0, len(Orders))
	for _, o := range Orders {
		batch = append(batch, kv.Delete(encodeKey(o, t)))
	}
	if err := s.backend.Write(ctx, batch); err != nil {
		return fmt.Errorf("disconnect %s: %w", t, err)
	}
	s.logger.Debug("disconnected", "subject", t.Subject, "predicate", t.Predicate, "object", t.Object)
	return nil
}

// Query returns every fact matching the pattern, each exactly once, in the
// key order of the index the pattern is answered from.
func (s *Store) Query(ctx context.Context, subj, pred, obj Term) ([]Triple, error) {
	p := planQuery(subj.normalize(), pred.normalize(), obj.normalize())
	s.logger.Debug("query planned",
		"subject", subj.String(), "predicate", pred.String(), "object", obj.String(),
		"order", p.order.String(), "point", p.point)

	if p.point {
		v, err := s.backend.Get(ctx, p.prefix)
		if errors.Is(err, kv.ErrNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("query: %w", err)
		}
		t, err := decodeEntry(p.order, p.prefix, v)
		if err != nil {
			return nil, fmt.Errorf("query: %w", err)
		}
		return []Triple{t}, nil
	}

	var out []Triple
	err := s.backend.Scan(ctx, p.prefix, func(k, v []byte) error {
		t, err := decodeEntry(p.order, k, v)
		if err != nil {
			return err
		}
		out = append(out, t)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	return out, nil
}

// SubjectsOf writes one "subject predicate object" line for every fact
// with the given predicate.
func (s *Store) SubjectsOf(ctx context.Context, w io.Writer, predicate string) error {
	facts, err := s.Query(ctx, Any, Bound(predicate), Any)
	if err != nil {
		return err
	}
	for _, t := range facts {
		if _, err := fmt.Fprintln(w, t.String()); err != nil {
			return err
		}
	}
	return nil
}

// decodeEntry reads a fact from its key and checks the payload agrees.
func decodeEntry(o Order, key, payload []byte) (Triple, error) {
	fromKey, err := decodeKey(o, key)
	if err != nil {
		return Triple{}, err
	}
	fromRecord, err := decodeRecord(payload)
	if err != nil {
		return Triple{}, err
	}
	if fromKey != fromRecord {
		return Triple{}, fmt.Errorf("%w: key holds %q, record holds %q", errMalformedKey, fromKey, fromRecord)
	}
	return fromKey, nil
}
