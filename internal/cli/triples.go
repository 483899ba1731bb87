package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/wires/internal/badgerkv"
	"github.com/roach88/wires/internal/hexastore"
	"github.com/roach88/wires/internal/kv"
	"github.com/roach88/wires/internal/store"
)

// Backend names accepted by --backend.
const (
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
)

// StoreOptions selects the triple store a command works on.
type StoreOptions struct {
	DB      string // database path (SQLite file or Badger directory)
	Backend string // "sqlite" | "badger"
}

func (o *StoreOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.DB, "db", "", "triple store path (required)")
	cmd.Flags().StringVar(&o.Backend, "backend", BackendSQLite, "storage backend (sqlite|badger)")
	_ = cmd.MarkFlagRequired("db")
}

// openBackend opens the ordered key/value store named by o.
func (o *StoreOptions) openBackend(logger *slog.Logger) (kv.Backend, error) {
	switch o.Backend {
	case BackendSQLite:
		return store.Open(o.DB, store.WithLogger(logger))
	case BackendBadger:
		cfg := badgerkv.DefaultConfig(o.DB)
		cfg.Logger = logger
		return badgerkv.Open(cfg)
	default:
		return nil, fmt.Errorf("unknown backend %q: must be %s or %s", o.Backend, BackendSQLite, BackendBadger)
	}
}

// openTriples opens the triple store named by o. The caller closes it.
func (o *StoreOptions) openTriples(ctx context.Context, logger *slog.Logger) (*hexastore.Store, error) {
	backend, err := o.openBackend(logger)
	if err != nil {
		return nil, err
	}
	triples, err := hexastore.New(ctx, backend, hexastore.WithLogger(logger))
	if err != nil {
		backend.Close()
		return nil, err
	}
	return triples, nil
}
