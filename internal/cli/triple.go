package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/wires/internal/hexastore"
)

// TripleOptions holds flags shared by the triple subcommands.
type TripleOptions struct {
	*RootOptions
	StoreOptions
}

// QueryResult is the JSON form of a triple query.
type QueryResult struct {
	Pattern []string           `json:"pattern"`
	Facts   []hexastore.Triple `json:"facts"`
}

// NewTripleCommand creates the triple command and its subcommands.
func NewTripleCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "triple",
		Short: "Store and query subject-predicate-object facts",
		Long: `Store and query facts in the six-way indexed triple store.

Every fact is written under all six orderings of subject, predicate and
object, so any query pattern is answered by one prefix scan. In patterns,
"*" matches anything.

Examples:
  wires triple connect alice knows bob --db facts.db
  wires triple query alice '*' '*' --db facts.db
  wires triple subjects knows --db facts.db
  wires triple disconnect alice knows bob --db facts.db`,
	}

	cmd.AddCommand(newTripleWriteCommand(rootOpts, "connect", "Add a fact"))
	cmd.AddCommand(newTripleWriteCommand(rootOpts, "disconnect", "Remove a fact"))
	cmd.AddCommand(newTripleQueryCommand(rootOpts))
	cmd.AddCommand(newTripleSubjectsCommand(rootOpts))

	return cmd
}

func newTripleWriteCommand(rootOpts *RootOptions, name, short string) *cobra.Command {
	opts := &TripleOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           name + " <subject> <predicate> <object>",
		Short:         short,
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			fact := hexastore.Triple{Subject: args[0], Predicate: args[1], Object: args[2]}
			return runTripleWrite(opts, name, fact, cmd)
		},
	}
	opts.addFlags(cmd)
	return cmd
}

func runTripleWrite(opts *TripleOptions, name string, fact hexastore.Triple, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	ctx := cmd.Context()

	triples, err := opts.openTriples(ctx, opts.logger(cmd))
	if err != nil {
		return failWith(formatter, ExitCommandError, ErrCodeStoreFailed, err)
	}
	defer triples.Close()

	if name == "connect" {
		err = triples.Connect(ctx, fact)
	} else {
		err = triples.Disconnect(ctx, fact)
	}
	if err != nil {
		return failWith(formatter, ExitCommandError, ErrCodeStoreFailed, err)
	}

	if formatter.Format == "json" {
		return formatter.Success(fact)
	}
	fmt.Fprintf(formatter.Writer, "✓ %sed %s\n", name, fact)
	return nil
}

func newTripleQueryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TripleOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "query <subject> <predicate> <object>",
		Short:         "List the facts matching a pattern",
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTripleQuery(opts, args, cmd)
		},
	}
	opts.addFlags(cmd)
	return cmd
}

func runTripleQuery(opts *TripleOptions, pattern []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	ctx := cmd.Context()

	triples, err := opts.openTriples(ctx, opts.logger(cmd))
	if err != nil {
		return failWith(formatter, ExitCommandError, ErrCodeStoreFailed, err)
	}
	defer triples.Close()

	facts, err := triples.Query(ctx,
		hexastore.ParseTerm(pattern[0]), hexastore.ParseTerm(pattern[1]), hexastore.ParseTerm(pattern[2]))
	if err != nil {
		return failWith(formatter, ExitCommandError, ErrCodeStoreFailed, err)
	}

	if formatter.Format == "json" {
		if facts == nil {
			facts = []hexastore.Triple{}
		}
		return formatter.Success(QueryResult{Pattern: pattern, Facts: facts})
	}
	for _, f := range facts {
		fmt.Fprintln(formatter.Writer, f)
	}
	return nil
}

func newTripleSubjectsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TripleOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "subjects <predicate>",
		Short:         "Print every fact with a predicate",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := opts.formatter(cmd)
			ctx := cmd.Context()

			triples, err := opts.openTriples(ctx, opts.logger(cmd))
			if err != nil {
				return failWith(formatter, ExitCommandError, ErrCodeStoreFailed, err)
			}
			defer triples.Close()

			if formatter.Format == "json" {
				facts, err := triples.Query(ctx, hexastore.Any, hexastore.Bound(args[0]), hexastore.Any)
				if err != nil {
					return failWith(formatter, ExitCommandError, ErrCodeStoreFailed, err)
				}
				if facts == nil {
					facts = []hexastore.Triple{}
				}
				return formatter.Success(QueryResult{Pattern: []string{hexastore.Wildcard, args[0], hexastore.Wildcard}, Facts: facts})
			}
			if err := triples.SubjectsOf(ctx, formatter.Writer, args[0]); err != nil {
				return failWith(formatter, ExitCommandError, ErrCodeStoreFailed, err)
			}
			return nil
		},
	}
	opts.addFlags(cmd)
	return cmd
}
