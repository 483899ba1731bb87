package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/wires/internal/hexastore"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	StoreOptions
	Predicate string
}

// ExportResult reports what an export wrote.
type ExportResult struct {
	Predicate string             `json:"predicate"`
	Facts     []hexastore.Triple `json:"facts"`
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export <definition>",
		Short: "Store every connection of a graph as a fact",
		Long: `Build a graph from a CUE definition and connect one fact per graph
connection in the triple store: subject is the source, object the target,
predicate the --predicate flag. Node connections export as "node", attribute
connections as "node.attr". Exporting twice is harmless.

Examples:
  wires export rig.cue --db rig.db
  wires export rig.cue --db ./rig-badger --backend badger --predicate wired`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(opts, args[0], cmd)
		},
	}

	opts.addFlags(cmd)
	cmd.Flags().StringVar(&opts.Predicate, "predicate", "feeds", "predicate for exported facts")

	return cmd
}

func runExport(opts *ExportOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	logger := opts.logger(cmd)
	ctx := cmd.Context()

	g, _, err := buildGraph(path, logger)
	if err != nil {
		return failWith(formatter, ExitCommandError, ErrCodeBuildFailed, err)
	}

	triples, err := opts.openTriples(ctx, logger)
	if err != nil {
		return failWith(formatter, ExitCommandError, ErrCodeStoreFailed, err)
	}
	defer triples.Close()

	result := ExportResult{Predicate: opts.Predicate, Facts: []hexastore.Triple{}}
	for _, c := range g.Connections() {
		fact := hexastore.Triple{Subject: c.From.String(), Predicate: opts.Predicate, Object: c.To.String()}
		if err := triples.Connect(ctx, fact); err != nil {
			return failWith(formatter, ExitCommandError, ErrCodeStoreFailed, err)
		}
		formatter.VerboseLog("connected %s", fact)
		result.Facts = append(result.Facts, fact)
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	fmt.Fprintf(formatter.Writer, "✓ Exported %d fact(s) to %s\n", len(result.Facts), opts.DB)
	return nil
}
