package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/wires/internal/graphdef"
)

// CheckResult holds the outcome of checking a graph definition.
type CheckResult struct {
	Valid       bool                       `json:"valid"`
	Nodes       int                        `json:"nodes"`
	Connections int                        `json:"connections"`
	Errors      []graphdef.ValidationError `json:"errors,omitempty"`
	Warnings    []graphdef.Warning         `json:"warnings,omitempty"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <definition>",
		Short: "Validate a graph definition without building it",
		Long: `Validate a CUE graph definition and report static warnings.

Performs schema validation and reference checks, then analyzes the
attribute dependencies for cycles and connections that shadow evaluators.
Warnings do not fail the check.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runCheck(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	def, err := LoadDefinition(path)
	if err != nil {
		return failWith(formatter, ExitCommandError, ErrCodeGeneric, err)
	}
	formatter.VerboseLog("Loaded %d node(s) and %d connection(s) from %s", len(def.Nodes), len(def.Connections), path)

	result := CheckResult{
		Nodes:       len(def.Nodes),
		Connections: len(def.Connections),
		Errors:      graphdef.Validate(def),
	}
	if len(result.Errors) == 0 {
		result.Valid = true
		result.Warnings = graphdef.Analyze(def)
	}

	if formatter.Format == "json" {
		return outputCheckJSON(formatter, result)
	}
	return outputCheckText(formatter, result)
}

func outputCheckJSON(formatter *OutputFormatter, result CheckResult) error {
	if result.Valid {
		return formatter.Success(result)
	}

	response := CLIResponse{
		Status: "error",
		Data:   result,
		Error: &CLIError{
			Code:    result.Errors[0].Code,
			Message: result.Errors[0].Message,
		},
	}
	encoder := json.NewEncoder(formatter.Writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(response); err != nil {
		return err
	}
	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(result.Errors)))
}

func outputCheckText(formatter *OutputFormatter, result CheckResult) error {
	w := formatter.Writer

	if !result.Valid {
		fmt.Fprintln(w, "✗ Validation failed")
		fmt.Fprintln(w)
		for _, e := range result.Errors {
			fmt.Fprintf(w, "  %s: %s: %s\n", e.Code, e.Field, e.Message)
		}
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(result.Errors)))
	}

	fmt.Fprintf(w, "✓ Graph definition valid (%d nodes, %d connections)\n", result.Nodes, result.Connections)
	for _, warn := range result.Warnings {
		fmt.Fprintf(w, "  %s: %s\n", warn.Level, warn.Message)
	}
	return nil
}
