package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/roach88/wires/internal/graph"
	"github.com/roach88/wires/internal/value"
)

// ValueOptions holds flags for the value command.
type ValueOptions struct {
	*RootOptions
	Set []string // node.attr=literal writes applied before the pull
}

// ValueResult is the JSON form of a pulled value.
type ValueResult struct {
	Ref   string     `json:"ref"`
	Type  value.Type `json:"type"`
	Value value.JSON `json:"value"`
}

// NewValueCommand creates the value command.
func NewValueCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValueOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "value <definition> <node.attr>",
		Short: "Pull one attribute value",
		Long: `Build a graph from a CUE definition and pull the value of one attribute,
following connections and running evaluators as needed.

Literals given to --set are read as YAML scalars: 3 is an int, 2.5 a float,
true a bool, anything else a string, and a list of 16 numbers a matrix.

Exit codes:
  0 - Value pulled
  1 - The pull or a --set write failed
  2 - Command error (definition not found, invalid definition)

Examples:
  wires value rig.cue xformFinal.xformOut
  wires value rig.cue amp.out --set source.level=5`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValue(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringArrayVar(&opts.Set, "set", nil, "write node.attr=literal before pulling (repeatable)")

	return cmd
}

func runValue(opts *ValueOptions, path, refArg string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	g, _, err := buildGraph(path, opts.logger(cmd))
	if err != nil {
		return failWith(formatter, ExitCommandError, ErrCodeBuildFailed, err)
	}

	for _, assignment := range opts.Set {
		ref, v, err := parseAssignment(assignment)
		if err != nil {
			return failWith(formatter, ExitCommandError, ErrCodeInvalidArg, err)
		}
		if err := g.SetValue(ref.Node(), ref.Attr(), v); err != nil {
			return failWith(formatter, ExitFailure, ErrCodePullFailed, err)
		}
		formatter.VerboseLog("set %s = %s", ref, value.Format(v))
	}

	ref := graph.ParseRef(refArg)
	v, err := g.ValueOf(ref)
	if err != nil {
		return failWith(formatter, ExitFailure, ErrCodePullFailed, err)
	}

	if formatter.Format == "json" {
		return formatter.Success(ValueResult{Ref: ref.String(), Type: v.Type(), Value: value.JSON{Value: v}})
	}
	fmt.Fprintln(formatter.Writer, value.Format(v))
	return nil
}

// parseAssignment splits node.attr=literal and decodes the literal.
func parseAssignment(s string) (graph.Ref, value.Value, error) {
	refPart, literal, ok := strings.Cut(s, "=")
	if !ok {
		return graph.Ref{}, nil, fmt.Errorf("invalid --set %q: want node.attr=value", s)
	}
	ref := graph.ParseRef(refPart)
	if !ref.IsAttribute() {
		return graph.Ref{}, nil, fmt.Errorf("invalid --set %q: %q is not an attribute", s, refPart)
	}

	var raw any
	if err := yaml.Unmarshal([]byte(literal), &raw); err != nil {
		return graph.Ref{}, nil, fmt.Errorf("invalid --set %q: %w", s, err)
	}
	if raw == nil {
		raw = literal
	}
	v, err := value.FromGo(raw)
	if err != nil {
		return graph.Ref{}, nil, fmt.Errorf("invalid --set %q: %w", s, err)
	}
	return ref, v, nil
}
