package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/wires/internal/graph"
	"github.com/roach88/wires/internal/report"
	"github.com/roach88/wires/internal/value"
)

// ReportOptions holds flags for the report command.
type ReportOptions struct {
	*RootOptions
	From string // print only what this ref feeds
	To   string // print only what feeds this ref
	Node string // print only this node's attributes
}

// GraphView is the JSON form of a built graph.
type GraphView struct {
	Nodes       []string         `json:"nodes"`
	Roots       []string         `json:"roots"`
	Terminals   []string         `json:"terminals"`
	Connections []ConnectionView `json:"connections"`
	Attributes  []AttributeView  `json:"attributes"`
}

// ConnectionView is one connection in a GraphView.
type ConnectionView struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// AttributeView is one attribute and its pulled value, or the code of the
// error the pull failed with.
type AttributeView struct {
	Ref   string      `json:"ref"`
	Value *value.JSON `json:"value,omitempty"`
	Error string      `json:"error,omitempty"`
}

// NewReportCommand creates the report command.
func NewReportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "report <definition>",
		Short: "Print the structure and values of a graph",
		Long: `Build a graph from a CUE definition and print its nodes, its connections
walked forward from every root and backward from every terminal, and the
values of every attribute.

Examples:
  wires report ./rig
  wires report rig.cue --from xform1
  wires report rig.cue --to xformFinal.xformOut
  wires report rig.cue --node xformFinal
  wires report rig.cue --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.From, "from", "", "print only what this node or attribute feeds")
	cmd.Flags().StringVar(&opts.To, "to", "", "print only what feeds this node or attribute")
	cmd.Flags().StringVar(&opts.Node, "node", "", "print only the attributes of this node")
	cmd.MarkFlagsMutuallyExclusive("from", "to", "node")

	return cmd
}

func runReport(opts *ReportOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	g, _, err := buildGraph(path, opts.logger(cmd))
	if err != nil {
		return failWith(formatter, ExitCommandError, ErrCodeBuildFailed, err)
	}

	if formatter.Format == "json" {
		return formatter.Success(graphView(g))
	}

	w := formatter.Writer
	switch {
	case opts.From != "":
		err = report.InToOut(w, g, graph.ParseRef(opts.From), 0)
	case opts.To != "":
		err = report.OutToIn(w, g, graph.ParseRef(opts.To), 0)
	case opts.Node != "":
		err = report.Attributes(w, g, opts.Node, 0)
	default:
		err = report.Report(w, g)
	}
	return err
}

func graphView(g *graph.Graph) GraphView {
	view := GraphView{
		Nodes:       g.Nodes(),
		Roots:       refStrings(g.Roots()),
		Terminals:   refStrings(g.Terminals()),
		Connections: []ConnectionView{},
		Attributes:  []AttributeView{},
	}
	for _, c := range g.Connections() {
		view.Connections = append(view.Connections, ConnectionView{From: c.From.String(), To: c.To.String()})
	}
	for _, n := range g.Nodes() {
		for _, a := range g.Attributes(n) {
			view.Attributes = append(view.Attributes, attributeView(g, graph.AttrRef(n, a)))
		}
	}
	return view
}

func attributeView(g *graph.Graph, ref graph.Ref) AttributeView {
	av := AttributeView{Ref: ref.String()}
	v, err := g.ValueOf(ref)
	if err != nil {
		code, _ := graph.CodeOf(err)
		av.Error = string(code)
		return av
	}
	av.Value = &value.JSON{Value: v}
	return av
}

func refStrings(refs []graph.Ref) []string {
	out := make([]string, len(refs))
	for i, r := range refs {
		out[i] = r.String()
	}
	return out
}
