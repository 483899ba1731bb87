package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportFullGraph(t *testing.T) {
	out, _, err := execute(t, "report", "testdata/levels.cue")
	require.NoError(t, err)

	want := `>> graph nodes
   amp
   source
----- in -> out ---------------
source
   amp
source.level
   amp.input
----- out -> in ---------------
amp
   source
amp.input
   source.level
----- attributes on nodes -----
amp
   gain:3
   input:2
   out:6
source
   label:in
   level:2
===============================
`
	assert.Equal(t, want, out)
}

func TestReportSections(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"from node", []string{"--from", "source"}, "source\n   amp\n"},
		{"from attribute", []string{"--from", "source.level"}, "source.level\n   amp.input\n"},
		{"to attribute", []string{"--to", "amp.input"}, "amp.input\n   source.level\n"},
		{"node attributes", []string{"--node", "source"}, "source\n   label:in\n   level:2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"report", "testdata/levels.cue"}, tt.args...)
			out, _, err := execute(t, args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestReportSectionFlagsAreExclusive(t *testing.T) {
	_, _, err := execute(t, "report", "testdata/levels.cue", "--from", "source", "--node", "amp")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "none of the others can be")
}

func TestReportJSON(t *testing.T) {
	out, _, err := execute(t, "--format", "json", "report", "testdata/levels.cue")
	require.NoError(t, err)

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			Nodes       []string         `json:"nodes"`
			Roots       []string         `json:"roots"`
			Terminals   []string         `json:"terminals"`
			Connections []ConnectionView `json:"connections"`
			Attributes  []struct {
				Ref   string `json:"ref"`
				Value struct {
					Type  string `json:"type"`
					Value any    `json:"value"`
				} `json:"value"`
			} `json:"attributes"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))

	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, []string{"amp", "source"}, resp.Data.Nodes)
	assert.Equal(t, []string{"source", "source.level"}, resp.Data.Roots)
	assert.Equal(t, []string{"amp", "amp.input"}, resp.Data.Terminals)
	assert.ElementsMatch(t, []ConnectionView{
		{From: "source", To: "amp"},
		{From: "source.level", To: "amp.input"},
	}, resp.Data.Connections)

	require.Len(t, resp.Data.Attributes, 5)
	out6 := resp.Data.Attributes[2]
	assert.Equal(t, "amp.out", out6.Ref)
	assert.Equal(t, "int", out6.Value.Type)
	assert.EqualValues(t, 6, out6.Value.Value)
}

func TestReportInvalidDefinition(t *testing.T) {
	_, _, err := execute(t, "report", "testdata/bad_ref.cue")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "E006")
}
