package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "wires", cmd.Use)
	assert.Contains(t, cmd.Long, "triple store")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := [][]string{
		{"check"},
		{"report"},
		{"value"},
		{"export"},
		{"test"},
		{"triple", "connect"},
		{"triple", "disconnect"},
		{"triple", "query"},
		{"triple", "subjects"},
	}

	for _, path := range commands {
		name := path[len(path)-1]
		t.Run(name, func(t *testing.T) {
			subCmd, _, err := cmd.Find(path)
			require.NoError(t, err)
			require.NotNil(t, subCmd)
			assert.Equal(t, name, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)
}

func TestStoreFlags(t *testing.T) {
	cmd := NewRootCommand()

	for _, path := range [][]string{{"export"}, {"triple", "connect"}, {"triple", "query"}, {"triple", "subjects"}} {
		sub, _, err := cmd.Find(path)
		require.NoError(t, err)

		db := sub.Flags().Lookup("db")
		require.NotNil(t, db, "%v needs --db", path)
		backend := sub.Flags().Lookup("backend")
		require.NotNil(t, backend)
		assert.Equal(t, "sqlite", backend.DefValue)
	}

	export, _, err := cmd.Find([]string{"export"})
	require.NoError(t, err)
	assert.Equal(t, "feeds", export.Flags().Lookup("predicate").DefValue)
}

func TestTestCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	testCmd, _, err := cmd.Find([]string{"test"})
	require.NoError(t, err)

	assert.NotNil(t, testCmd.Flags().Lookup("update"))
	assert.NotNil(t, testCmd.Flags().Lookup("filter"))
}

func TestFormatValidation(t *testing.T) {
	assert.True(t, isValidFormat("text"))
	assert.True(t, isValidFormat("json"))

	assert.False(t, isValidFormat("xml"))
	assert.False(t, isValidFormat(""))
	assert.False(t, isValidFormat("TEXT"))
}

func TestFormatValidationIntegration(t *testing.T) {
	_, _, err := execute(t, "--format", "invalid", "check", ".")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestVerboseLoggingGoesToStderr(t *testing.T) {
	out, errOut, err := execute(t, "--verbose", "check", "testdata/levels.cue")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Graph definition valid")
	assert.NotContains(t, out, "Loaded")
	assert.Contains(t, errOut, "Loaded 2 node(s) and 2 connection(s)")
}
