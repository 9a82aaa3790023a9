package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the root command with args and returns captured output.
func run(t *testing.T, args ...string) string {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return buf.String()
}

func TestVersion(t *testing.T) {
	out := run(t, "version")
	assert.Contains(t, out, "Build Tag:")
	assert.Contains(t, out, "Platform:")
}

func TestHelp_ListsComponents(t *testing.T) {
	out := run(t, "--help")
	assert.Contains(t, out, "serve")
	assert.Contains(t, out, "bridge")
	assert.Contains(t, out, "host")
}
