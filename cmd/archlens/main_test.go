package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandRejectsMissingArgument(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{})
	cmd.SetOut(nil)
	err := cmd.Execute()
	assert.Error(t, err)
}

func TestRootCommandDefaultFlags(t *testing.T) {
	cmd := newRootCmd()
	out, err := cmd.Flags().GetString("out")
	require.NoError(t, err)
	assert.Equal(t, "archlens-output", out)

	workers, err := cmd.Flags().GetInt("workers")
	require.NoError(t, err)
	assert.Equal(t, 0, workers)

	noDiagrams, err := cmd.Flags().GetBool("no-diagrams")
	require.NoError(t, err)
	assert.False(t, noDiagrams)
}

func TestRootCommandRunsPipelineAndWritesOutput(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "Widget.vb"), []byte(`
Namespace Acme.Widgets
Public Class Widget
    Public Sub Spin()
    End Sub
End Class
End Namespace
`), 0o644))

	out := t.TempDir()
	cmd := newRootCmd()
	cmd.SetArgs([]string{src, "--out", out, "--no-force-graph"})
	require.NoError(t, cmd.Execute())

	assert.FileExists(t, filepath.Join(out, "index.html"))
	assert.FileExists(t, filepath.Join(out, "reports", "summary.html"))

	entries, err := os.ReadDir(filepath.Join(out, "d3"))
	require.NoError(t, err)
	assert.Empty(t, entries, "force graph was disabled, d3 directory should stay empty")
}

func TestArtifactCountHandlesNilResult(t *testing.T) {
	assert.Equal(t, 0, artifactCount(nil))
}

func TestRootCommandHonorsArchlensIgnoreFile(t *testing.T) {
	src := t.TempDir()
	widget := `
Namespace Acme.Widgets
Public Class Widget
    Public Sub Spin()
    End Sub
End Class
End Namespace
`
	require.NoError(t, os.WriteFile(filepath.Join(src, "Widget.vb"), []byte(widget), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "Generated.vb"), []byte(widget), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(src, ".archlensignore"), []byte("Generated.vb\n"), 0o644))

	out := t.TempDir()
	cmd := newRootCmd()
	cmd.SetArgs([]string{src, "--out", out})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(filepath.Join(out, "data", "dependencies.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Widget.vb")
	assert.NotContains(t, string(data), "Generated.vb")
}
