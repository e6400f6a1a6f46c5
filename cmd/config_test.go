package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runConfigShow(t *testing.T, g Globals) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, RunConfigShow(&buf, g))
	return buf.String()
}

func TestConfigShow_Defaults(t *testing.T) {
	dir := inTempDir(t)
	out := runConfigShow(t, Globals{})

	assert.Contains(t, out, "# defaults")
	assert.Contains(t, out, "features/testcase")
	assert.Contains(t, out, "features/step_definitions")
	assert.Contains(t, out, "300ms")
	assert.Contains(t, out, dir)
}

func TestConfigShow_FromFile(t *testing.T) {
	dir := inTempDir(t)
	writeProject(t, dir, map[string]string{".cukenav.toml": "[log]\nlevel = \"debug\"\n"})

	out := runConfigShow(t, Globals{})
	assert.Contains(t, out, "# "+filepath.Join(dir, ".cukenav.toml"))
	assert.Contains(t, out, "debug")
}

func TestConfigShow_MissingExplicitFile(t *testing.T) {
	inTempDir(t)
	var buf bytes.Buffer
	err := RunConfigShow(&buf, Globals{ConfigFile: "nope.toml"})
	assert.Error(t, err)
}
