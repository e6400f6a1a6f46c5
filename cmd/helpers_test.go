package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(orig) })
	// macOS hands out /var paths that resolve to /private/var
	resolved, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	return resolved
}

// noEditor keeps tests from launching whatever editor the machine has set.
func noEditor(t *testing.T) {
	t.Helper()
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "")
}

func writeProject(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

const loginFeature = `Feature: Login
  Scenario: valid credentials
    Given I am on the login page
  Scenario: invalid credentials
    Given I am on the login page
`

const loginSteps = `Given('I am on the login page', () => {})
When('I submit the form', () => {})
`

func sampleProject(t *testing.T) string {
	t.Helper()
	dir := inTempDir(t)
	writeProject(t, dir, map[string]string{
		"features/testcase/login.feature":          loginFeature,
		"features/testcase/admin/users.feature":    "Feature: Users\n  Scenario: list users\n",
		"features/step_definitions/login_steps.js": loginSteps,
	})
	return dir
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
