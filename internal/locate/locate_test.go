package locate

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chriserin/cukenav/internal/fsys"
	"github.com/chriserin/cukenav/internal/node"
)

const loginFeature = `Feature: Login
  Scenario: valid credentials
  Scenario: invalid credentials
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestResolve_Scenario(t *testing.T) {
	path := writeFile(t, "login.feature", loginFeature)
	r := NewResolver(fsys.Disk{})

	loc, err := r.Resolve(node.NewScenario(path, "Feature: Login", "  Scenario: invalid credentials"))
	require.NoError(t, err)
	assert.Equal(t, Location{Path: path, Line: 2, Start: 0, End: len("  Scenario: invalid credentials")}, loc)

	loc, err = r.Resolve(node.NewScenario(path, "Feature: Login", "  Scenario: valid credentials"))
	require.NoError(t, err)
	assert.Equal(t, 1, loc.Line)
}

func TestResolve_Feature(t *testing.T) {
	path := writeFile(t, "login.feature", loginFeature)

	loc, err := NewResolver(fsys.Disk{}).Resolve(node.NewFeature(path, "Feature: Login"))
	require.NoError(t, err)
	assert.Equal(t, 0, loc.Line)
	assert.Equal(t, len("Feature: Login"), loc.End)
}

func TestResolve_StepDef(t *testing.T) {
	path := writeFile(t, "login_steps.js", "Given I am on the login page\nWhen I submit the form\n")
	r := NewResolver(fsys.Disk{})

	loc, err := r.Resolve(node.NewStepDef(path, "Given I am on the login page"))
	require.NoError(t, err)
	assert.Equal(t, 0, loc.Line)

	loc, err = r.Resolve(node.NewStepDef(path, "When I submit the form"))
	require.NoError(t, err)
	assert.Equal(t, 1, loc.Line)
}

func TestResolve_SubstringFirstMatchWins(t *testing.T) {
	path := writeFile(t, "steps.js", "// Given a user is mentioned first\nGiven a user\n")

	loc, err := NewResolver(fsys.Disk{}).Resolve(node.NewStepDef(path, "Given a user"))
	require.NoError(t, err)
	assert.Equal(t, 0, loc.Line)
}

func TestResolve_CRLF(t *testing.T) {
	path := writeFile(t, "login.feature", "Feature: Login\r\n  Scenario: ok\r\n")

	loc, err := NewResolver(fsys.Disk{}).Resolve(node.NewScenario(path, "Feature: Login", "  Scenario: ok"))
	require.NoError(t, err)
	assert.Equal(t, 1, loc.Line)
	assert.Equal(t, len("  Scenario: ok"), loc.End)
}

func TestResolve_NotFound(t *testing.T) {
	path := writeFile(t, "login.feature", loginFeature)

	_, err := NewResolver(fsys.Disk{}).Resolve(node.NewScenario(path, "Feature: Login", "  Scenario: locked out"))
	assert.ErrorIs(t, err, ErrLocationNotFound)
}

func TestResolve_MissingFile(t *testing.T) {
	_, err := NewResolver(fsys.Disk{}).Resolve(node.NewFeature(filepath.Join(t.TempDir(), "gone.feature"), "Feature: X"))
	assert.ErrorIs(t, err, fsys.ErrNotFound)
}

func TestResolve_RegularFile(t *testing.T) {
	path := writeFile(t, "login.feature", loginFeature)

	loc, err := NewResolver(fsys.Disk{}).Resolve(node.NewFile(path))
	require.NoError(t, err)
	assert.Equal(t, Location{Path: path}, loc)
}

func TestResolve_Directory(t *testing.T) {
	_, err := NewResolver(fsys.Disk{}).Resolve(node.NewDirectory(t.TempDir()))
	assert.ErrorIs(t, err, fsys.ErrIsADirectory)
}

type recordingFocuser struct {
	focused []Location
	err     error
}

func (f *recordingFocuser) Focus(loc Location) error {
	if f.err != nil {
		return f.err
	}
	f.focused = append(f.focused, loc)
	return nil
}

func TestOpen_FocusesResolvedLocation(t *testing.T) {
	path := writeFile(t, "login.feature", loginFeature)
	f := &recordingFocuser{}

	loc, err := NewResolver(fsys.Disk{}).Open(node.NewScenario(path, "Feature: Login", "  Scenario: invalid credentials"), f)
	require.NoError(t, err)
	assert.Equal(t, []Location{loc}, f.focused)
}

func TestOpen_NoFocusWhenNotFound(t *testing.T) {
	path := writeFile(t, "login.feature", loginFeature)
	f := &recordingFocuser{}

	_, err := NewResolver(fsys.Disk{}).Open(node.NewFeature(path, "Feature: Logout"), f)
	assert.ErrorIs(t, err, ErrLocationNotFound)
	assert.Empty(t, f.focused)
}

func TestOpen_FocusError(t *testing.T) {
	path := writeFile(t, "login.feature", loginFeature)
	boom := errors.New("editor crashed")

	_, err := NewResolver(fsys.Disk{}).Open(node.NewFeature(path, "Feature: Login"), &recordingFocuser{err: boom})
	assert.ErrorIs(t, err, boom)
}

func TestSuggest(t *testing.T) {
	path := writeFile(t, "login.feature", loginFeature+"  Scenario: something else entirely\n")
	r := NewResolver(fsys.Disk{})

	got, err := r.Suggest(node.NewScenario(path, "Feature: Login", "Scenario: valid credential"), 3)
	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.Equal(t, "Scenario: valid credentials", got[0])
	assert.NotContains(t, got, "Scenario: something else entirely")
}

func TestSuggest_Limit(t *testing.T) {
	path := writeFile(t, "login.feature", loginFeature)

	got, err := NewResolver(fsys.Disk{}).Suggest(node.NewScenario(path, "Feature: Login", "Scenario: valid credentials"), 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Scenario: valid credentials"}, got)
}

func TestSuggest_FilesHaveNone(t *testing.T) {
	got, err := NewResolver(fsys.Disk{}).Suggest(node.NewFile("whatever"), 3)
	require.NoError(t, err)
	assert.Empty(t, got)
}
