package node

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chriserin/cukenav/internal/extract"
)

func TestNode_Constructors(t *testing.T) {
	assert.Equal(t, Node{Kind: Directory, File: "a"}, NewDirectory("a"))
	assert.Equal(t, Node{Kind: RegularFile, File: "a/b"}, NewFile("a/b"))
	assert.Equal(t, Node{Kind: Feature, File: "f", Label: "Feature: X"}, NewFeature("f", "Feature: X"))
	assert.Equal(t, Node{Kind: Scenario, File: "f", Owner: "Feature: X", Label: "  Scenario: Y"},
		NewScenario("f", "Feature: X", "  Scenario: Y"))
	assert.Equal(t, Node{Kind: StepDef, File: "s", Label: "Given x"}, NewStepDef("s", "Given x"))
}

func TestNode_FromEntry(t *testing.T) {
	assert.Equal(t, NewFeature("f", "Feature: X"),
		FromEntry("f", "ignored", extract.Entry{Label: "Feature: X", Kind: extract.Feature}))
	assert.Equal(t, NewScenario("f", "Feature: X", "  Scenario: Y"),
		FromEntry("f", "Feature: X", extract.Entry{Label: "  Scenario: Y", Kind: extract.Scenario}))
	assert.Equal(t, NewStepDef("s", "When y"),
		FromEntry("s", "", extract.Entry{Label: "When y", Kind: extract.StepDef}))
}

func TestNode_Name(t *testing.T) {
	assert.Equal(t, "login.feature", NewFile(filepath.Join("features", "testcase", "login.feature")).Name())
	assert.Equal(t, "testcase", NewDirectory(filepath.Join("features", "testcase")).Name())
	assert.Equal(t, "  Scenario: Y", NewScenario("f", "Feature: X", "  Scenario: Y").Name())
}

func TestNode_Locator(t *testing.T) {
	file := filepath.Join("features", "testcase", "login.feature")
	sep := string(filepath.Separator)

	assert.Equal(t, file, NewFile(file).Locator())
	assert.Equal(t, file+sep+"Feature: Login", NewFeature(file, "Feature: Login").Locator())
	assert.Equal(t, file+sep+"Feature: Login"+sep+"  Scenario: valid",
		NewScenario(file, "Feature: Login", "  Scenario: valid").Locator())
}

func TestNode_LocatorKeepsSlashesInLabels(t *testing.T) {
	n := NewStepDef("steps.js", "Given('a/b', fn)")
	assert.Equal(t, "Given('a/b', fn)", n.Label)
	assert.Equal(t, "steps.js", n.File)
}

func TestNode_IsContent(t *testing.T) {
	assert.False(t, NewDirectory("d").IsContent())
	assert.False(t, NewFile("f").IsContent())
	assert.True(t, NewFeature("f", "Feature: X").IsContent())
	assert.True(t, NewScenario("f", "Feature: X", "Scenario: Y").IsContent())
	assert.True(t, NewStepDef("f", "Given").IsContent())
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "directory", Directory.String())
	assert.Equal(t, "file", RegularFile.String())
	assert.Equal(t, "feature", Feature.String())
	assert.Equal(t, "scenario", Scenario.String())
	assert.Equal(t, "stepdef", StepDef.String())
	assert.Equal(t, "unknown", Kind(0).String())
}
