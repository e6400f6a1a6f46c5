package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const loginFeature = `Feature: Login
  Scenario: valid credentials
    Given a registered user
  Scenario: invalid credentials
    Given a registered user
`

func labels(entries []Entry) []string {
	var out []string
	for _, e := range entries {
		out = append(out, e.Label)
	}
	return out
}

func TestExtract_Feature(t *testing.T) {
	entries := Extract(loginFeature, Feature)
	require.Len(t, entries, 1)
	assert.Equal(t, "Feature: Login", entries[0].Label)
	assert.Equal(t, Feature, entries[0].Kind)
}

func TestExtract_FeatureIsCaseInsensitive(t *testing.T) {
	entries := Extract("feature: lower\nFEATURE: upper\n", Feature)
	assert.Equal(t, []string{"feature: lower", "FEATURE: upper"}, labels(entries))
}

func TestExtract_FeatureMustStartLine(t *testing.T) {
	entries := Extract("  Feature: indented\n# Feature: comment\n", Feature)
	assert.Empty(t, entries)
}

func TestExtract_FeatureNeedsText(t *testing.T) {
	assert.Empty(t, Extract("Feature:\n", Feature))
}

func TestExtract_ScenariosInFileOrder(t *testing.T) {
	entries := Extract(loginFeature, Scenario)
	assert.Equal(t, []string{
		"  Scenario: valid credentials",
		"  Scenario: invalid credentials",
	}, labels(entries))
	for _, e := range entries {
		assert.Equal(t, Scenario, e.Kind)
	}
}

func TestExtract_ScenarioKeepsLeadingWhitespace(t *testing.T) {
	entries := Extract("Feature: X\n\t\tscenario: tabbed\n", Scenario)
	require.Len(t, entries, 1)
	assert.Equal(t, "\t\tscenario: tabbed", entries[0].Label)
}

func TestExtract_ScenarioOutlineIsNotAScenario(t *testing.T) {
	assert.Empty(t, Extract("Feature: X\n  Scenario Outline: many\n", Scenario))
}

func TestExtract_DuplicateLabelsAreKept(t *testing.T) {
	content := "Feature: X\n  Scenario: same\n  Scenario: same\n"
	entries := Extract(content, Scenario)
	assert.Len(t, entries, 2)
	assert.Equal(t, entries[0], entries[1])
}

func TestExtract_StepDefs(t *testing.T) {
	content := `const { Given, When, Then } = require('@cucumber/cucumber');

Given('I am on the login page', function () {});
  When('indented is ignored', function () {});
When('I submit the form', function () {});
then('lower case works', function () {});
`
	entries := Extract(content, StepDef)
	assert.Equal(t, []string{
		"Given('I am on the login page', function () {});",
		"When('I submit the form', function () {});",
		"then('lower case works', function () {});",
	}, labels(entries))
}

func TestExtract_NoMatchesIsEmpty(t *testing.T) {
	entries := Extract("nothing to see here\n", Feature)
	require.NotNil(t, entries)
	assert.Empty(t, entries)

	assert.Empty(t, Extract("", Scenario))
	assert.Empty(t, Extract("", StepDef))
}

func TestExtract_CRLF(t *testing.T) {
	content := "Feature: Login\r\n  Scenario: valid\r\n"
	assert.Equal(t, []string{"Feature: Login"}, labels(Extract(content, Feature)))
	assert.Equal(t, []string{"  Scenario: valid"}, labels(Extract(content, Scenario)))
}

func TestExtract_UnknownKind(t *testing.T) {
	assert.Empty(t, Extract(loginFeature, Kind(99)))
}

func TestLines(t *testing.T) {
	assert.Equal(t, []string{"a", "b", ""}, Lines("a\r\nb\n"))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "feature", Feature.String())
	assert.Equal(t, "scenario", Scenario.String())
	assert.Equal(t, "stepdef", StepDef.String())
	assert.Equal(t, "unknown", Kind(0).String())
}
