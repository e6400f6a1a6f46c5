// Package extract finds Feature, Scenario and step definition header lines
// in plain text. It is a line-pattern scanner, not a Gherkin parser.
package extract

import (
	"regexp"
	"strings"
)

// Kind is the semantic kind of an extracted entry.
type Kind int

const (
	Feature Kind = iota + 1
	Scenario
	StepDef
)

func (k Kind) String() string {
	switch k {
	case Feature:
		return "feature"
	case Scenario:
		return "scenario"
	case StepDef:
		return "stepdef"
	}
	return "unknown"
}

// Entry is one matched header line. Label is the raw line, leading
// whitespace and keyword included.
type Entry struct {
	Label string
	Kind  Kind
}

var patterns = map[Kind]*regexp.Regexp{
	Feature:  regexp.MustCompile(`(?i)^Feature:.+`),
	Scenario: regexp.MustCompile(`(?i)^[ \t]*Scenario:.+`),
	StepDef:  regexp.MustCompile(`(?i)^(When|Then|Given).+`),
}

// Extract returns every line of content matching the pattern for kind, in
// file order. Identical lines produce identical, separate entries. Content
// with no matching line yields an empty slice.
func Extract(content string, kind Kind) []Entry {
	re, ok := patterns[kind]
	if !ok {
		return []Entry{}
	}

	entries := []Entry{}
	for _, line := range Lines(content) {
		if re.MatchString(line) {
			entries = append(entries, Entry{Label: line, Kind: kind})
		}
	}
	return entries
}

// Lines splits content on "\n" and drops a trailing "\r" from each line so
// CRLF files produce the same labels as LF files.
func Lines(content string) []string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
