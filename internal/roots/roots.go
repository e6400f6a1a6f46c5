// Package roots picks the directory each navigation tree starts from.
package roots

import (
	"net/url"
	"path/filepath"
	"strings"
)

// TreeKind names one of the two navigation trees.
type TreeKind int

const (
	Features TreeKind = iota + 1
	StepDefs
)

const (
	DefaultFeaturesDir = "features/testcase"
	DefaultStepDefsDir = "features/step_definitions"
)

func (k TreeKind) String() string {
	switch k {
	case Features:
		return "features"
	case StepDefs:
		return "steps"
	}
	return "unknown"
}

// ParseTreeKind accepts the names used on the command line.
func ParseTreeKind(s string) (TreeKind, bool) {
	switch strings.ToLower(s) {
	case "features", "feature":
		return Features, true
	case "steps", "step", "stepdefs", "step_definitions":
		return StepDefs, true
	}
	return 0, false
}

// Workspace is the set of open project folders. Folders are plain paths or
// URIs; only the file scheme counts as local. An empty workspace means no
// project is open.
type Workspace struct {
	Folders     []string
	FeaturesDir string
	StepDefsDir string
}

// LocalFolders returns the workspace folders on the local filesystem, in
// order.
func (w Workspace) LocalFolders() []string {
	var local []string
	for _, f := range w.Folders {
		if p, ok := localPath(f); ok {
			local = append(local, p)
		}
	}
	return local
}

// RootFor joins the first local folder with the suffix for kind. It
// reports false when no local folder is open.
func (w Workspace) RootFor(kind TreeKind) (string, bool) {
	local := w.LocalFolders()
	if len(local) == 0 {
		return "", false
	}
	return filepath.Join(local[0], filepath.FromSlash(w.suffix(kind))), true
}

func (w Workspace) suffix(kind TreeKind) string {
	if kind == StepDefs {
		if w.StepDefsDir != "" {
			return w.StepDefsDir
		}
		return DefaultStepDefsDir
	}
	if w.FeaturesDir != "" {
		return w.FeaturesDir
	}
	return DefaultFeaturesDir
}

func localPath(folder string) (string, bool) {
	if folder == "" {
		return "", false
	}
	if !strings.Contains(folder, "://") {
		return folder, true
	}
	u, err := url.Parse(folder)
	if err != nil || u.Scheme != "file" {
		return "", false
	}
	return filepath.FromSlash(u.Path), true
}
