// Package editor implements the focus action: putting a resolved location
// in front of the user.
package editor

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"mvdan.cc/sh/v3/shell"

	"github.com/chriserin/cukenav/internal/locate"
)

// Printer writes the location as path:line:column (1-based), the form most
// editors and terminals can jump to.
type Printer struct {
	W io.Writer
}

func (p Printer) Focus(loc locate.Location) error {
	_, err := fmt.Fprintf(p.W, "%s:%d:%d\n", loc.Path, loc.Line+1, loc.Start+1)
	return err
}

// Command launches an editor. Template is expanded like a shell word list
// with $FILE, $LINE and $COLUMN (1-based) set to the location; other
// variables come from Env. The file is appended when the template does not
// mention $FILE.
type Command struct {
	Template string
	Env      func(string) string
	Run      func(name string, args ...string) error
}

func (c Command) Args(loc locate.Location) ([]string, error) {
	env := c.Env
	if env == nil {
		env = os.Getenv
	}
	vars := map[string]string{
		"FILE":   loc.Path,
		"LINE":   strconv.Itoa(loc.Line + 1),
		"COLUMN": strconv.Itoa(loc.Start + 1),
	}
	fields, err := shell.Fields(c.Template, func(name string) string {
		if v, ok := vars[name]; ok {
			return v
		}
		return env(name)
	})
	if err != nil {
		return nil, fmt.Errorf("expanding editor command %q: %w", c.Template, err)
	}
	if len(fields) == 0 {
		return nil, errors.New("editor command is empty")
	}
	if !mentionsFile(c.Template) {
		fields = append(fields, loc.Path)
	}
	return fields, nil
}

func (c Command) Focus(loc locate.Location) error {
	args, err := c.Args(loc)
	if err != nil {
		return err
	}
	run := c.Run
	if run == nil {
		run = runAttached
	}
	if err := run(args[0], args[1:]...); err != nil {
		return fmt.Errorf("running %s: %w", args[0], err)
	}
	return nil
}

// New picks the focus action: the configured template, then $VISUAL or
// $EDITOR, then printing to w.
func New(template string, env func(string) string, w io.Writer) locate.Focuser {
	if env == nil {
		env = os.Getenv
	}
	if template != "" {
		return Command{Template: template, Env: env}
	}
	for _, name := range []string{"VISUAL", "EDITOR"} {
		if env(name) != "" {
			return Command{Template: "$" + name + ` +$LINE "$FILE"`, Env: env}
		}
	}
	return Printer{W: w}
}

func mentionsFile(template string) bool {
	return strings.Contains(template, "$FILE") || strings.Contains(template, "${FILE}")
}

func runAttached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
