// Package config loads cukenav settings from defaults, an optional TOML file
// and CUKENAV_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/chriserin/cukenav/internal/db"
	"github.com/chriserin/cukenav/internal/roots"
)

// FileName is looked up in the working directory when no explicit file is given.
const FileName = ".cukenav.toml"

const envPrefix = "CUKENAV"

type Config struct {
	Workspace Workspace `mapstructure:"workspace" toml:"workspace"`
	Roots     Roots     `mapstructure:"roots" toml:"roots"`
	Editor    Editor    `mapstructure:"editor" toml:"editor"`
	Cache     Cache     `mapstructure:"cache" toml:"cache"`
	Watch     Watch     `mapstructure:"watch" toml:"watch"`
	Log       Log       `mapstructure:"log" toml:"log"`
}

type Workspace struct {
	// Folders may be plain paths or file:// URIs. Relative paths are taken
	// from the working directory.
	Folders []string `mapstructure:"folders" toml:"folders"`
}

type Roots struct {
	Features        string `mapstructure:"features" toml:"features"`
	StepDefinitions string `mapstructure:"step_definitions" toml:"step_definitions"`
}

type Editor struct {
	// Command is split with shell rules; $FILE, $LINE and $COLUMN expand.
	Command string `mapstructure:"command" toml:"command"`
}

type Cache struct {
	// Path of the sqlite entry cache. ":memory:" keeps it per process.
	Path string `mapstructure:"path" toml:"path"`
}

type Watch struct {
	Debounce time.Duration `mapstructure:"debounce" toml:"debounce"`
	Ignore   []string      `mapstructure:"ignore" toml:"ignore"`
}

type Log struct {
	Level string `mapstructure:"level" toml:"level"`
}

// Options control where Load looks.
type Options struct {
	// Dir is the working directory; defaults to the process cwd.
	Dir string
	// File is an explicit config file. It must exist when set.
	File string
}

func Default() Config {
	return Config{
		Workspace: Workspace{Folders: []string{"."}},
		Roots: Roots{
			Features:        roots.DefaultFeaturesDir,
			StepDefinitions: roots.DefaultStepDefsDir,
		},
		Cache: Cache{Path: db.Memory},
		Watch: Watch{Debounce: 300 * time.Millisecond, Ignore: []string{}},
		Log:   Log{Level: "warn"},
	}
}

// Load returns the effective config and the file it was read from, which is
// empty when only defaults and environment applied.
func Load(opts Options) (Config, string, error) {
	dir := opts.Dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return Config{}, "", fmt.Errorf("getting working directory: %w", err)
		}
		dir = wd
	}

	v := viper.New()
	d := Default()
	v.SetDefault("workspace.folders", d.Workspace.Folders)
	v.SetDefault("roots.features", d.Roots.Features)
	v.SetDefault("roots.step_definitions", d.Roots.StepDefinitions)
	v.SetDefault("editor.command", d.Editor.Command)
	v.SetDefault("cache.path", d.Cache.Path)
	v.SetDefault("watch.debounce", d.Watch.Debounce)
	v.SetDefault("watch.ignore", d.Watch.Ignore)
	v.SetDefault("log.level", d.Log.Level)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	resolved := ""
	switch {
	case opts.File != "":
		if _, err := os.Stat(opts.File); err != nil {
			return Config{}, "", fmt.Errorf("config file not found: %s", opts.File)
		}
		resolved = opts.File
	default:
		local := filepath.Join(dir, FileName)
		if _, err := os.Stat(local); err == nil {
			resolved = local
		}
	}

	if resolved != "" {
		v.SetConfigFile(resolved)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, "", fmt.Errorf("reading %s: %w", resolved, err)
			}
			resolved = ""
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, "", fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.resolve(dir)
	return cfg, resolved, nil
}

// resolve anchors relative workspace folders and cache path at dir.
func (c *Config) resolve(dir string) {
	for i, f := range c.Workspace.Folders {
		if strings.Contains(f, "://") || filepath.IsAbs(f) {
			continue
		}
		c.Workspace.Folders[i] = filepath.Join(dir, f)
	}
	if c.Cache.Path != "" && c.Cache.Path != db.Memory && !filepath.IsAbs(c.Cache.Path) {
		c.Cache.Path = filepath.Join(dir, c.Cache.Path)
	}
}

// RootWorkspace converts the config into the workspace model used by the trees.
func (c Config) RootWorkspace() roots.Workspace {
	return roots.Workspace{
		Folders:     append([]string(nil), c.Workspace.Folders...),
		FeaturesDir: c.Roots.Features,
		StepDefsDir: c.Roots.StepDefinitions,
	}
}

// Write renders the config as TOML. Durations are written in their
// string form so the output can be read back by Load.
func (c Config) Write(w io.Writer) error {
	type watchView struct {
		Debounce string   `toml:"debounce"`
		Ignore   []string `toml:"ignore"`
	}
	view := struct {
		Workspace Workspace `toml:"workspace"`
		Roots     Roots     `toml:"roots"`
		Editor    Editor    `toml:"editor"`
		Cache     Cache     `toml:"cache"`
		Watch     watchView `toml:"watch"`
		Log       Log       `toml:"log"`
	}{
		Workspace: c.Workspace,
		Roots:     c.Roots,
		Editor:    c.Editor,
		Cache:     c.Cache,
		Watch:     watchView{Debounce: c.Watch.Debounce.String(), Ignore: c.Watch.Ignore},
		Log:       c.Log,
	}

	enc := toml.NewEncoder(w)
	enc.SetIndentTables(true)
	if err := enc.Encode(view); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return nil
}
