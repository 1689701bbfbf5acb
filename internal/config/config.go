// Package config loads the resolver configuration from .project-resolver.yaml.
// A missing file is not an error: every setting has a default.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"project-resolver/internal/descriptor"
	"project-resolver/internal/project"
	"project-resolver/internal/validate"
)

// FileName is the configuration file looked up in the working directory.
const FileName = ".project-resolver.yaml"

// DefaultYAML is the commented configuration written by `config --init`.
const DefaultYAML = `# project-resolver configuration
version: 1

# Builds to detect, in priority order, when a directory holds several descriptors.
builds: [maven, gradle, go]

# Additional source roots per build, relative to the project root.
# extra_source_roots:
#   maven:
#     - kind: main-java
#       dir: src/generated/java

# Directory names skipped when listing packages. A trailing '*' matches by prefix.
exclude: [.git, .svn, .idea, node_modules]

# Honor the project root .gitignore when listing packages.
use_gitignore: true

# Where package snapshots are kept (default tmp/.presolve).
cache_dir: ""

log:
  level: warn
  format: text
`

// LogConfig selects the CLI log handler.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Config models .project-resolver.yaml.
type Config struct {
	Version          int                             `yaml:"version"`
	Builds           []string                        `yaml:"builds"`
	ExtraSourceRoots map[string][]project.SourceRoot `yaml:"extra_source_roots,omitempty"`
	Exclude          []string                        `yaml:"exclude"`
	UseGitignore     bool                            `yaml:"use_gitignore"`
	CacheDir         string                          `yaml:"cache_dir"`
	Log              LogConfig                       `yaml:"log"`

	// Source is the file the configuration was read from, empty when the
	// defaults are in use.
	Source string `yaml:"-"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Version:      1,
		Builds:       []string{string(descriptor.Maven), string(descriptor.Gradle), string(descriptor.Go)},
		Exclude:      []string{".git", ".svn", ".idea", "node_modules"},
		UseGitignore: true,
		Log:          LogConfig{Level: "warn", Format: "text"},
	}
}

// Load reads path, falling back to Default when the file does not exist.
func Load(path string) (*Config, error) {
	c, err := Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return c, err
}

// Read reads path. Unlike Load, a missing file is an error.
func Read(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	c.Source = path
	return c, nil
}

// Parse decodes, completes and validates a YAML document. Settings the
// document leaves out keep their defaults; unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse: %w", err)
	}
	c.normalize()
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) normalize() {
	for i, b := range c.Builds {
		c.Builds[i] = strings.ToLower(strings.TrimSpace(b))
	}
	for i, e := range c.Exclude {
		c.Exclude[i] = strings.TrimSpace(e)
	}
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
}

func (c *Config) validate() error {
	var errs []error
	if c.Version != 1 {
		errs = append(errs, fmt.Errorf("version must be 1 (got %d)", c.Version))
	}
	if len(c.Builds) == 0 {
		errs = append(errs, errors.New("builds must list at least one build"))
	}
	seen := map[string]bool{}
	for _, b := range c.Builds {
		if _, err := descriptor.ParseBuild(b); err != nil {
			errs = append(errs, fmt.Errorf("builds: %w", err))
		}
		if seen[b] {
			errs = append(errs, fmt.Errorf("builds: %q listed twice", b))
		}
		seen[b] = true
	}
	for _, b := range sortedKeys(c.ExtraSourceRoots) {
		if _, err := descriptor.ParseBuild(b); err != nil {
			errs = append(errs, fmt.Errorf("extra_source_roots: %w", err))
			continue
		}
		if err := validate.Roots("extra_source_roots."+b, c.ExtraSourceRoots[b]); err != nil {
			errs = append(errs, err)
		}
	}
	if err := validate.Patterns("exclude", c.Exclude); err != nil {
		errs = append(errs, err)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format must be text or json (got %q)", c.Log.Format))
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	return errors.Join(errs...)
}

// ProjectOptions converts the configuration into project service options.
// c must have been produced by Parse, Read or Load.
func (c *Config) ProjectOptions(log *slog.Logger) project.Options {
	opt := project.Options{
		Exclude:      c.Exclude,
		UseGitignore: c.UseGitignore,
		Logger:       log,
	}
	for _, s := range c.Builds {
		b, _ := descriptor.ParseBuild(s)
		opt.Builds = append(opt.Builds, b)
	}
	for s, roots := range c.ExtraSourceRoots {
		b, _ := descriptor.ParseBuild(s)
		if opt.ExtraRoots == nil {
			opt.ExtraRoots = map[descriptor.Build][]project.SourceRoot{}
		}
		opt.ExtraRoots[b] = roots
	}
	return opt
}

// Marshal renders c as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
