// internal/config/config.go
//
// This package handles per-project settings. A project may carry a
// .devdocs.yaml file in its root; every field is optional and the defaults
// reproduce the stock layout (docs/dev/active/<slug>/).

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

const (
	// FileName is the optional project config file in the project root.
	FileName = ".devdocs.yaml"

	// DefaultDocsDir is where task directories are created, relative to the project root.
	DefaultDocsDir = "docs/dev/active"

	// DefaultTimestampFormat renders the {TIMESTAMP} placeholder.
	DefaultTimestampFormat = "2006-01-02 15:04:05"

	// EnvSkillDir overrides the skill directory templates are read from.
	EnvSkillDir = "DEVDOCS_SKILL_DIR"

	// EnvLogLevel overrides the diagnostic log level (debug, info, warn, error).
	EnvLogLevel = "DEVDOCS_LOG_LEVEL"
)

// HooksConfig toggles placeholder hook scripts.
type HooksConfig struct {
	Enabled *bool `yaml:"enabled,omitempty"`
}

// ProjectConfig models .devdocs.yaml.
type ProjectConfig struct {
	Version         int         `yaml:"version"`
	DocsDir         string      `yaml:"docs_dir,omitempty"`
	SkillDir        string      `yaml:"skill_dir,omitempty"`
	TimestampFormat string      `yaml:"timestamp_format,omitempty"`
	Hooks           HooksConfig `yaml:"hooks,omitempty"`
}

// Config holds the runtime configuration for one invocation.
type Config struct {
	// ProjectDir is the resolved project root.
	ProjectDir string

	// SkillDirOverride comes from DEVDOCS_SKILL_DIR and beats the project file.
	SkillDirOverride string

	// LogLevel comes from DEVDOCS_LOG_LEVEL.
	LogLevel string

	Project ProjectConfig

	fs afero.Fs
}

// NewConfig loads the project config for projectDir and applies environment
// overrides. A missing config file is not an error.
func NewConfig(fsys afero.Fs, projectDir string) (*Config, error) {
	if strings.TrimSpace(projectDir) == "" {
		return nil, fmt.Errorf("config: project directory is required")
	}
	cfg := &Config{
		ProjectDir:       projectDir,
		SkillDirOverride: strings.TrimSpace(os.Getenv(EnvSkillDir)),
		LogLevel:         strings.ToLower(strings.TrimSpace(os.Getenv(EnvLogLevel))),
		Project:          defaultProjectConfig(),
		fs:               fsys,
	}
	if err := cfg.loadProjectConfig(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ProjectConfigPath returns the on-disk location for the project config file.
func (c *Config) ProjectConfigPath() string {
	return filepath.Join(c.ProjectDir, FileName)
}

// DocsDir returns the directory holding task directories.
func (c *Config) DocsDir() string {
	return filepath.Join(c.ProjectDir, filepath.FromSlash(c.Project.DocsDir))
}

// TaskDir returns the directory for a task slug.
func (c *Config) TaskDir(slug string) string {
	return filepath.Join(c.DocsDir(), slug)
}

// SkillDir returns the configured skill directory, or "" when none is set.
func (c *Config) SkillDir() string {
	if c.SkillDirOverride != "" {
		return c.SkillDirOverride
	}
	return c.Project.SkillDir
}

// TimestampFormat returns the Go layout used for {TIMESTAMP}.
func (c *Config) TimestampFormat() string {
	return c.Project.TimestampFormat
}

// HooksEnabled reports whether placeholder hooks should run.
func (c *Config) HooksEnabled() bool {
	if c.Project.Hooks.Enabled == nil {
		return true
	}
	return *c.Project.Hooks.Enabled
}

func (c *Config) loadProjectConfig() error {
	path := c.ProjectConfigPath()
	data, err := afero.ReadFile(c.fs, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var parsed ProjectConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	parsed.applyDefaults()
	parsed.normalize(c.ProjectDir)
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	c.Project = parsed
	return nil
}

func defaultProjectConfig() ProjectConfig {
	return ProjectConfig{
		Version:         1,
		DocsDir:         DefaultDocsDir,
		TimestampFormat: DefaultTimestampFormat,
	}
}

func (pc *ProjectConfig) applyDefaults() {
	if pc.Version == 0 {
		pc.Version = 1
	}
	if strings.TrimSpace(pc.DocsDir) == "" {
		pc.DocsDir = DefaultDocsDir
	}
	if strings.TrimSpace(pc.TimestampFormat) == "" {
		pc.TimestampFormat = DefaultTimestampFormat
	}
}

func (pc *ProjectConfig) normalize(base string) {
	pc.DocsDir = filepath.ToSlash(filepath.Clean(strings.TrimSpace(pc.DocsDir)))
	pc.SkillDir = resolvePath(base, pc.SkillDir)
}

func (pc *ProjectConfig) validate() error {
	if pc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	if filepath.IsAbs(pc.DocsDir) || !filepath.IsLocal(filepath.FromSlash(pc.DocsDir)) {
		return fmt.Errorf("docs_dir must be a relative path inside the project, got %q", pc.DocsDir)
	}
	return nil
}

func resolvePath(base, candidate string) string {
	trimmed := strings.TrimSpace(candidate)
	if trimmed == "" {
		return ""
	}
	if filepath.IsAbs(trimmed) {
		return filepath.Clean(trimmed)
	}
	return filepath.Clean(filepath.Join(base, trimmed))
}
