package config

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

func TestNewConfigDefaultsWhenMissing(t *testing.T) {
	t.Setenv(EnvSkillDir, "")
	t.Setenv(EnvLogLevel, "")
	c, err := NewConfig(afero.NewMemMapFs(), "/project")
	if err != nil {
		t.Fatalf("NewConfig returned error: %v", err)
	}
	if c.Project.Version != 1 {
		t.Fatalf("expected default version == 1, got %d", c.Project.Version)
	}
	if got := c.TaskDir("my-task"); got != filepath.Join("/project", "docs", "dev", "active", "my-task") {
		t.Fatalf("unexpected task dir %s", got)
	}
	if c.TimestampFormat() != DefaultTimestampFormat {
		t.Fatalf("unexpected timestamp format %q", c.TimestampFormat())
	}
	if !c.HooksEnabled() {
		t.Fatalf("hooks should default to enabled")
	}
	if c.SkillDir() != "" {
		t.Fatalf("expected no skill dir, got %q", c.SkillDir())
	}
}

func TestNewConfigParsesYaml(t *testing.T) {
	t.Setenv(EnvSkillDir, "")
	fsys := afero.NewMemMapFs()
	configYAML := strings.TrimSpace(`
version: 1
docs_dir: notes/tasks
skill_dir: tools/dev-docs
timestamp_format: "2006-01-02"
hooks:
  enabled: false
`)
	if err := afero.WriteFile(fsys, filepath.Join("/project", FileName), []byte(configYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := NewConfig(fsys, "/project")
	if err != nil {
		t.Fatalf("NewConfig returned error: %v", err)
	}
	if got := c.TaskDir("x"); got != filepath.Join("/project", "notes", "tasks", "x") {
		t.Fatalf("unexpected task dir %s", got)
	}
	if got := c.SkillDir(); got != filepath.Join("/project", "tools", "dev-docs") {
		t.Fatalf("expected skill dir resolved against project, got %s", got)
	}
	if c.TimestampFormat() != "2006-01-02" {
		t.Fatalf("wrong timestamp format: %s", c.TimestampFormat())
	}
	if c.HooksEnabled() {
		t.Fatalf("expected hooks disabled")
	}
}

func TestNewConfigEnvironmentOverrides(t *testing.T) {
	t.Setenv(EnvSkillDir, "/opt/skills/dev-docs")
	t.Setenv(EnvLogLevel, " DEBUG ")
	fsys := afero.NewMemMapFs()
	if err := afero.WriteFile(fsys, filepath.Join("/project", FileName), []byte("skill_dir: /elsewhere\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := NewConfig(fsys, "/project")
	if err != nil {
		t.Fatalf("NewConfig returned error: %v", err)
	}
	if c.SkillDir() != "/opt/skills/dev-docs" {
		t.Fatalf("env should win over project file, got %s", c.SkillDir())
	}
	if c.LogLevel != "debug" {
		t.Fatalf("expected normalized log level, got %q", c.LogLevel)
	}
}

func TestNewConfigValidation(t *testing.T) {
	t.Setenv(EnvSkillDir, "")
	for _, body := range []string{
		"version: -1\n",
		"docs_dir: ../outside\n",
		"docs_dir: /abs/path\n",
		"version: [\n",
	} {
		fsys := afero.NewMemMapFs()
		if err := afero.WriteFile(fsys, filepath.Join("/project", FileName), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := NewConfig(fsys, "/project"); err == nil {
			t.Fatalf("expected validation error for %q", body)
		}
	}
}

func TestNewConfigRequiresProjectDir(t *testing.T) {
	if _, err := NewConfig(afero.NewMemMapFs(), " "); err == nil {
		t.Fatalf("expected error for empty project dir")
	}
}
