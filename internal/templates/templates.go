// Package templates loads the document templates shipped with the skill and
// fills their {NAME} placeholders.
package templates

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// Template file names inside <skill_dir>/assets/templates.
const (
	PlanTemplate    = "plan-template.md"
	ContextTemplate = "context-template.md"
	TasksTemplate   = "tasks-template.md"
)

// Placeholder keys honoured by the bundled templates.
const (
	KeyTaskName        = "TASK_NAME"
	KeyTimestamp       = "TIMESTAMP"
	KeyPlanOverview    = "PLAN_OVERVIEW"
	KeyPlanSteps       = "PLAN_STEPS"
	KeySuccessCriteria = "SUCCESS_CRITERIA"
	KeyTotalTasks      = "TOTAL_TASKS"
	KeyTaskList        = "TASK_LIST"
)

// ErrTemplateNotFound is returned when a template file is absent.
var ErrTemplateNotFound = errors.New("template not found")

// Names lists every template a task needs.
func Names() []string {
	return []string{PlanTemplate, ContextTemplate, TasksTemplate}
}

// Dir returns the templates directory for a skill directory.
func Dir(skillDir string) string {
	return filepath.Join(skillDir, "assets", "templates")
}

// Loader reads templates from a skill directory.
type Loader struct {
	fs       afero.Fs
	skillDir string
}

// NewLoader builds a loader rooted at skillDir.
func NewLoader(fsys afero.Fs, skillDir string) *Loader {
	return &Loader{fs: fsys, skillDir: skillDir}
}

// SkillDir returns the directory templates are read from.
func (l *Loader) SkillDir() string {
	return l.skillDir
}

// Path returns the on-disk location of the named template.
func (l *Loader) Path(name string) string {
	return filepath.Join(Dir(l.skillDir), name)
}

// Load returns the full text of the named template.
func (l *Loader) Load(name string) (string, error) {
	path := l.Path(name)
	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", &NotFoundError{Path: path}
		}
		return "", fmt.Errorf("templates: read %s: %w", path, err)
	}
	return string(data), nil
}

// NotFoundError reports the path of a missing template.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Template not found: %s", e.Path)
}

// Is lets errors.Is match ErrTemplateNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrTemplateNotFound
}

// Replacements maps placeholder names (without braces) to their values.
type Replacements map[string]string

// Fill replaces every literal {key} in content with its value. Unknown
// placeholders are left as they are. Replacement is a single pass, so a value
// that looks like a placeholder is written verbatim.
func Fill(content string, replacements Replacements) string {
	if len(replacements) == 0 {
		return content
	}
	keys := make([]string, 0, len(replacements))
	for key := range replacements {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, 2*len(keys))
	for _, key := range keys {
		pairs = append(pairs, "{"+key+"}", replacements[key])
	}
	return strings.NewReplacer(pairs...).Replace(content)
}
