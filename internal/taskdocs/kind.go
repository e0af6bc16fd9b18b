package taskdocs

import (
	"fmt"

	"github.com/kingrea/devdocs/internal/templates"
)

// Kind identifies one of the generated documents.
type Kind string

const (
	KindPlan    Kind = "plan"
	KindContext Kind = "context"
	KindTasks   Kind = "tasks"
)

// Kinds lists documents in the order they are written.
func Kinds() []Kind {
	return []Kind{KindPlan, KindContext, KindTasks}
}

// Template returns the template file name used for the kind.
func (k Kind) Template() string {
	switch k {
	case KindPlan:
		return templates.PlanTemplate
	case KindContext:
		return templates.ContextTemplate
	case KindTasks:
		return templates.TasksTemplate
	default:
		return ""
	}
}

// FileName returns <slug>-<kind>.md.
func (k Kind) FileName(slug string) string {
	return fmt.Sprintf("%s-%s.md", slug, k)
}
