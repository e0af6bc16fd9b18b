package taskdocs

import (
	"errors"
	"fmt"
	"strings"
)

// Default section text used when a request leaves a field empty.
const (
	DefaultPlanOverview    = "[Add plan overview here]"
	DefaultPlanSteps       = "[Add implementation steps here]"
	DefaultSuccessCriteria = "[Add success criteria here]"
	DefaultTaskItem        = "[Add tasks here]"
)

// ErrEmptyTaskName is returned when a request has no task name.
var ErrEmptyTaskName = errors.New("task name is required")

// Request carries the caller's values for one task.
type Request struct {
	TaskName string
	Plan     string
	Steps    string
	Criteria string
	// Tasks is newline separated; each non-blank line becomes a checklist item.
	Tasks string
}

// Validate checks the request can be rendered.
func (r Request) Validate() error {
	if strings.TrimSpace(r.TaskName) == "" {
		return ErrEmptyTaskName
	}
	return nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// Checklist converts newline separated tasks into unchecked markdown items
// and returns the list with its item count. Blank lines are skipped. With no
// tasks it returns a single placeholder item and a count of zero.
func Checklist(tasks string) (string, int) {
	var items []string
	for _, line := range strings.Split(tasks, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		items = append(items, fmt.Sprintf("- [ ] %s", trimmed))
	}
	if len(items) == 0 {
		return fmt.Sprintf("- [ ] %s", DefaultTaskItem), 0
	}
	return strings.Join(items, "\n"), len(items)
}
