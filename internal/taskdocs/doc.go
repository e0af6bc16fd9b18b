// Package taskdocs renders and writes the plan, context and task-checklist
// documents for a task.
//
// A task named "My Cool Task" produces:
//
//	<docs_dir>/my-cool-task/
//	├── my-cool-task-plan.md
//	├── my-cool-task-context.md
//	└── my-cool-task-tasks.md
//
// Every template is loaded and filled before the task directory is created,
// so a missing template leaves the filesystem untouched. Existing documents
// are overwritten.
package taskdocs
