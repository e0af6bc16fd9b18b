package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/devdocs/internal/taskdocs"
)

// reporter prints user-facing progress. Diagnostics go to the logger.
type reporter struct {
	out    io.Writer
	errOut io.Writer

	okStyle    lipgloss.Style
	titleStyle lipgloss.Style
	mutedStyle lipgloss.Style
	errStyle   lipgloss.Style
}

func newReporter(out, errOut io.Writer) *reporter {
	outRenderer := lipgloss.NewRenderer(out)
	errRenderer := lipgloss.NewRenderer(errOut)
	return &reporter{
		out:        out,
		errOut:     errOut,
		okStyle:    outRenderer.NewStyle().Foreground(lipgloss.Color("#4CAF50")),
		titleStyle: outRenderer.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF")),
		mutedStyle: outRenderer.NewStyle().Foreground(lipgloss.Color("#AAAAAA")),
		errStyle:   errRenderer.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B")),
	}
}

func (r *reporter) progress(ev taskdocs.Event) {
	switch ev.Type {
	case taskdocs.EventDirectoryCreated:
		fmt.Fprintln(r.out, r.okStyle.Render(fmt.Sprintf("✅ Created task directory: %s", ev.Path)))
	case taskdocs.EventDocumentWritten:
		fmt.Fprintln(r.out, r.okStyle.Render(fmt.Sprintf("✅ Created: %s", filepath.Base(ev.Path))))
	}
}

func (r *reporter) installed(path string) {
	fmt.Fprintln(r.out, r.okStyle.Render(fmt.Sprintf("✅ Installed template: %s", path)))
}

func (r *reporter) summary(plan *taskdocs.Plan) {
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, r.titleStyle.Render("🎉 Task documentation initialized successfully!"))
	fmt.Fprintln(r.out)
	r.nextSteps(plan.Slug)
}

func (r *reporter) nextSteps(slug string) {
	fmt.Fprintln(r.out, "Next steps:")
	fmt.Fprintf(r.out, "1. Update %s with the accepted plan\n", taskdocs.KindPlan.FileName(slug))
	fmt.Fprintf(r.out, "2. Track key decisions in %s\n", taskdocs.KindContext.FileName(slug))
	fmt.Fprintf(r.out, "3. Mark tasks complete in %s as you work\n", taskdocs.KindTasks.FileName(slug))
}

func (r *reporter) dryRun(plan *taskdocs.Plan) {
	fmt.Fprintln(r.out, r.titleStyle.Render("Dry run: nothing was written"))
	fmt.Fprintf(r.out, "Task directory: %s\n", plan.TaskDir)
	for _, doc := range plan.Documents {
		fmt.Fprintln(r.out, r.mutedStyle.Render(fmt.Sprintf("  would write %s (%d bytes)", doc.Name(), len(doc.Content))))
	}
}

func (r *reporter) failure(err error) {
	fmt.Fprintln(r.errOut, r.errStyle.Render(fmt.Sprintf("❌ Error: %v", err)))
}
