// internal/tui/form.go
//
// Interactive form for devdocs --interactive. It asks only for the values
// the command line did not provide, one field at a time:
//
//	Task name → Plan overview → Implementation steps → Success criteria → Tasks
//
// Single-line fields advance on Enter. The tasks field is a textarea where
// Enter inserts a newline and Ctrl+S submits.

package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrAborted is returned when the user leaves the form with Esc or Ctrl+C.
var ErrAborted = errors.New("aborted by user")

// Values are the fields the form collects.
type Values struct {
	TaskName string
	Plan     string
	Steps    string
	Criteria string
	Tasks    string
}

type field int

const (
	fieldTaskName field = iota
	fieldPlan
	fieldSteps
	fieldCriteria
	fieldTasks
)

var fieldLabels = map[field]string{
	fieldTaskName: "Task name",
	fieldPlan:     "Plan overview",
	fieldSteps:    "Implementation steps",
	fieldCriteria: "Success criteria",
	fieldTasks:    "Tasks (one per line)",
}

var fieldPlaceholders = map[field]string{
	fieldTaskName: "Video Sharing Feature",
	fieldPlan:     "Leave empty to fill in later",
	fieldSteps:    "Leave empty to fill in later",
	fieldCriteria: "Leave empty to fill in later",
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF")).
			MarginBottom(1)
	labelStyle = lipgloss.NewStyle().Bold(true)
	hintStyle  = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA")).
			MarginTop(1)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	stepStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
)

// Form is the bubbletea model behind --interactive.
type Form struct {
	steps   []field
	current int
	inputs  map[field]textinput.Model
	tasks   textarea.Model
	values  Values
	err     string
	done    bool
	aborted bool
}

// NewForm builds a form that asks for every empty field of prefill.
func NewForm(prefill Values) *Form {
	f := &Form{
		values: prefill,
		inputs: map[field]textinput.Model{},
	}
	for _, fld := range []field{fieldTaskName, fieldPlan, fieldSteps, fieldCriteria, fieldTasks} {
		if f.valueOf(fld) == "" {
			f.steps = append(f.steps, fld)
		}
	}
	for _, fld := range f.steps {
		if fld == fieldTasks {
			ta := textarea.New()
			ta.CharLimit = 0
			ta.ShowLineNumbers = false
			ta.Placeholder = "Write tests\nShip it"
			f.tasks = ta
			continue
		}
		ti := textinput.New()
		ti.Placeholder = fieldPlaceholders[fld]
		ti.Prompt = "› "
		f.inputs[fld] = ti
	}
	f.focusCurrent()
	return f
}

// Empty reports whether there is nothing to ask.
func (f *Form) Empty() bool {
	return len(f.steps) == 0
}

// Values returns the collected values merged over the prefill.
func (f *Form) Values() Values {
	return f.values
}

// Done reports whether every field was submitted.
func (f *Form) Done() bool {
	return f.done
}

// Aborted reports whether the user cancelled the form.
func (f *Form) Aborted() bool {
	return f.aborted
}

// Init is called once when the program starts.
func (f *Form) Init() tea.Cmd {
	if f.Empty() {
		return tea.Quit
	}
	if f.currentField() == fieldTasks {
		return textarea.Blink
	}
	return textinput.Blink
}

// Update handles key presses and forwards everything else to the focused input.
func (f *Form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if f.done || f.aborted || f.Empty() {
		return f, tea.Quit
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			f.aborted = true
			return f, tea.Quit
		case "enter":
			if f.currentField() != fieldTasks {
				return f.submit()
			}
		case "ctrl+s":
			if f.currentField() == fieldTasks {
				return f.submit()
			}
		}
	}
	return f, f.updateInput(msg)
}

func (f *Form) submit() (tea.Model, tea.Cmd) {
	fld := f.currentField()
	var value string
	if fld == fieldTasks {
		value = f.tasks.Value()
	} else {
		value = f.inputs[fld].Value()
	}
	if fld == fieldTaskName && strings.TrimSpace(value) == "" {
		f.err = "A task name is required."
		return f, nil
	}
	f.err = ""
	f.setValue(fld, value)
	f.blurCurrent()
	f.current++
	if f.current >= len(f.steps) {
		f.done = true
		return f, tea.Quit
	}
	return f, f.focusCurrent()
}

func (f *Form) updateInput(msg tea.Msg) tea.Cmd {
	fld := f.currentField()
	var cmd tea.Cmd
	if fld == fieldTasks {
		f.tasks, cmd = f.tasks.Update(msg)
		return cmd
	}
	input := f.inputs[fld]
	input, cmd = input.Update(msg)
	f.inputs[fld] = input
	return cmd
}

func (f *Form) currentField() field {
	return f.steps[f.current]
}

func (f *Form) focusCurrent() tea.Cmd {
	if f.current >= len(f.steps) {
		return nil
	}
	fld := f.currentField()
	if fld == fieldTasks {
		return f.tasks.Focus()
	}
	input := f.inputs[fld]
	cmd := input.Focus()
	f.inputs[fld] = input
	return cmd
}

func (f *Form) blurCurrent() {
	fld := f.currentField()
	if fld == fieldTasks {
		f.tasks.Blur()
		return
	}
	input := f.inputs[fld]
	input.Blur()
	f.inputs[fld] = input
}

func (f *Form) valueOf(fld field) string {
	switch fld {
	case fieldTaskName:
		return f.values.TaskName
	case fieldPlan:
		return f.values.Plan
	case fieldSteps:
		return f.values.Steps
	case fieldCriteria:
		return f.values.Criteria
	default:
		return f.values.Tasks
	}
}

func (f *Form) setValue(fld field, value string) {
	switch fld {
	case fieldTaskName:
		f.values.TaskName = strings.TrimSpace(value)
	case fieldPlan:
		f.values.Plan = value
	case fieldSteps:
		f.values.Steps = value
	case fieldCriteria:
		f.values.Criteria = value
	default:
		f.values.Tasks = value
	}
}

// View renders the current step.
func (f *Form) View() string {
	if f.done || f.aborted || f.Empty() {
		return ""
	}
	fld := f.currentField()
	var b strings.Builder
	b.WriteString(titleStyle.Render("Initialize task documentation"))
	b.WriteString("\n")
	b.WriteString(stepStyle.Render(fmt.Sprintf("Step %d of %d", f.current+1, len(f.steps))))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render(fieldLabels[fld]))
	b.WriteString("\n")
	if fld == fieldTasks {
		b.WriteString(f.tasks.View())
	} else {
		b.WriteString(f.inputs[fld].View())
	}
	if f.err != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(f.err))
	}
	b.WriteString("\n")
	hint := "Enter → next    Esc → cancel"
	if fld == fieldTasks {
		hint = "Enter → new line    Ctrl+S → finish    Esc → cancel"
	}
	b.WriteString(hintStyle.Render(hint))
	return b.String()
}

// Run shows the form for every empty field of prefill and returns the
// completed values. Nothing is shown when prefill is already complete.
func Run(prefill Values, in io.Reader, out io.Writer) (Values, error) {
	form := NewForm(prefill)
	if form.Empty() {
		return prefill, nil
	}
	p := tea.NewProgram(form, tea.WithInput(in), tea.WithOutput(out))
	model, err := p.Run()
	if err != nil {
		return prefill, fmt.Errorf("tui: run form: %w", err)
	}
	final, ok := model.(*Form)
	if !ok {
		return prefill, fmt.Errorf("tui: unexpected model %T", model)
	}
	if final.Aborted() || !final.Done() {
		return final.Values(), ErrAborted
	}
	return final.Values(), nil
}
