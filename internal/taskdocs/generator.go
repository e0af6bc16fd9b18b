package taskdocs

import (
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/afero"

	"github.com/kingrea/devdocs/internal/logging"
	"github.com/kingrea/devdocs/internal/slug"
	"github.com/kingrea/devdocs/internal/templates"
)

// DefaultTimestampFormat renders {TIMESTAMP} unless overridden.
const DefaultTimestampFormat = "2006-01-02 15:04:05"

// PlaceholderSource contributes extra placeholder values per document kind.
type PlaceholderSource interface {
	Placeholders(kind, taskName string) (map[string]string, error)
}

// EventType distinguishes progress notifications.
type EventType int

const (
	EventDirectoryCreated EventType = iota
	EventDocumentWritten
)

// Event reports one completed filesystem step.
type Event struct {
	Type EventType
	Kind Kind
	Path string
}

// Document is a rendered document ready to be written.
type Document struct {
	Kind    Kind
	Path    string
	Content string
}

// Name returns the document's file name.
func (d Document) Name() string {
	return filepath.Base(d.Path)
}

// Plan is the fully rendered output for one request.
type Plan struct {
	TaskName  string
	Slug      string
	TaskDir   string
	Timestamp string
	Documents []Document
}

// Document returns the rendered document of the given kind.
func (p *Plan) Document(kind Kind) (Document, bool) {
	for _, doc := range p.Documents {
		if doc.Kind == kind {
			return doc, true
		}
	}
	return Document{}, false
}

// Generator renders and writes task documents.
type Generator struct {
	fs              afero.Fs
	loader          *templates.Loader
	docsDir         string
	now             func() time.Time
	timestampFormat string
	placeholders    PlaceholderSource
	progress        func(Event)
	log             *logging.Logger
}

// Option customizes a Generator during construction.
type Option func(*Generator)

// WithClock overrides the clock used for {TIMESTAMP}.
func WithClock(clock func() time.Time) Option {
	return func(g *Generator) {
		if clock != nil {
			g.now = clock
		}
	}
}

// WithTimestampFormat overrides the Go layout used for {TIMESTAMP}.
func WithTimestampFormat(layout string) Option {
	return func(g *Generator) {
		if layout != "" {
			g.timestampFormat = layout
		}
	}
}

// WithPlaceholders adds a source of extra placeholder values.
func WithPlaceholders(source PlaceholderSource) Option {
	return func(g *Generator) {
		g.placeholders = source
	}
}

// WithProgress registers a callback invoked after each filesystem step.
func WithProgress(fn func(Event)) Option {
	return func(g *Generator) {
		g.progress = fn
	}
}

// WithLogger attaches a diagnostic logger.
func WithLogger(logger *logging.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.log = logger
		}
	}
}

// NewGenerator builds a generator that reads templates through loader and
// creates task directories under docsDir.
func NewGenerator(fsys afero.Fs, loader *templates.Loader, docsDir string, opts ...Option) *Generator {
	g := &Generator{
		fs:              fsys,
		loader:          loader,
		docsDir:         docsDir,
		now:             time.Now,
		timestampFormat: DefaultTimestampFormat,
		log:             logging.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// TaskDir returns the directory a task name maps to.
func (g *Generator) TaskDir(taskName string) string {
	return filepath.Join(g.docsDir, slug.Make(taskName))
}

// Render loads and fills every template without writing anything.
func (g *Generator) Render(req Request) (*Plan, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	s := slug.Make(req.TaskName)
	taskDir := filepath.Join(g.docsDir, s)
	plan := &Plan{
		TaskName:  req.TaskName,
		Slug:      s,
		TaskDir:   taskDir,
		Timestamp: g.now().Format(g.timestampFormat),
	}
	for _, kind := range Kinds() {
		tmpl, err := g.loader.Load(kind.Template())
		if err != nil {
			return nil, err
		}
		replacements, err := g.replacements(kind, req, plan.Timestamp)
		if err != nil {
			return nil, err
		}
		plan.Documents = append(plan.Documents, Document{
			Kind:    kind,
			Path:    filepath.Join(taskDir, kind.FileName(s)),
			Content: templates.Fill(tmpl, replacements),
		})
		g.log.Debugw("rendered document", "kind", kind, "template", g.loader.Path(kind.Template()))
	}
	return plan, nil
}

// Generate renders the request, creates the task directory and writes the
// three documents, overwriting existing files. Documents written before a
// failure are left in place.
func (g *Generator) Generate(req Request) (*Plan, error) {
	plan, err := g.Render(req)
	if err != nil {
		return nil, err
	}
	if err := g.CreateTaskDirectory(plan.TaskDir); err != nil {
		return plan, err
	}
	for _, doc := range plan.Documents {
		if err := g.WriteDocument(doc); err != nil {
			return plan, err
		}
	}
	return plan, nil
}

// CreateTaskDirectory creates dir and its parents. An existing directory is
// not an error.
func (g *Generator) CreateTaskDirectory(dir string) error {
	if err := g.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("taskdocs: create %s: %w", dir, err)
	}
	g.log.Debugw("task directory ready", "path", dir)
	g.emit(Event{Type: EventDirectoryCreated, Path: dir})
	return nil
}

// WriteDocument writes one rendered document, replacing any existing file.
func (g *Generator) WriteDocument(doc Document) error {
	if err := afero.WriteFile(g.fs, doc.Path, []byte(doc.Content), 0o644); err != nil {
		return fmt.Errorf("taskdocs: write %s: %w", doc.Path, err)
	}
	g.log.Debugw("wrote document", "kind", doc.Kind, "path", doc.Path, "bytes", len(doc.Content))
	g.emit(Event{Type: EventDocumentWritten, Kind: doc.Kind, Path: doc.Path})
	return nil
}

func (g *Generator) emit(ev Event) {
	if g.progress != nil {
		g.progress(ev)
	}
}

// replacements builds the map for one document. Hook values go in first so
// the built-in keys always win.
func (g *Generator) replacements(kind Kind, req Request, timestamp string) (templates.Replacements, error) {
	r := templates.Replacements{}
	if g.placeholders != nil {
		extra, err := g.placeholders.Placeholders(string(kind), req.TaskName)
		if err != nil {
			return nil, err
		}
		for k, v := range extra {
			r[k] = v
		}
	}
	r[templates.KeyTaskName] = req.TaskName
	r[templates.KeyTimestamp] = timestamp
	switch kind {
	case KindPlan:
		r[templates.KeyPlanOverview] = orDefault(req.Plan, DefaultPlanOverview)
		r[templates.KeyPlanSteps] = orDefault(req.Steps, DefaultPlanSteps)
		r[templates.KeySuccessCriteria] = orDefault(req.Criteria, DefaultSuccessCriteria)
	case KindTasks:
		list, total := Checklist(req.Tasks)
		r[templates.KeyTaskList] = list
		r[templates.KeyTotalTasks] = strconv.Itoa(total)
	}
	return r, nil
}
