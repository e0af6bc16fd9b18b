// Package cli wires the devdocs command line: flags, project discovery,
// configuration and the document generator.
package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/kingrea/devdocs/internal/config"
	"github.com/kingrea/devdocs/internal/hooks"
	"github.com/kingrea/devdocs/internal/logging"
	"github.com/kingrea/devdocs/internal/project"
	"github.com/kingrea/devdocs/internal/taskdocs"
	"github.com/kingrea/devdocs/internal/templates"
	"github.com/kingrea/devdocs/internal/tui"
)

// App holds the process dependencies the command runs against. Tests swap
// them for in-memory versions.
type App struct {
	FS     afero.Fs
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	Getwd      func() (string, error)
	Executable func() (string, error)
	Now        func() time.Time
	LoadEnv    func(filenames ...string) error
	Prompt     func(prefill tui.Values, in io.Reader, out io.Writer) (tui.Values, error)
}

// NewApp returns an App bound to the real process.
func NewApp(stdin io.Reader, stdout, stderr io.Writer) *App {
	return &App{
		FS:         afero.NewOsFs(),
		Stdin:      stdin,
		Stdout:     stdout,
		Stderr:     stderr,
		Getwd:      os.Getwd,
		Executable: os.Executable,
		Now:        time.Now,
		LoadEnv:    godotenv.Load,
		Prompt:     tui.Run,
	}
}

type options struct {
	projectRoot      string
	plan             string
	steps            string
	criteria         string
	tasks            string
	skillDir         string
	installTemplates bool
	interactive      bool
	dryRun           bool
	verbose          bool
	logFile          string
}

// Run executes the command with args (without the program name) and returns
// the process exit code.
func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	return NewApp(stdin, stdout, stderr).Run(args)
}

// Run executes the command and returns the process exit code.
func (a *App) Run(args []string) int {
	report := newReporter(a.Stdout, a.Stderr)
	cmd := a.newRootCommand(report)
	if args == nil {
		// cobra falls back to os.Args for a nil slice
		args = []string{}
	}
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		report.failure(err)
		return 1
	}
	return 0
}

// newRootCommand builds the devdocs command.
func (a *App) newRootCommand(report *reporter) *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "devdocs <task_name>",
		Short: "Initialize plan, context and task documents for a task",
		Long: `devdocs creates docs/dev/active/<slug>/ in the project root with three
documents filled from the skill's templates:

  <slug>-plan.md      the accepted implementation plan
  <slug>-context.md   key files, decisions and context
  <slug>-tasks.md     checklist of tasks to complete

The project root is the nearest ancestor directory containing .git, or the
current directory when there is none.`,
		Example: `  devdocs "Video Sharing Feature"
  devdocs "Login Flow" --plan "Rebuild login" --tasks "$(printf 'Design\nBuild\nShip')"
  devdocs --interactive`,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.execute(opts, args, report)
		},
	}
	cmd.SetIn(a.Stdin)
	cmd.SetOut(a.Stdout)
	cmd.SetErr(a.Stderr)

	flags := cmd.Flags()
	flags.StringVar(&opts.projectRoot, "project-root", "", "path to the project root directory (default: nearest .git ancestor)")
	flags.StringVar(&opts.plan, "plan", "", "plan overview")
	flags.StringVar(&opts.steps, "steps", "", "implementation steps")
	flags.StringVar(&opts.criteria, "criteria", "", "success criteria")
	flags.StringVar(&opts.tasks, "tasks", "", "task list (newline-separated)")
	flags.StringVar(&opts.skillDir, "skill-dir", "", "skill directory holding assets/templates (default: two levels above the binary)")
	flags.BoolVar(&opts.installTemplates, "install-templates", false, "write missing bundled templates into the skill directory first")
	flags.BoolVarP(&opts.interactive, "interactive", "i", false, "prompt for the task name and any missing plan fields")
	flags.BoolVar(&opts.dryRun, "dry-run", false, "show what would be written without touching the filesystem")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging on stderr")
	flags.StringVar(&opts.logFile, "log-file", "", "append diagnostic logs to this file")
	return cmd
}

func (a *App) execute(opts *options, args []string, report *reporter) error {
	// .env is optional, but a malformed one is not
	if a.LoadEnv != nil {
		if err := a.LoadEnv(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load .env: %w", err)
		}
	}

	req := taskdocs.Request{
		Plan:     opts.plan,
		Steps:    opts.steps,
		Criteria: opts.criteria,
		Tasks:    opts.tasks,
	}
	if len(args) == 1 {
		req.TaskName = args[0]
	}
	if req.TaskName == "" && !opts.interactive {
		return fmt.Errorf("the following arguments are required: task_name")
	}

	cwd, err := a.Getwd()
	if err != nil {
		return fmt.Errorf("determine working directory: %w", err)
	}
	root, err := project.NewResolver(a.FS).Resolve(opts.projectRoot, cwd)
	if err != nil {
		return err
	}
	cfg, err := config.NewConfig(a.FS, root)
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{
		Verbose:  opts.verbose,
		Level:    cfg.LogLevel,
		FilePath: opts.logFile,
		Console:  a.Stderr,
	})
	if err != nil {
		return err
	}
	defer logger.Close()
	logger.Debugw("resolved project", "root", root, "cwd", cwd, "config", cfg.ProjectConfigPath())

	skillDir, err := a.skillDir(opts.skillDir, cfg)
	if err != nil {
		return err
	}
	logger.Debugw("resolved skill directory", "path", skillDir)

	if opts.installTemplates && !opts.dryRun {
		written, err := templates.Install(a.FS, skillDir)
		if err != nil {
			return err
		}
		for _, path := range written {
			report.installed(path)
		}
	}

	if opts.interactive {
		values, err := a.Prompt(tui.Values{
			TaskName: req.TaskName,
			Plan:     req.Plan,
			Steps:    req.Steps,
			Criteria: req.Criteria,
			Tasks:    req.Tasks,
		}, a.Stdin, a.Stdout)
		if err != nil {
			return err
		}
		req = taskdocs.Request{
			TaskName: values.TaskName,
			Plan:     values.Plan,
			Steps:    values.Steps,
			Criteria: values.Criteria,
			Tasks:    values.Tasks,
		}
	}

	genOpts := []taskdocs.Option{
		taskdocs.WithClock(a.Now),
		taskdocs.WithTimestampFormat(cfg.TimestampFormat()),
		taskdocs.WithLogger(logger),
		taskdocs.WithProgress(report.progress),
	}
	if cfg.HooksEnabled() {
		set, err := hooks.LoadDir(a.FS, hooks.Dir(skillDir))
		if err != nil {
			return err
		}
		if set.Len() > 0 {
			logger.Debugw("loaded placeholder hooks", "paths", set.Paths())
			genOpts = append(genOpts, taskdocs.WithPlaceholders(set))
		}
	}
	gen := taskdocs.NewGenerator(a.FS, templates.NewLoader(a.FS, skillDir), cfg.DocsDir(), genOpts...)

	if opts.dryRun {
		plan, err := gen.Render(req)
		if err != nil {
			return err
		}
		report.dryRun(plan)
		return nil
	}

	plan, err := gen.Generate(req)
	if err != nil {
		return err
	}
	logger.Infow("task documentation initialized", "task", plan.TaskName, "dir", plan.TaskDir)
	report.summary(plan)
	return nil
}

// skillDir picks the first of: flag, DEVDOCS_SKILL_DIR or project config,
// then the directory two levels above the executable (<skill>/scripts/devdocs).
func (a *App) skillDir(flagValue string, cfg *config.Config) (string, error) {
	if dir := strings.TrimSpace(flagValue); dir != "" {
		return dir, nil
	}
	if dir := cfg.SkillDir(); dir != "" {
		return dir, nil
	}
	if a.Executable == nil {
		return "", errors.New("cannot determine skill directory: set --skill-dir or " + config.EnvSkillDir)
	}
	exe, err := a.Executable()
	if err != nil {
		return "", fmt.Errorf("locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(filepath.Dir(exe)), nil
}
