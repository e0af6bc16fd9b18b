package templates

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func TestLoadReadsFromAssetsTemplates(t *testing.T) {
	fsys := afero.NewMemMapFs()
	path := filepath.Join("/skill", "assets", "templates", PlanTemplate)
	require.NoError(t, afero.WriteFile(fsys, path, []byte("# {TASK_NAME}\n"), 0o644))

	loader := NewLoader(fsys, "/skill")
	require.Equal(t, path, loader.Path(PlanTemplate))

	content, err := loader.Load(PlanTemplate)
	require.NoError(t, err)
	require.Equal(t, "# {TASK_NAME}\n", content)
}

func TestLoadMissingTemplate(t *testing.T) {
	loader := NewLoader(afero.NewMemMapFs(), "/skill")
	_, err := loader.Load(TasksTemplate)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrTemplateNotFound))

	var notFound *NotFoundError
	require.True(t, errors.As(err, &notFound))
	require.Equal(t, loader.Path(TasksTemplate), notFound.Path)
	require.True(t, strings.HasPrefix(err.Error(), "Template not found: "))
}

func TestFillReplacesEveryOccurrence(t *testing.T) {
	got := Fill("{TASK_NAME} / {TASK_NAME} at {TIMESTAMP}", Replacements{
		KeyTaskName:  "Login",
		KeyTimestamp: "2024-01-02 03:04:05",
	})
	require.Equal(t, "Login / Login at 2024-01-02 03:04:05", got)
}

func TestFillLeavesUnknownPlaceholders(t *testing.T) {
	got := Fill("{TASK_NAME} {UNKNOWN} {not a key} {", Replacements{KeyTaskName: "x"})
	require.Equal(t, "x {UNKNOWN} {not a key} {", got)
}

func TestFillDoesNotExpandOwnValue(t *testing.T) {
	got := Fill("{TASK_NAME}", Replacements{KeyTaskName: "{TASK_NAME} again"})
	require.Equal(t, "{TASK_NAME} again", got)
}

func TestFillDoesNotExpandOtherKeys(t *testing.T) {
	got := Fill("{PLAN_OVERVIEW} {TASK_NAME} {TASK_LIST}", Replacements{
		KeyPlanOverview: "{TASK_NAME}",
		KeyTaskName:     "x",
		KeyTaskList:     "- [ ] stamp {TIMESTAMP}",
		KeyTimestamp:    "2024-03-09 14:05:06",
	})
	require.Equal(t, "{TASK_NAME} x - [ ] stamp {TIMESTAMP}", got)
}

func TestFillEmptyReplacements(t *testing.T) {
	require.Equal(t, "{A} b", Fill("{A} b", nil))
}

func TestBundledTemplatesCarryPlaceholderContract(t *testing.T) {
	expect := map[string][]string{
		PlanTemplate:    {KeyTaskName, KeyTimestamp, KeyPlanOverview, KeyPlanSteps, KeySuccessCriteria},
		ContextTemplate: {KeyTaskName, KeyTimestamp},
		TasksTemplate:   {KeyTaskName, KeyTimestamp, KeyTotalTasks, KeyTaskList},
	}
	for name, keys := range expect {
		content, err := Bundled(name)
		require.NoError(t, err)
		for _, key := range keys {
			require.Contains(t, content, "{"+key+"}", "%s missing %s", name, key)
		}
	}
}

func TestInstallWritesOnlyMissingTemplates(t *testing.T) {
	fsys := afero.NewMemMapFs()
	custom := filepath.Join(Dir("/skill"), ContextTemplate)
	require.NoError(t, afero.WriteFile(fsys, custom, []byte("custom"), 0o644))

	written, err := Install(fsys, "/skill")
	require.NoError(t, err)
	require.ElementsMatch(t, []string{
		filepath.Join(Dir("/skill"), PlanTemplate),
		filepath.Join(Dir("/skill"), TasksTemplate),
	}, written)

	kept, err := afero.ReadFile(fsys, custom)
	require.NoError(t, err)
	require.Equal(t, "custom", string(kept))

	again, err := Install(fsys, "/skill")
	require.NoError(t, err)
	require.Empty(t, again)
}

func TestInstallRequiresSkillDir(t *testing.T) {
	_, err := Install(afero.NewMemMapFs(), "")
	require.Error(t, err)
}
