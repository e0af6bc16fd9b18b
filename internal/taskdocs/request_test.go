package taskdocs

import "testing"

func TestChecklist(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		list  string
		count int
	}{
		{name: "empty", in: "", list: "- [ ] [Add tasks here]", count: 0},
		{name: "blank lines only", in: "\n  \n", list: "- [ ] [Add tasks here]", count: 0},
		{name: "single", in: "Write tests", list: "- [ ] Write tests", count: 1},
		{name: "blank lines skipped", in: "Do A\nDo B\n\nDo C", list: "- [ ] Do A\n- [ ] Do B\n- [ ] Do C", count: 3},
		{name: "trimmed", in: "  spaced  \r\n\tTabbed\t", list: "- [ ] spaced\n- [ ] Tabbed", count: 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			list, count := Checklist(tc.in)
			if list != tc.list {
				t.Fatalf("list = %q, want %q", list, tc.list)
			}
			if count != tc.count {
				t.Fatalf("count = %d, want %d", count, tc.count)
			}
		})
	}
}

func TestKindFileNames(t *testing.T) {
	want := map[Kind]string{
		KindPlan:    "my-task-plan.md",
		KindContext: "my-task-context.md",
		KindTasks:   "my-task-tasks.md",
	}
	for kind, name := range want {
		if got := kind.FileName("my-task"); got != name {
			t.Fatalf("%s file name = %s, want %s", kind, got, name)
		}
		if kind.Template() == "" {
			t.Fatalf("%s has no template", kind)
		}
	}
	if Kind("other").Template() != "" {
		t.Fatalf("unknown kind should have no template")
	}
}

func TestRequestValidate(t *testing.T) {
	if err := (Request{}).Validate(); err != ErrEmptyTaskName {
		t.Fatalf("expected ErrEmptyTaskName, got %v", err)
	}
	if err := (Request{TaskName: "x"}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
