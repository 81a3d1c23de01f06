package publish

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"todo-cli/internal/model"
)

func scenario() []model.Task {
	return []model.Task{
		{Text: "A", Status: model.StatusInProgress, Due: "2024-06-01"},
		{Text: "B", Status: model.StatusDone},
		{Text: "C *bold*", Status: model.StatusInProgress},
	}
}

func TestRenderMarkdown_GroupsAndSorts(t *testing.T) {
	t.Parallel()

	got := RenderMarkdown(scenario(), RenderOptions{})
	want := "" +
		"# To-Do\n" +
		"\n" +
		"## In progress\n" +
		"\n" +
		"- [ ] C \\*bold\\*\n" +
		"- [ ] A (due 2024-06-01)\n" +
		"\n" +
		"## Done\n" +
		"\n" +
		"- [x] B\n"
	if got != want {
		t.Fatalf("markdown mismatch:\nwant %q\ngot  %q", want, got)
	}
}

func TestRenderMarkdown_FilterAndEmpty(t *testing.T) {
	t.Parallel()

	got := RenderMarkdown(scenario(), RenderOptions{Title: "Finished", Filter: model.FilterDone})
	if strings.Contains(got, "In progress") || !strings.Contains(got, "- [x] B") {
		t.Fatalf("expected only done section:\n%s", got)
	}
	if !strings.HasPrefix(got, "# Finished\n") {
		t.Fatalf("expected custom title:\n%s", got)
	}

	empty := RenderMarkdown(nil, RenderOptions{})
	if !strings.Contains(empty, "_No tasks._") {
		t.Fatalf("expected empty marker:\n%s", empty)
	}
}

func TestRenderMarkdown_DoesNotReorderInput(t *testing.T) {
	t.Parallel()

	in := scenario()
	_ = RenderMarkdown(in, RenderOptions{})
	if in[0].Text != "A" || in[2].Text != "C *bold*" {
		t.Fatalf("input was reordered: %+v", in)
	}
}

func TestWrite_OverwriteGuard(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out", "tasks.md")
	res, err := Write(scenario(), path, WriteOptions{})
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if res.Written != path || res.Tasks != 3 {
		t.Fatalf("unexpected result: %+v", res)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(b), "- [x] B") {
		t.Fatalf("unexpected file content:\n%s", string(b))
	}

	if _, err := Write(scenario(), path, WriteOptions{}); err == nil {
		t.Fatalf("expected error without overwrite")
	}
	if _, err := Write(scenario(), path, WriteOptions{Overwrite: true}); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
}
