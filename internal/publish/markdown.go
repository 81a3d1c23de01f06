package publish

import (
	"bytes"
	"strings"

	"todo-cli/internal/model"
	"todo-cli/internal/tasks"
)

const defaultTitle = "To-Do"

type RenderOptions struct {
	// Title is the top-level heading. Empty means "To-Do".
	Title string
	// Filter limits which tasks are rendered.
	Filter model.Filter
}

// RenderMarkdown renders tasks as a GitHub-style checklist, grouped into
// "In progress" and "Done" sections in sorted order. Empty sections are
// omitted.
func RenderMarkdown(all []model.Task, opt RenderOptions) string {
	sorted := make([]model.Task, len(all))
	copy(sorted, all)
	tasks.Sort(sorted)
	visible := tasks.Filter(sorted, opt.Filter)

	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	title := strings.TrimSpace(opt.Title)
	if title == "" {
		title = defaultTitle
	}
	writeLn("# " + title)

	if len(visible) == 0 {
		writeLn("")
		writeLn("_No tasks._")
		return buf.String()
	}

	sections := []struct {
		heading string
		status  model.Status
	}{
		{"In progress", model.StatusInProgress},
		{"Done", model.StatusDone},
	}
	for _, sec := range sections {
		var lines []string
		for _, t := range visible {
			if t.Status == sec.status {
				lines = append(lines, checklistLine(t))
			}
		}
		if len(lines) == 0 {
			continue
		}
		writeLn("")
		writeLn("## " + sec.heading)
		writeLn("")
		for _, ln := range lines {
			writeLn(ln)
		}
	}
	return buf.String()
}

func checklistLine(t model.Task) string {
	box := "[ ]"
	if t.Done() {
		box = "[x]"
	}
	line := "- " + box + " " + escapeInline(t.Text)
	if due := strings.TrimSpace(t.Due); due != "" {
		line += " (due " + due + ")"
	}
	return line
}

// escapeInline keeps task text on one line and stops it from being read as
// markdown structure.
func escapeInline(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	r := strings.NewReplacer(`\`, `\\`, "*", `\*`, "_", `\_`, "`", "\\`", "[", `\[`, "]", `\]`)
	return r.Replace(s)
}
