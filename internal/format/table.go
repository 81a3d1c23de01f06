package format

import (
	"fmt"
	"io"
	"text/tabwriter"

	"todo-cli/internal/model"
)

// TaskRow is one task as printed by the CLI. Position is 1-based in the
// sorted sequence and is what positional commands accept.
type TaskRow struct {
	Position int          `json:"position" yaml:"position"`
	Text     string       `json:"text" yaml:"text"`
	Status   model.Status `json:"status" yaml:"status"`
	Due      string       `json:"due" yaml:"due"`
}

// WriteTaskTable prints rows as an aligned table. Nothing is printed for an
// empty slice.
func WriteTaskTable(w io.Writer, rows []TaskRow) error {
	if len(rows) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tDONE\tDUE\tTASK")
	for _, r := range rows {
		done := "[ ]"
		if r.Status == model.StatusDone {
			done = "[x]"
		}
		due := r.Due
		if due == "" {
			due = "-"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", r.Position, done, due, r.Text)
	}
	return tw.Flush()
}
