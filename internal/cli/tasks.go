package cli

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"todo-cli/internal/format"
	"todo-cli/internal/model"
	"todo-cli/internal/tasks"

	"github.com/spf13/cobra"
)

func newAddCmd(app *App) *cobra.Command {
	var due string

	cmd := &cobra.Command{
		Use:   "add <text...>",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, s, res, err := openList(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()
			warnRecovered(cmd, res.Warning)

			t, err := l.Add(cmd.Context(), strings.Join(args, " "), due)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeTasks(cmd, app, rowsOut(findRow(l, t.ID)))
		},
	}

	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")
	return cmd
}

func newListCmd(app *App) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks (unfinished first, then by due date)",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, ok := model.ParseFilter(status)
			if !ok {
				return writeErr(cmd, fmt.Errorf("invalid --status %q (want all|in-progress|done)", status))
			}

			l, s, res, err := openList(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()
			warnRecovered(cmd, res.Warning)

			rows := rowsOut(l.View(f))
			if app.Format == "text" && len(rows) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No tasks.")
				return nil
			}
			return writeTasks(cmd, app, rows)
		},
	}

	cmd.Flags().StringVar(&status, "status", string(model.FilterAll), "Filter (all|in-progress|done)")
	return cmd
}

func newToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <n>",
		Short: "Toggle a task between in-progress and done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, s, res, err := openList(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()
			warnRecovered(cmd, res.Warning)

			row, err := resolvePosition(l, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := l.Toggle(cmd.Context(), row.Index); err != nil {
				return writeErr(cmd, err)
			}
			return writeTasks(cmd, app, rowsOut(findRow(l, row.Task.ID)))
		},
	}
}

func newEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <n> <text...>",
		Short: "Replace a task's text",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, s, res, err := openList(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()
			warnRecovered(cmd, res.Warning)

			row, err := resolvePosition(l, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			// Empty text leaves the task unchanged.
			if err := l.Edit(cmd.Context(), row.Index, strings.Join(args[1:], " ")); err != nil {
				return writeErr(cmd, err)
			}
			return writeTasks(cmd, app, rowsOut(findRow(l, row.Task.ID)))
		},
	}
}

func newRmCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm <n>",
		Aliases: []string{"delete"},
		Short:   "Delete a task (asks for confirmation)",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, s, res, err := openList(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()
			warnRecovered(cmd, res.Warning)

			row, err := resolvePosition(l, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if !yes && !confirm(cmd, fmt.Sprintf("Delete task %q? [y/N] ", row.Task.Text)) {
				fmt.Fprintln(cmd.ErrOrStderr(), "Aborted.")
				return nil
			}
			deleted := rowsOut([]tasks.Row{row})
			if err := l.Delete(cmd.Context(), row.Index); err != nil {
				return writeErr(cmd, err)
			}
			if app.Format == "text" {
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted: %s\n", row.Task.Text)
				return nil
			}
			return writeOut(cmd, app, deleted[0])
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

// confirm asks prompt on stderr and reads one line from stdin. Only y/yes
// (any case) confirms.
func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprint(cmd.ErrOrStderr(), prompt)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// resolvePosition maps a 1-based position in the sorted sequence to its row.
func resolvePosition(l *tasks.List, arg string) (tasks.Row, error) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return tasks.Row{}, fmt.Errorf("invalid position %q: must be a number", arg)
	}
	rows := l.View(model.FilterAll)
	if n < 1 || n > len(rows) {
		return tasks.Row{}, errPosition(n, len(rows))
	}
	return rows[n-1], nil
}

// findRow returns the (single) row for id in the sorted sequence.
func findRow(l *tasks.List, id string) []tasks.Row {
	for _, r := range l.View(model.FilterAll) {
		if r.Task.ID == id {
			return []tasks.Row{r}
		}
	}
	return nil
}

func rowsOut(rows []tasks.Row) []format.TaskRow {
	out := make([]format.TaskRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, format.TaskRow{
			Position: r.Index + 1,
			Text:     r.Task.Text,
			Status:   r.Task.Status,
			Due:      r.Task.Due,
		})
	}
	return out
}

func writeTasks(cmd *cobra.Command, app *App, rows []format.TaskRow) error {
	if app.Format == "text" {
		return format.WriteTaskTable(cmd.OutOrStdout(), rows)
	}
	return writeOut(cmd, app, rows)
}

func warnRecovered(cmd *cobra.Command, warning string) {
	if strings.TrimSpace(warning) != "" {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning: "+warning)
	}
}
