package cli

import (
	"fmt"
	"strings"

	"todo-cli/internal/log"
	"todo-cli/internal/model"
	"todo-cli/internal/publish"

	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var to string
	var status string
	var title string
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export tasks as a Markdown checklist",
		Args:  cobra.NoArgs,
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

			ropt := publish.RenderOptions{Title: title, Filter: f}
			if strings.TrimSpace(to) == "" {
				_, err := fmt.Fprint(cmd.OutOrStdout(), publish.RenderMarkdown(l.Tasks(), ropt))
				return err
			}
			wr, err := publish.Write(l.Tasks(), to, publish.WriteOptions{RenderOptions: ropt, Overwrite: overwrite})
			if err != nil {
				return writeErr(cmd, err)
			}
			app.logger.WithValues(log.Kv{"path": wr.Written, "tasks": wr.Tasks}).Infof("exported tasks")
			if app.Format == "text" {
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d tasks to %s\n", wr.Tasks, wr.Written)
				return nil
			}
			return writeOut(cmd, app, wr)
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "Output file (default: stdout)")
	cmd.Flags().StringVar(&status, "status", string(model.FilterAll), "Filter (all|in-progress|done)")
	cmd.Flags().StringVar(&title, "title", "", "Document title")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing file")
	return cmd
}
