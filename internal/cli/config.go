package cli

import (
	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Format == "text" {
				return toml.NewEncoder(cmd.OutOrStdout()).Encode(app.cfg)
			}
			return writeOut(cmd, app, app.cfg)
		},
	}
}
