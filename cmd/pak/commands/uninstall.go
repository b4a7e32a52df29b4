package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/pak/internal/app"
)

func (c *CLI) newUninstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "uninstall <ids...>",
		Short: "Remove installed packages",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := c.newResolver(cmd)
			if err != nil {
				return err
			}
			out, err := r.output()
			if err != nil {
				return err
			}

			return c.app.Uninstall(cmd.Context(), out, app.UninstallOptions{
				LocalDir: r.text(flagLocalDir, r.settings.LocalDir),
				IDs:      args,
			})
		},
	}
	addLocalDirFlag(cmd)
	return cmd
}
