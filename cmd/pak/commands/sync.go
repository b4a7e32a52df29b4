package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/pak/internal/app"
)

func (c *CLI) newSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Download the repository index into the local directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := c.newResolver(cmd)
			if err != nil {
				return err
			}
			out, err := r.output()
			if err != nil {
				return err
			}
			timeout, err := r.timeout()
			if err != nil {
				return err
			}

			return c.app.Sync(cmd.Context(), out, app.SyncOptions{
				RepoDir:  r.text(flagRepoDir, r.settings.RepoDir),
				LocalDir: r.text(flagLocalDir, r.settings.LocalDir),
				Timeout:  timeout,
			})
		},
	}
	addRepoDirFlag(cmd)
	addLocalDirFlag(cmd)
	addTimeoutFlag(cmd)
	return cmd
}
