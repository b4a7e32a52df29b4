package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/pak/internal/app"
)

func (c *CLI) newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the packages of a repository",
		Long: "List the packages of a repository. With --local-dir, installed packages " +
			"are marked and their versions compared with the repository.",
		Args: cobra.NoArgs,
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

			return c.app.List(cmd.Context(), out, app.ListOptions{
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
