package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/pak/internal/app"
)

func (c *CLI) newInstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install <ids...>",
		Short: "Fetch, verify and install packages",
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
			timeout, err := r.timeout()
			if err != nil {
				return err
			}
			useCache, err := r.localCache()
			if err != nil {
				return err
			}
			jobs, err := r.jobs()
			if err != nil {
				return err
			}

			return c.app.Install(cmd.Context(), out, app.InstallOptions{
				RepoDir:  r.text(flagRepoDir, r.settings.RepoDir),
				LocalDir: r.text(flagLocalDir, r.settings.LocalDir),
				IDs:      args,
				UseCache: useCache,
				Timeout:  timeout,
				Jobs:     jobs,
			})
		},
	}
	addRepoDirFlag(cmd)
	addLocalDirFlag(cmd)
	addTimeoutFlag(cmd)
	cmd.Flags().Int(flagLocalCache, 1, "Reuse and keep downloaded archives in the local cache (0 or 1)")
	cmd.Flags().IntP(flagJobs, "j", 1, "Number of packages fetched in parallel")
	return cmd
}
