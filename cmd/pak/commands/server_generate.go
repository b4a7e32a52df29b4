package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/pak/internal/app"
)

func (c *CLI) newServerGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server-generate",
		Short: "Write pak-index.json for a directory of package archives",
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

			return c.app.Generate(cmd.Context(), out, app.GenerateOptions{
				RepoDir: r.text(flagRepoDir, r.settings.RepoDir),
			})
		},
	}
	cmd.Flags().String(flagRepoDir, "", "Repository directory holding the .txz archives")
	return cmd
}
