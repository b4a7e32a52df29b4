package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/pak/internal/app"
)

func (c *CLI) newPkgBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pkg-build",
		Short: "Pack a package source directory into a .txz archive",
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

			return c.app.Build(cmd.Context(), out, app.BuildOptions{
				SourceDir:  r.text(flagPkgSourceDir, ""),
				OutputDir:  r.text(flagPkgOutputDir, ""),
				OutputFile: r.text(flagPkgOutputFilepath, ""),
			})
		},
	}
	cmd.Flags().String(flagPkgSourceDir, ".", "Package source directory containing pak.toml")
	cmd.Flags().String(flagPkgOutputDir, "", "Directory receiving <id>.txz (default: the source directory)")
	cmd.Flags().String(flagPkgOutputFilepath, "", "Archive path, exclusive with --pkg-output-dir")
	cmd.MarkFlagsMutuallyExclusive(flagPkgOutputDir, flagPkgOutputFilepath)
	return cmd
}
