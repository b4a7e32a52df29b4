// Package commands implements the CLI commands for pak.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/pak/internal/app"
	"go.trai.ch/pak/internal/build"
	"go.trai.ch/pak/internal/core/domain"
)

// CLI represents the command line interface for pak.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Settings() (domain.Settings, error)
	Sync(ctx context.Context, out app.Output, opts app.SyncOptions) error
	Install(ctx context.Context, out app.Output, opts app.InstallOptions) error
	Uninstall(ctx context.Context, out app.Output, opts app.UninstallOptions) error
	Build(ctx context.Context, out app.Output, opts app.BuildOptions) error
	Generate(ctx context.Context, out app.Output, opts app.GenerateOptions) error
	List(ctx context.Context, out app.Output, opts app.ListOptions) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "pak",
		Short:         "Build, publish and install packages from a repository",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().String(flagOutputType, string(domain.OutputText), "Message format: TEXT, JSON or JSON_0")
	rootCmd.PersistentFlags().Bool(flagVerbose, false, "Log debug diagnostics and operation timings to stderr")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newServerGenerateCmd())
	rootCmd.AddCommand(c.newListCmd())
	rootCmd.AddCommand(c.newSyncCmd())
	rootCmd.AddCommand(c.newInstallCmd())
	rootCmd.AddCommand(c.newUninstallCmd())
	rootCmd.AddCommand(c.newPkgBuildCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
