package commands

import (
	"time"

	"github.com/spf13/cobra"
	"go.trai.ch/pak/internal/app"
	"go.trai.ch/pak/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	flagOutputType        = "output-type"
	flagVerbose           = "verbose"
	flagRepoDir           = "repo-dir"
	flagLocalDir          = "local-dir"
	flagTimeout           = "timeout"
	flagLocalCache        = "local-cache"
	flagJobs              = "jobs"
	flagPkgSourceDir      = "pkg-source-dir"
	flagPkgOutputDir      = "pkg-output-dir"
	flagPkgOutputFilepath = "pkg-output-filepath"
)

// resolver reads flag values, falling back to the loaded settings for flags not set explicitly.
type resolver struct {
	cmd      *cobra.Command
	settings domain.Settings
}

func (c *CLI) newResolver(cmd *cobra.Command) (*resolver, error) {
	settings, err := c.app.Settings()
	if err != nil {
		return nil, err
	}
	return &resolver{cmd: cmd, settings: settings}, nil
}

func (r *resolver) text(name, fallback string) string {
	if !r.cmd.Flags().Changed(name) && fallback != "" {
		return fallback
	}
	v, _ := r.cmd.Flags().GetString(name)
	return v
}

func (r *resolver) timeout() (time.Duration, error) {
	if !r.cmd.Flags().Changed(flagTimeout) {
		return r.settings.Timeout, nil
	}
	v, _ := r.cmd.Flags().GetDuration(flagTimeout)
	if v <= 0 {
		return 0, zerr.With(domain.ErrInvalidTimeout, "timeout", v.String())
	}
	return v, nil
}

func (r *resolver) localCache() (bool, error) {
	if !r.cmd.Flags().Changed(flagLocalCache) {
		return r.settings.LocalCache, nil
	}
	v, _ := r.cmd.Flags().GetInt(flagLocalCache)
	switch v {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, zerr.With(domain.ErrInvalidLocalCache, "value", v)
	}
}

func (r *resolver) jobs() (int, error) {
	if !r.cmd.Flags().Changed(flagJobs) {
		return r.settings.Jobs, nil
	}
	v, _ := r.cmd.Flags().GetInt(flagJobs)
	if v < 1 {
		return 0, zerr.With(domain.ErrInvalidJobs, "jobs", v)
	}
	return v, nil
}

func (r *resolver) output() (app.Output, error) {
	t := r.settings.OutputType
	if r.cmd.Flags().Changed(flagOutputType) || t == "" {
		v, _ := r.cmd.Flags().GetString(flagOutputType)
		parsed, err := domain.ParseOutputType(v)
		if err != nil {
			return app.Output{}, zerr.With(err, "output_type", v)
		}
		t = parsed
	}
	verbose, _ := r.cmd.Flags().GetBool(flagVerbose)

	return app.Output{
		Writer:  r.cmd.OutOrStdout(),
		Type:    t,
		Verbose: verbose,
	}, nil
}

func addRepoDirFlag(cmd *cobra.Command) {
	cmd.Flags().String(flagRepoDir, "", "Repository location, a directory or an http(s) URL")
}

func addLocalDirFlag(cmd *cobra.Command) {
	cmd.Flags().String(flagLocalDir, "", "Local package directory")
}

func addTimeoutFlag(cmd *cobra.Command) {
	cmd.Flags().Duration(flagTimeout, domain.DefaultTimeout, "Timeout for each blocking step of a download")
}
