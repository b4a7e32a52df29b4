package domain

import "time"

// Settings are the defaults applied to commands before flags are parsed.
type Settings struct {
	RepoDir    string
	LocalDir   string
	Timeout    time.Duration
	OutputType OutputType
	LocalCache bool
	Jobs       int
}

// DefaultSettings returns the settings used when no settings file exists.
func DefaultSettings() Settings {
	return Settings{
		Timeout:    DefaultTimeout,
		OutputType: OutputText,
		LocalCache: true,
		Jobs:       1,
	}
}
