package config

// SettingsFile represents the structure of the pak settings file (config.yaml).
type SettingsFile struct {
	RepoDir    string `yaml:"repo_dir"`
	LocalDir   string `yaml:"local_dir"`
	Timeout    string `yaml:"timeout"`
	OutputType string `yaml:"output_type"`
	LocalCache *bool  `yaml:"local_cache"`
	Jobs       int    `yaml:"jobs"`
}
