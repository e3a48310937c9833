// Package types defines the data structures shared by the cleanup engine.
package types

// DefaultPattern is the filename every pattern set starts with.
const DefaultPattern = ".DS_Store"

type (
	// CleanConfig describes one cleanup invocation or monitor session.
	CleanConfig struct {
		RootDir    string   `json:"rootDir" yaml:"root_dir"`
		Patterns   []string `json:"patterns" yaml:"patterns"`
		IgnoreDirs []string `json:"ignoreDirs,omitempty" yaml:"ignore,omitempty"`
		DryRun     bool     `json:"dryRun" yaml:"dry_run"`
	}
)
