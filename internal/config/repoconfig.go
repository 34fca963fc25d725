package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// RepoConfig holds per-repo defaults from .prodsensor.toml. Explicit
// action inputs always win over these.
type RepoConfig struct {
	CI CISection `toml:"ci"`
}

// CISection is the [ci] table of .prodsensor.toml.
type CISection struct {
	FailOn         string `toml:"fail_on"`
	CommentOnPR    *bool  `toml:"comment_on_pr"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// LoadRepoConfig reads .prodsensor.toml from repoDir. A missing file is
// not an error; it simply yields no repo-level defaults.
func LoadRepoConfig(repoDir string) (*RepoConfig, error) {
	path := filepath.Join(repoDir, ".prodsensor.toml")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}

	var cfg RepoConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
