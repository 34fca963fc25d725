// Package config resolves the action's configuration once at startup.
// Inputs come from the environment (action inputs) and command flags,
// with optional per-repo defaults from .prodsensor.toml; the resulting
// Config is passed explicitly to every component instead of being read
// from the environment in deep call paths.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultAPIURL is the hosted analysis service.
const DefaultAPIURL = "https://ps-production-5531.up.railway.app"

// DefaultTimeout is the overall polling budget.
const DefaultTimeout = 600 * time.Second

// Failure policies: the caller-selected rule mapping the analysis
// outcome to CI pass/fail.
const (
	FailNever      = "never"
	FailOnBlockers = "blockers"
	FailOnNotReady = "not-ready"
)

// ErrMissingAPIKey is returned when no API credential is configured.
// Classified as an auth failure (exit 4) without any network call.
var ErrMissingAPIKey = errors.New("PRODSENSOR_API_KEY is required")

// ErrNoRepoURL is returned when no target repository URL can be
// determined by any means. Classified as a generic API failure (exit 3).
var ErrNoRepoURL = errors.New("could not determine repository URL")

// Config holds every operation parameter for one invocation.
type Config struct {
	APIKey      string
	APIURL      string
	RepoURL     string
	FailOn      string
	CommentOnPR bool
	Timeout     time.Duration
}

// Overrides carries explicit command-line values. They take priority
// over environment inputs; zero values mean "not set".
type Overrides struct {
	APIURL  string
	RepoURL string
	FailOn  string
	Comment *bool
	Timeout int // seconds
}

// Load resolves the configuration with priority: flag override >
// action input (environment) > .prodsensor.toml in repoDir > built-in
// default. It fails fast on a missing API key, before any network call
// is possible.
func Load(repoDir string, ov Overrides) (*Config, error) {
	repoCfg, err := LoadRepoConfig(repoDir)
	if err != nil {
		// A broken repo config never aborts the run; inputs and
		// built-in defaults still apply.
		fmt.Fprintf(os.Stderr, "Warning: load repo config: %v\n", err)
	}

	cfg := &Config{
		APIKey: os.Getenv("PRODSENSOR_API_KEY"),
		APIURL: strings.TrimRight(
			firstOf(ov.APIURL, os.Getenv("PRODSENSOR_API_URL"), DefaultAPIURL), "/"),
		RepoURL:     firstOf(ov.RepoURL, os.Getenv("INPUT_REPO_URL")),
		FailOn:      resolveFailOn(ov.FailOn, os.Getenv("INPUT_FAIL_ON"), repoCfg),
		CommentOnPR: resolveComment(ov.Comment, os.Getenv("INPUT_COMMENT_ON_PR"), repoCfg),
	}

	cfg.Timeout, err = resolveTimeout(ov.Timeout, os.Getenv("INPUT_TIMEOUT"), repoCfg)
	if err != nil {
		return nil, err
	}

	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	// Derive the repo URL from the Actions context when not given.
	if cfg.RepoURL == "" {
		if repo := os.Getenv("GITHUB_REPOSITORY"); repo != "" {
			cfg.RepoURL = "https://github.com/" + repo
		}
	}

	return cfg, nil
}

// EnsureRepoURL reports ErrNoRepoURL when no target repository URL
// could be determined. Commands that submit a run call this before
// touching the network; run-ID commands (wait, report) don't need one.
func (c *Config) EnsureRepoURL() error {
	if c.RepoURL == "" {
		return ErrNoRepoURL
	}
	return nil
}

// firstOf returns the first non-empty value.
func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// resolveFailOn picks the failure policy. Unknown values are passed
// through; the exit classifier treats anything unrecognized as
// not-ready.
func resolveFailOn(override, input string, repoCfg *RepoConfig) string {
	if override != "" {
		return override
	}
	if input != "" {
		return input
	}
	if repoCfg != nil && repoCfg.CI.FailOn != "" {
		return repoCfg.CI.FailOn
	}
	return FailOnNotReady
}

// resolveComment picks the comment toggle, defaulting to on.
func resolveComment(override *bool, input string, repoCfg *RepoConfig) bool {
	if override != nil {
		return *override
	}
	if input != "" {
		return strings.EqualFold(input, "true")
	}
	if repoCfg != nil && repoCfg.CI.CommentOnPR != nil {
		return *repoCfg.CI.CommentOnPR
	}
	return true
}

// resolveTimeout picks the polling budget.
func resolveTimeout(override int, input string, repoCfg *RepoConfig) (time.Duration, error) {
	if override > 0 {
		return time.Duration(override) * time.Second, nil
	}
	if input != "" {
		secs, err := strconv.Atoi(input)
		if err != nil || secs <= 0 {
			return 0, fmt.Errorf("invalid INPUT_TIMEOUT %q: want positive seconds", input)
		}
		return time.Duration(secs) * time.Second, nil
	}
	if repoCfg != nil && repoCfg.CI.TimeoutSeconds > 0 {
		return time.Duration(repoCfg.CI.TimeoutSeconds) * time.Second, nil
	}
	return DefaultTimeout, nil
}
