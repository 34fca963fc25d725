package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// clearInputs blanks every input the resolver reads so ambient CI
// environment can't leak into tests.
func clearInputs(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PRODSENSOR_API_KEY", "PRODSENSOR_API_URL",
		"INPUT_REPO_URL", "INPUT_FAIL_ON", "INPUT_COMMENT_ON_PR",
		"INPUT_TIMEOUT", "GITHUB_REPOSITORY",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		clearInputs(t)
		t.Setenv("PRODSENSOR_API_KEY", "key")

		cfg, err := Load(t.TempDir(), Overrides{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.APIURL != DefaultAPIURL {
			t.Errorf("APIURL = %q", cfg.APIURL)
		}
		if cfg.FailOn != FailOnNotReady {
			t.Errorf("FailOn = %q", cfg.FailOn)
		}
		if !cfg.CommentOnPR {
			t.Error("CommentOnPR should default to true")
		}
		if cfg.Timeout != DefaultTimeout {
			t.Errorf("Timeout = %v", cfg.Timeout)
		}
	})

	t.Run("missing API key fails fast", func(t *testing.T) {
		clearInputs(t)

		_, err := Load(t.TempDir(), Overrides{})
		if !errors.Is(err, ErrMissingAPIKey) {
			t.Fatalf("want ErrMissingAPIKey, got %v", err)
		}
	})

	t.Run("strips trailing slash from API URL", func(t *testing.T) {
		clearInputs(t)
		t.Setenv("PRODSENSOR_API_KEY", "key")
		t.Setenv("PRODSENSOR_API_URL", "https://example.com/")

		cfg, err := Load(t.TempDir(), Overrides{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.APIURL != "https://example.com" {
			t.Errorf("APIURL = %q", cfg.APIURL)
		}
	})

	t.Run("derives repo URL from GITHUB_REPOSITORY", func(t *testing.T) {
		clearInputs(t)
		t.Setenv("PRODSENSOR_API_KEY", "key")
		t.Setenv("GITHUB_REPOSITORY", "acme/api")

		cfg, err := Load(t.TempDir(), Overrides{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.RepoURL != "https://github.com/acme/api" {
			t.Errorf("RepoURL = %q", cfg.RepoURL)
		}
		if err := cfg.EnsureRepoURL(); err != nil {
			t.Errorf("EnsureRepoURL: %v", err)
		}
	})

	t.Run("explicit repo URL beats derivation", func(t *testing.T) {
		clearInputs(t)
		t.Setenv("PRODSENSOR_API_KEY", "key")
		t.Setenv("INPUT_REPO_URL", "https://github.com/other/repo")
		t.Setenv("GITHUB_REPOSITORY", "acme/api")

		cfg, err := Load(t.TempDir(), Overrides{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.RepoURL != "https://github.com/other/repo" {
			t.Errorf("RepoURL = %q", cfg.RepoURL)
		}
	})

	t.Run("no determinable repo URL", func(t *testing.T) {
		clearInputs(t)
		t.Setenv("PRODSENSOR_API_KEY", "key")

		cfg, err := Load(t.TempDir(), Overrides{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := cfg.EnsureRepoURL(); !errors.Is(err, ErrNoRepoURL) {
			t.Fatalf("want ErrNoRepoURL, got %v", err)
		}
	})

	t.Run("comment toggle parses input", func(t *testing.T) {
		clearInputs(t)
		t.Setenv("PRODSENSOR_API_KEY", "key")
		t.Setenv("INPUT_COMMENT_ON_PR", "False")

		cfg, err := Load(t.TempDir(), Overrides{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.CommentOnPR {
			t.Error("CommentOnPR should be false")
		}
	})

	t.Run("invalid timeout is rejected", func(t *testing.T) {
		clearInputs(t)
		t.Setenv("PRODSENSOR_API_KEY", "key")
		t.Setenv("INPUT_TIMEOUT", "soon")

		if _, err := Load(t.TempDir(), Overrides{}); err == nil {
			t.Fatal("expected error, got nil")
		}
	})

	t.Run("repo config supplies defaults under inputs", func(t *testing.T) {
		clearInputs(t)
		t.Setenv("PRODSENSOR_API_KEY", "key")

		dir := t.TempDir()
		repoToml := "[ci]\nfail_on = \"blockers\"\ntimeout_seconds = 120\ncomment_on_pr = false\n"
		if err := os.WriteFile(filepath.Join(dir, ".prodsensor.toml"), []byte(repoToml), 0644); err != nil {
			t.Fatal(err)
		}

		cfg, err := Load(dir, Overrides{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.FailOn != FailOnBlockers {
			t.Errorf("FailOn = %q, want blockers", cfg.FailOn)
		}
		if cfg.Timeout != 120*time.Second {
			t.Errorf("Timeout = %v", cfg.Timeout)
		}
		if cfg.CommentOnPR {
			t.Error("CommentOnPR should come from repo config")
		}
	})

	t.Run("env input beats repo config", func(t *testing.T) {
		clearInputs(t)
		t.Setenv("PRODSENSOR_API_KEY", "key")
		t.Setenv("INPUT_FAIL_ON", "never")

		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, ".prodsensor.toml"),
			[]byte("[ci]\nfail_on = \"blockers\"\n"), 0644); err != nil {
			t.Fatal(err)
		}

		cfg, err := Load(dir, Overrides{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.FailOn != FailNever {
			t.Errorf("FailOn = %q, want never", cfg.FailOn)
		}
	})

	t.Run("override beats everything", func(t *testing.T) {
		clearInputs(t)
		t.Setenv("PRODSENSOR_API_KEY", "key")
		t.Setenv("INPUT_FAIL_ON", "never")
		t.Setenv("INPUT_TIMEOUT", "30")

		cfg, err := Load(t.TempDir(), Overrides{FailOn: "blockers", Timeout: 900})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.FailOn != FailOnBlockers {
			t.Errorf("FailOn = %q, want blockers", cfg.FailOn)
		}
		if cfg.Timeout != 900*time.Second {
			t.Errorf("Timeout = %v", cfg.Timeout)
		}
	})

	t.Run("broken repo config falls back to defaults", func(t *testing.T) {
		clearInputs(t)
		t.Setenv("PRODSENSOR_API_KEY", "key")

		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, ".prodsensor.toml"),
			[]byte("not toml ["), 0644); err != nil {
			t.Fatal(err)
		}

		cfg, err := Load(dir, Overrides{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.FailOn != FailOnNotReady {
			t.Errorf("FailOn = %q", cfg.FailOn)
		}
	})
}
