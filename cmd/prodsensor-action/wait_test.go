package main

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func execWait(args ...string) (string, error) {
	cmd := waitCmd()
	cmd.SetArgs(args)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	err := cmd.Execute()
	return out.String(), err
}

func TestWaitCommand(t *testing.T) {
	complete := `{"status": "COMPLETE"}`

	t.Run("gates on an existing run", func(t *testing.T) {
		clearActionEnv(t)
		srv, _ := newAnalysisServer(t, complete,
			`{"verdict": "PRODUCTION_READY", "score": 95}`)
		t.Setenv("PRODSENSOR_API_KEY", "test-key")
		t.Setenv("PRODSENSOR_API_URL", srv.URL)

		out, err := execWait("run-42")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "PRODUCTION READY") {
			t.Errorf("output missing verdict: %q", out)
		}
	})

	t.Run("quiet suppresses output", func(t *testing.T) {
		clearActionEnv(t)
		srv, _ := newAnalysisServer(t, complete,
			`{"verdict": "PRODUCTION_READY"}`)
		t.Setenv("PRODSENSOR_API_KEY", "test-key")
		t.Setenv("PRODSENSOR_API_URL", srv.URL)

		out, err := execWait("run-42", "--quiet")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out != "" {
			t.Errorf("quiet run wrote output: %q", out)
		}
	})

	t.Run("classifies the outcome", func(t *testing.T) {
		clearActionEnv(t)
		srv, _ := newAnalysisServer(t, complete,
			`{"verdict": "NOT_PRODUCTION_READY", "findings": [{"severity": "Blocker"}]}`)
		t.Setenv("PRODSENSOR_API_KEY", "test-key")
		t.Setenv("PRODSENSOR_API_URL", srv.URL)

		_, err := execWait("run-42", "--quiet", "--fail-on", "blockers")
		if code := exitCodeOf(t, err); code != 1 {
			t.Errorf("exit code = %d, want 1", code)
		}
	})

	t.Run("times out on a run that never finishes", func(t *testing.T) {
		clearActionEnv(t)
		srv, _ := newAnalysisServer(t, `{"status": "RUNNING"}`, `{}`)
		t.Setenv("PRODSENSOR_API_KEY", "test-key")
		t.Setenv("PRODSENSOR_API_URL", srv.URL)
		t.Setenv("INPUT_TIMEOUT", "1")

		_, err := execWait("run-42", "--quiet")
		if code := exitCodeOf(t, err); code != 5 {
			t.Errorf("exit code = %d, want 5", code)
		}
	})

	t.Run("requires a run ID", func(t *testing.T) {
		clearActionEnv(t)
		if _, err := execWait(); err == nil {
			t.Fatal("expected usage error, got nil")
		}
	})
}

func TestReportCommand(t *testing.T) {
	t.Run("raw prints plain markdown", func(t *testing.T) {
		clearActionEnv(t)
		srv, _ := newAnalysisServer(t, `{"status": "COMPLETE"}`,
			`{"verdict": "PRODUCTION_READY", "score": 95}`)
		t.Setenv("PRODSENSOR_API_KEY", "test-key")
		t.Setenv("PRODSENSOR_API_URL", srv.URL)

		cmd := reportCmd()
		cmd.SetArgs([]string{"run-42", "--raw"})
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetErr(io.Discard)

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out.String(), "## :white_check_mark: ProdSensor Analysis") {
			t.Errorf("output missing markdown header: %q", out.String())
		}
		if !strings.Contains(out.String(), srv.URL+"/v1/runs/run-42/report.json") {
			t.Errorf("output missing report link: %q", out.String())
		}
	})

	t.Run("propagates fail-on policy", func(t *testing.T) {
		clearActionEnv(t)
		srv, _ := newAnalysisServer(t, `{"status": "COMPLETE"}`,
			`{"verdict": "NOT_PRODUCTION_READY"}`)
		t.Setenv("PRODSENSOR_API_KEY", "test-key")
		t.Setenv("PRODSENSOR_API_URL", srv.URL)

		cmd := reportCmd()
		cmd.SetArgs([]string{"run-42", "--raw", "--fail-on", "never"})
		cmd.SetOut(io.Discard)
		cmd.SetErr(io.Discard)
		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}
