// Package analysis drives a ProdSensor analysis run to completion:
// submit once, poll status at a fixed interval until a terminal state
// or the deadline, then fetch the report.
package analysis

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prodsensor/action/internal/api"
)

// Status is the server-authoritative state of a run.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusRunning  Status = "RUNNING"
	StatusComplete Status = "COMPLETE"
	StatusFailed   Status = "FAILED"
)

// RunStatus is one status observation. The controller only reads these;
// the server owns the lifecycle.
type RunStatus struct {
	Status Status `json:"status"`
	Error  string `json:"error,omitempty"`
}

// PollInterval is the fixed delay between status checks. Runs take
// minutes, so a constant short interval keeps the loop simple without
// meaningfully loading the service.
const PollInterval = 5 * time.Second

// Runner drives one analysis run against the API.
type Runner struct {
	client   *api.Client
	interval time.Duration
	timeout  time.Duration

	// Progress, when set, is called between polls with the elapsed time
	// and last observed state. Observation only; it never affects the
	// loop.
	Progress func(elapsed time.Duration, state Status)
}

// NewRunner creates a runner that gives up after timeout.
func NewRunner(client *api.Client, timeout time.Duration) *Runner {
	return &Runner{client: client, interval: PollInterval, timeout: timeout}
}

// submitResponse tolerates both identifier spellings the API has used.
type submitResponse struct {
	ID    string `json:"id"`
	RunID string `json:"run_id"`
}

// Submit starts a new analysis of repoURL and returns the run ID. The
// response may name the identifier "id" or "run_id"; it is normalized
// here and the ambiguity never leaves this function.
func (r *Runner) Submit(ctx context.Context, repoURL string) (string, error) {
	var resp submitResponse
	err := r.client.Do(ctx, http.MethodPost, "/v1/analyze/repo",
		map[string]string{"repo_url": repoURL}, &resp)
	if err != nil {
		return "", err
	}

	id := resp.RunID
	if id == "" {
		id = resp.ID
	}
	if id == "" {
		return "", &api.APIError{StatusCode: http.StatusOK,
			Detail: "submission response contained no run ID"}
	}
	return id, nil
}

// AwaitCompletion polls the run every interval until it completes,
// fails, or the runner's timeout elapses. COMPLETE returns the final
// status; FAILED returns a *FailedError carrying the server's message;
// exceeding the deadline returns a *TimeoutError. Unknown states keep
// polling so newer servers don't break older clients.
func (r *Runner) AwaitCompletion(ctx context.Context, runID string) (RunStatus, error) {
	start := time.Now()

	for {
		elapsed := time.Since(start)
		if elapsed > r.timeout {
			return RunStatus{}, &TimeoutError{After: r.timeout}
		}

		var status RunStatus
		err := r.client.Do(ctx, http.MethodGet, "/v1/runs/"+runID, nil, &status)
		if err != nil {
			return RunStatus{}, err
		}

		switch status.Status {
		case StatusComplete:
			return status, nil
		case StatusFailed:
			return status, &FailedError{Message: status.Error}
		}

		if r.Progress != nil {
			r.Progress(elapsed, status.Status)
		}

		select {
		case <-ctx.Done():
			return RunStatus{}, fmt.Errorf("polling run %s: %w", runID, ctx.Err())
		case <-time.After(r.interval):
		}
	}
}

// FetchReport retrieves the full report for a completed run.
func (r *Runner) FetchReport(ctx context.Context, runID string) (*Report, error) {
	var report Report
	err := r.client.Do(ctx, http.MethodGet, "/v1/runs/"+runID+"/report.json", nil, &report)
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// ReportURL returns the canonical link to a run's full report.
func (r *Runner) ReportURL(runID string) string {
	return r.client.BaseURL() + "/v1/runs/" + runID + "/report.json"
}
