// Package ghaction integrates with the GitHub Actions environment:
// event context, workflow-command log annotations, step outputs, and
// posting the analysis summary as a PR comment.
package ghaction

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// maxCommentLen keeps comments under GitHub's ~65536 hard limit with
// headroom.
const maxCommentLen = 60000

// commentTimeout bounds the single delivery call.
const commentTimeout = 30 * time.Second

// output is where workflow commands are written. Swapped in tests.
var output io.Writer = os.Stdout

// Context is the GitHub Actions environment of one invocation. Empty
// fields mean the action is running outside Actions (or the event does
// not apply); every consumer degrades to a no-op in that case.
type Context struct {
	Token      string
	Repository string
	EventName  string
	EventPath  string
	OutputPath string

	// APIBaseURL is the GitHub API endpoint; empty means
	// https://api.github.com.
	APIBaseURL string
}

// FromEnv reads the Actions context from the environment. GITHUB_API_URL
// is set by the runner and points at the instance's API on GitHub
// Enterprise.
func FromEnv() *Context {
	return &Context{
		Token:      os.Getenv("GITHUB_TOKEN"),
		Repository: os.Getenv("GITHUB_REPOSITORY"),
		EventName:  os.Getenv("GITHUB_EVENT_NAME"),
		EventPath:  os.Getenv("GITHUB_EVENT_PATH"),
		OutputPath: os.Getenv("GITHUB_OUTPUT"),
		APIBaseURL: os.Getenv("GITHUB_API_URL"),
	}
}

// prEvent is the slice of the event payload we care about.
type prEvent struct {
	PullRequest struct {
		Number int `json:"number"`
	} `json:"pull_request"`
}

// PRNumber returns the pull request number from the event payload, or 0
// when the invocation was not triggered by a pull request.
func (c *Context) PRNumber() int {
	if c.EventPath == "" {
		return 0
	}
	if c.EventName != "pull_request" && c.EventName != "pull_request_target" {
		return 0
	}

	data, err := os.ReadFile(c.EventPath)
	if err != nil {
		Debugf("read event file: %v", err)
		return 0
	}
	var event prEvent
	if err := json.Unmarshal(data, &event); err != nil {
		Debugf("parse event file: %v", err)
		return 0
	}
	return event.PullRequest.Number
}

// SetOutput writes a step output. Appends name=value to the
// GITHUB_OUTPUT file; falls back to the legacy set-output command when
// the file is not provided.
func (c *Context) SetOutput(name, value string) {
	if c.OutputPath == "" {
		fmt.Fprintf(output, "::set-output name=%s::%s\n", name, value)
		return
	}
	f, err := os.OpenFile(c.OutputPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		Warningf("write output %s: %v", name, err)
		return
	}
	defer f.Close()
	fmt.Fprintf(f, "%s=%s\n", name, value)
}

// PostSummary delivers the formatted summary as a PR comment. Delivery
// is best-effort: a non-PR trigger or missing token is a logged no-op,
// and any delivery failure is logged as a warning and swallowed — the
// run never fails because the comment could not be posted.
func (c *Context) PostSummary(ctx context.Context, body string) {
	number := c.PRNumber()
	if number == 0 {
		Debugf("not a PR context, skipping comment")
		return
	}
	if c.Token == "" {
		Warningf("GITHUB_TOKEN not available, skipping comment")
		return
	}

	if err := c.postComment(ctx, number, body); err != nil {
		Warningf("failed to post PR comment: %v", err)
		return
	}
	Infof("Posted analysis results to PR")
}

// postComment performs the single delivery call. Success is HTTP 201.
func (c *Context) postComment(ctx context.Context, number int, body string) error {
	if len(body) > maxCommentLen {
		body = body[:maxCommentLen] +
			"\n\n...(truncated: comment exceeded size limit)"
	}

	baseURL := c.APIBaseURL
	if baseURL == "" {
		baseURL = "https://api.github.com"
	}
	url := fmt.Sprintf("%s/repos/%s/issues/%d/comments",
		baseURL, c.Repository, number)

	payload, err := json.Marshal(map[string]string{"body": body})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url,
		bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: commentTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("GitHub API %d: %s", resp.StatusCode, respBody)
	}
	return nil
}

// Workflow-command annotations. Outside Actions these are still
// harmless plain lines in the log.

// Errorf logs an error-level annotation.
func Errorf(format string, args ...any) {
	fmt.Fprintf(output, "::error::"+format+"\n", args...)
}

// Warningf logs a warning-level annotation.
func Warningf(format string, args ...any) {
	fmt.Fprintf(output, "::warning::"+format+"\n", args...)
}

// Debugf logs a debug-level annotation (hidden unless step debug
// logging is enabled).
func Debugf(format string, args ...any) {
	fmt.Fprintf(output, "::debug::"+format+"\n", args...)
}

// Infof logs a plain line.
func Infof(format string, args ...any) {
	fmt.Fprintf(output, format+"\n", args...)
}

// Group opens a collapsible log group.
func Group(name string) {
	fmt.Fprintf(output, "::group::%s\n", name)
}

// EndGroup closes the current log group.
func EndGroup() {
	fmt.Fprintln(output, "::endgroup::")
}
