package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/prodsensor/action/internal/analysis"
	"github.com/prodsensor/action/internal/config"
	"github.com/prodsensor/action/internal/exitcode"
	"github.com/prodsensor/action/internal/ghaction"
)

// exitError is an error that signals a specific exit code
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}

// classified logs the failure at error level and converts it to the
// matching exit code. Every abort path goes through here so the reason
// is always in the log before the process exits.
func classified(err error) error {
	ghaction.Errorf("%v", err)
	return &exitError{code: exitcode.FromError(err)}
}

// logProgress is the between-polls progress line.
func logProgress(elapsed time.Duration, state analysis.Status) {
	minutes := int(elapsed.Minutes())
	seconds := int(elapsed.Seconds()) % 60
	ghaction.Infof("Status: %s (%dm %ds elapsed)", state, minutes, seconds)
}

// printResultBlock writes the fixed console summary between rules.
func printResultBlock(w io.Writer, report *analysis.Report, blockers, majors int) {
	rule := strings.Repeat("=", 50)
	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "VERDICT: %s\n", report.Verdict)
	fmt.Fprintf(w, "SCORE: %s/100\n", scoreOutput(report.Score))
	fmt.Fprintf(w, "BLOCKERS: %d\n", blockers)
	fmt.Fprintf(w, "MAJOR: %d\n", majors)
	fmt.Fprintln(w, rule)
}

// scoreOutput renders the score for outputs and logs; empty when the
// report carried none.
func scoreOutput(score *float64) string {
	if score == nil {
		return ""
	}
	return strings.TrimSuffix(fmt.Sprintf("%.1f", *score), ".0")
}

// announceExit classifies the outcome, logs the reason for any
// non-passing result, and returns the exitError to surface it (nil for
// a pass).
func announceExit(failOn string, verdict analysis.Verdict, blockers int) error {
	code := exitcode.Classify(failOn, verdict, blockers)
	switch code {
	case exitcode.Ready:
		return nil
	case exitcode.ConditionallyReady:
		ghaction.Warningf("Build warning: conditionally ready")
	default:
		if failOn == config.FailOnBlockers {
			ghaction.Errorf("Failing build: %d blocker(s) found", blockers)
		} else {
			ghaction.Errorf("Failing build: %s", verdict)
		}
	}
	return &exitError{code: code}
}
