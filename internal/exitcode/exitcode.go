// Package exitcode maps analysis outcomes and failures to the action's
// process exit codes.
package exitcode

import (
	"errors"

	"github.com/prodsensor/action/internal/analysis"
	"github.com/prodsensor/action/internal/api"
	"github.com/prodsensor/action/internal/config"
)

// Exit codes. CI pipelines key off these, so the values are contract.
const (
	Ready              = 0
	NotReady           = 1
	ConditionallyReady = 2
	APIError           = 3
	AuthError          = 4
	Timeout            = 5
)

// Classify maps the failure policy, verdict and blocker count to an
// exit code. Pure and total: unknown policies behave like not-ready,
// unknown verdicts like a not-ready verdict.
func Classify(failOn string, verdict analysis.Verdict, blockerCount int) int {
	switch failOn {
	case config.FailNever:
		return Ready
	case config.FailOnBlockers:
		if blockerCount > 0 {
			return NotReady
		}
		return Ready
	default: // not-ready
		switch verdict {
		case analysis.VerdictProductionReady:
			return Ready
		case analysis.VerdictConditionallyReady:
			return ConditionallyReady
		default:
			return NotReady
		}
	}
}

// FromError classifies a failure during configuration, submission,
// polling or report fetch. Typed errors are discriminated directly;
// anything unrecognized is a generic API failure.
func FromError(err error) int {
	var authErr *api.AuthError
	if errors.As(err, &authErr) || errors.Is(err, config.ErrMissingAPIKey) {
		return AuthError
	}
	var timeoutErr *analysis.TimeoutError
	if errors.As(err, &timeoutErr) {
		return Timeout
	}
	return APIError
}
