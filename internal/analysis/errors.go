package analysis

import (
	"fmt"
	"time"
)

// FailedError is returned when the server reports the run itself failed.
type FailedError struct {
	Message string
}

func (e *FailedError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "unknown error"
	}
	return "analysis failed: " + msg
}

// TimeoutError is returned when the run stayed non-terminal past the
// caller's deadline. The remote run may still be executing; no
// cancellation is issued server-side.
type TimeoutError struct {
	After time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("analysis timed out after %ds", int(e.After.Seconds()))
}
