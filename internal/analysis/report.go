package analysis

// Verdict is the server's overall readiness classification for a run.
type Verdict string

const (
	VerdictProductionReady    Verdict = "PRODUCTION_READY"
	VerdictNotProductionReady Verdict = "NOT_PRODUCTION_READY"
	VerdictConditionallyReady Verdict = "CONDITIONALLY_READY"
	VerdictUnknown            Verdict = "UNKNOWN"
)

// Finding severities counted by the summary. Matching is exact: any
// other severity string is excluded from all counts.
const (
	SeverityBlocker = "Blocker"
	SeverityMajor   = "Major"
	SeverityMinor   = "Minor"
)

// Finding is one reported issue.
type Finding struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
}

// Dimension is a named sub-score within the report.
type Dimension struct {
	Score float64 `json:"score"`
}

// Report is the full analysis result for a completed run. Immutable
// once fetched.
type Report struct {
	Verdict    Verdict              `json:"verdict"`
	Score      *float64             `json:"score"`
	Findings   []Finding            `json:"findings"`
	Dimensions map[string]Dimension `json:"dimensions"`
}

// CountSeverity returns the number of findings whose severity exactly
// matches sev.
func (r *Report) CountSeverity(sev string) int {
	n := 0
	for _, f := range r.Findings {
		if f.Severity == sev {
			n++
		}
	}
	return n
}

// Blockers returns the findings with severity Blocker, in report order.
func (r *Report) Blockers() []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Severity == SeverityBlocker {
			out = append(out, f)
		}
	}
	return out
}
