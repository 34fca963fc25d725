// Package summary formats an analysis report as a markdown document
// suitable for a GitHub PR comment, and renders it for terminals.
package summary

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/prodsensor/action/internal/analysis"
)

// maxBlockersShown caps the blocker listing; the remainder is
// summarized as a count.
const maxBlockersShown = 5

// maxDescriptionLen clips each blocker description.
const maxDescriptionLen = 200

// Format renders the report as a markdown PR comment. Pure function:
// identical inputs produce identical output (dimension rows are sorted
// by name).
func Format(report *analysis.Report, runID, apiURL string) string {
	var b strings.Builder

	emoji, text := verdictBadge(report.Verdict)
	fmt.Fprintf(&b, "## %s ProdSensor Analysis\n\n%s\n\n", emoji, text)
	fmt.Fprintf(&b, "**Score:** %s/100\n\n", scoreText(report.Score))

	b.WriteString("### Findings Summary\n")
	b.WriteString("| Severity | Count |\n")
	b.WriteString("|----------|-------|\n")
	fmt.Fprintf(&b, "| :rotating_light: Blockers | %d |\n",
		report.CountSeverity(analysis.SeverityBlocker))
	fmt.Fprintf(&b, "| :warning: Major | %d |\n",
		report.CountSeverity(analysis.SeverityMajor))
	fmt.Fprintf(&b, "| :information_source: Minor | %d |\n\n",
		report.CountSeverity(analysis.SeverityMinor))

	writeDimensions(&b, report.Dimensions)
	writeBlockers(&b, report.Blockers())

	fmt.Fprintf(&b, "\n---\n*Analyzed by [ProdSensor](https://prodsensor.com)"+
		" | [View Full Report](%s/v1/runs/%s/report.json)*",
		strings.TrimRight(apiURL, "/"), runID)

	return b.String()
}

// verdictBadge maps a verdict to its emoji marker and bolded label.
// Unrecognized verdicts get the generic unknown treatment rather than
// an error; the server may grow new verdict strings.
func verdictBadge(v analysis.Verdict) (emoji, text string) {
	switch v {
	case analysis.VerdictProductionReady:
		return ":white_check_mark:", "**PRODUCTION READY**"
	case analysis.VerdictNotProductionReady:
		return ":x:", "**NOT PRODUCTION READY**"
	case analysis.VerdictConditionallyReady:
		return ":warning:", "**CONDITIONALLY READY**"
	default:
		return ":grey_question:", "**UNKNOWN**"
	}
}

func scoreText(score *float64) string {
	if score == nil {
		return "N/A"
	}
	return strings.TrimSuffix(fmt.Sprintf("%.1f", *score), ".0")
}

// writeDimensions emits the dimension score table. Scores bucket into
// three bands: >=70 good, >=50 warn, below critical.
func writeDimensions(b *strings.Builder, dims map[string]analysis.Dimension) {
	if len(dims) == 0 {
		return
	}

	names := make([]string, 0, len(dims))
	for name := range dims {
		names = append(names, name)
	}
	sort.Strings(names)

	b.WriteString("### Dimension Scores\n")
	b.WriteString("| Dimension | Score | Status |\n")
	b.WriteString("|-----------|-------|--------|\n")
	for _, name := range names {
		score := dims[name].Score
		status := ":red_circle:"
		switch {
		case score >= 70:
			status = ":green_circle:"
		case score >= 50:
			status = ":yellow_circle:"
		}
		fmt.Fprintf(b, "| %s | %s | %s |\n",
			titleCase(name), scoreText(&score), status)
	}
}

// writeBlockers lists up to maxBlockersShown blockers with clipped
// descriptions, then a remainder count.
func writeBlockers(b *strings.Builder, blockers []analysis.Finding) {
	if len(blockers) == 0 {
		return
	}

	b.WriteString("\n### :rotating_light: Blockers (Must Fix)\n\n")
	for i, f := range blockers {
		if i == maxBlockersShown {
			break
		}
		title := f.Title
		if title == "" {
			title = "Untitled"
		}
		desc := clipRunes(f.Description, maxDescriptionLen)
		fmt.Fprintf(b, "- **%s**\n  %s\n\n", title, desc)
	}
	if rest := len(blockers) - maxBlockersShown; rest > 0 {
		fmt.Fprintf(b, "*...and %d more blockers*\n", rest)
	}
}

// clipRunes truncates s to at most n characters, never splitting a
// multibyte rune.
func clipRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// titleCase converts a snake_case dimension name to a display title
// ("error_handling" -> "Error Handling").
func titleCase(name string) string {
	words := strings.Split(strings.ReplaceAll(name, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
