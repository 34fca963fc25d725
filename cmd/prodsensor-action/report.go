package main

import (
	"github.com/prodsensor/action/internal/analysis"
	"github.com/prodsensor/action/internal/api"
	"github.com/prodsensor/action/internal/config"
	"github.com/prodsensor/action/internal/summary"
	"github.com/spf13/cobra"
)

func reportCmd() *cobra.Command {
	var (
		apiURL string
		failOn string
		raw    bool
	)

	cmd := &cobra.Command{
		Use:   "report <run-id>",
		Short: "Show the report for a completed run",
		Long: `Fetch and display the report for a completed analysis run. Rendered
for the terminal when attached to one, plain markdown otherwise
(or with --raw).

Exits with the same classification as analyze, so it can gate a
pipeline step on a previously completed run.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			cmd.SilenceErrors = true
			runID := args[0]

			cfg, err := config.Load(".", config.Overrides{APIURL: apiURL, FailOn: failOn})
			if err != nil {
				return classified(err)
			}

			runner := analysis.NewRunner(api.NewClient(cfg.APIURL, cfg.APIKey), cfg.Timeout)
			report, err := runner.FetchReport(cmd.Context(), runID)
			if err != nil {
				return classified(err)
			}

			markdown := summary.Format(report, runID, cfg.APIURL)
			if raw {
				cmd.Println(markdown)
			} else {
				cmd.Println(summary.VerdictLine(report.Verdict))
				summary.WriteTerminal(cmd.OutOrStdout(), markdown)
			}

			return announceExit(cfg.FailOn, report.Verdict,
				report.CountSeverity(analysis.SeverityBlocker))
		},
	}

	cmd.Flags().StringVar(&apiURL, "api-url", "", "analysis API base URL")
	cmd.Flags().StringVar(&failOn, "fail-on", "", "failure policy: never, blockers, not-ready")
	cmd.Flags().BoolVar(&raw, "raw", false, "print plain markdown without terminal rendering")

	return cmd
}
