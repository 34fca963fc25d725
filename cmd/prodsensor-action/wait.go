package main

import (
	"github.com/prodsensor/action/internal/analysis"
	"github.com/prodsensor/action/internal/api"
	"github.com/prodsensor/action/internal/config"
	"github.com/prodsensor/action/internal/summary"
	"github.com/spf13/cobra"
)

func waitCmd() *cobra.Command {
	var (
		apiURL  string
		failOn  string
		timeout int
		quiet   bool
	)

	cmd := &cobra.Command{
		Use:   "wait <run-id>",
		Short: "Wait for an already-submitted run to complete",
		Long: `Wait for an existing analysis run to complete, without submitting a
new one, then print the report summary and exit with the classified
result.

Useful when the run was submitted elsewhere (another job, the API
directly) and this step only needs to gate on the outcome.

Examples:
  prodsensor-action wait 7f3a1c
  prodsensor-action wait 7f3a1c --fail-on blockers --timeout 900`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			cmd.SilenceErrors = true
			runID := args[0]

			ov := config.Overrides{APIURL: apiURL, FailOn: failOn}
			if cmd.Flags().Changed("timeout") {
				ov.Timeout = timeout
			}
			cfg, err := config.Load(".", ov)
			if err != nil {
				return classified(err)
			}

			runner := analysis.NewRunner(api.NewClient(cfg.APIURL, cfg.APIKey), cfg.Timeout)
			if !quiet {
				runner.Progress = logProgress
				cmd.Printf("Waiting for analysis %s to complete...\n", runID)
			}

			ctx := cmd.Context()
			if _, err := runner.AwaitCompletion(ctx, runID); err != nil {
				return classified(err)
			}

			report, err := runner.FetchReport(ctx, runID)
			if err != nil {
				return classified(err)
			}

			if !quiet {
				cmd.Println(summary.VerdictLine(report.Verdict))
				summary.WriteTerminal(cmd.OutOrStdout(),
					summary.Format(report, runID, cfg.APIURL))
			}

			return announceExit(cfg.FailOn, report.Verdict,
				report.CountSeverity(analysis.SeverityBlocker))
		},
	}

	cmd.Flags().StringVar(&apiURL, "api-url", "", "analysis API base URL")
	cmd.Flags().StringVar(&failOn, "fail-on", "", "failure policy: never, blockers, not-ready")
	cmd.Flags().IntVar(&timeout, "timeout", 600, "polling timeout in seconds")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress output (exit code only)")

	return cmd
}
