package main

import (
	"strconv"

	"github.com/prodsensor/action/internal/analysis"
	"github.com/prodsensor/action/internal/api"
	"github.com/prodsensor/action/internal/config"
	"github.com/prodsensor/action/internal/ghaction"
	"github.com/prodsensor/action/internal/summary"
	"github.com/spf13/cobra"
)

func analyzeCmd() *cobra.Command {
	var (
		repoURL string
		apiURL  string
		failOn  string
		timeout int
		comment bool
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run a full analysis and report the result",
		Long: `Run the full CI flow: submit an analysis run, poll until it
completes, fetch the report, print a summary, post it to the pull
request, and exit with the classified result.

Configuration comes from action inputs (PRODSENSOR_API_KEY,
INPUT_REPO_URL, INPUT_FAIL_ON, INPUT_COMMENT_ON_PR, INPUT_TIMEOUT) and
optional [ci] defaults in .prodsensor.toml; flags override both.

Exit codes:
  0  production ready
  1  not production ready
  2  conditionally ready
  3  API error
  4  authentication error
  5  analysis timed out`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			cmd.SilenceErrors = true

			ov := config.Overrides{
				RepoURL: repoURL,
				APIURL:  apiURL,
				FailOn:  failOn,
			}
			if cmd.Flags().Changed("timeout") {
				ov.Timeout = timeout
			}
			if cmd.Flags().Changed("comment") {
				ov.Comment = &comment
			}

			cfg, err := config.Load(".", ov)
			if err != nil {
				return classified(err)
			}
			if err := cfg.EnsureRepoURL(); err != nil {
				return classified(err)
			}

			return runAnalyze(cmd, cfg)
		},
	}

	cmd.Flags().StringVar(&repoURL, "repo-url", "", "repository URL to analyze (default: derived from GITHUB_REPOSITORY)")
	cmd.Flags().StringVar(&apiURL, "api-url", "", "analysis API base URL")
	cmd.Flags().StringVar(&failOn, "fail-on", "", "failure policy: never, blockers, not-ready")
	cmd.Flags().IntVar(&timeout, "timeout", 600, "polling timeout in seconds")
	cmd.Flags().BoolVar(&comment, "comment", true, "post the summary as a PR comment")

	return cmd
}

func runAnalyze(cmd *cobra.Command, cfg *config.Config) error {
	ctx := cmd.Context()
	gh := ghaction.FromEnv()
	runner := analysis.NewRunner(api.NewClient(cfg.APIURL, cfg.APIKey), cfg.Timeout)
	runner.Progress = logProgress

	ghaction.Group("Starting Analysis")
	ghaction.Infof("Starting analysis of %s", cfg.RepoURL)
	runID, err := runner.Submit(ctx, cfg.RepoURL)
	if err != nil {
		ghaction.EndGroup()
		return classified(err)
	}
	gh.SetOutput("run-id", runID)
	ghaction.Infof("Analysis started. Run ID: %s", runID)
	ghaction.EndGroup()

	ghaction.Group("Waiting for Analysis")
	if _, err := runner.AwaitCompletion(ctx, runID); err != nil {
		ghaction.EndGroup()
		return classified(err)
	}
	ghaction.EndGroup()

	ghaction.Group("Getting Report")
	report, err := runner.FetchReport(ctx, runID)
	if err != nil {
		ghaction.EndGroup()
		return classified(err)
	}
	ghaction.EndGroup()

	blockers := report.CountSeverity(analysis.SeverityBlocker)
	majors := report.CountSeverity(analysis.SeverityMajor)

	gh.SetOutput("verdict", string(report.Verdict))
	gh.SetOutput("score", scoreOutput(report.Score))
	gh.SetOutput("report-url", runner.ReportURL(runID))
	gh.SetOutput("blocker-count", strconv.Itoa(blockers))
	gh.SetOutput("major-count", strconv.Itoa(majors))

	printResultBlock(cmd.OutOrStdout(), report, blockers, majors)

	if cfg.CommentOnPR {
		gh.PostSummary(ctx, summary.Format(report, runID, cfg.APIURL))
	}

	return announceExit(cfg.FailOn, report.Verdict, blockers)
}
