package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	// .env is a convenience for local invocations; CI sets real env.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "prodsensor-action",
		Short: "Production readiness analysis for CI pipelines",
		Long: "prodsensor-action submits a repository to ProdSensor for production\n" +
			"readiness analysis, waits for the result, posts a summary to the pull\n" +
			"request, and signals the outcome through its exit code.",
	}

	rootCmd.AddCommand(analyzeCmd())
	rootCmd.AddCommand(waitCmd())
	rootCmd.AddCommand(reportCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		// exitError carries a specific code without extra output
		if exitErr, ok := err.(*exitError); ok {
			os.Exit(exitErr.code)
		}
		os.Exit(1)
	}
}
