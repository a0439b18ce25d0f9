package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"interview-pipeline/cmd/worker/cmd/consume"
	"interview-pipeline/cmd/worker/cmd/export"
	"interview-pipeline/cmd/worker/cmd/process"
	"interview-pipeline/cmd/worker/cmd/version"
)

var Verbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "worker",
	Short: "Batch worker for the interview video ingestion pipeline",
	Long: `Batch worker for the interview video ingestion pipeline.
- process runs the five-stage pipeline for one task (TASK_ID from environment)
- consume runs the pipeline for every job message on the queue
- export writes a user's transcripts to a spreadsheet`,
	TraverseChildren: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(process.Cmd)
	rootCmd.AddCommand(consume.Cmd)
	rootCmd.AddCommand(export.Cmd)
	rootCmd.AddCommand(version.Cmd)

	rootCmd.PersistentFlags().BoolVarP(&Verbose, "verbose", "V", false, "verbose output")
}
