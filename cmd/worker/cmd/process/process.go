package process

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"interview-pipeline/internal/app"
	"interview-pipeline/internal/config"
	"interview-pipeline/internal/logging"
)

var policyFile string

var Cmd = &cobra.Command{
	Use:   "process",
	Short: "Run the processing pipeline for a single task",
	Long: `Run the five-stage pipeline for one task. The task identifier is read
from the TASK_ID environment variable, the way the batch scheduler passes it.
Exits 0 on success, 1 on any unrecovered failure.`,
	Run: func(cmd *cobra.Command, args []string) {
		os.Exit(run())
	},
}

func init() {
	Cmd.Flags().StringVarP(&policyFile, "policy", "p", "", "optional pipeline policy YAML file")
}

func run() int {
	taskID := os.Getenv("TASK_ID")
	if taskID == "" {
		fmt.Fprintln(os.Stderr, "missing required environment variable: TASK_ID")
		return 1
	}

	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		return 1
	}

	policy, err := config.LoadPolicy(policyFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "policy error: %v\n", err)
		return 1
	}

	logger := logging.MustNewLogger(cfg.Development)
	defer logger.Sync()

	ctx := context.Background()
	p, err := app.InitializePipeline(ctx, cfg, policy, logger)
	if err != nil {
		logger.Error("pipeline initialization failed", zap.Error(err))
		return 1
	}

	outcome, err := p.Execute(ctx, taskID)
	if err != nil {
		logger.Error("processing failed", zap.String("taskID", taskID), zap.Error(err))
		return 1
	}

	encoded, _ := json.MarshalIndent(outcome, "", "  ")
	fmt.Println(string(encoded))
	return 0
}
