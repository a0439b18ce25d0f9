package consume

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"interview-pipeline/internal/app"
	"interview-pipeline/internal/app/queue"
	"interview-pipeline/internal/config"
	"interview-pipeline/internal/logging"
)

var policyFile string

var Cmd = &cobra.Command{
	Use:   "consume",
	Short: "Process every job message on the queue",
	Long: `Run the pipeline for each job message the dispatcher submits.
A failed task is marked FAILED and the loop moves on to the next job.
Stops on SIGINT/SIGTERM.`,
	Run: func(cmd *cobra.Command, args []string) {
		os.Exit(run())
	},
}

func init() {
	Cmd.Flags().StringVarP(&policyFile, "policy", "p", "", "optional pipeline policy YAML file")
}

func run() int {
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	p, err := app.InitializePipeline(ctx, cfg, policy, logger)
	if err != nil {
		logger.Error("pipeline initialization failed", zap.Error(err))
		return 1
	}

	q := queue.NewKafkaQueue(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
	defer q.Close()

	logger.Info("worker consuming jobs",
		zap.Strings("brokers", cfg.KafkaBrokers),
		zap.String("topic", cfg.KafkaTopic))

	err = q.Consume(ctx, func(ctx context.Context, job queue.Job) error {
		logger.Info("picked up job",
			zap.String("jobID", job.ID),
			zap.String("taskID", job.TaskID))
		_, err := p.Execute(ctx, job.TaskID)
		return err
	})
	if err != nil && ctx.Err() == nil {
		logger.Error("consumer stopped", zap.Error(err))
		return 1
	}

	logger.Info("worker shut down")
	return 0
}
