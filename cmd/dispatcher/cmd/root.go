package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"interview-pipeline/internal/app/dispatch"
	"interview-pipeline/internal/app/queue"
	"interview-pipeline/internal/app/storage"
	"interview-pipeline/internal/config"
	"interview-pipeline/internal/logging"
)

var policyFile string

var rootCmd = &cobra.Command{
	Use:   "dispatcher",
	Short: "Upload-event dispatcher for the video ingestion pipeline",
	Long: `Receives object-creation notifications over HTTP, validates the upload
key convention and object metadata, and submits one processing job per valid
event. Fire-and-forget: no retries.`,
	Run: func(cmd *cobra.Command, args []string) {
		os.Exit(run())
	},
}

func init() {
	rootCmd.Flags().StringVarP(&policyFile, "policy", "p", "", "optional pipeline policy YAML file")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
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

	store, err := storage.NewMinioStore(cfg)
	if err != nil {
		logger.Error("storage initialization failed", zap.Error(err))
		return 1
	}

	q := queue.NewKafkaQueue(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
	defer q.Close()

	// Deduplication is opt-in: it needs both the policy flag and a Redis
	// address. The default mirrors the historical at-most-one-attempt-per-
	// event behavior with no idempotency promise.
	var guard dispatch.Guard
	if redisGuard := dispatch.BuildGuard(policy.DispatchIdempotency, cfg.RedisAddr, cfg.RedisPassword); redisGuard != nil {
		defer redisGuard.Close()
		guard = redisGuard
		logger.Info("duplicate-event suppression enabled", zap.String("redis", cfg.RedisAddr))
	}

	dispatcher := dispatch.NewDispatcher(store, q, guard, cfg.UploadPrefix, cfg.DatabaseURL, cfg.HFToken, logger)
	server := dispatch.NewServer(dispatcher, logger)

	logger.Info("dispatcher listening", zap.String("addr", cfg.ListenAddr))
	if err := server.Run(cfg.ListenAddr); err != nil {
		logger.Error("server stopped", zap.Error(err))
		return 1
	}
	return 0
}
