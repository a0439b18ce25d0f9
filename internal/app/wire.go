//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"github.com/google/wire"
	"go.uber.org/zap"

	"interview-pipeline/internal/app/audio"
	"interview-pipeline/internal/app/moderation"
	"interview-pipeline/internal/app/pipeline"
	"interview-pipeline/internal/app/repository"
	"interview-pipeline/internal/app/repository/pg"
	"interview-pipeline/internal/app/storage"
	"interview-pipeline/internal/app/tracker"
	"interview-pipeline/internal/config"
)

// InitializePipeline wires the worker's processing pipeline from config.
func InitializePipeline(ctx context.Context, cfg *config.Config, policy config.PipelinePolicy, logger *zap.Logger) (*pipeline.Pipeline, error) {
	wire.Build(
		providePostgres,
		provideStore,
		provideOpenAIClient,
		provideDiarizer,
		provideTranscriber,
		provideSummarizer,
		provideClassifier,
		provideExtractor,
		provideModerator,
		tracker.NewStatusTracker,
		pipeline.New,
		wire.Bind(new(repository.DAO), new(*pg.PostgresDB)),
		wire.Bind(new(repository.TaskDAO), new(*pg.PostgresDB)),
		wire.Bind(new(storage.ObjectStore), new(*storage.MinioStore)),
		wire.Bind(new(pipeline.ModerationStage), new(*moderation.Moderator)),
		wire.Bind(new(pipeline.AudioStage), new(*audio.Extractor)),
	)
	return &pipeline.Pipeline{}, nil
}
