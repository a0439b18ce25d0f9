package app

import (
	"context"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"interview-pipeline/internal/app/api"
	"interview-pipeline/internal/app/api/hfspace"
	openaiapi "interview-pipeline/internal/app/api/openai"
	"interview-pipeline/internal/app/audio"
	"interview-pipeline/internal/app/moderation"
	"interview-pipeline/internal/app/repository/pg"
	"interview-pipeline/internal/app/storage"
	"interview-pipeline/internal/config"
)

func providePostgres(cfg *config.Config) (*pg.PostgresDB, error) {
	return pg.NewPostgresDB(cfg.DatabaseURL)
}

func provideStore(cfg *config.Config) (*storage.MinioStore, error) {
	return storage.NewMinioStore(cfg)
}

func provideOpenAIClient(cfg *config.Config) *openai.Client {
	return openaiapi.NewClient(cfg.OpenAIAPIKey)
}

// provideDiarizer returns nil when no diarization token is configured;
// segments then stay without speaker labels.
func provideDiarizer(cfg *config.Config) api.Diarizer {
	if cfg.HFToken == "" || cfg.DiarizationEndpoint == "" {
		return nil
	}
	return hfspace.NewDiarizer(cfg.DiarizationEndpoint, cfg.HFToken)
}

func provideTranscriber(client *openai.Client, diarizer api.Diarizer, logger *zap.Logger) api.Transcriber {
	return openaiapi.NewWhisperTranscriber(client, diarizer, logger)
}

func provideSummarizer(client *openai.Client, policy config.PipelinePolicy, logger *zap.Logger) api.Summarizer {
	return openaiapi.NewChatSummarizer(client, policy.SummaryCharBudget, policy.MaxKeywords, logger)
}

func provideClassifier(ctx context.Context, cfg *config.Config) (moderation.Classifier, error) {
	return moderation.NewGeminiClassifier(ctx, cfg.GeminiAPIKey)
}

func provideExtractor(logger *zap.Logger) *audio.Extractor {
	return audio.NewExtractor(audio.NewExecRunner(), logger)
}

func provideModerator(extractor *audio.Extractor, classifier moderation.Classifier, policy config.PipelinePolicy, logger *zap.Logger) *moderation.Moderator {
	return moderation.NewModerator(extractor, classifier, policy, logger)
}
