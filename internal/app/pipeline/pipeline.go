package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"interview-pipeline/internal/app/api"
	"interview-pipeline/internal/app/metrics"
	"interview-pipeline/internal/app/model"
	"interview-pipeline/internal/app/moderation"
	"interview-pipeline/internal/app/repository"
	"interview-pipeline/internal/app/storage"
	"interview-pipeline/internal/app/tracker"
)

// ModerationStage is the moderation step as the pipeline sees it. Internal
// stage errors are already resolved into a verdict by the implementation.
type ModerationStage interface {
	Moderate(ctx context.Context, videoPath string) moderation.Verdict
}

// AudioStage covers the ffmpeg work the pipeline needs.
type AudioStage interface {
	ExtractWav(ctx context.Context, videoPath string) (string, error)
	Duration(ctx context.Context, path string) (int, error)
}

// Outcome is the terminal result of one pipeline run. A moderation rejection
// is an Outcome, not an error.
type Outcome struct {
	Status       string `json:"status"`
	Reason       string `json:"reason,omitempty"`
	UserMediaID  string `json:"userMediaId,omitempty"`
	TranscriptID string `json:"transcriptId,omitempty"`
	Keywords     int    `json:"keywordsCount"`
}

const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
)

// Pipeline drives the five processing stages for a single task, in fixed
// order, one task at a time.
type Pipeline struct {
	store       storage.ObjectStore
	dao         repository.DAO
	tracker     *tracker.StatusTracker
	moderator   ModerationStage
	audio       AudioStage
	transcriber api.Transcriber
	summarizer  api.Summarizer
	workDir     string
	logger      *zap.Logger
}

func New(
	store storage.ObjectStore,
	dao repository.DAO,
	statusTracker *tracker.StatusTracker,
	moderator ModerationStage,
	audioStage AudioStage,
	transcriber api.Transcriber,
	summarizer api.Summarizer,
	logger *zap.Logger,
) *Pipeline {
	return &Pipeline{
		store:       store,
		dao:         dao,
		tracker:     statusTracker,
		moderator:   moderator,
		audio:       audioStage,
		transcriber: transcriber,
		summarizer:  summarizer,
		workDir:     os.TempDir(),
		logger:      logger,
	}
}

// Execute runs the pipeline and converts any unhandled error into a FAILED
// task before propagating it to the caller.
func (p *Pipeline) Execute(ctx context.Context, taskID string) (*Outcome, error) {
	outcome, err := p.run(ctx, taskID)
	if err != nil {
		p.tracker.Update(ctx, taskID, model.TaskStatusFailed, model.StepProcessing, err.Error())
		metrics.TasksCompleted.WithLabelValues("failed").Inc()
		return nil, err
	}
	if outcome.Status == OutcomeRejected {
		metrics.TasksCompleted.WithLabelValues("rejected").Inc()
	} else {
		metrics.TasksCompleted.WithLabelValues("completed").Inc()
	}
	return outcome, nil
}

func (p *Pipeline) run(ctx context.Context, taskID string) (*Outcome, error) {
	p.logger.Info("starting video processing", zap.String("taskID", taskID))

	payload, err := p.dao.GetPayload(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("load task payload: %w", err)
	}

	p.logger.Info("processing video",
		zap.String("bucket", payload.Bucket),
		zap.String("key", payload.VideoKey),
		zap.String("userID", payload.UserID))

	videoPath := filepath.Join(p.workDir, filepath.Base(payload.VideoKey))
	if err := p.store.Download(ctx, payload.Bucket, payload.VideoKey, videoPath); err != nil {
		p.tracker.Update(ctx, taskID, model.TaskStatusFailed, model.StepUploadComplete, err.Error())
		return nil, err
	}

	// Stage 1: content moderation.
	p.tracker.Update(ctx, taskID, model.TaskStatusProcessing, model.StepModeration, "")
	verdict := p.timedModeration(ctx, videoPath)

	if !verdict.Accepted {
		p.logger.Error("video rejected", zap.String("reason", verdict.Message))
		p.tracker.Update(ctx, taskID, model.TaskStatusFailed, model.StepModeration, verdict.Message)
		return &Outcome{Status: OutcomeRejected, Reason: verdict.Message}, nil
	}
	p.logger.Info("moderation passed", zap.String("message", verdict.Message))

	// The media record exists only for content that passed moderation.
	media := model.NewMediaRecord(uuid.New().String(), payload)
	if media.Duration == 0 {
		if duration, err := p.audio.Duration(ctx, videoPath); err == nil {
			media.Duration = duration
		}
	}
	if err := p.dao.InsertMedia(ctx, media); err != nil {
		return nil, err
	}
	p.logger.Info("media record created", zap.String("mediaID", media.ID))

	// Stage 2: audio extraction.
	p.tracker.Update(ctx, taskID, model.TaskStatusProcessing, model.StepAudioExtraction, "")
	start := time.Now()
	audioPath, err := p.audio.ExtractWav(ctx, videoPath)
	if err != nil {
		return nil, err
	}
	metrics.StageDuration.WithLabelValues("audio_extraction").Observe(time.Since(start).Seconds())

	// Stage 3: transcription.
	p.tracker.Update(ctx, taskID, model.TaskStatusProcessing, model.StepTranscription, "")
	start = time.Now()
	result, err := p.transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		return nil, err
	}
	metrics.StageDuration.WithLabelValues("transcription").Observe(time.Since(start).Seconds())

	// Stage 4: summarization. Failure degrades to a placeholder; the run
	// still reaches persistence.
	p.tracker.Update(ctx, taskID, model.TaskStatusProcessing, model.StepSummarization, "")
	start = time.Now()
	text := result.FullText()
	summary, keywords, err := p.summarizer.Summarize(ctx, text)
	if err != nil {
		p.logger.Error("summarization failed", zap.Error(err))
		summary = api.FallbackSummary
		keywords = nil
	}
	metrics.StageDuration.WithLabelValues("summarization").Observe(time.Since(start).Seconds())

	// Stage 5: persistence.
	transcript := model.TranscriptRecord{
		ID:              uuid.New().String(),
		MediaID:         media.ID,
		Text:            text,
		Status:          model.TranscriptStatusCompleted,
		IsCurrent:       true,
		Summary:         summary,
		Keywords:        keywords,
		SpeakerMappings: result.DefaultSpeakerMappings(),
		RawSegments:     result.Segments,
	}
	if err := p.dao.InsertTranscript(ctx, transcript); err != nil {
		return nil, err
	}
	p.logger.Info("transcript saved", zap.String("transcriptID", transcript.ID))

	p.cleanup(videoPath, audioPath)

	p.tracker.Update(ctx, taskID, model.TaskStatusCompleted, model.StepSummarization, "")
	p.logger.Info("processing complete", zap.String("taskID", taskID))

	return &Outcome{
		Status:       OutcomeSuccess,
		UserMediaID:  media.ID,
		TranscriptID: transcript.ID,
		Keywords:     len(keywords),
	}, nil
}

func (p *Pipeline) timedModeration(ctx context.Context, videoPath string) moderation.Verdict {
	start := time.Now()
	verdict := p.moderator.Moderate(ctx, videoPath)
	metrics.StageDuration.WithLabelValues("moderation").Observe(time.Since(start).Seconds())
	return verdict
}

func (p *Pipeline) cleanup(paths ...string) {
	for _, path := range paths {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			p.logger.Warn("cleanup error", zap.String("path", path), zap.Error(err))
		}
	}
}
