package openai

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"interview-pipeline/internal/app/api"
	"interview-pipeline/internal/app/model"
)

// WhisperTranscriber implements api.Transcriber with the Whisper API.
// It requests verbose JSON with word-level timestamps, then refines segment
// boundaries from the word timings and, when a diarizer is configured, runs
// the speaker-labeling pass.
type WhisperTranscriber struct {
	client   *openai.Client
	diarizer api.Diarizer
	logger   *zap.Logger
}

// NewWhisperTranscriber creates a transcriber. diarizer may be nil; segments
// then stay without speaker labels.
func NewWhisperTranscriber(client *openai.Client, diarizer api.Diarizer, logger *zap.Logger) *WhisperTranscriber {
	return &WhisperTranscriber{client: client, diarizer: diarizer, logger: logger}
}

func (t *WhisperTranscriber) Transcribe(ctx context.Context, audioPath string) (model.TranscriptionResult, error) {
	t.logger.Info("starting transcription", zap.String("audio", audioPath))

	req := openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: audioPath,
		Format:   openai.AudioResponseFormatVerboseJSON,
		TimestampGranularities: []openai.TranscriptionTimestampGranularity{
			openai.TranscriptionTimestampGranularitySegment,
			openai.TranscriptionTimestampGranularityWord,
		},
	}

	resp, err := t.client.CreateTranscription(ctx, req)
	if err != nil {
		return model.TranscriptionResult{}, fmt.Errorf("createTranscription failed: %w", err)
	}

	result := model.TranscriptionResult{Language: resp.Language}
	for _, s := range resp.Segments {
		result.Segments = append(result.Segments, model.Segment{
			Start: s.Start,
			End:   s.End,
			Text:  s.Text,
		})
	}
	for _, w := range resp.Words {
		result.Words = append(result.Words, model.Word{
			Word:  w.Word,
			Start: w.Start,
			End:   w.End,
		})
	}

	t.logger.Info("transcription complete",
		zap.String("language", result.Language),
		zap.Int("segments", len(result.Segments)))

	result.Segments = api.RefineSegments(result.Segments, result.Words)

	if t.diarizer != nil {
		turns, err := t.diarizer.Diarize(ctx, audioPath)
		if err != nil {
			// Diarization is best-effort: segments stay unlabeled.
			t.logger.Warn("diarization failed (continuing without)", zap.Error(err))
		} else {
			result.Segments = api.AssignSpeakers(result.Segments, turns)
			t.logger.Info("speaker diarization complete", zap.Int("turns", len(turns)))
		}
	} else {
		t.logger.Warn("no diarization token - skipping diarization")
	}

	return result, nil
}
