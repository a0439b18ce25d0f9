package api

import (
	"context"

	"interview-pipeline/internal/app/model"
)

// FallbackSummary is persisted when summary generation fails; the pipeline
// still completes.
const FallbackSummary = "Summary generation failed"

// Transcriber turns an audio file into timed transcript segments.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (model.TranscriptionResult, error)
}

// Summarizer produces a narrative summary and extracted keywords from
// transcript text.
type Summarizer interface {
	Summarize(ctx context.Context, transcript string) (summary string, keywords []string, err error)
}

// Turn is one diarization span attributing time to a speaker.
type Turn struct {
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Speaker string  `json:"speaker"`
}

// Diarizer labels who speaks when in an audio file.
type Diarizer interface {
	Diarize(ctx context.Context, audioPath string) ([]Turn, error)
}
