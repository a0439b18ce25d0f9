package model

import "fmt"

// TaskStatus is a processing task's lifecycle state.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "PENDING"
	TaskStatusProcessing TaskStatus = "PROCESSING"
	TaskStatusCompleted  TaskStatus = "COMPLETED"
	TaskStatusFailed     TaskStatus = "FAILED"
)

// PipelineStep is the stage marker carried inside the task payload. It is a
// progress log, not a state machine; any valid value may be written at any
// time.
type PipelineStep string

const (
	StepUploadComplete  PipelineStep = "UPLOAD_COMPLETE"
	StepModeration      PipelineStep = "MODERATION"
	StepAudioExtraction PipelineStep = "AUDIO_EXTRACTION"
	StepTranscription   PipelineStep = "TRANSCRIPTION"
	StepSummarization   PipelineStep = "SUMMARIZATION"
	// StepProcessing marks a failure that cannot be attributed to a
	// specific stage.
	StepProcessing PipelineStep = "PROCESSING"
)

// Valid reports whether s is a known step marker.
func (s PipelineStep) Valid() bool {
	switch s {
	case StepUploadComplete, StepModeration, StepAudioExtraction,
		StepTranscription, StepSummarization, StepProcessing:
		return true
	}
	return false
}

// TaskPayload is the typed jsonb payload of a task row. The upload flow
// writes everything except currentStep; the pipeline only ever touches
// currentStep.
type TaskPayload struct {
	VideoKey     string       `json:"videoKey"`
	Bucket       string       `json:"bucket"`
	UserID       string       `json:"userId"`
	FileName     string       `json:"fileName,omitempty"`
	FileSize     int64        `json:"fileSize,omitempty"`
	MimeType     string       `json:"mimeType,omitempty"`
	Duration     int          `json:"duration,omitempty"`
	VideoURL     string       `json:"videoUrl,omitempty"`
	ThumbnailURL string       `json:"thumbnailUrl,omitempty"`
	UserMediaID  string       `json:"userMediaId,omitempty"`
	CurrentStep  PipelineStep `json:"currentStep,omitempty"`
}

// SetStep merges a validated step marker into the payload.
func (p *TaskPayload) SetStep(step PipelineStep) error {
	if !step.Valid() {
		return fmt.Errorf("invalid pipeline step: %q", step)
	}
	p.CurrentStep = step
	return nil
}

// Task is one row of the "Task" table.
type Task struct {
	ID           string
	Status       TaskStatus
	Payload      TaskPayload
	ErrorMessage string
}
