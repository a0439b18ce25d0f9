package repository

import (
	"context"
	"errors"
	"time"

	"interview-pipeline/internal/app/model"
)

// ErrTaskNotFound is returned when a task id matches no row.
var ErrTaskNotFound = errors.New("task not found")

// TaskDAO reads and advances task rows.
type TaskDAO interface {
	GetPayload(ctx context.Context, taskID string) (model.TaskPayload, error)
	// UpdateStatus merges the step marker into the task payload and writes
	// status, payload, error message and update timestamp in one statement.
	// Returns ErrTaskNotFound when the task row is missing.
	UpdateStatus(ctx context.Context, taskID string, status model.TaskStatus, step model.PipelineStep, errorMessage string) error
}

// MediaDAO inserts accepted media records.
type MediaDAO interface {
	InsertMedia(ctx context.Context, media model.MediaRecord) error
}

// TranscriptExport is one row of the per-user transcript listing used by the
// export command.
type TranscriptExport struct {
	MediaID   string
	MediaName string
	Summary   string
	Keywords  []string
	Text      string
	CreatedAt time.Time
}

// TranscriptDAO inserts and lists transcript records.
type TranscriptDAO interface {
	InsertTranscript(ctx context.Context, transcript model.TranscriptRecord) error
	ListByUser(ctx context.Context, userID string) ([]TranscriptExport, error)
}

// DAO is the full persistence surface the worker needs.
type DAO interface {
	TaskDAO
	MediaDAO
	TranscriptDAO
	Close() error
}
