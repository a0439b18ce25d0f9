package tracker

import (
	"context"

	"go.uber.org/zap"

	"interview-pipeline/internal/app/model"
	"interview-pipeline/internal/app/repository"
)

// StatusTracker writes task progress on a best-effort basis. A failed write
// must never stop the pipeline, so Update reports success with a flag and
// swallows the underlying error after logging it.
type StatusTracker struct {
	tasks  repository.TaskDAO
	logger *zap.Logger
}

func NewStatusTracker(tasks repository.TaskDAO, logger *zap.Logger) *StatusTracker {
	return &StatusTracker{tasks: tasks, logger: logger}
}

// Update advances the task's status and step marker. Returns false when the
// task row is missing or the write failed.
func (t *StatusTracker) Update(ctx context.Context, taskID string, status model.TaskStatus, step model.PipelineStep, errorMessage string) bool {
	err := t.tasks.UpdateStatus(ctx, taskID, status, step, errorMessage)
	if err != nil {
		t.logger.Error("failed to update task status",
			zap.String("taskID", taskID),
			zap.String("status", string(status)),
			zap.String("step", string(step)),
			zap.Error(err))
		return false
	}
	t.logger.Info("task status updated",
		zap.String("taskID", taskID),
		zap.String("status", string(status)),
		zap.String("step", string(step)))
	return true
}
