package pg

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"interview-pipeline/internal/app/model"
	"interview-pipeline/internal/app/repository"
)

// GetPayload reads the typed payload of a task.
func (pdb *PostgresDB) GetPayload(ctx context.Context, taskID string) (model.TaskPayload, error) {
	var raw []byte
	query := `SELECT payload FROM "Task" WHERE id = $1`
	err := pdb.db.QueryRowContext(ctx, query, taskID).Scan(&raw)
	if err == sql.ErrNoRows {
		return model.TaskPayload{}, repository.ErrTaskNotFound
	}
	if err != nil {
		return model.TaskPayload{}, fmt.Errorf("query task payload: %w", err)
	}

	var payload model.TaskPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return model.TaskPayload{}, fmt.Errorf("decode task payload: %w", err)
	}
	return payload, nil
}

// UpdateStatus merges the step marker into the task payload and writes
// status, payload, error message and updatedAt in a single UPDATE.
func (pdb *PostgresDB) UpdateStatus(ctx context.Context, taskID string, status model.TaskStatus, step model.PipelineStep, errorMessage string) error {
	payload, err := pdb.GetPayload(ctx, taskID)
	if err != nil {
		return err
	}

	if err := payload.SetStep(step); err != nil {
		return err
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode task payload: %w", err)
	}

	var result sql.Result
	if errorMessage != "" {
		update := `UPDATE "Task" SET status = $1, payload = $2, "errorMessage" = $3, "updatedAt" = NOW() WHERE id = $4`
		result, err = pdb.db.ExecContext(ctx, update, string(status), raw, errorMessage, taskID)
	} else {
		update := `UPDATE "Task" SET status = $1, payload = $2, "updatedAt" = NOW() WHERE id = $3`
		result, err = pdb.db.ExecContext(ctx, update, string(status), raw, taskID)
	}
	if err != nil {
		return fmt.Errorf("update task %s: %w", taskID, err)
	}

	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return repository.ErrTaskNotFound
	}
	return nil
}
