package queue

import (
	"context"
	"encoding/json"
	"fmt"
)

// Job carries one processing request from the dispatcher to the worker
// fleet. Connection secrets travel with the job, mirroring the environment
// parameters a batch compute job receives.
type Job struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	VideoKey    string `json:"videoKey"`
	Bucket      string `json:"bucket"`
	UserMediaID string `json:"userMediaId"`
	TaskID      string `json:"taskId"`
	DatabaseURL string `json:"databaseUrl"`
	HFToken     string `json:"hfToken,omitempty"`
}

// Submitter enqueues one job per valid upload event. Fire-and-forget: no
// retries on failure.
type Submitter interface {
	Submit(ctx context.Context, job Job) error
}

// Consumer hands jobs to a handler until the context is done.
type Consumer interface {
	Consume(ctx context.Context, handle func(ctx context.Context, job Job) error) error
}

// Encode serializes a job for the wire.
func Encode(job Job) ([]byte, error) {
	data, err := json.Marshal(job)
	if err != nil {
		return nil, fmt.Errorf("encode job: %w", err)
	}
	return data, nil
}

// Decode parses a job message.
func Decode(data []byte) (Job, error) {
	var job Job
	if err := json.Unmarshal(data, &job); err != nil {
		return Job{}, fmt.Errorf("decode job: %w", err)
	}
	if job.TaskID == "" {
		return Job{}, fmt.Errorf("job message missing taskId")
	}
	return job, nil
}
