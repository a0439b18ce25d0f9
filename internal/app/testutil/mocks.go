// Package testutil provides hand-rolled test doubles shared across packages.
package testutil

import (
	"context"
	"fmt"
	"os"
	"sync"

	"interview-pipeline/internal/app/api"
	"interview-pipeline/internal/app/model"
	"interview-pipeline/internal/app/moderation"
	"interview-pipeline/internal/app/queue"
	"interview-pipeline/internal/app/repository"
)

// MockObjectStore serves objects and metadata from memory.
type MockObjectStore struct {
	Objects     map[string][]byte          // bucket/key -> content
	Meta        map[string]map[string]string // bucket/key -> metadata
	DownloadErr error
	MetaErr     error
	Downloads   []string
}

func NewMockObjectStore() *MockObjectStore {
	return &MockObjectStore{
		Objects: make(map[string][]byte),
		Meta:    make(map[string]map[string]string),
	}
}

func (m *MockObjectStore) Download(ctx context.Context, bucket, key, destPath string) error {
	if m.DownloadErr != nil {
		return m.DownloadErr
	}
	m.Downloads = append(m.Downloads, bucket+"/"+key)
	content, ok := m.Objects[bucket+"/"+key]
	if !ok {
		content = []byte("video")
	}
	return os.WriteFile(destPath, content, 0o644)
}

func (m *MockObjectStore) Metadata(ctx context.Context, bucket, key string) (map[string]string, error) {
	if m.MetaErr != nil {
		return nil, m.MetaErr
	}
	meta, ok := m.Meta[bucket+"/"+key]
	if !ok {
		return map[string]string{}, nil
	}
	return meta, nil
}

// MockSubmitter records submitted jobs.
type MockSubmitter struct {
	Jobs []queue.Job
	Err  error
}

func (m *MockSubmitter) Submit(ctx context.Context, job queue.Job) error {
	if m.Err != nil {
		return m.Err
	}
	m.Jobs = append(m.Jobs, job)
	return nil
}

// MockDAO is an in-memory repository.DAO.
type MockDAO struct {
	mu sync.Mutex

	Tasks       map[string]*model.Task
	Media       []model.MediaRecord
	Transcripts []model.TranscriptRecord

	InsertMediaErr      error
	InsertTranscriptErr error
	UpdateStatusErr     error
}

func NewMockDAO() *MockDAO {
	return &MockDAO{Tasks: make(map[string]*model.Task)}
}

func (m *MockDAO) GetPayload(ctx context.Context, taskID string) (model.TaskPayload, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	task, ok := m.Tasks[taskID]
	if !ok {
		return model.TaskPayload{}, repository.ErrTaskNotFound
	}
	return task.Payload, nil
}

func (m *MockDAO) UpdateStatus(ctx context.Context, taskID string, status model.TaskStatus, step model.PipelineStep, errorMessage string) error {
	if m.UpdateStatusErr != nil {
		return m.UpdateStatusErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	task, ok := m.Tasks[taskID]
	if !ok {
		return repository.ErrTaskNotFound
	}
	if err := task.Payload.SetStep(step); err != nil {
		return err
	}
	task.Status = status
	task.ErrorMessage = errorMessage
	return nil
}

func (m *MockDAO) InsertMedia(ctx context.Context, media model.MediaRecord) error {
	if m.InsertMediaErr != nil {
		return m.InsertMediaErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Media = append(m.Media, media)
	return nil
}

func (m *MockDAO) InsertTranscript(ctx context.Context, transcript model.TranscriptRecord) error {
	if m.InsertTranscriptErr != nil {
		return m.InsertTranscriptErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Transcripts = append(m.Transcripts, transcript)
	return nil
}

func (m *MockDAO) ListByUser(ctx context.Context, userID string) ([]repository.TranscriptExport, error) {
	return nil, nil
}

func (m *MockDAO) Close() error { return nil }

// MockClassifier returns canned detections per frame, in call order.
type MockClassifier struct {
	Detections [][]moderation.Detection
	Err        error
	calls      int
}

func (m *MockClassifier) Detect(ctx context.Context, framePath string) ([]moderation.Detection, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.calls >= len(m.Detections) {
		return nil, nil
	}
	d := m.Detections[m.calls]
	m.calls++
	return d, nil
}

// MockTranscriber returns a fixed result.
type MockTranscriber struct {
	Result model.TranscriptionResult
	Err    error
}

func (m *MockTranscriber) Transcribe(ctx context.Context, audioPath string) (model.TranscriptionResult, error) {
	if m.Err != nil {
		return model.TranscriptionResult{}, m.Err
	}
	return m.Result, nil
}

// MockSummarizer returns fixed output or an error.
type MockSummarizer struct {
	Summary  string
	Keywords []string
	Err      error
}

func (m *MockSummarizer) Summarize(ctx context.Context, transcript string) (string, []string, error) {
	if m.Err != nil {
		return "", nil, m.Err
	}
	return m.Summary, m.Keywords, nil
}

// MockDiarizer returns fixed turns.
type MockDiarizer struct {
	Turns []api.Turn
	Err   error
}

func (m *MockDiarizer) Diarize(ctx context.Context, audioPath string) ([]api.Turn, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Turns, nil
}

// FakeRunner records commands and replies from a script keyed by binary name.
type FakeRunner struct {
	Commands [][]string
	Stdout   map[string]string
	Errs     map[string]error
}

func NewFakeRunner() *FakeRunner {
	return &FakeRunner{
		Stdout: make(map[string]string),
		Errs:   make(map[string]error),
	}
}

func (r *FakeRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	r.Commands = append(r.Commands, append([]string{name}, args...))
	if err, ok := r.Errs[name]; ok && err != nil {
		return "", fmt.Errorf("command %q failed: %w", name, err)
	}
	return r.Stdout[name], nil
}
