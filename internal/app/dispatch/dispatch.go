package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"interview-pipeline/internal/app/queue"
	"interview-pipeline/internal/app/storage"
)

// Metadata keys the upload flow must tag objects with.
const (
	metaUserMediaID = "usermediaid"
	metaTaskID      = "taskid"
)

var (
	// ErrNotUpload marks keys outside the upload prefix; a no-op, not a failure.
	ErrNotUpload = errors.New("not an upload file")
	// ErrDuplicate marks an event already dispatched for the same object.
	ErrDuplicate = errors.New("duplicate upload event")
	// ErrInvalidKey marks keys that do not follow the upload path convention.
	ErrInvalidKey = errors.New("invalid key format")
	// ErrMissingMetadata marks objects lacking the required identifier tags.
	ErrMissingMetadata = errors.New("missing UserMedia/Task IDs in metadata")
)

// Result describes a successfully submitted job.
type Result struct {
	JobID       string `json:"jobId"`
	JobName     string `json:"jobName"`
	UserMediaID string `json:"userMediaId"`
	TaskID      string `json:"taskId"`
}

// Dispatcher validates upload events and submits processing jobs. One
// submission per valid event, no retries.
type Dispatcher struct {
	store        storage.ObjectStore
	submitter    queue.Submitter
	guard        Guard
	uploadPrefix string
	databaseURL  string
	hfToken      string
	logger       *zap.Logger
}

func NewDispatcher(store storage.ObjectStore, submitter queue.Submitter, guard Guard, uploadPrefix, databaseURL, hfToken string, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		store:        store,
		submitter:    submitter,
		guard:        guard,
		uploadPrefix: uploadPrefix,
		databaseURL:  databaseURL,
		hfToken:      hfToken,
		logger:       logger,
	}
}

// Dispatch handles one storage event end to end: prefix check, key parsing,
// metadata lookup, job submission.
func (d *Dispatcher) Dispatch(ctx context.Context, ref ObjectRef) (*Result, error) {
	d.logger.Info("processing upload event",
		zap.String("bucket", ref.Bucket),
		zap.String("key", ref.Key))

	if !strings.HasPrefix(ref.Key, d.uploadPrefix) {
		d.logger.Info("skipping non-upload file", zap.String("key", ref.Key))
		return nil, ErrNotUpload
	}

	// Key convention: videos/uploads/{userId}/{timestamp-filename}
	parts := strings.Split(ref.Key, "/")
	if len(parts) < 4 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidKey, ref.Key)
	}
	userID := parts[2]

	if d.guard != nil {
		first, err := d.guard.FirstSeen(ctx, ref.Bucket+"/"+ref.Key)
		if err != nil {
			return nil, fmt.Errorf("idempotency check: %w", err)
		}
		if !first {
			d.logger.Info("suppressing duplicate event", zap.String("key", ref.Key))
			return nil, ErrDuplicate
		}
	}

	metadata, err := d.store.Metadata(ctx, ref.Bucket, ref.Key)
	if err != nil {
		d.logger.Warn("could not get object metadata", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrMissingMetadata, err)
	}

	userMediaID := metadata[metaUserMediaID]
	taskID := metadata[metaTaskID]
	if userMediaID == "" || taskID == "" {
		return nil, ErrMissingMetadata
	}

	job := queue.Job{
		ID:          uuid.New().String(),
		Name:        fmt.Sprintf("video-process-%s-%d", userMediaID, time.Now().Unix()),
		VideoKey:    ref.Key,
		Bucket:      ref.Bucket,
		UserMediaID: userMediaID,
		TaskID:      taskID,
		DatabaseURL: d.databaseURL,
		HFToken:     d.hfToken,
	}

	d.logger.Info("submitting job",
		zap.String("jobName", job.Name),
		zap.String("userID", userID),
		zap.String("taskID", taskID))

	if err := d.submitter.Submit(ctx, job); err != nil {
		return nil, err
	}

	return &Result{
		JobID:       job.ID,
		JobName:     job.Name,
		UserMediaID: userMediaID,
		TaskID:      taskID,
	}, nil
}
