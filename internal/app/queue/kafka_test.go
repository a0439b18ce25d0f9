package queue

import (
	"context"
	"errors"
	"testing"

	kafka "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// scriptedReader replays canned messages and then fails with err.
type scriptedReader struct {
	messages []kafka.Message
	err      error
}

func (r *scriptedReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	if len(r.messages) == 0 {
		return kafka.Message{}, r.err
	}
	m := r.messages[0]
	r.messages = r.messages[1:]
	return m, nil
}

func (r *scriptedReader) Close() error { return nil }

func newConsumerQueue(reader *scriptedReader) *KafkaQueue {
	return &KafkaQueue{
		topic:     "video-processing-jobs",
		groupID:   "video-processing-jobs-workers",
		newReader: func() messageReader { return reader },
		logger:    zap.NewNop(),
	}
}

func encodedJob(t *testing.T, taskID string) []byte {
	t.Helper()
	data, err := Encode(Job{ID: "job-" + taskID, TaskID: taskID})
	require.NoError(t, err)
	return data
}

func TestConsumeContinuesAfterHandlerFailure(t *testing.T) {
	reader := &scriptedReader{
		messages: []kafka.Message{
			{Value: encodedJob(t, "task-1")},
			{Value: encodedJob(t, "task-2")},
		},
		err: errors.New("broker gone"),
	}
	q := newConsumerQueue(reader)

	var handled []string
	err := q.Consume(context.Background(), func(ctx context.Context, job Job) error {
		handled = append(handled, job.TaskID)
		if job.TaskID == "task-1" {
			return errors.New("moderation stage blew up")
		}
		return nil
	})

	// The first job's failure must not stop the loop; the second job still
	// gets processed before the reader gives out.
	assert.Equal(t, []string{"task-1", "task-2"}, handled)
	assert.ErrorContains(t, err, "read job message")
}

func TestConsumeDropsMalformedMessages(t *testing.T) {
	reader := &scriptedReader{
		messages: []kafka.Message{
			{Value: []byte("{not json")},
			{Value: []byte(`{"id":"x"}`)},
			{Value: encodedJob(t, "task-3")},
		},
		err: errors.New("broker gone"),
	}
	q := newConsumerQueue(reader)

	var handled []string
	_ = q.Consume(context.Background(), func(ctx context.Context, job Job) error {
		handled = append(handled, job.TaskID)
		return nil
	})

	assert.Equal(t, []string{"task-3"}, handled)
}

func TestConsumeStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	reader := &scriptedReader{
		messages: []kafka.Message{{Value: encodedJob(t, "task-1")}},
		err:      context.Canceled,
	}
	q := newConsumerQueue(reader)

	err := q.Consume(ctx, func(ctx context.Context, job Job) error {
		cancel()
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}
