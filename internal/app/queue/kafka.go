package queue

import (
	"context"
	"fmt"
	"time"

	kafka "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// messageReader is the slice of the reader API the consume loop uses.
type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

// KafkaQueue implements Submitter and Consumer over a Kafka topic, the
// in-repo stand-in for the batch job queue.
type KafkaQueue struct {
	topic     string
	groupID   string
	writer    *kafka.Writer
	newReader func() messageReader
	logger    *zap.Logger
}

func NewKafkaQueue(brokers []string, topic string, logger *zap.Logger) *KafkaQueue {
	groupID := topic + "-workers"
	return &KafkaQueue{
		topic:   topic,
		groupID: groupID,
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			BatchTimeout: 50 * time.Millisecond,
		},
		newReader: func() messageReader {
			return kafka.NewReader(kafka.ReaderConfig{
				Brokers: brokers,
				GroupID: groupID,
				Topic:   topic,
			})
		},
		logger: logger,
	}
}

// Submit writes one job message keyed by task id.
func (q *KafkaQueue) Submit(ctx context.Context, job Job) error {
	data, err := Encode(job)
	if err != nil {
		return err
	}

	err = q.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(job.TaskID),
		Value: data,
	})
	if err != nil {
		return fmt.Errorf("submit job %s: %w", job.Name, err)
	}

	q.logger.Info("job submitted",
		zap.String("jobID", job.ID),
		zap.String("jobName", job.Name),
		zap.String("taskID", job.TaskID))
	return nil
}

// Consume reads job messages until the context is canceled. Handler errors
// are logged and the loop moves on; the batch scheduler owns retry policy,
// not this consumer.
func (q *KafkaQueue) Consume(ctx context.Context, handle func(ctx context.Context, job Job) error) error {
	reader := q.newReader()
	defer reader.Close()

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("read job message: %w", err)
		}

		job, err := Decode(msg.Value)
		if err != nil {
			q.logger.Error("dropping malformed job message", zap.Error(err))
			continue
		}

		if err := handle(ctx, job); err != nil {
			q.logger.Error("job handler failed",
				zap.String("jobID", job.ID),
				zap.String("taskID", job.TaskID),
				zap.Error(err))
		}
	}
}

func (q *KafkaQueue) Close() error {
	return q.writer.Close()
}
