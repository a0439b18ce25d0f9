package moderation

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"interview-pipeline/internal/config"
)

// stubSampler writes n empty frame files into frameDir.
type stubSampler struct {
	frames int
	err    error
}

func (s *stubSampler) SampleFrames(ctx context.Context, videoPath, frameDir string, maxFrames int) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	n := s.frames
	if n > maxFrames {
		n = maxFrames
	}
	paths := make([]string, 0, n)
	for i := 0; i < n; i++ {
		path := filepath.Join(frameDir, fmt.Sprintf("frame_%04d.jpg", i+1))
		if err := os.WriteFile(path, []byte{0xff, 0xd8}, 0o644); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// scriptedClassifier flags the first `flagged` frames with the given
// detection and returns nothing for the rest.
type scriptedClassifier struct {
	flagged   int
	detection Detection
	err       error
	calls     int
}

func (c *scriptedClassifier) Detect(ctx context.Context, framePath string) ([]Detection, error) {
	if c.err != nil {
		return nil, c.err
	}
	c.calls++
	if c.calls <= c.flagged {
		return []Detection{c.detection}, nil
	}
	return nil, nil
}

func newModerator(sampler FrameSampler, classifier Classifier, policy config.PipelinePolicy) *Moderator {
	return NewModerator(sampler, classifier, policy, zap.NewNop())
}

func TestModerate_RejectsAboveThreshold(t *testing.T) {
	// 4 flagged detections over 60 frames is above the 5% threshold (3).
	classifier := &scriptedClassifier{
		flagged:   4,
		detection: Detection{Class: "EXPOSED_GENITALIA", Score: 0.9},
	}
	m := newModerator(&stubSampler{frames: 60}, classifier, config.DefaultPolicy())

	verdict := m.Moderate(context.Background(), "video.mp4")
	assert.False(t, verdict.Accepted)
	assert.Contains(t, verdict.Message, "Rejected")
	assert.Contains(t, verdict.Message, "EXPOSED_GENITALIA")
}

func TestModerate_AcceptsAtThreshold(t *testing.T) {
	// Exactly 3 flagged detections over 60 frames is not above 5%.
	classifier := &scriptedClassifier{
		flagged:   3,
		detection: Detection{Class: "EXPOSED_BREAST", Score: 0.9},
	}
	m := newModerator(&stubSampler{frames: 60}, classifier, config.DefaultPolicy())

	verdict := m.Moderate(context.Background(), "video.mp4")
	assert.True(t, verdict.Accepted)
	assert.Equal(t, "Content approved", verdict.Message)
}

func TestModerate_IgnoresLowConfidenceDetections(t *testing.T) {
	classifier := &scriptedClassifier{
		flagged:   60,
		detection: Detection{Class: "EXPOSED_GENITALIA", Score: 0.5},
	}
	m := newModerator(&stubSampler{frames: 60}, classifier, config.DefaultPolicy())

	verdict := m.Moderate(context.Background(), "video.mp4")
	assert.True(t, verdict.Accepted)
}

func TestModerate_IgnoresNonExplicitClasses(t *testing.T) {
	classifier := &scriptedClassifier{
		flagged:   60,
		detection: Detection{Class: "FACE", Score: 0.99},
	}
	m := newModerator(&stubSampler{frames: 60}, classifier, config.DefaultPolicy())

	verdict := m.Moderate(context.Background(), "video.mp4")
	assert.True(t, verdict.Accepted)
}

func TestModerate_NoFramesAccepts(t *testing.T) {
	m := newModerator(&stubSampler{frames: 0}, &scriptedClassifier{}, config.DefaultPolicy())

	verdict := m.Moderate(context.Background(), "video.mp4")
	assert.True(t, verdict.Accepted)
	assert.Equal(t, "No frames to check", verdict.Message)
}

func TestModerate_PerFrameClassifierErrorsSkipFrames(t *testing.T) {
	classifier := &scriptedClassifier{err: errors.New("model unavailable")}
	m := newModerator(&stubSampler{frames: 10}, classifier, config.DefaultPolicy())

	verdict := m.Moderate(context.Background(), "video.mp4")
	assert.True(t, verdict.Accepted)
}

func TestModerate_SamplerErrorFailsOpenByDefault(t *testing.T) {
	m := newModerator(&stubSampler{err: errors.New("decoder crashed")}, &scriptedClassifier{}, config.DefaultPolicy())

	verdict := m.Moderate(context.Background(), "video.mp4")
	assert.True(t, verdict.Accepted)
	assert.Contains(t, verdict.Message, "skipped due to error")
	assert.Contains(t, verdict.Message, "decoder crashed")
}

func TestModerate_SamplerErrorRejectsUnderRejectPolicy(t *testing.T) {
	policy := config.DefaultPolicy()
	policy.OnModerationError = config.ModerationErrorReject

	m := newModerator(&stubSampler{err: errors.New("decoder crashed")}, &scriptedClassifier{}, policy)

	verdict := m.Moderate(context.Background(), "video.mp4")
	assert.False(t, verdict.Accepted)
	assert.Contains(t, verdict.Message, "moderation check failed")
}

func TestModerate_RespectsMaxFrames(t *testing.T) {
	policy := config.DefaultPolicy()
	policy.MaxFrames = 5

	// One detection over 5 frames is above 5% of 5 (0.25), so the cap
	// changes the outcome relative to a 60-frame sample.
	classifier := &scriptedClassifier{
		flagged:   1,
		detection: Detection{Class: "EXPOSED_BUTTOCKS", Score: 0.9},
	}
	m := newModerator(&stubSampler{frames: 100}, classifier, policy)

	verdict := m.Moderate(context.Background(), "video.mp4")
	assert.False(t, verdict.Accepted)
	assert.Equal(t, 5, classifier.calls)
}
