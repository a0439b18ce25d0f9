package moderation

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"interview-pipeline/internal/config"
)

// Detection is one classifier finding on a single frame.
type Detection struct {
	Class string  `json:"class"`
	Score float64 `json:"score"`
}

// Classifier detects content classes in a single frame image. The model
// behind it is an opaque third-party system.
type Classifier interface {
	Detect(ctx context.Context, framePath string) ([]Detection, error)
}

// FrameSampler extracts frames from a video for classification.
type FrameSampler interface {
	SampleFrames(ctx context.Context, videoPath, frameDir string, maxFrames int) ([]string, error)
}

// Verdict is the moderation outcome. A rejection is a business outcome, not
// an error.
type Verdict struct {
	Accepted bool
	Message  string
}

var explicitClasses = map[string]struct{}{
	"EXPOSED_GENITALIA": {},
	"EXPOSED_BREAST":    {},
	"EXPOSED_BUTTOCKS":  {},
}

// Moderator samples frames and rejects videos whose flagged-detection count
// exceeds the configured share of sampled frames.
type Moderator struct {
	sampler    FrameSampler
	classifier Classifier
	policy     config.PipelinePolicy
	logger     *zap.Logger
}

func NewModerator(sampler FrameSampler, classifier Classifier, policy config.PipelinePolicy, logger *zap.Logger) *Moderator {
	return &Moderator{
		sampler:    sampler,
		classifier: classifier,
		policy:     policy,
		logger:     logger,
	}
}

// Moderate checks a local video file. Internal stage errors resolve through
// the configured policy: historically fail-open, approving with a diagnostic
// message.
func (m *Moderator) Moderate(ctx context.Context, videoPath string) Verdict {
	m.logger.Info("starting content moderation", zap.String("video", videoPath))

	frameDir, err := os.MkdirTemp("", "frames")
	if err != nil {
		return m.resolveError(fmt.Errorf("create temp frame dir: %w", err))
	}
	defer os.RemoveAll(frameDir)

	frames, err := m.sampler.SampleFrames(ctx, videoPath, frameDir, m.policy.MaxFrames)
	if err != nil {
		return m.resolveError(err)
	}

	if len(frames) == 0 {
		m.logger.Warn("no frames extracted from video")
		return Verdict{Accepted: true, Message: "No frames to check"}
	}

	m.logger.Info("checking frames for inappropriate content", zap.Int("frames", len(frames)))

	inappropriateCount := 0
	var flaggedClasses []string

	for _, framePath := range frames {
		detections, err := m.classifier.Detect(ctx, framePath)
		if err != nil {
			// Per-frame failures skip the frame rather than the video.
			m.logger.Error("error processing frame",
				zap.String("frame", framePath),
				zap.Error(err))
			continue
		}

		for _, d := range detections {
			if _, explicit := explicitClasses[d.Class]; explicit && d.Score > m.policy.Confidence {
				inappropriateCount++
				flaggedClasses = append(flaggedClasses, d.Class)
				m.logger.Warn("inappropriate content detected",
					zap.String("class", d.Class),
					zap.Float64("score", d.Score))
			}
		}

		os.Remove(framePath)
	}

	rejectionThreshold := float64(len(frames)) * m.policy.RejectionRatio
	if float64(inappropriateCount) > rejectionThreshold {
		message := fmt.Sprintf("Rejected: %d inappropriate frames detected (%s)",
			inappropriateCount, strings.Join(lo.Uniq(flaggedClasses), ", "))
		m.logger.Error("video rejected", zap.String("reason", message))
		return Verdict{Accepted: false, Message: message}
	}

	m.logger.Info("content moderation passed")
	return Verdict{Accepted: true, Message: "Content approved"}
}

func (m *Moderator) resolveError(err error) Verdict {
	m.logger.Error("moderation error", zap.Error(err))
	if m.policy.OnModerationError == config.ModerationErrorReject {
		return Verdict{Accepted: false, Message: fmt.Sprintf("Rejected: moderation check failed: %v", err)}
	}
	return Verdict{Accepted: true, Message: fmt.Sprintf("Moderation check skipped due to error: %v", err)}
}
