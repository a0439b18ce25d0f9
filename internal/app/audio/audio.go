package audio

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Extractor wraps the ffmpeg/ffprobe operations the pipeline needs.
type Extractor struct {
	runner Runner
	logger *zap.Logger
}

func NewExtractor(runner Runner, logger *zap.Logger) *Extractor {
	return &Extractor{runner: runner, logger: logger}
}

// ExtractWav produces a 16 kHz mono WAV next to the video, the input format
// the speech-to-text model expects.
func (e *Extractor) ExtractWav(ctx context.Context, videoPath string) (string, error) {
	audioPath := strings.TrimSuffix(videoPath, filepath.Ext(videoPath)) + ".wav"

	e.logger.Info("extracting audio", zap.String("video", videoPath))

	_, err := e.runner.Run(ctx, "ffmpeg",
		"-i", videoPath,
		"-ar", "16000",
		"-ac", "1",
		"-y",
		audioPath,
	)
	if err != nil {
		return "", fmt.Errorf("audio extraction failed: %w", err)
	}

	e.logger.Info("audio extracted", zap.String("audio", audioPath))
	return audioPath, nil
}

// Duration probes the media duration in whole seconds.
func (e *Extractor) Duration(ctx context.Context, path string) (int, error) {
	output, err := e.runner.Run(ctx, "ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	if err != nil {
		return 0, err
	}

	durationFloat, err := strconv.ParseFloat(strings.TrimSpace(output), 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", strings.TrimSpace(output), err)
	}
	return int(math.Round(durationFloat)), nil
}

// SampleFrames extracts up to maxFrames frames at one per second into
// frameDir and returns their paths in order. Callers own cleanup of the
// returned files.
func (e *Extractor) SampleFrames(ctx context.Context, videoPath, frameDir string, maxFrames int) ([]string, error) {
	if err := os.MkdirAll(frameDir, 0o755); err != nil {
		return nil, fmt.Errorf("create frame dir: %w", err)
	}

	pattern := filepath.Join(frameDir, "frame_%04d.jpg")
	_, err := e.runner.Run(ctx, "ffmpeg",
		"-i", videoPath,
		"-vf", "fps=1",
		"-frames:v", strconv.Itoa(maxFrames),
		"-y",
		pattern,
	)
	if err != nil {
		return nil, fmt.Errorf("frame extraction failed: %w", err)
	}

	frames, err := filepath.Glob(filepath.Join(frameDir, "frame_*.jpg"))
	if err != nil {
		return nil, fmt.Errorf("list frames: %w", err)
	}
	sort.Strings(frames)

	e.logger.Info("frames sampled",
		zap.String("video", videoPath),
		zap.Int("count", len(frames)))
	return frames, nil
}
