package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// OnModerationError selects what a moderation-stage internal error means for
// the video. The historical behavior is fail-open (approve); it is a
// safety-relevant business decision, so it is an explicit policy here.
type OnModerationError string

const (
	ModerationErrorApprove OnModerationError = "approve"
	ModerationErrorReject  OnModerationError = "reject"
)

// PipelinePolicy holds the pipeline tunables. All fields have working
// defaults; an optional YAML file overrides them.
type PipelinePolicy struct {
	MaxFrames           int               `yaml:"maxFrames"`
	Confidence          float64           `yaml:"confidence"`
	RejectionRatio      float64           `yaml:"rejectionRatio"`
	OnModerationError   OnModerationError `yaml:"onModerationError"`
	SummaryCharBudget   int               `yaml:"summaryCharBudget"`
	MaxKeywords         int               `yaml:"maxKeywords"`
	DispatchIdempotency bool              `yaml:"dispatchIdempotency"`
}

// DefaultPolicy mirrors the thresholds the pipeline has always used:
// up to 60 frames at one per second, 0.75 detection confidence, rejection
// above 5% flagged frames, fail-open moderation, 4000-char summary input.
func DefaultPolicy() PipelinePolicy {
	return PipelinePolicy{
		MaxFrames:         60,
		Confidence:        0.75,
		RejectionRatio:    0.05,
		OnModerationError: ModerationErrorApprove,
		SummaryCharBudget: 4000,
		MaxKeywords:       10,
	}
}

// LoadPolicy reads a policy YAML over the defaults. An empty path keeps the
// defaults. Integer tunables can also be overridden per deployment through
// the environment, which wins over the file.
func LoadPolicy(path string) (PipelinePolicy, error) {
	policy := DefaultPolicy()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return policy, fmt.Errorf("read policy file: %w", err)
		}
		if err := yaml.Unmarshal(data, &policy); err != nil {
			return policy, fmt.Errorf("parse policy file: %w", err)
		}
	}

	policy.MaxFrames = IntFromEnv("MODERATION_MAX_FRAMES", policy.MaxFrames)
	policy.SummaryCharBudget = IntFromEnv("SUMMARY_CHAR_BUDGET", policy.SummaryCharBudget)
	policy.MaxKeywords = IntFromEnv("MAX_KEYWORDS", policy.MaxKeywords)

	if policy.OnModerationError != ModerationErrorApprove && policy.OnModerationError != ModerationErrorReject {
		return policy, fmt.Errorf("invalid onModerationError: %q", policy.OnModerationError)
	}
	return policy, nil
}
