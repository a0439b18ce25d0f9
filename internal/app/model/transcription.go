package model

import (
	"strings"

	"github.com/samber/lo"
)

// Segment is one timed span of transcript text, optionally attributed to a
// speaker after diarization.
type Segment struct {
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Text    string  `json:"text"`
	Speaker string  `json:"speaker,omitempty"`
}

// Word is a single word with its timestamps, used to refine segment
// boundaries.
type Word struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// TranscriptionResult is the full output of the transcription stage.
type TranscriptionResult struct {
	Language string    `json:"language,omitempty"`
	Segments []Segment `json:"segments"`
	Words    []Word    `json:"words,omitempty"`
}

// FullText joins the segment texts into the flat transcript string.
func (r TranscriptionResult) FullText() string {
	texts := lo.Map(r.Segments, func(s Segment, _ int) string {
		return strings.TrimSpace(s.Text)
	})
	return strings.Join(texts, " ")
}

// Speakers returns the distinct speaker labels, in order of first appearance.
func (r TranscriptionResult) Speakers() []string {
	labels := lo.FilterMap(r.Segments, func(s Segment, _ int) (string, bool) {
		return s.Speaker, s.Speaker != ""
	})
	return lo.Uniq(labels)
}

// DefaultSpeakerMappings gives every detected speaker a display name until
// the owner renames them.
func (r TranscriptionResult) DefaultSpeakerMappings() map[string]string {
	mappings := make(map[string]string)
	for _, label := range r.Speakers() {
		mappings[label] = "Speaker " + label
	}
	return mappings
}
