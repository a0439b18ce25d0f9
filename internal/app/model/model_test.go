package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetStep(t *testing.T) {
	var payload TaskPayload

	require.NoError(t, payload.SetStep(StepModeration))
	assert.Equal(t, StepModeration, payload.CurrentStep)

	err := payload.SetStep(PipelineStep("COOLDOWN"))
	assert.ErrorContains(t, err, "invalid pipeline step")
	assert.Equal(t, StepModeration, payload.CurrentStep)
}

func TestTaskPayloadJSONKeys(t *testing.T) {
	payload := TaskPayload{
		VideoKey:    "videos/uploads/user-1/clip.mp4",
		Bucket:      "media",
		UserID:      "user-1",
		CurrentStep: StepTranscription,
	}
	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.Equal(t, "videos/uploads/user-1/clip.mp4", m["videoKey"])
	assert.Equal(t, "user-1", m["userId"])
	assert.Equal(t, "TRANSCRIPTION", m["currentStep"])
	assert.NotContains(t, m, "fileName")
}

func TestNewMediaRecordDefaults(t *testing.T) {
	payload := TaskPayload{
		UserID:   "user-1",
		VideoURL: "https://cdn.example.com/clip.mp4",
		FileName: "clip.mp4",
		FileSize: 4096,
		MimeType: "video/mp4",
		Duration: 120,
	}

	media := NewMediaRecord("media-1", payload)
	assert.Equal(t, "media-1", media.ID)
	assert.Equal(t, "user-1", media.UserID)
	assert.Equal(t, "https://cdn.example.com/clip.mp4", media.URL)
	assert.Equal(t, "clip.mp4", media.Name)
	assert.Equal(t, "clip.mp4", media.OriginalFilename)
	assert.Equal(t, "USER_VIDEO", media.Type)
	assert.Equal(t, "PRIVATE", media.Visibility)
	assert.Equal(t, "APPROVED", media.ModerationStatus)
	assert.Equal(t, "DRAFT", media.ApprovalStatus)
	assert.Equal(t, 120, media.Duration)
}

func TestFullText(t *testing.T) {
	result := TranscriptionResult{Segments: []Segment{
		{Text: " Tell me about yourself. "},
		{Text: "Sure."},
	}}
	assert.Equal(t, "Tell me about yourself. Sure.", result.FullText())

	assert.Equal(t, "", TranscriptionResult{}.FullText())
}

func TestSpeakers(t *testing.T) {
	result := TranscriptionResult{Segments: []Segment{
		{Text: "a", Speaker: "SPEAKER_00"},
		{Text: "b", Speaker: "SPEAKER_01"},
		{Text: "c", Speaker: "SPEAKER_00"},
		{Text: "d"},
	}}
	assert.Equal(t, []string{"SPEAKER_00", "SPEAKER_01"}, result.Speakers())
}

func TestDefaultSpeakerMappings(t *testing.T) {
	result := TranscriptionResult{Segments: []Segment{
		{Text: "a", Speaker: "SPEAKER_00"},
		{Text: "b", Speaker: "SPEAKER_01"},
	}}
	assert.Equal(t, map[string]string{
		"SPEAKER_00": "Speaker SPEAKER_00",
		"SPEAKER_01": "Speaker SPEAKER_01",
	}, result.DefaultSpeakerMappings())

	assert.Empty(t, TranscriptionResult{}.DefaultSpeakerMappings())
}
