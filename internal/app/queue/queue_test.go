package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode(t *testing.T) {
	job := Job{
		ID:          "6f1b6a2e-9c1d-4f6a-8d2e-000000000001",
		Name:        "video-process-media-1-1756500000",
		VideoKey:    "videos/uploads/user-1/1756500000-interview.mp4",
		Bucket:      "media",
		UserMediaID: "media-1",
		TaskID:      "task-1",
		DatabaseURL: "postgres://worker@db/pipeline",
		HFToken:     "hf-token",
	}

	data, err := Encode(job)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, job, decoded)
}

func TestDecodeMissingTaskID(t *testing.T) {
	_, err := Decode([]byte(`{"id":"x","videoKey":"videos/uploads/u/f.mp4"}`))
	assert.ErrorContains(t, err, "missing taskId")
}

func TestDecodeMalformed(t *testing.T) {
	_, err := Decode([]byte(`{not json`))
	assert.ErrorContains(t, err, "decode job")
}

func TestDecodeOmitsEmptyToken(t *testing.T) {
	data, err := Encode(Job{ID: "x", TaskID: "task-1"})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hfToken")
}
