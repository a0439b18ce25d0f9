package pg

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"interview-pipeline/internal/app/model"
)

func TestInsertTranscript(t *testing.T) {
	pdb, mock := newMockDB(t)

	transcript := model.TranscriptRecord{
		ID:        "transcript-1",
		MediaID:   "media-1",
		Text:      "Tell me about yourself.",
		Status:    model.TranscriptStatusCompleted,
		IsCurrent: true,
		Summary:   "An interview opener.",
		Keywords:  []string{"interview"},
		SpeakerMappings: map[string]string{
			"SPEAKER_00": "Speaker SPEAKER_00",
		},
		RawSegments: []model.Segment{
			{Start: 0, End: 4.2, Text: "Tell me about yourself.", Speaker: "SPEAKER_00"},
		},
	}

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "TranscriptRecord"`)).
		WithArgs(
			"transcript-1", "media-1", "Tell me about yourself.",
			"COMPLETED", true, "An interview opener.",
			[]byte(`["interview"]`),
			[]byte(`{"SPEAKER_00":"Speaker SPEAKER_00"}`),
			sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, pdb.InsertTranscript(context.Background(), transcript))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByUser(t *testing.T) {
	pdb, mock := newMockDB(t)

	created := time.Date(2026, 8, 1, 10, 30, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "name", "summary", "keywords", "text", "createdAt"}).
		AddRow("media-1", "clip.mp4", "An interview.", []byte(`["interview","hiring"]`), "Tell me about yourself.", created).
		AddRow("media-2", "followup.mp4", "A follow-up call.", []byte(nil), "Thanks for joining again.", created.Add(-time.Hour))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT m.id, m.name, t.summary, t.keywords, t.text, t."createdAt"`)).
		WithArgs("user-1").
		WillReturnRows(rows)

	exports, err := pdb.ListByUser(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, exports, 2)

	assert.Equal(t, "media-1", exports[0].MediaID)
	assert.Equal(t, "clip.mp4", exports[0].MediaName)
	assert.Equal(t, []string{"interview", "hiring"}, exports[0].Keywords)
	assert.Equal(t, created, exports[0].CreatedAt)

	assert.Equal(t, "media-2", exports[1].MediaID)
	assert.Empty(t, exports[1].Keywords)
}
