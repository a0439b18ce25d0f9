package pg

import (
	"context"
	"encoding/json"
	"fmt"

	"interview-pipeline/internal/app/model"
	"interview-pipeline/internal/app/repository"
)

// InsertTranscript creates the transcript row at the end of a successful run.
func (pdb *PostgresDB) InsertTranscript(ctx context.Context, transcript model.TranscriptRecord) error {
	keywords, err := json.Marshal(transcript.Keywords)
	if err != nil {
		return fmt.Errorf("encode keywords: %w", err)
	}
	mappings, err := json.Marshal(transcript.SpeakerMappings)
	if err != nil {
		return fmt.Errorf("encode speaker mappings: %w", err)
	}
	segments, err := json.Marshal(transcript.RawSegments)
	if err != nil {
		return fmt.Errorf("encode raw segments: %w", err)
	}

	insert := `
		INSERT INTO "TranscriptRecord"
		(id, "mediaId", text, status, "isCurrent", summary, keywords, "speakerMappings",
		 "rawSegments", "createdAt", "updatedAt")
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())`

	_, err = pdb.db.ExecContext(ctx, insert,
		transcript.ID,
		transcript.MediaID,
		transcript.Text,
		transcript.Status,
		transcript.IsCurrent,
		transcript.Summary,
		keywords,
		mappings,
		segments,
	)
	if err != nil {
		return fmt.Errorf("insert transcript record: %w", err)
	}
	return nil
}

// ListByUser returns the current transcripts for a user's media, newest first.
func (pdb *PostgresDB) ListByUser(ctx context.Context, userID string) ([]repository.TranscriptExport, error) {
	query := `
		SELECT m.id, m.name, t.summary, t.keywords, t.text, t."createdAt"
		FROM "TranscriptRecord" t
		JOIN "MediaRecord" m ON m.id = t."mediaId"
		WHERE m."userId" = $1
		  AND t."isCurrent" = TRUE
		ORDER BY t."createdAt" DESC`

	rows, err := pdb.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query transcripts: %w", err)
	}
	defer rows.Close()

	var exports []repository.TranscriptExport
	for rows.Next() {
		var e repository.TranscriptExport
		var rawKeywords []byte
		if err := rows.Scan(&e.MediaID, &e.MediaName, &e.Summary, &rawKeywords, &e.Text, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transcript row: %w", err)
		}
		if len(rawKeywords) > 0 {
			if err := json.Unmarshal(rawKeywords, &e.Keywords); err != nil {
				return nil, fmt.Errorf("decode keywords: %w", err)
			}
		}
		exports = append(exports, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}
	return exports, nil
}
