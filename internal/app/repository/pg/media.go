package pg

import (
	"context"
	"database/sql"
	"fmt"

	"interview-pipeline/internal/app/model"
)

// InsertMedia creates the media row for a video that passed moderation.
func (pdb *PostgresDB) InsertMedia(ctx context.Context, media model.MediaRecord) error {
	insert := `
		INSERT INTO "MediaRecord"
		(id, "userId", url, "thumbnailUrl", name, type, visibility, "moderationStatus",
		 "approvalStatus", "originalFilename", "fileSize", "mimeType", duration,
		 "createdAt", "updatedAt")
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())`

	_, err := pdb.db.ExecContext(ctx, insert,
		media.ID,
		media.UserID,
		media.URL,
		nullIfEmpty(media.ThumbnailURL),
		media.Name,
		media.Type,
		media.Visibility,
		media.ModerationStatus,
		media.ApprovalStatus,
		media.OriginalFilename,
		nullIfZero(media.FileSize),
		nullIfEmpty(media.MimeType),
		nullIfZeroInt(media.Duration),
	)
	if err != nil {
		return fmt.Errorf("insert media record: %w", err)
	}
	return nil
}

func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullIfZero(n int64) sql.NullInt64 {
	return sql.NullInt64{Int64: n, Valid: n != 0}
}

func nullIfZeroInt(n int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(n), Valid: n != 0}
}
