package model

// MediaRecord is one row of the "MediaRecord" table. The pipeline creates it
// exactly once per task, only for videos that passed moderation.
type MediaRecord struct {
	ID               string
	UserID           string
	URL              string
	ThumbnailURL     string
	Name             string
	Type             string
	Visibility       string
	ModerationStatus string
	ApprovalStatus   string
	OriginalFilename string
	FileSize         int64
	MimeType         string
	Duration         int
}

// NewMediaRecord builds the record for a moderated video from its task
// payload, with the fixed defaults every pipeline-created record gets.
func NewMediaRecord(id string, payload TaskPayload) MediaRecord {
	return MediaRecord{
		ID:               id,
		UserID:           payload.UserID,
		URL:              payload.VideoURL,
		ThumbnailURL:     payload.ThumbnailURL,
		Name:             payload.FileName,
		Type:             "USER_VIDEO",
		Visibility:       "PRIVATE",
		ModerationStatus: "APPROVED",
		ApprovalStatus:   "DRAFT",
		OriginalFilename: payload.FileName,
		FileSize:         payload.FileSize,
		MimeType:         payload.MimeType,
		Duration:         payload.Duration,
	}
}
