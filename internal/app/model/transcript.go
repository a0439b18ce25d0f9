package model

// TranscriptStatusCompleted is the only status the pipeline writes; failed
// runs leave no transcript row.
const TranscriptStatusCompleted = "COMPLETED"

// TranscriptRecord is one row of the "TranscriptRecord" table.
type TranscriptRecord struct {
	ID              string
	MediaID         string
	Text            string
	Status          string
	IsCurrent       bool
	Summary         string
	Keywords        []string
	SpeakerMappings map[string]string
	RawSegments     []Segment
}
