package storage

import "context"

// ObjectStore is the slice of the object-storage API the pipeline uses:
// fetching uploaded videos and reading the metadata the upload flow tagged
// them with.
type ObjectStore interface {
	Download(ctx context.Context, bucket, key, destPath string) error
	// Metadata returns the object's user metadata with lowercased keys.
	Metadata(ctx context.Context, bucket, key string) (map[string]string, error)
}
