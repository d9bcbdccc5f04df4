package domain

import "time"

// EntityFile is attachment metadata for a stored binary. Compressed
// reports whether the payload is gzip-compressed at rest; SizeBytes is
// always the original size.
type EntityFile struct {
	ID           string
	EntityType   string
	EntityID     string
	FileName     string
	ContentType  string
	SizeBytes    int64
	StorageKey   string
	Compressed   bool
	ThumbnailKey *string
	UploadedBy   string
	CreatedAt    time.Time
}
