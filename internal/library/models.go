package library

import (
	"time"

	"webmify/internal/convert"
)

// Attachment represents one catalogued media file.
type Attachment struct {
	ID              int64
	ExternalID      string
	Path            string
	URL             string
	MIMEType        string
	SizeBytes       int64
	DurationSeconds float64
	Width           int
	Height          int
	ConvertedAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsVideo reports whether the attachment carries a video MIME type.
func (a Attachment) IsVideo() bool {
	return convert.IsVideo(a.MIMEType)
}

// IsConverted reports whether a conversion has been applied to this attachment.
func (a Attachment) IsConverted() bool {
	return a.ConvertedAt != nil
}

// FileMetadata carries regenerated derived metadata for a converted file.
type FileMetadata struct {
	SizeBytes       int64
	DurationSeconds float64
	Width           int
	Height          int
}

// Stats summarizes the catalog for status reporting.
type Stats struct {
	Total     int
	Videos    int
	Converted int
}
