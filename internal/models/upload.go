package models

import "time"

// UploadRecord is a local journal entry for an image this client submitted
type UploadRecord struct {
	ID              int64
	CoralInternalID string
	DiveSite        string
	Filename        string
	Message         string
	UploadedAt      time.Time
}
