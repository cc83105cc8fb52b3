package models

import "strings"

// Observation is a single timestamped image-plus-metadata record on a coral's timeline
type Observation struct {
	ImageFilename string    `json:"image_filename"`
	Timestamp     Timestamp `json:"timestamp"`
	Status        *string   `json:"status"`
	Notes         *string   `json:"notes"`
}

// StatusText returns the status or "" when none was reported
func (o Observation) StatusText() string {
	if o.Status == nil {
		return ""
	}
	return strings.TrimSpace(*o.Status)
}

// NotesText returns the notes or "" when none were given
func (o Observation) NotesText() string {
	if o.Notes == nil {
		return ""
	}
	return strings.TrimSpace(*o.Notes)
}

// IsHealthy reports whether the status mentions "healthy", ignoring case
func (o Observation) IsHealthy() bool {
	return strings.Contains(strings.ToLower(o.StatusText()), "healthy")
}
