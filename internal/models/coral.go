package models

// Coral represents a tracked individual coral at one dive site
type Coral struct {
	ID          int       `json:"id"`
	InternalID  string    `json:"internal_id"`
	Thumbnail   string    `json:"thumbnail"`
	LastUpdated Timestamp `json:"last_updated_timestamp"`
}
