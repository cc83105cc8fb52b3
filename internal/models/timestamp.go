package models

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// Layouts accepted from the API, tried in order.
// The backend stores sqlite CURRENT_TIMESTAMP values, which are UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Timestamp is a server-provided time that keeps its raw text when it cannot be parsed
type Timestamp struct {
	Time time.Time
	Raw  string
}

// ParseTimestamp parses s using the known API layouts
func ParseTimestamp(s string) Timestamp {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return Timestamp{Time: t, Raw: s}
		}
	}
	return Timestamp{Raw: s}
}

// Valid reports whether the raw value was parsed into a time
func (t Timestamp) Valid() bool {
	return !t.Time.IsZero()
}

// Date renders the date portion in local time, or the raw value
func (t Timestamp) Date() string {
	if !t.Valid() {
		return t.Raw
	}
	return t.Time.Local().Format("Jan 2, 2006")
}

// String renders date and time in local time, or the raw value
func (t Timestamp) String() string {
	if !t.Valid() {
		return t.Raw
	}
	return t.Time.Local().Format("Jan 2, 2006 3:04 PM")
}

// UnmarshalJSON accepts a string or null
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*t = Timestamp{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*t = ParseTimestamp(s)
	return nil
}

