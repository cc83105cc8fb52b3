package forms

import (
	"strconv"
	"strings"
)

// Dive site form messages
const (
	MsgNameRequired   = "Dive site name is required"
	MsgLatitudeRange  = "Latitude must be between -90 and 90 degrees"
	MsgLongitudeRange = "Longitude must be between -180 and 180 degrees"
)

var diveSiteMessages = map[string]string{
	"Name":      MsgNameRequired,
	"Latitude":  MsgLatitudeRange,
	"Longitude": MsgLongitudeRange,
}

// DiveSite is a parsed, validated dive site creation form
type DiveSite struct {
	Name      string   `validate:"required"`
	Latitude  *float64 `validate:"omitnil,gte=-90,lte=90"`
	Longitude *float64 `validate:"omitnil,gte=-180,lte=180"`
}

// ParseDiveSite trims and parses the raw form fields. Empty coordinates are
// left unset; anything that does not parse as a number fails with that
// coordinate's range message.
func ParseDiveSite(name, latitude, longitude string) (DiveSite, error) {
	form := DiveSite{Name: strings.TrimSpace(name)}

	lat, ok := parseCoordinate(latitude)
	if !ok {
		return form, &FieldError{Field: "Latitude", Message: MsgLatitudeRange}
	}
	lon, ok := parseCoordinate(longitude)
	if !ok {
		return form, &FieldError{Field: "Longitude", Message: MsgLongitudeRange}
	}
	form.Latitude = lat
	form.Longitude = lon

	if err := check(form, diveSiteMessages); err != nil {
		return form, err
	}
	return form, nil
}

func parseCoordinate(s string) (*float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, false
	}
	return &v, true
}
