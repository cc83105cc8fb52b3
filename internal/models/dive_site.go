package models

import "fmt"

// DiveSite represents a named, optionally geolocated dive location
type DiveSite struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// FormatCoordinate renders a coordinate with 4 decimals, or "-" when absent
func FormatCoordinate(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.4f", *v)
}

