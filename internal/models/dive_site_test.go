package models

import "testing"

func floatPtr(f float64) *float64 { return &f }

func TestFormatCoordinate(t *testing.T) {
	tests := []struct {
		name string
		in   *float64
		want string
	}{
		{"absent", nil, "-"},
		{"zero", floatPtr(0), "0.0000"},
		{"bonaire latitude", floatPtr(12.15432), "12.1543"},
		{"negative longitude", floatPtr(-68.27751), "-68.2775"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatCoordinate(tt.in); got != tt.want {
				t.Errorf("FormatCoordinate() = %q, want %q", got, tt.want)
			}
		})
	}
}

