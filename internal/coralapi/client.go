// Package coralapi is the client for the CoralWatch HTTP API: dive sites,
// corals, observation timelines and image uploads.
package coralapi

import (
	"context"

	"github.com/ngmaloney/coral-terminal/internal/models"
)

// DiveSiteClient defines the interface for listing and creating dive sites
type DiveSiteClient interface {
	// ListDiveSites retrieves every known dive site
	ListDiveSites(ctx context.Context) ([]models.DiveSite, error)

	// CreateDiveSite registers a new dive site and returns it as stored
	CreateDiveSite(ctx context.Context, site NewDiveSite) (*models.DiveSite, error)
}

// CoralClient defines the interface for browsing corals and their timelines
type CoralClient interface {
	// ListCoralsAtSite retrieves the corals tracked at a dive site
	ListCoralsAtSite(ctx context.Context, diveSiteID int) ([]models.Coral, error)

	// CoralTimeline retrieves a coral's observations in server order
	CoralTimeline(ctx context.Context, coralInternalID string) ([]models.Observation, error)
}

// UploadClient defines the interface for submitting observation images
type UploadClient interface {
	// UploadImage sends an image with its metadata; the server creates or extends a coral
	UploadImage(ctx context.Context, req UploadRequest) (*UploadResult, error)
}

// ImageLocator builds display URLs for stored images
type ImageLocator interface {
	// ImageURL returns the URL an image filename is served from
	ImageURL(filename string) string
}

// Client is the full API surface used by the terminal pages
type Client interface {
	DiveSiteClient
	CoralClient
	UploadClient
	ImageLocator
}

// NewDiveSite is the body of a dive site creation request
type NewDiveSite struct {
	Name      string   `json:"name"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// UploadRequest describes one image upload. Empty optional fields are not sent.
type UploadRequest struct {
	ImagePath       string
	DiveSiteName    string
	StatusGuess     string
	Notes           string
	ExistingCoralID string
}

// UploadResult is the server's answer to an upload
type UploadResult struct {
	CoralInternalID string `json:"coral_internal_id"`
	Filename        string `json:"filename"`
	DiveSite        string `json:"dive_site"`
	Message         string `json:"message"`
}
