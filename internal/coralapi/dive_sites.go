package coralapi

import (
	"context"

	"github.com/ngmaloney/coral-terminal/internal/models"
)

// ListDiveSites retrieves every known dive site
func (c *HTTPClient) ListDiveSites(ctx context.Context) ([]models.DiveSite, error) {
	var sites []models.DiveSite
	if err := c.getJSON(ctx, "/dive_sites", &sites); err != nil {
		return nil, err
	}
	if sites == nil {
		sites = []models.DiveSite{}
	}
	return sites, nil
}

// CreateDiveSite registers a new dive site. Coordinates are sent only when set.
func (c *HTTPClient) CreateDiveSite(ctx context.Context, site NewDiveSite) (*models.DiveSite, error) {
	var created models.DiveSite
	if err := c.postJSON(ctx, "/dive_sites", site, &created); err != nil {
		return nil, err
	}
	return &created, nil
}
