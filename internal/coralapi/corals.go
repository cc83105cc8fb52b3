package coralapi

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/ngmaloney/coral-terminal/internal/models"
)

// ListCoralsAtSite retrieves the corals tracked at a dive site
func (c *HTTPClient) ListCoralsAtSite(ctx context.Context, diveSiteID int) ([]models.Coral, error) {
	var corals []models.Coral
	if err := c.getJSON(ctx, "/corals_at_site/"+strconv.Itoa(diveSiteID), &corals); err != nil {
		return nil, err
	}
	if corals == nil {
		corals = []models.Coral{}
	}
	return corals, nil
}

// CoralTimeline retrieves a coral's observations. The server's order is kept.
func (c *HTTPClient) CoralTimeline(ctx context.Context, coralInternalID string) ([]models.Observation, error) {
	if coralInternalID == "" {
		return nil, fmt.Errorf("coral internal ID cannot be empty")
	}
	var observations []models.Observation
	if err := c.getJSON(ctx, "/coral_timeline/"+url.PathEscape(coralInternalID), &observations); err != nil {
		return nil, err
	}
	if observations == nil {
		observations = []models.Observation{}
	}
	return observations, nil
}
