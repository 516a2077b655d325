package api

import (
	"context"
	"encoding/json"

	"github.com/citysafe/citysafe-go/internal/models"
)

// AllCrimeLocations returns per-area incident counts for the density map.
// Entries with no usable name are dropped here; counts arrive under either
// "crimeCount" or "count".
func (c *Client) AllCrimeLocations(ctx context.Context) ([]models.LocationCount, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "/map/getAllCrimeLocation", nil, &raw); err != nil {
		return nil, err
	}

	entries := []locationEntry{}
	if err := decodeList(raw, &entries); err != nil {
		return nil, &TransportError{Op: "GET /map/getAllCrimeLocation", Err: err}
	}

	counts := make([]models.LocationCount, 0, len(entries))
	for _, e := range entries {
		if e.Name == "" {
			continue
		}
		counts = append(counts, models.LocationCount{Name: e.Name, Count: e.count()})
	}
	return counts, nil
}

// AllCrimeReports returns the scraped crime report feed.
func (c *Client) AllCrimeReports(ctx context.Context) ([]models.CrimeReport, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "/crimeReports/getAllCrimeReports", nil, &raw); err != nil {
		return nil, err
	}
	reports := []models.CrimeReport{}
	if err := decodeList(raw, &reports); err != nil {
		return nil, &TransportError{Op: "GET /crimeReports/getAllCrimeReports", Err: err}
	}
	return reports, nil
}
