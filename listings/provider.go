package listings

import (
	"context"
	"encoding/json"
	"fmt"
)

// Query carries everything an adapter needs to build a source request.
// Coordinate fields are only meaningful for the directory variant.
type Query struct {
	Location     string  `json:"location"`
	City         string  `json:"city"`
	State        string  `json:"state"`
	MaxPrice     float64 `json:"max_price"`
	PropertyType string  `json:"property_type"`
	Category     string  `json:"property_category"`
	Bedrooms     *int    `json:"bedrooms,omitempty"`

	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
	RadiusMin int     `json:"radius_min,omitempty"`
	RadiusMax int     `json:"radius_max,omitempty"`
}

// Key returns the stable serialization of the query used as the memoization
// cache key. Struct field order fixes the byte layout.
func (q Query) Key() string {
	b, err := json.Marshal(q)
	if err != nil {
		// Query contains only plain values; Marshal cannot realistically fail.
		return fmt.Sprintf("%+v", q)
	}
	return string(b)
}

// Provider is the boundary to an external listings source. Implementations
// must degrade upstream failures to an empty slice plus an error for display;
// they never panic past this boundary.
type Provider interface {
	// Search returns raw heterogeneous property records for the query.
	Search(ctx context.Context, q Query) ([]map[string]any, error)
	// Trends returns raw neighborhood trend rows for the query's location.
	Trends(ctx context.Context, q Query) ([]map[string]any, error)
}
