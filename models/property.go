package models

// Unknown is the explicit marker used for listing fields the upstream source
// did not provide. Optional fields always carry this marker instead of being
// absent, so formatting code never has to branch on presence.
const Unknown = "N/A"

// QueryFilters holds the user-supplied search constraints.
type QueryFilters struct {
	Location     string  `json:"location"`
	MaxPrice     float64 `json:"max_price"`
	PropertyType string  `json:"property_type"`
	Bedrooms     *int    `json:"bedrooms,omitempty"`
	Category     string  `json:"property_category"`

	// Coordinate overrides for the directory provider. Zero coordinates mean
	// "resolve from Location"; a zero outer radius means "use the default".
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
	RadiusMin int     `json:"radius_min,omitempty"`
	RadiusMax int     `json:"radius_max,omitempty"`
}

// Valid reports whether the filters satisfy the basic invariants:
// a positive price ceiling, non-negative bedroom count and radii.
func (f QueryFilters) Valid() bool {
	if f.MaxPrice <= 0 {
		return false
	}
	if f.Bedrooms != nil && *f.Bedrooms < 0 {
		return false
	}
	if f.RadiusMin < 0 || f.RadiusMax < 0 {
		return false
	}
	return true
}

// PropertyRecord is the canonical normalized listing, independent of which
// upstream source produced it. Numeric optionals are zero when unknown and
// their text renderings show the Unknown marker.
type PropertyRecord struct {
	BuildingName  string  `json:"building_name"`
	PropertyType  string  `json:"property_type"`
	Address       string  `json:"address"`
	Price         float64 `json:"price"`
	Description   string  `json:"description"`
	SquareFeet    float64 `json:"square_feet"`
	Bedrooms      int     `json:"bedrooms"`
	Bathrooms     float64 `json:"bathrooms"`
	LotSize       string  `json:"lot_size"`
	YearBuilt     int     `json:"year_built"`
	HOAFees       string  `json:"hoa_fees"`
	PropertyTaxes string  `json:"property_taxes"`
	MLSNumber     string  `json:"mls_number"`
}

// LocationTrend holds neighborhood-level market figures extracted from a
// market-trends page.
type LocationTrend struct {
	Neighborhood string  `json:"neighborhood"`
	MedianPrice  float64 `json:"median_price"`
	PricePerSqft float64 `json:"price_per_sqft"`
	YoYChange    float64 `json:"yoy_change"`
	DaysOnMarket int     `json:"days_on_market"`
	SchoolRating float64 `json:"school_rating"`
}

// MarketAnalysis is the result of one full pipeline run. Analysis is opaque
// model text and is never parsed back out.
type MarketAnalysis struct {
	Analysis   string           `json:"analysis"`
	Properties []PropertyRecord `json:"properties"`
	Metrics    *PriceMetrics    `json:"metrics,omitempty"`
	Warning    string           `json:"warning,omitempty"`
}

// PriceMetrics holds the derived numbers computed directly from the
// normalized records, used for the supplementary chart.
type PriceMetrics struct {
	TotalProperties int              `json:"total_properties"`
	AveragePrice    float64          `json:"average_price"`
	MinPrice        float64          `json:"min_price"`
	MaxPrice        float64          `json:"max_price"`
	PricePerSqft    []PricePerSqft   `json:"price_per_sqft"`
	MostExpensive   *PropertyRecord  `json:"most_expensive,omitempty"`
}

// PricePerSqft is one bar of the price-per-square-foot chart. Only records
// with a known positive area contribute an entry.
type PricePerSqft struct {
	Address string  `json:"address"`
	Value   float64 `json:"value"`
}
