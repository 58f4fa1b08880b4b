package models

// RegionalSettings holds static per-state reference figures fed into the
// analysis prompt as market context. It is a fixed lookup table, not derived
// data.
type RegionalSettings struct {
	TaxRate      float64
	PricePerSqft float64
}

var regionalSettings = map[string]RegionalSettings{
	"CA": {TaxRate: 0.012, PricePerSqft: 650},
	"TX": {TaxRate: 0.021, PricePerSqft: 200},
	"FL": {TaxRate: 0.019, PricePerSqft: 300},
	"NY": {TaxRate: 0.015, PricePerSqft: 800},
}

// RegionalFor returns the reference figures for a state abbreviation.
// Unknown states get the zero value, which renders as 0 in prompts.
func RegionalFor(state string) RegionalSettings {
	return regionalSettings[state]
}
