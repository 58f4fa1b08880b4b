package services

import (
	"fmt"
	"strings"

	"realestate-agent/models"
)

// Prompt builders for the two analysis flows. The section ordering written
// into each prompt is a presentation contract the renderer relies on but does
// not parse — it is conveyed to the model as instructions only.

// BuildAnalysisPrompt assembles the property-analysis instruction text. It
// restates the hard constraints so the model is discouraged from inventing
// out-of-constraint listings, and requests 5-6 of the closest price matches.
func BuildAnalysisPrompt(records []models.PropertyRecord, filters models.QueryFilters, regional models.RegionalSettings) string {
	var b strings.Builder

	b.WriteString("As a U.S. real estate expert, analyze these properties:\n\n")

	fmt.Fprintf(&b, "Properties Found in %s:\n%s\n\n", filters.Location, FormatProperties(records))

	b.WriteString("Instructions:\n")
	fmt.Fprintf(&b, "1. ONLY analyze properties from the above listings that match:\n")
	fmt.Fprintf(&b, "   - Property Category: %s\n", filters.Category)
	fmt.Fprintf(&b, "   - Property Type: %s\n", filters.PropertyType)
	fmt.Fprintf(&b, "   - Maximum Price: $%.0f\n", filters.MaxPrice)
	if filters.Bedrooms != nil {
		fmt.Fprintf(&b, "   - Bedrooms: %d\n", *filters.Bedrooms)
	}
	b.WriteString("2. Select 5-6 properties with prices closest to the maximum price\n\n")

	b.WriteString("Analysis Requirements:\n")
	fmt.Fprintf(&b, "- Price vs local median ($%.0f/sqft)\n", regional.PricePerSqft)
	b.WriteString("- Price per square foot and lot size value\n")
	fmt.Fprintf(&b, "- Tax estimates (%.1f%% rate) and HOA impact\n", regional.TaxRate*100)
	b.WriteString("\n")

	b.WriteString("Respond with exactly these sections in this order:\n\n")
	b.WriteString("🏠 SELECTED PROPERTIES\n")
	b.WriteString("• List the selected properties with prices and key features\n\n")
	b.WriteString("💰 VALUE ANALYSIS\n")
	b.WriteString("• Price/SqFt comparison and best deals\n\n")
	b.WriteString("📍 LOCATION INSIGHTS\n")
	b.WriteString("• Neighborhood and market context\n\n")
	b.WriteString("💡 RECOMMENDATIONS\n")
	b.WriteString("• Top value picks, investment potential, red flags\n\n")
	b.WriteString("🤝 NEGOTIATION TIPS\n")
	b.WriteString("• Leverage points for the buyer\n")

	return b.String()
}

// BuildTrendsPrompt assembles the market-trends instruction text for a
// location, with its own fixed section ordering.
func BuildTrendsPrompt(location string, trends []models.LocationTrend) string {
	var b strings.Builder

	fmt.Fprintf(&b, "As a real estate expert, analyze market trends for %s:\n\n", location)

	b.WriteString("Data:\n")
	for _, t := range trends {
		fmt.Fprintf(&b, "- %s: median $%.0f, $%.0f/sqft, %+.1f%% YoY, %d days on market, school rating %.1f\n",
			t.Neighborhood, t.MedianPrice, t.PricePerSqft, t.YoYChange, t.DaysOnMarket, t.SchoolRating)
	}
	b.WriteString("\n")

	b.WriteString("Respond with exactly these sections in this order:\n\n")
	b.WriteString("📊 MARKET OVERVIEW\n")
	b.WriteString("• Current median price and market temperature\n\n")
	b.WriteString("🏫 SCHOOL IMPACT\n")
	b.WriteString("• Top districts and price premiums\n\n")
	b.WriteString("🚀 GROWTH AREAS\n")
	b.WriteString("• Upcoming neighborhoods and development projects\n\n")
	b.WriteString("💡 INVESTOR GUIDE\n")
	b.WriteString("• Best rental yields and flipping opportunities\n")

	return b.String()
}

// BuildInvestorSummaryPrompt asks for a short realtor-facing summary of an
// already-produced analysis.
func BuildInvestorSummaryPrompt(analysis string) string {
	return "As a professional real estate advisor, write a 3-5 sentence summary " +
		"of the investment advantages of these properties, addressed to Realtors " +
		"and real estate sellers. Highlight appreciation potential, area " +
		"attractiveness, rental demand, expected returns, and competitive " +
		"advantages versus the market. Use a professional, consultative tone.\n\n" +
		"AI ANALYSIS:\n" + analysis
}

// FormatProperties renders the normalized records as prompt-ready bullet
// lines. Zero-valued optionals show the Unknown marker.
func FormatProperties(records []models.PropertyRecord) string {
	if len(records) == 0 {
		return "(no properties found)"
	}

	lines := make([]string, 0, len(records))
	for _, r := range records {
		lines = append(lines, fmt.Sprintf("- %s (%s) at %s for $%.0f (%s beds, %s baths, %s sqft)",
			r.BuildingName, r.PropertyType, r.Address, r.Price,
			markerIfZeroInt(r.Bedrooms), markerIfZero(r.Bathrooms), markerIfZero(r.SquareFeet)))
	}
	return strings.Join(lines, "\n")
}
