package agent

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"realestate-agent/geocode"
	"realestate-agent/listings"
	"realestate-agent/llm"
	"realestate-agent/models"
	"realestate-agent/utils"
)

// stubProvider returns canned raw records and records the query it was given.
type stubProvider struct {
	records     []map[string]any
	trendRows   []map[string]any
	searchCalls int
	lastQuery   listings.Query
	err         error
}

func (p *stubProvider) Search(ctx context.Context, q listings.Query) ([]map[string]any, error) {
	p.searchCalls++
	p.lastQuery = q
	return p.records, p.err
}

func (p *stubProvider) Trends(ctx context.Context, q listings.Query) ([]map[string]any, error) {
	return p.trendRows, p.err
}

// stubModel captures the last request and returns a fixed completion.
type stubModel struct {
	lastReq llm.Request
	reply   string
	err     error
}

func (m *stubModel) Complete(ctx context.Context, req llm.Request) (string, error) {
	m.lastReq = req
	if m.err != nil {
		return "", m.err
	}
	return m.reply, nil
}

// stubLocator returns canned geocoding candidates and counts calls.
type stubLocator struct {
	places []geocode.Place
	calls  int
	err    error
}

func (l *stubLocator) Search(ctx context.Context, query string, limit int) ([]geocode.Place, error) {
	l.calls++
	return l.places, l.err
}

func austinLocator() *stubLocator {
	return &stubLocator{places: []geocode.Place{
		{DisplayName: "Austin, Travis County, Texas", Latitude: 30.2672, Longitude: -97.7431},
	}}
}

func austinFilters() models.QueryFilters {
	return models.QueryFilters{
		Location:     "Austin, TX",
		MaxPrice:     450000,
		PropertyType: "Condo",
		Category:     "Residential",
	}
}

// Four raw records: one malformed price with a stray suffix, two missing
// bedrooms.
func austinRawRecords() []map[string]any {
	return []map[string]any{
		{"building_name": "The Domain", "property_type": "Condo", "address": "100 Domain Dr", "price": "350,000+", "square_feet": 1400.0, "bedrooms": 2.0},
		{"building_name": "Congress Lofts", "property_type": "Condo", "address": "500 Congress Ave", "price": 440000.0, "square_feet": 1100.0},
		{"building_name": "Mueller Flats", "property_type": "Condo", "address": "1801 Aldrich St", "price": 395000.0, "bedrooms": 3.0},
		{"building_name": "East Side Walk", "property_type": "Condo", "address": "2200 E 7th St", "price": 410000.0, "square_feet": 950.0},
	}
}

func TestFindPropertiesEndToEnd(t *testing.T) {
	provider := &stubProvider{records: austinRawRecords()}
	model := &stubModel{reply: "🏠 SELECTED PROPERTIES\n..."}
	a := New(provider, model, "gpt-4o", nil, utils.NewSilentLogger())

	analysis, err := a.FindProperties(context.Background(), austinFilters())
	if err != nil {
		t.Fatalf("FindProperties: %v", err)
	}

	if len(analysis.Properties) != 4 {
		t.Fatalf("expected 4 records, got %d", len(analysis.Properties))
	}
	if analysis.Properties[0].Price != 350000 {
		t.Errorf("malformed price: got %.0f, want 350000", analysis.Properties[0].Price)
	}

	// Missing bedrooms render the unknown marker in the prompt lines.
	prompt := model.lastReq.Messages[1].Content
	if !strings.Contains(prompt, models.Unknown+" beds") {
		t.Error("prompt should show the unknown marker for missing bedrooms")
	}
	for _, want := range []string{"450000", "Condo"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}

	if analysis.Analysis != model.reply {
		t.Error("model text should pass through verbatim")
	}
	if analysis.Metrics == nil || analysis.Metrics.TotalProperties != 4 {
		t.Errorf("metrics: %+v", analysis.Metrics)
	}
	if analysis.Warning != "" {
		t.Errorf("unexpected warning: %q", analysis.Warning)
	}
}

func TestFindPropertiesResolvesCoordinates(t *testing.T) {
	provider := &stubProvider{records: austinRawRecords()}
	locator := austinLocator()
	a := New(provider, &stubModel{reply: "ok"}, "gpt-4o", locator, utils.NewSilentLogger())

	if _, err := a.FindProperties(context.Background(), austinFilters()); err != nil {
		t.Fatalf("FindProperties: %v", err)
	}

	q := provider.lastQuery
	if q.Latitude != 30.2672 || q.Longitude != -97.7431 {
		t.Errorf("query should carry resolved coordinates, got lat=%v lon=%v", q.Latitude, q.Longitude)
	}
	if q.RadiusMax <= 0 {
		t.Errorf("query should carry a positive outer radius, got %d", q.RadiusMax)
	}
	if locator.calls != 1 {
		t.Errorf("expected one geocoding call, got %d", locator.calls)
	}
}

func TestFindPropertiesExplicitCoordinatesSkipGeocoding(t *testing.T) {
	provider := &stubProvider{records: austinRawRecords()}
	locator := austinLocator()
	a := New(provider, &stubModel{reply: "ok"}, "gpt-4o", locator, utils.NewSilentLogger())

	filters := austinFilters()
	filters.Latitude = 29.4241
	filters.Longitude = -98.4936
	filters.RadiusMin = 5
	filters.RadiusMax = 40

	if _, err := a.FindProperties(context.Background(), filters); err != nil {
		t.Fatalf("FindProperties: %v", err)
	}

	if locator.calls != 0 {
		t.Errorf("explicit coordinates should skip geocoding, got %d calls", locator.calls)
	}
	q := provider.lastQuery
	if q.Latitude != 29.4241 || q.Longitude != -98.4936 || q.RadiusMin != 5 || q.RadiusMax != 40 {
		t.Errorf("query should carry the explicit coordinates: %+v", q)
	}
}

func TestFindPropertiesGeocodeFailureStillSearches(t *testing.T) {
	provider := &stubProvider{records: austinRawRecords()}
	locator := &stubLocator{err: fmt.Errorf("geocoder down")}
	a := New(provider, &stubModel{reply: "ok"}, "gpt-4o", locator, utils.NewSilentLogger())

	analysis, err := a.FindProperties(context.Background(), austinFilters())
	if err != nil {
		t.Fatalf("geocoding failure must not surface as an error: %v", err)
	}
	if provider.searchCalls != 1 {
		t.Errorf("search should still run, got %d calls", provider.searchCalls)
	}
	if len(analysis.Properties) != 4 {
		t.Errorf("expected 4 records, got %d", len(analysis.Properties))
	}
}

func TestFindPropertiesInvalidFilters(t *testing.T) {
	a := New(&stubProvider{}, &stubModel{reply: "ok"}, "gpt-4o", nil, utils.NewSilentLogger())

	if _, err := a.FindProperties(context.Background(), models.QueryFilters{Location: "Austin", MaxPrice: 0}); err == nil {
		t.Error("zero max price should be rejected")
	}

	neg := -1
	bad := austinFilters()
	bad.Bedrooms = &neg
	if _, err := a.FindProperties(context.Background(), bad); err == nil {
		t.Error("negative bedrooms should be rejected")
	}

	bad = austinFilters()
	bad.RadiusMax = -10
	if _, err := a.FindProperties(context.Background(), bad); err == nil {
		t.Error("negative radius should be rejected")
	}
}

func TestFindPropertiesProviderFailureDegrades(t *testing.T) {
	provider := &stubProvider{err: fmt.Errorf("upstream down")}
	model := &stubModel{reply: "analysis of nothing"}
	a := New(provider, model, "gpt-4o", nil, utils.NewSilentLogger())

	analysis, err := a.FindProperties(context.Background(), austinFilters())
	if err != nil {
		t.Fatalf("provider failure must not surface as an error: %v", err)
	}
	if len(analysis.Properties) != 0 {
		t.Errorf("expected empty property set, got %d", len(analysis.Properties))
	}
	if analysis.Warning == "" {
		t.Error("provider failure should be surfaced as a warning")
	}
	if analysis.Analysis != model.reply {
		t.Error("the analysis flow should still run on an empty set")
	}
}

func TestFindPropertiesModelFailureUsesPlaceholder(t *testing.T) {
	provider := &stubProvider{records: austinRawRecords()}
	model := &stubModel{err: fmt.Errorf("model down")}
	a := New(provider, model, "gpt-4o", nil, utils.NewSilentLogger())

	analysis, err := a.FindProperties(context.Background(), austinFilters())
	if err != nil {
		t.Fatalf("model failure must not surface as an error: %v", err)
	}
	if analysis.Analysis != analysisPlaceholder {
		t.Errorf("expected placeholder analysis, got %q", analysis.Analysis)
	}
	if len(analysis.Properties) != 4 {
		t.Error("records should still be mapped when the model fails")
	}
}

func TestMarketTrends(t *testing.T) {
	provider := &stubProvider{trendRows: []map[string]any{
		{"neighborhood": "Hyde Park", "median_price": 550000.0},
	}}
	model := &stubModel{reply: "📊 MARKET OVERVIEW\n..."}
	a := New(provider, model, "gpt-4o", nil, utils.NewSilentLogger())

	got := a.MarketTrends(context.Background(), "Austin, TX")
	if got != model.reply {
		t.Errorf("MarketTrends: got %q", got)
	}
	if !strings.Contains(model.lastReq.Messages[1].Content, "Hyde Park") {
		t.Error("trends prompt should embed the trend rows")
	}
}

func TestMarketTrendsNoData(t *testing.T) {
	a := New(&stubProvider{err: fmt.Errorf("no trends endpoint")}, &stubModel{reply: "x"}, "gpt-4o", nil, utils.NewSilentLogger())

	if got := a.MarketTrends(context.Background(), "Austin, TX"); got != noTrendsMessage {
		t.Errorf("expected no-data message, got %q", got)
	}

	a = New(&stubProvider{}, &stubModel{reply: "x"}, "gpt-4o", nil, utils.NewSilentLogger())
	if got := a.MarketTrends(context.Background(), "Austin, TX"); got != noTrendsMessage {
		t.Errorf("empty rows should yield the no-data message, got %q", got)
	}
}

func TestInvestorSummary(t *testing.T) {
	model := &stubModel{reply: "A strong buy-side market."}
	a := New(&stubProvider{}, model, "gpt-4o", nil, utils.NewSilentLogger())

	got := a.InvestorSummary(context.Background(), "some analysis text")
	if got != model.reply {
		t.Errorf("InvestorSummary: got %q", got)
	}
	if model.lastReq.MaxTokens != 200 {
		t.Errorf("summary pass should cap output at 200 tokens, got %d", model.lastReq.MaxTokens)
	}
	if !strings.Contains(model.lastReq.Messages[1].Content, "some analysis text") {
		t.Error("summary prompt should embed the prior analysis")
	}
}
