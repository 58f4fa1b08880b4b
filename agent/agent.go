package agent

import (
	"context"
	"fmt"

	"realestate-agent/geocode"
	"realestate-agent/listings"
	"realestate-agent/llm"
	"realestate-agent/models"
	"realestate-agent/services"
	"realestate-agent/utils"
)

const (
	analysisSystemPrompt = "You are a U.S. real estate expert analyzing property markets."
	summarySystemPrompt  = "You are a senior real estate advisor specialized in investments and B2B sales."

	analysisPlaceholder = "The market analysis could not be generated. Please try again."
	noTrendsMessage     = "No market trends data available"

	// Outer search radius in km when neither the filters nor the
	// configuration supply one.
	defaultRadiusKm = 25
)

// Locator resolves free-text locations into coordinate candidates, so
// coordinate-based providers receive real coordinates instead of zeros.
type Locator interface {
	Search(ctx context.Context, query string, limit int) ([]geocode.Place, error)
}

// Agent is the explicit session context for one pipeline. Every dependency
// is injected, so each stage is independently testable with fixtures; no
// ambient globals are consulted.
type Agent struct {
	provider listings.Provider
	model    llm.Client
	modelID  string
	locator  Locator
	mapper   *services.Mapper
	insights *services.InsightService
	logger   *utils.Logger
}

// New creates an Agent over the given listings provider and model client.
// A nil locator disables coordinate resolution.
func New(provider listings.Provider, model llm.Client, modelID string, locator Locator, logger *utils.Logger) *Agent {
	return &Agent{
		provider: provider,
		model:    model,
		modelID:  modelID,
		locator:  locator,
		mapper:   services.NewMapper(logger),
		insights: services.NewInsightService(logger),
		logger:   logger,
	}
}

// FindProperties runs the full pipeline for the given filters: normalize the
// location, fetch raw listings, map them to canonical records, build the
// analysis prompt, call the model, and compute the derived metrics.
//
// Upstream failures degrade: a provider error yields an empty property set
// plus a warning, a model error yields a placeholder analysis. The returned
// error is reserved for invalid input.
func (a *Agent) FindProperties(ctx context.Context, filters models.QueryFilters) (*models.MarketAnalysis, error) {
	if !filters.Valid() {
		return nil, fmt.Errorf("agent: invalid filters: max price must be positive, bedrooms and radii non-negative")
	}

	city, state := services.ParseLocation(filters.Location)
	regional := models.RegionalFor(state)

	query := listings.Query{
		Location:     filters.Location,
		City:         city,
		State:        state,
		MaxPrice:     filters.MaxPrice,
		PropertyType: filters.PropertyType,
		Category:     filters.Category,
		Bedrooms:     filters.Bedrooms,
		Latitude:     filters.Latitude,
		Longitude:    filters.Longitude,
		RadiusMin:    filters.RadiusMin,
		RadiusMax:    filters.RadiusMax,
	}
	if query.RadiusMax <= 0 {
		query.RadiusMax = defaultRadiusKm
	}
	if query.Latitude == 0 && query.Longitude == 0 {
		a.resolveCoordinates(ctx, &query)
	}

	result := &models.MarketAnalysis{}

	raw, err := a.provider.Search(ctx, query)
	if err != nil {
		a.logger.Error("[agent] Listings search failed: %v", err)
		result.Warning = fmt.Sprintf("Listings search failed: %v", err)
		raw = nil
	}

	result.Properties = a.mapper.MapAll(raw)
	result.Metrics = a.insights.Compute(result.Properties)

	prompt := services.BuildAnalysisPrompt(result.Properties, filters, regional)
	result.Analysis = a.complete(ctx, analysisSystemPrompt, prompt, 0.5, 1000, analysisPlaceholder)

	return result, nil
}

// MarketTrends fetches neighborhood trend rows for a location and asks the
// model for a trends analysis. Any failure degrades to the no-data message.
func (a *Agent) MarketTrends(ctx context.Context, location string) string {
	city, state := services.ParseLocation(location)

	query := listings.Query{Location: location, City: city, State: state}

	raw, err := a.provider.Trends(ctx, query)
	if err != nil {
		a.logger.Error("[agent] Trends fetch failed: %v", err)
		return noTrendsMessage
	}

	trends := a.mapper.MapTrends(raw)
	if len(trends) == 0 {
		return noTrendsMessage
	}

	prompt := services.BuildTrendsPrompt(location, trends)
	return a.complete(ctx, analysisSystemPrompt, prompt, 0.5, 1000, noTrendsMessage)
}

// InvestorSummary runs a second, short model pass producing a realtor-facing
// summary of an already-produced analysis.
func (a *Agent) InvestorSummary(ctx context.Context, analysis string) string {
	prompt := services.BuildInvestorSummaryPrompt(analysis)
	return a.complete(ctx, summarySystemPrompt, prompt, 0.4, 200,
		"An investment summary could not be generated.")
}

// resolveCoordinates geocodes the query location in place. Failure leaves the
// zero coordinates; a coordinate-based provider then fails its own call and
// that error degrades as usual.
func (a *Agent) resolveCoordinates(ctx context.Context, q *listings.Query) {
	if a.locator == nil {
		return
	}

	places, err := a.locator.Search(ctx, q.Location, 1)
	if err != nil {
		a.logger.Warn("[agent] Geocoding %q failed: %v", q.Location, err)
		return
	}
	if len(places) == 0 {
		a.logger.Warn("[agent] Geocoding %q returned no candidates", q.Location)
		return
	}

	q.Latitude = places[0].Latitude
	q.Longitude = places[0].Longitude
	a.logger.Debug("[agent] Resolved %q to lat=%.5f lon=%.5f", q.Location, q.Latitude, q.Longitude)
}

// complete wraps the model call so a failure degrades to the given
// placeholder instead of aborting the flow.
func (a *Agent) complete(ctx context.Context, system, user string, temperature float32, maxTokens int, placeholder string) string {
	text, err := a.model.Complete(ctx, llm.Request{
		Model: a.modelID,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: system},
			{Role: llm.RoleUser, Content: user},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		a.logger.Error("[agent] Model call failed: %v", err)
		return placeholder
	}
	return text
}
