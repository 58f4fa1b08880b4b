package listings

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"realestate-agent/services"
	"realestate-agent/utils"
)

// ExtractClient queries an LLM-driven web-extraction service. One request
// carries the templated listing-site URLs, a natural-language extraction
// prompt restating the user's constraints, and a JSON schema describing the
// expected shape.
type ExtractClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
	logger  *utils.Logger
}

// NewExtractClient creates an ExtractClient against the given service.
func NewExtractClient(baseURL, apiKey string, timeout time.Duration, logger *utils.Logger) *ExtractClient {
	return &ExtractClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

type extractRequest struct {
	URLs   []string       `json:"urls"`
	Prompt string         `json:"prompt"`
	Schema map[string]any `json:"schema"`
}

type extractResponse struct {
	Success   bool           `json:"success"`
	Data      map[string]any `json:"data"`
	Status    string         `json:"status"`
	ExpiresAt string         `json:"expiresAt"`
}

// Search extracts property listings from the templated source URLs for the
// query's city/state. Upstream failure yields an empty slice plus the error.
func (c *ExtractClient) Search(ctx context.Context, q Query) ([]map[string]any, error) {
	slug := services.LocationSlug(q.City, q.State)

	urls := []string{
		fmt.Sprintf("https://www.zillow.com/homes/%s_rb/", slug),
		fmt.Sprintf("https://www.realtor.com/realestateandhomes-search/%s", slug),
		fmt.Sprintf("https://www.redfin.com/city/%s", slug),
		fmt.Sprintf("https://www.trulia.com/%s", slug),
	}

	data, err := c.extract(ctx, urls, searchPrompt(q), propertiesSchema())
	if err != nil {
		return nil, err
	}
	return recordList(data, "properties"), nil
}

// Trends extracts neighborhood market-trend rows from the location's
// housing-market page.
func (c *ExtractClient) Trends(ctx context.Context, q Query) ([]map[string]any, error) {
	url := fmt.Sprintf("https://www.zillow.com/%s/housing-market/",
		services.LocationSlug(q.City, q.State))

	prompt := fmt.Sprintf(`Extract market trends for %s, %s:
- Neighborhood price data
- School ratings
- Price trends (YoY)
- Days on market
- Rental yields`, q.City, q.State)

	data, err := c.extract(ctx, []string{url}, prompt, trendsSchema())
	if err != nil {
		return nil, err
	}
	return recordList(data, "trends"), nil
}

func (c *ExtractClient) extract(ctx context.Context, urls []string, prompt string, schema map[string]any) (map[string]any, error) {
	body, err := json.Marshal(extractRequest{URLs: urls, Prompt: prompt, Schema: schema})
	if err != nil {
		return nil, fmt.Errorf("extract: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/extract", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("extract: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("extract: request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("extract: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("extract: unexpected status %d", resp.StatusCode)
	}

	var er extractResponse
	if err := json.Unmarshal(raw, &er); err != nil {
		return nil, fmt.Errorf("extract: malformed response: %w", err)
	}
	if !er.Success {
		return nil, fmt.Errorf("extract: provider reported failure (status %q)", er.Status)
	}
	return er.Data, nil
}

// recordList pulls the named array of objects out of the response data,
// tolerating a missing key or wrong element types.
func recordList(data map[string]any, key string) []map[string]any {
	items, ok := data[key].([]any)
	if !ok {
		return []map[string]any{}
	}
	records := make([]map[string]any, 0, len(items))
	for _, it := range items {
		if m, ok := it.(map[string]any); ok {
			records = append(records, m)
		}
	}
	return records
}

func searchPrompt(q Query) string {
	prompt := fmt.Sprintf(`Extract %s properties matching:
- Location: %s
- Max Price: $%.0f
- Property Type: %s
`, q.Category, q.Location, q.MaxPrice, q.PropertyType)
	if q.Bedrooms != nil {
		prompt += fmt.Sprintf("- Bedrooms: %d\n", *q.Bedrooms)
	}
	prompt += `
Requirements:
- Include active listings only
- Minimum 3 properties, maximum 10
- Include full address and key details
- Exclude foreclosures and auctions`
	return prompt
}

func propertiesSchema() map[string]any {
	property := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"building_name":  map[string]any{"type": "string"},
			"property_type":  map[string]any{"type": "string"},
			"address":        map[string]any{"type": "string"},
			"price":          map[string]any{"type": "number"},
			"description":    map[string]any{"type": "string"},
			"square_feet":    map[string]any{"type": "number"},
			"bedrooms":       map[string]any{"type": "integer"},
			"bathrooms":      map[string]any{"type": "number"},
			"lot_size":       map[string]any{"type": "string"},
			"year_built":     map[string]any{"type": "integer"},
			"hoa_fees":       map[string]any{"type": "string"},
			"property_taxes": map[string]any{"type": "string"},
			"mls_number":     map[string]any{"type": "string"},
		},
		"required": []string{"building_name", "property_type", "address", "price", "description"},
	}
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"properties": map[string]any{"type": "array", "items": property},
		},
	}
}

func trendsSchema() map[string]any {
	trend := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"neighborhood":   map[string]any{"type": "string"},
			"median_price":   map[string]any{"type": "number"},
			"price_per_sqft": map[string]any{"type": "number"},
			"yoy_change":     map[string]any{"type": "number"},
			"days_on_market": map[string]any{"type": "integer"},
			"school_rating":  map[string]any{"type": "number"},
		},
	}
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"trends": map[string]any{"type": "array", "items": trend},
		},
	}
}
