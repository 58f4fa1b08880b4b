package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"realestate-agent/utils"
)

const userAgent = "realestate-agent"

// Place is one candidate returned by a forward search.
type Place struct {
	DisplayName string  `json:"display_name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

// Client talks to a Nominatim-compatible geocoding service.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *utils.Logger
}

// NewClient creates a geocoding Client for the given base URL.
func NewClient(baseURL string, timeout time.Duration, logger *utils.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// Search resolves free text into candidate places, at most limit results.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]Place, error) {
	if limit <= 0 {
		limit = 5
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("addressdetails", "1")
	params.Set("limit", strconv.Itoa(limit))
	params.Set("accept-language", "en")

	var raw []struct {
		DisplayName string `json:"display_name"`
		Lat         string `json:"lat"`
		Lon         string `json:"lon"`
	}
	if err := c.get(ctx, "/search", params, &raw); err != nil {
		return nil, err
	}

	places := make([]Place, 0, len(raw))
	for _, r := range raw {
		lat, latErr := strconv.ParseFloat(r.Lat, 64)
		lon, lonErr := strconv.ParseFloat(r.Lon, 64)
		if latErr != nil || lonErr != nil {
			c.logger.Warn("[geocode] Dropping candidate with bad coordinates: %q", r.DisplayName)
			continue
		}
		places = append(places, Place{DisplayName: r.DisplayName, Latitude: lat, Longitude: lon})
	}
	return places, nil
}

// Reverse resolves coordinates into a display name.
func (c *Client) Reverse(ctx context.Context, lat, lon float64) (string, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', 5, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', 5, 64))
	params.Set("format", "json")
	params.Set("accept-language", "en")

	var raw struct {
		DisplayName string `json:"display_name"`
	}
	if err := c.get(ctx, "/reverse", params, &raw); err != nil {
		return "", err
	}
	return raw.DisplayName, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("geocode: build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("geocode: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("geocode: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("geocode: unexpected status %d", resp.StatusCode)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("geocode: malformed response: %w", err)
	}
	return nil
}
