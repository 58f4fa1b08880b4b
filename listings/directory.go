package listings

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

// DirectoryClient queries a coordinate/radius listings directory API
// (RapidAPI-style host and key headers).
type DirectoryClient struct {
	scheme string
	host   string
	apiKey string
	http   *http.Client
	logger *utils.Logger
}

// NewDirectoryClient creates a DirectoryClient for the given API host.
func NewDirectoryClient(host, apiKey string, timeout time.Duration, logger *utils.Logger) *DirectoryClient {
	return &DirectoryClient{
		scheme: "https",
		host:   host,
		apiKey: apiKey,
		http:   &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// Search issues a single coordinate/radius query and returns the raw nested
// listing objects. The API takes one radius, so the outer bound of the
// requested range is sent.
func (c *DirectoryClient) Search(ctx context.Context, q Query) ([]map[string]any, error) {
	radius := q.RadiusMax
	if radius <= 0 {
		radius = q.RadiusMin
	}

	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(q.Latitude, 'f', 5, 64))
	params.Set("longitude", strconv.FormatFloat(q.Longitude, 'f', 5, 64))
	params.Set("radius", strconv.Itoa(radius))

	endpoint := fmt.Sprintf("%s://%s/search/forrent/coordinates?%s",
		c.scheme, c.host, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("directory: build request: %w", err)
	}
	req.Header.Set("X-RapidAPI-Key", c.apiKey)
	req.Header.Set("X-RapidAPI-Host", c.host)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("directory: request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("directory: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("directory: unexpected status %d", resp.StatusCode)
	}

	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("directory: malformed response: %w", err)
	}

	records := recordList(payload, "properties")
	if len(records) == 0 {
		c.logger.Warn("[directory] Response carried no 'properties' array for lat=%.5f lon=%.5f",
			q.Latitude, q.Longitude)
	}
	return records, nil
}

// Trends is not offered by the directory API.
func (c *DirectoryClient) Trends(ctx context.Context, q Query) ([]map[string]any, error) {
	return nil, fmt.Errorf("directory: market trends not supported by this provider")
}
