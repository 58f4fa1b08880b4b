package server

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"realestate-agent/geocode"
	"realestate-agent/models"
	"realestate-agent/storage"
)

// Analyzer is the pipeline surface the handlers drive.
type Analyzer interface {
	FindProperties(ctx context.Context, filters models.QueryFilters) (*models.MarketAnalysis, error)
	MarketTrends(ctx context.Context, location string) string
	InvestorSummary(ctx context.Context, analysis string) string
}

// Geocoder is the geocoding surface the handlers expose.
type Geocoder interface {
	Search(ctx context.Context, query string, limit int) ([]geocode.Place, error)
	Reverse(ctx context.Context, lat, lon float64) (string, error)
}

type searchRequest struct {
	Location     string  `json:"location"`
	MaxPrice     float64 `json:"max_price"`
	PropertyType string  `json:"property_type"`
	Bedrooms     *int    `json:"bedrooms"`
	Category     string  `json:"property_category"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	RadiusMin    int     `json:"radius_min"`
	RadiusMax    int     `json:"radius_max"`
	WithTrends   bool    `json:"with_trends"`
	WithSummary  bool    `json:"with_summary"`
}

type searchResponse struct {
	Analysis   string                  `json:"analysis"`
	Trends     string                  `json:"trends,omitempty"`
	Summary    string                  `json:"summary,omitempty"`
	Properties []models.PropertyRecord `json:"properties"`
	Metrics    *models.PriceMetrics    `json:"metrics,omitempty"`
	Warning    string                  `json:"warning,omitempty"`
}

// Search handles POST /api/search. Upstream failures degrade to an empty
// result set plus a warning in the body, never a 5xx.
func (s *Server) Search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body"})
		return
	}

	filters := models.QueryFilters{
		Location:     req.Location,
		MaxPrice:     req.MaxPrice,
		PropertyType: req.PropertyType,
		Bedrooms:     req.Bedrooms,
		Category:     req.Category,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		RadiusMin:    req.RadiusMin,
		RadiusMax:    req.RadiusMax,
	}
	if filters.Category == "" {
		filters.Category = "Residential"
	}
	if filters.RadiusMin == 0 {
		filters.RadiusMin = s.cfg.RadiusMinKm
	}
	if filters.RadiusMax == 0 {
		filters.RadiusMax = s.cfg.RadiusMaxKm
	}
	if !filters.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "max_price must be positive, bedrooms and radii non-negative"})
		return
	}

	analyzer, ok := s.analyzer()
	if !ok {
		c.JSON(http.StatusConflict, gin.H{"error": "missing API keys", "remediation": "/api/keys"})
		return
	}

	analysis, err := analyzer.FindProperties(c.Request.Context(), filters)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp := searchResponse{
		Analysis:   analysis.Analysis,
		Properties: analysis.Properties,
		Metrics:    analysis.Metrics,
		Warning:    analysis.Warning,
	}
	if req.WithTrends {
		resp.Trends = analyzer.MarketTrends(c.Request.Context(), req.Location)
	}
	if req.WithSummary {
		resp.Summary = analyzer.InvestorSummary(c.Request.Context(), analysis.Analysis)
	}

	c.JSON(http.StatusOK, resp)
}

type trendsRequest struct {
	Location string `json:"location"`
}

// Trends handles POST /api/trends.
func (s *Server) Trends(c *gin.Context) {
	var req trendsRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Location == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "location is required"})
		return
	}

	analyzer, ok := s.analyzer()
	if !ok {
		c.JSON(http.StatusConflict, gin.H{"error": "missing API keys", "remediation": "/api/keys"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"trends": analyzer.MarketTrends(c.Request.Context(), req.Location)})
}

// GetKeys handles GET /api/keys. Key material itself is never echoed back;
// the response only reports which keys are present.
func (s *Server) GetKeys(c *gin.Context) {
	keys := s.currentKeys()
	c.JSON(http.StatusOK, gin.H{
		"extract_key":   keys.ExtractKey != "",
		"directory_key": keys.DirectoryKey != "",
		"openai_key":    keys.OpenAIKey != "",
		"gemini_key":    keys.GeminiKey != "",
		"complete":      keys.Complete(),
	})
}

// PutKeys handles PUT /api/keys: persist the credential set and rebuild the
// pipeline with the new keys.
func (s *Server) PutKeys(c *gin.Context) {
	var keys storage.APIKeys
	if err := c.ShouldBindJSON(&keys); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body"})
		return
	}
	if !keys.Complete() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "need at least one listings provider key and one model key"})
		return
	}

	if err := s.saveKeys(keys); err != nil {
		s.logger.Error("[server] Saving keys failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not persist keys"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "saved"})
}

// Geocode handles GET /api/geocode?q=...
func (s *Server) Geocode(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameter 'q'"})
		return
	}

	places, err := s.geocoder.Search(c.Request.Context(), query, 5)
	if err != nil {
		s.logger.Error("[server] Geocode failed: %v", err)
		c.JSON(http.StatusOK, gin.H{"places": []geocode.Place{}, "warning": "geocoding unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"places": places})
}

// ReverseGeocode handles GET /api/reverse-geocode?lat=...&lon=...
func (s *Server) ReverseGeocode(c *gin.Context) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lon, lonErr := strconv.ParseFloat(c.Query("lon"), 64)
	if latErr != nil || lonErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lon must be valid numbers"})
		return
	}

	name, err := s.geocoder.Reverse(c.Request.Context(), lat, lon)
	if err != nil {
		s.logger.Error("[server] Reverse geocode failed: %v", err)
		c.JSON(http.StatusOK, gin.H{"display_name": "", "warning": "geocoding unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"display_name": name})
}
