package main

import (
	"context"
	"flag"
	"os"
	"time"

	"realestate-agent/agent"
	"realestate-agent/config"
	"realestate-agent/geocode"
	"realestate-agent/listings"
	"realestate-agent/listings/browser"
	"realestate-agent/llm"
	"realestate-agent/models"
	"realestate-agent/server"
	"realestate-agent/services"
	"realestate-agent/storage"
	"realestate-agent/utils"
)

func main() {
	var (
		serve       = flag.Bool("serve", false, "start the HTTP API server")
		location    = flag.String("location", "", "location to search, e.g. \"Austin, TX\"")
		maxPrice    = flag.Float64("max-price", 450000, "maximum price in USD")
		propType    = flag.String("type", "Single-Family Home", "property type")
		category    = flag.String("category", "Residential", "property category")
		bedrooms    = flag.Int("bedrooms", 0, "minimum bedrooms (0 = any)")
		lat         = flag.Float64("lat", 0, "latitude (0 = resolve from -location)")
		lon         = flag.Float64("lon", 0, "longitude (0 = resolve from -location)")
		radiusMin   = flag.Int("radius-min", 0, "inner search radius in km (0 = config default)")
		radiusMax   = flag.Int("radius-max", 0, "outer search radius in km (0 = config default)")
		useBrowser  = flag.Bool("browser", false, "scrape listing sites directly with headless Chrome")
		withTrends  = flag.Bool("trends", false, "include a market-trends analysis")
		withSummary = flag.Bool("summary", false, "include a realtor-facing investment summary")
		exportCSV   = flag.Bool("csv", false, "export normalized records to CSV")
	)
	flag.Parse()

	logger := utils.NewLogger()
	cfg := config.Load()

	logger.Info("=== Real Estate Market Analysis starting ===")

	store, err := storage.NewKeyStore(cfg.DSN(), cfg.MaxRetries, logger)
	if err != nil {
		logger.Warn("Credential store unavailable (%v) — using environment keys only", err)
		store = nil
	} else {
		defer store.Close()
	}

	timeout := time.Duration(cfg.HTTPTimeoutSec) * time.Second
	geocoder := geocode.NewClient(cfg.GeocodeBaseURL, timeout, logger)

	if *serve {
		var credStore storage.CredentialStore
		if store != nil {
			credStore = store
		}
		srv := server.New(cfg, credStore, geocoder, logger)
		logger.Info("Listening on %s", cfg.ServerAddress)
		if err := srv.Run(); err != nil {
			logger.Error("Server stopped: %v", err)
			os.Exit(1)
		}
		return
	}

	if *location == "" {
		logger.Error("A -location is required for a one-shot search (or pass -serve)")
		os.Exit(1)
	}

	keys := loadKeys(cfg, store, logger)
	hasModelKey := keys.OpenAIKey != "" || keys.GeminiKey != ""
	if (!*useBrowser && !keys.Complete()) || !hasModelKey {
		logger.Error("Missing API keys: set EXTRACT_API_KEY/DIRECTORY_API_KEY and OPENAI_API_KEY/GEMINI_API_KEY, or save them via the server's /api/keys")
		os.Exit(1)
	}

	ctx := context.Background()

	var provider listings.Provider
	switch {
	case *useBrowser:
		provider = browser.New(cfg, logger)
	case keys.ExtractKey != "":
		provider = listings.NewExtractClient(cfg.ExtractBaseURL, keys.ExtractKey, timeout, logger)
	default:
		provider = listings.NewDirectoryClient(cfg.DirectoryHost, keys.DirectoryKey, timeout, logger)
	}
	provider = listings.NewCachedProvider(provider, cfg.CacheCapacity, logger)

	var model llm.Client
	if llm.IsGeminiModel(cfg.ModelID) {
		model, err = llm.NewGeminiClient(ctx, keys.GeminiKey)
	} else {
		model, err = llm.NewOpenAIClient(keys.OpenAIKey)
	}
	if err != nil {
		logger.Error("Model client init failed: %v", err)
		os.Exit(1)
	}

	a := agent.New(provider, model, cfg.ModelID, geocoder, logger)

	filters := models.QueryFilters{
		Location:     *location,
		MaxPrice:     *maxPrice,
		PropertyType: *propType,
		Category:     *category,
		Latitude:     *lat,
		Longitude:    *lon,
		RadiusMin:    *radiusMin,
		RadiusMax:    *radiusMax,
	}
	if filters.RadiusMin == 0 {
		filters.RadiusMin = cfg.RadiusMinKm
	}
	if filters.RadiusMax == 0 {
		filters.RadiusMax = cfg.RadiusMaxKm
	}
	if *bedrooms > 0 {
		filters.Bedrooms = bedrooms
	}

	analysis, err := a.FindProperties(ctx, filters)
	if err != nil {
		logger.Error("Search failed: %v", err)
		os.Exit(1)
	}

	insights := services.NewInsightService(logger)
	insights.Print(analysis)

	if *withTrends {
		logger.Info("Fetching market trends for %s", *location)
		trends := a.MarketTrends(ctx, *location)
		os.Stdout.WriteString("\n📈 MARKET TRENDS\n\n" + trends + "\n")
	}

	if *withSummary {
		summary := a.InvestorSummary(ctx, analysis.Analysis)
		os.Stdout.WriteString("\n💡 INVESTOR SUMMARY\n\n" + summary + "\n")
	}

	if *exportCSV && len(analysis.Properties) > 0 {
		writer, err := storage.NewCSVWriter(cfg.CSVOutputPath)
		if err != nil {
			logger.Error("CSV export failed: %v", err)
			return
		}
		defer writer.Close()
		if err := writer.Write(analysis.Properties); err != nil {
			logger.Error("CSV write failed: %v", err)
		} else {
			logger.Info("Normalized records saved to %s", cfg.CSVOutputPath)
		}
	}
}

func loadKeys(cfg *config.Config, store *storage.KeyStore, logger *utils.Logger) storage.APIKeys {
	keys := storage.APIKeys{
		ExtractKey:   cfg.ExtractAPIKey,
		DirectoryKey: cfg.DirectoryAPIKey,
		OpenAIKey:    cfg.OpenAIAPIKey,
		GeminiKey:    cfg.GeminiAPIKey,
	}
	if store == nil {
		return keys
	}

	stored, err := store.Load()
	if err != nil {
		logger.Error("Loading stored keys failed: %v", err)
		return keys
	}
	if keys.ExtractKey == "" {
		keys.ExtractKey = stored.ExtractKey
	}
	if keys.DirectoryKey == "" {
		keys.DirectoryKey = stored.DirectoryKey
	}
	if keys.OpenAIKey == "" {
		keys.OpenAIKey = stored.OpenAIKey
	}
	if keys.GeminiKey == "" {
		keys.GeminiKey = stored.GeminiKey
	}
	return keys
}
