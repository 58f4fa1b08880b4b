package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
// Provider API keys may also arrive later from the credential store; values
// set here take precedence.
type Config struct {
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	ExtractBaseURL string
	ExtractAPIKey  string

	DirectoryHost   string
	DirectoryAPIKey string

	OpenAIAPIKey string
	GeminiAPIKey string
	ModelID      string

	GeocodeBaseURL string
	RadiusMinKm    int
	RadiusMaxKm    int

	CacheCapacity  int
	HTTPTimeoutSec int
	MaxRetries     int

	MaxConcurrency  int
	RateLimitMs     int
	PagesToScrape   int
	ListingsPerPage int
	ChromeBin       string

	ServerAddress string
	CSVOutputPath string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "agent"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "agent123"),
		PostgresDB:       getEnv("POSTGRES_DB", "realestate_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		ExtractBaseURL: getEnv("EXTRACT_BASE_URL", "https://api.firecrawl.dev"),
		ExtractAPIKey:  getEnv("EXTRACT_API_KEY", ""),

		DirectoryHost:   getEnv("DIRECTORY_HOST", "realtor16.p.rapidapi.com"),
		DirectoryAPIKey: getEnv("DIRECTORY_API_KEY", ""),

		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		ModelID:      getEnv("MODEL_ID", "gpt-4o"),

		GeocodeBaseURL: getEnv("GEOCODE_BASE_URL", "https://nominatim.openstreetmap.org"),
		RadiusMinKm:    getEnvInt("SEARCH_RADIUS_MIN_KM", 0),
		RadiusMaxKm:    getEnvInt("SEARCH_RADIUS_MAX_KM", 25),

		CacheCapacity:  getEnvInt("CACHE_CAPACITY", 100),
		HTTPTimeoutSec: getEnvInt("HTTP_TIMEOUT_SEC", 60),
		MaxRetries:     getEnvInt("MAX_RETRIES", 3),

		MaxConcurrency:  getEnvInt("MAX_CONCURRENCY", 3),
		RateLimitMs:     getEnvInt("RATE_LIMIT_MS", 2000),
		PagesToScrape:   getEnvInt("PAGES_TO_SCRAPE", 2),
		ListingsPerPage: getEnvInt("LISTINGS_PER_PAGE", 10),
		ChromeBin:       getEnv("CHROME_BIN", ""),

		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		CSVOutputPath: getEnv("CSV_OUTPUT_PATH", "./output/properties.csv"),
	}
}

// DSN returns the PostgreSQL connection string for the credential store.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}
