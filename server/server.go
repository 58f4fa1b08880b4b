package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"realestate-agent/agent"
	"realestate-agent/config"
	"realestate-agent/listings"
	"realestate-agent/llm"
	"realestate-agent/storage"
	"realestate-agent/utils"
)

// Server drives the pipeline over HTTP. It mirrors the dashboard's state
// machine: requests without complete credentials are routed to key entry
// (409 + remediation path), upstream failures degrade to empty results plus
// a warning, and everything else flows through the agent.
type Server struct {
	cfg      *config.Config
	logger   *utils.Logger
	store    storage.CredentialStore
	geocoder Geocoder

	mu    sync.RWMutex
	keys  storage.APIKeys
	agent Analyzer
}

// New creates a Server, loading any stored credentials and building the
// pipeline if they are complete.
func New(cfg *config.Config, store storage.CredentialStore, geocoder Geocoder, logger *utils.Logger) *Server {
	s := &Server{
		cfg:      cfg,
		logger:   logger,
		store:    store,
		geocoder: geocoder,
	}

	keys := keysFromConfig(cfg)
	if store != nil {
		stored, err := store.Load()
		if err != nil {
			logger.Error("[server] Loading stored keys failed: %v", err)
		} else {
			keys = mergeKeys(keys, stored)
		}
	}
	s.applyKeys(keys)

	return s
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.POST("/search", s.Search)
	api.POST("/trends", s.Trends)
	api.GET("/keys", s.GetKeys)
	api.PUT("/keys", s.PutKeys)
	api.GET("/geocode", s.Geocode)
	api.GET("/reverse-geocode", s.ReverseGeocode)

	return r
}

// Run starts serving on the configured address.
func (s *Server) Run() error {
	return s.Router().Run(s.cfg.ServerAddress)
}

func (s *Server) analyzer() (Analyzer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.agent, s.agent != nil
}

func (s *Server) currentKeys() storage.APIKeys {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.keys
}

func (s *Server) saveKeys(keys storage.APIKeys) error {
	if s.store != nil {
		if err := s.store.Save(keys); err != nil {
			return err
		}
	}
	s.applyKeys(keys)
	return nil
}

// applyKeys swaps in a new credential set and rebuilds the agent when the
// set is complete. An incomplete set leaves the server in the key-entry
// state with no agent.
func (s *Server) applyKeys(keys storage.APIKeys) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.keys = keys
	s.agent = nil
	if !keys.Complete() {
		s.logger.Warn("[server] API keys incomplete — search routes disabled until keys are saved")
		return
	}

	a, err := s.buildAgent(keys)
	if err != nil {
		s.logger.Error("[server] Building pipeline failed: %v", err)
		return
	}
	s.agent = a
	s.logger.Info("[server] Pipeline ready (model: %s)", s.cfg.ModelID)
}

func (s *Server) buildAgent(keys storage.APIKeys) (Analyzer, error) {
	timeout := time.Duration(s.cfg.HTTPTimeoutSec) * time.Second

	var provider listings.Provider
	if keys.ExtractKey != "" {
		provider = listings.NewExtractClient(s.cfg.ExtractBaseURL, keys.ExtractKey, timeout, s.logger)
	} else {
		provider = listings.NewDirectoryClient(s.cfg.DirectoryHost, keys.DirectoryKey, timeout, s.logger)
	}
	provider = listings.NewCachedProvider(provider, s.cfg.CacheCapacity, s.logger)

	var model llm.Client
	var err error
	if llm.IsGeminiModel(s.cfg.ModelID) {
		model, err = llm.NewGeminiClient(context.Background(), keys.GeminiKey)
	} else {
		model, err = llm.NewOpenAIClient(keys.OpenAIKey)
	}
	if err != nil {
		return nil, err
	}

	return agent.New(provider, model, s.cfg.ModelID, s.geocoder, s.logger), nil
}

func keysFromConfig(cfg *config.Config) storage.APIKeys {
	return storage.APIKeys{
		ExtractKey:   cfg.ExtractAPIKey,
		DirectoryKey: cfg.DirectoryAPIKey,
		OpenAIKey:    cfg.OpenAIAPIKey,
		GeminiKey:    cfg.GeminiAPIKey,
	}
}

// mergeKeys fills blanks in primary with values from fallback. Environment
// configuration wins over the stored row.
func mergeKeys(primary, fallback storage.APIKeys) storage.APIKeys {
	if primary.ExtractKey == "" {
		primary.ExtractKey = fallback.ExtractKey
	}
	if primary.DirectoryKey == "" {
		primary.DirectoryKey = fallback.DirectoryKey
	}
	if primary.OpenAIKey == "" {
		primary.OpenAIKey = fallback.OpenAIKey
	}
	if primary.GeminiKey == "" {
		primary.GeminiKey = fallback.GeminiKey
	}
	return primary
}
