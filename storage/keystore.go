package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"realestate-agent/utils"
)

// Single shared row: the store holds one credential set per deployment.
const keysRowID = 1

// APIKeys is the credential set read at session start. Blank fields block the
// calls that need them and route the UI to the key-entry form.
type APIKeys struct {
	ExtractKey   string `json:"extract_key"`
	DirectoryKey string `json:"directory_key"`
	OpenAIKey    string `json:"openai_key"`
	GeminiKey    string `json:"gemini_key"`
}

// Complete reports whether enough keys are present to run the pipeline: a
// listings provider key plus an LLM key.
func (k APIKeys) Complete() bool {
	hasProvider := k.ExtractKey != "" || k.DirectoryKey != ""
	hasModel := k.OpenAIKey != "" || k.GeminiKey != ""
	return hasProvider && hasModel
}

// KeyStore persists provider API keys in PostgreSQL.
type KeyStore struct {
	db     *sql.DB
	logger *utils.Logger
}

// NewKeyStore opens a connection, verifies it with a ping-with-retry, runs
// schema migrations, and returns a ready-to-use KeyStore.
func NewKeyStore(dsn string, maxRetries int, logger *utils.Logger) (*KeyStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("keystore: open: %w", err)
	}

	retry := &utils.RetryConfig{
		MaxAttempts: maxRetries,
		BaseDelay:   2 * time.Second,
		Logger:      logger,
	}
	if err := retry.Do("keystore-ping", db.Ping); err != nil {
		return nil, fmt.Errorf("keystore: ping: %w", err)
	}

	ks := &KeyStore{db: db, logger: logger}
	if err := ks.migrate(); err != nil {
		return nil, fmt.Errorf("keystore: migrate: %w", err)
	}
	return ks, nil
}

func (ks *KeyStore) migrate() error {
	_, err := ks.db.Exec(`
		CREATE TABLE IF NOT EXISTS api_keys (
			id            INT PRIMARY KEY,
			extract_key   TEXT NOT NULL DEFAULT '',
			directory_key TEXT NOT NULL DEFAULT '',
			openai_key    TEXT NOT NULL DEFAULT '',
			gemini_key    TEXT NOT NULL DEFAULT '',
			updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
	`)
	return err
}

// Save upserts the credential row.
func (ks *KeyStore) Save(keys APIKeys) error {
	_, err := ks.db.Exec(`
		INSERT INTO api_keys (id, extract_key, directory_key, openai_key, gemini_key, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (id) DO UPDATE SET
			extract_key   = EXCLUDED.extract_key,
			directory_key = EXCLUDED.directory_key,
			openai_key    = EXCLUDED.openai_key,
			gemini_key    = EXCLUDED.gemini_key,
			updated_at    = NOW()
	`, keysRowID, keys.ExtractKey, keys.DirectoryKey, keys.OpenAIKey, keys.GeminiKey)
	if err != nil {
		return fmt.Errorf("keystore: save: %w", err)
	}
	return nil
}

// Load reads the credential row. A missing row returns zero-valued keys, not
// an error.
func (ks *KeyStore) Load() (APIKeys, error) {
	var keys APIKeys
	err := ks.db.QueryRow(`
		SELECT extract_key, directory_key, openai_key, gemini_key
		FROM api_keys WHERE id = $1
	`, keysRowID).Scan(&keys.ExtractKey, &keys.DirectoryKey, &keys.OpenAIKey, &keys.GeminiKey)
	if err == sql.ErrNoRows {
		ks.logger.Info("[keystore] No stored API keys found")
		return APIKeys{}, nil
	}
	if err != nil {
		return APIKeys{}, fmt.Errorf("keystore: load: %w", err)
	}
	return keys, nil
}

// Close closes the underlying connection.
func (ks *KeyStore) Close() error {
	return ks.db.Close()
}
