package storage

import "realestate-agent/models"

// RecordWriter is the interface any property export backend must satisfy.
type RecordWriter interface {
	Write(records []models.PropertyRecord) error
	Close() error
}

// CredentialStore is the interface for persisting provider API keys.
type CredentialStore interface {
	Save(keys APIKeys) error
	Load() (APIKeys, error)
	Close() error
}
