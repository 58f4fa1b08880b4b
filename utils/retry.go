package utils

import (
	"fmt"
	"time"
)

// RetryConfig holds the parameters for the retry strategy. It is used only
// where a transient dependency is expected to come up shortly (the credential
// store, the scraping browser); listing and model calls are never retried.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Logger      *Logger
}

// Do executes fn with exponential back-off until it succeeds or the attempt
// budget runs out.
func (r *RetryConfig) Do(operationName string, fn func() error) error {
	delay := r.BaseDelay

	var lastErr error
	for attempt := 1; attempt <= r.MaxAttempts; attempt++ {
		if lastErr = fn(); lastErr == nil {
			return nil
		}
		if attempt == r.MaxAttempts {
			break
		}
		r.Logger.Warn("[retry] %s failed (attempt %d/%d): %v — retrying in %v",
			operationName, attempt, r.MaxAttempts, lastErr, delay)
		time.Sleep(delay)
		delay *= 2
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, r.MaxAttempts, lastErr)
}
