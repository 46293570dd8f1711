package api

import (
	"fmt"
	"time"

	"github.com/custodia-labs/tierdeck/internal/core/domain"
)

// RateLimitError is returned when the API answers 429.
type RateLimitError struct {
	ResetAt   time.Time
	Remaining int
	Limit     int
}

func (e *RateLimitError) Error() string {
	if e.ResetAt.IsZero() {
		return "marketplace: rate limit exceeded"
	}
	return fmt.Sprintf("marketplace: rate limit exceeded, resets at %s", e.ResetAt.Format(time.RFC3339))
}

// Unwrap lets callers match domain.ErrRateLimited.
func (e *RateLimitError) Unwrap() error {
	return domain.ErrRateLimited
}

// APIError is a non-success HTTP status or a {success:false} envelope.
type APIError struct {
	StatusCode int
	Message    string
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("marketplace: API error %d: %s (URL: %s)", e.StatusCode, e.Message, e.URL)
}

// Unwrap lets callers match domain.ErrCatalogUnavailable.
func (e *APIError) Unwrap() error {
	return domain.ErrCatalogUnavailable
}
