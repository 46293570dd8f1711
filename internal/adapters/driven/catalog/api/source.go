package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/tierdeck/internal/core/domain"
	"github.com/custodia-labs/tierdeck/internal/core/ports/driven"
	"github.com/custodia-labs/tierdeck/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.CatalogSource = (*Source)(nil)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// maxBodySize caps the response body read from the API.
	maxBodySize = 8 << 20
)

// Config holds the API connection settings.
type Config struct {
	BaseURL     string
	Token       string
	TenantID    string
	VehicleType string
	Category    string

	// RequestsPerSecond throttles calls. Zero uses DefaultRate.
	RequestsPerSecond float64

	// HTTPClient is the base client. Nil uses http.DefaultClient.
	HTTPClient *http.Client
}

// envelope is the API response wrapper.
type envelope struct {
	Success      bool                `json:"success"`
	Data         json.RawMessage     `json:"data"`
	Error        string              `json:"error,omitempty"`
	FeatureNames domain.FeatureNames `json:"featureNames,omitempty"`
}

// Source fetches the catalog from the marketplace API.
type Source struct {
	endpoint    string
	client      *http.Client
	rateLimiter *RateLimiter
}

// NewSource validates cfg and builds a source.
// A non-empty token is sent as a bearer token on every request.
func NewSource(cfg Config) (*Source, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || base.Host == "" || (base.Scheme != "http" && base.Scheme != "https") {
		return nil, fmt.Errorf("%w: invalid API base URL %q", domain.ErrInvalidInput, cfg.BaseURL)
	}
	if cfg.TenantID == "" {
		return nil, fmt.Errorf("%w: tenant id is required", domain.ErrInvalidInput)
	}
	vehicle := cfg.VehicleType
	if vehicle == "" {
		vehicle = "car"
	}
	category := cfg.Category
	if category == "" {
		category = "all"
	}

	endpoint := base.JoinPath("api", "services",
		"tenant", cfg.TenantID,
		"vehicle", vehicle,
		"category", category,
	)

	return &Source{
		endpoint:    endpoint.String(),
		client:      newHTTPClient(cfg),
		rateLimiter: NewRateLimiter(cfg.RequestsPerSecond),
	}, nil
}

func newHTTPClient(cfg Config) *http.Client {
	base := cfg.HTTPClient
	if base == nil {
		base = &http.Client{Timeout: DefaultTimeout}
	}
	if cfg.Token == "" {
		return base
	}

	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token, TokenType: "Bearer"})
	tc := oauth2.NewClient(ctx, ts)
	tc.Timeout = base.Timeout
	return tc
}

// Name describes the source.
func (s *Source) Name() string {
	return "api:" + s.endpoint
}

// Endpoint returns the request URL.
func (s *Source) Endpoint() string {
	return s.endpoint
}

// Fetch requests the catalog and unwraps the response envelope.
func (s *Source) Fetch(ctx context.Context) (*domain.Catalog, error) {
	if err := s.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	logger.Debug("GET %s", s.endpoint)
	resp, err := s.client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	if err := s.rateLimiter.CheckRateLimit(resp); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", domain.ErrCatalogUnavailable, err)
	}

	var env envelope
	decodeErr := json.Unmarshal(body, &env)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := http.StatusText(resp.StatusCode)
		if decodeErr == nil && env.Error != "" {
			msg = env.Error
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: msg, URL: s.endpoint}
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", domain.ErrInvalidInput, decodeErr)
	}
	if !env.Success {
		msg := env.Error
		if msg == "" {
			msg = "request was not successful"
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: msg, URL: s.endpoint}
	}

	services, err := decodeServices(env.Data)
	if err != nil {
		return nil, err
	}
	return &domain.Catalog{Services: services, FeatureNames: env.FeatureNames}, nil
}

// decodeServices accepts either a list of services or a single service.
func decodeServices(data json.RawMessage) ([]domain.Service, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		return []domain.Service{}, nil
	}

	if strings.HasPrefix(trimmed, "[") {
		var services []domain.Service
		if err := json.Unmarshal(data, &services); err != nil {
			return nil, fmt.Errorf("%w: decoding services: %v", domain.ErrInvalidInput, err)
		}
		return services, nil
	}

	var svc domain.Service
	if err := json.Unmarshal(data, &svc); err != nil {
		return nil, fmt.Errorf("%w: decoding service: %v", domain.ErrInvalidInput, err)
	}
	return []domain.Service{svc}, nil
}

// IsRateLimited reports whether err came from a 429 response.
func IsRateLimited(err error) bool {
	var rl *RateLimitError
	return errors.As(err, &rl)
}
