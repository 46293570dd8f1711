package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/tierdeck/internal/core/domain"
)

const (
	// URIScheme is the custom URI scheme for tierdeck resources.
	uriScheme = "tierdeck://"

	jsonMIME = "application/json"
)

// serviceDetail is a service with feature keys resolved to display names.
type serviceDetail struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Category    string       `json:"category,omitempty"`
	Tiers       []tierDetail `json:"tiers"`
}

type tierDetail struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Price         float64  `json:"price"`
	OriginalPrice float64  `json:"original_price,omitempty"`
	Savings       float64  `json:"savings,omitempty"`
	Description   string   `json:"description,omitempty"`
	Features      []string `json:"features"`
	Popular       bool     `json:"popular,omitempty"`
}

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "services",
		Name:        "services",
		Description: "All services in the catalog with their tiers",
		MIMEType:    jsonMIME,
	}, s.handleServicesResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "services/{serviceId}",
		Name:        "service",
		Description: "One service with its tiers and feature names",
		MIMEType:    jsonMIME,
	}, s.handleServiceResource)

	if s.ports.Booking != nil {
		s.server.AddResource(&mcp.Resource{
			URI:         uriScheme + "bookings",
			Name:        "bookings",
			Description: "Recorded tier choices, newest first",
			MIMEType:    jsonMIME,
		}, s.handleBookingsResource)
	}
}

func (s *Server) handleServicesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	list, err := s.ports.Catalog.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing services: %w", err)
	}
	names, err := s.ports.Catalog.FeatureNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading feature names: %w", err)
	}

	details := make([]serviceDetail, len(list))
	for i := range list {
		details[i] = newServiceDetail(&list[i], names)
	}
	return jsonResult(req.Params.URI, details)
}

func (s *Server) handleServiceResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// Extract serviceId from URI: tierdeck://services/{serviceId}
	id := extractServiceID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	svc, err := s.ports.Catalog.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting service: %w", err)
	}
	names, err := s.ports.Catalog.FeatureNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading feature names: %w", err)
	}

	return jsonResult(req.Params.URI, newServiceDetail(svc, names))
}

func (s *Server) handleBookingsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	choices, err := s.ports.Booking.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing bookings: %w", err)
	}
	if choices == nil {
		choices = []domain.BookingChoice{}
	}
	return jsonResult(req.Params.URI, choices)
}

func newServiceDetail(svc *domain.Service, names domain.FeatureNames) serviceDetail {
	detail := serviceDetail{
		ID:          svc.ID,
		Name:        svc.Name,
		Description: svc.Description,
		Category:    svc.Category,
		Tiers:       make([]tierDetail, len(svc.Tiers)),
	}
	for i, tier := range svc.Tiers {
		detail.Tiers[i] = tierDetail{
			ID:          tier.ID,
			Name:        tier.Name,
			Price:       tier.Price,
			Description: tier.Description,
			Features:    names.Display(tier.Features),
			Popular:     tier.Popular,
		}
		if tier.HasDiscount() {
			detail.Tiers[i].OriginalPrice = tier.OriginalPrice
			detail.Tiers[i].Savings = tier.Savings()
		}
	}
	return detail
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: jsonMIME,
			Text:     string(data),
		}},
	}, nil
}

// extractServiceID extracts the service ID from a URI like tierdeck://services/{serviceId}.
func extractServiceID(uri string) string {
	const prefix = uriScheme + "services/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
