package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/tierdeck/internal/core/domain"
)

// ListServicesInput is the input schema for the list_services tool.
type ListServicesInput struct {
	Category string `json:"category,omitempty" jsonschema:"only return services in this category"`
}

// ListServicesOutput is the output schema for the list_services tool.
type ListServicesOutput struct {
	Services []ServiceSummary `json:"services"`
	Count    int              `json:"count"`
}

// ServiceSummary describes one service without its tiers.
type ServiceSummary struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Category       string  `json:"category,omitempty"`
	TierCount      int     `json:"tier_count"`
	StartingPrice  float64 `json:"starting_price"`
	SelectedTierID string  `json:"selected_tier_id,omitempty"`
}

// CarouselInput identifies the service whose carousel is read.
type CarouselInput struct {
	ServiceID string `json:"service_id" jsonschema:"the id of the service"`
}

// NavigateInput is the input schema for the navigate tool.
type NavigateInput struct {
	ServiceID string `json:"service_id" jsonschema:"the id of the service"`
	Direction string `json:"direction" jsonschema:"left or right"`
	Steps     int    `json:"steps,omitempty" jsonschema:"number of steps to move (default 1)"`
}

// CarouselOutput is the carousel state after a read or move.
type CarouselOutput struct {
	ServiceID      string            `json:"service_id"`
	ServiceName    string            `json:"service_name"`
	CurrentIndex   int               `json:"current_index"`
	SelectedTierID string            `json:"selected_tier_id,omitempty"`
	CanGoLeft      bool              `json:"can_go_left"`
	CanGoRight     bool              `json:"can_go_right"`
	Slots          []SlotOutput      `json:"slots"`
	Indicators     []IndicatorOutput `json:"indicators"`
}

// SlotOutput describes one visible slot. Hidden slots are left out.
type SlotOutput struct {
	Index     int     `json:"index"`
	Role      string  `json:"role"`
	Dummy     bool    `json:"dummy"`
	TierIndex int     `json:"tier_index"`
	TierID    string  `json:"tier_id,omitempty"`
	TierName  string  `json:"tier_name,omitempty"`
	Price     float64 `json:"price,omitempty"`
	Selected  bool    `json:"selected,omitempty"`
}

// IndicatorOutput is one position dot.
type IndicatorOutput struct {
	TierIndex int  `json:"tier_index"`
	Active    bool `json:"active"`
}

// SelectTierInput is the input schema for the select_tier tool.
type SelectTierInput struct {
	ServiceID string `json:"service_id" jsonschema:"the id of the service"`
	TierIndex int    `json:"tier_index" jsonschema:"zero-based index of the tier to commit to"`
}

// SelectTierOutput is the output schema for the select_tier tool.
type SelectTierOutput struct {
	ServiceID  string     `json:"service_id"`
	TierID     string     `json:"tier_id"`
	TierIndex  int        `json:"tier_index"`
	TierName   string     `json:"tier_name"`
	Price      float64    `json:"price"`
	BookingID  string     `json:"booking_id,omitempty"`
	SelectedAt *time.Time `json:"selected_at,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_services",
		Description: "List the services in the catalog with their tier count and starting price",
	}, s.handleListServices)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_carousel",
		Description: "Show the visible tier cards, position indicators and selection for a service",
	}, s.handleGetCarousel)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "navigate",
		Description: "Move a service's tier carousel left or right. Moves stop at either end.",
	}, s.handleNavigate)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "select_tier",
		Description: "Commit to a tier of a service and record it as the booking choice",
	}, s.handleSelectTier)
}

func (s *Server) handleListServices(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ListServicesInput,
) (*mcp.CallToolResult, ListServicesOutput, error) {
	list := s.ports.Carousel.Services()
	output := ListServicesOutput{Services: make([]ServiceSummary, 0, len(list))}

	for i := range list {
		svc := &list[i]
		if input.Category != "" && !strings.EqualFold(svc.Category, input.Category) {
			continue
		}
		summary := ServiceSummary{
			ID:            svc.ID,
			Name:          svc.Name,
			Category:      svc.Category,
			TierCount:     svc.TierCount(),
			StartingPrice: svc.StartingPrice(),
		}
		if st, ok := s.ports.Carousel.State(svc.ID); ok {
			summary.SelectedTierID = st.SelectedTierID
		}
		output.Services = append(output.Services, summary)
	}
	output.Count = len(output.Services)

	return nil, output, nil
}

func (s *Server) handleGetCarousel(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input CarouselInput,
) (*mcp.CallToolResult, CarouselOutput, error) {
	svc, err := s.service(input.ServiceID)
	if err != nil {
		return nil, CarouselOutput{}, err
	}
	return nil, s.carouselOutput(svc), nil
}

func (s *Server) handleNavigate(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input NavigateInput,
) (*mcp.CallToolResult, CarouselOutput, error) {
	svc, err := s.service(input.ServiceID)
	if err != nil {
		return nil, CarouselOutput{}, err
	}

	steps := input.Steps
	if steps <= 0 {
		steps = 1
	}

	switch strings.ToLower(input.Direction) {
	case "left":
		for range steps {
			s.ports.Carousel.GoLeft(svc.ID)
		}
	case "right":
		for range steps {
			s.ports.Carousel.GoRight(svc.ID, svc.Tiers)
		}
	default:
		return nil, CarouselOutput{}, fmt.Errorf("%w: direction must be left or right, got %q",
			domain.ErrInvalidInput, input.Direction)
	}

	return nil, s.carouselOutput(svc), nil
}

func (s *Server) handleSelectTier(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SelectTierInput,
) (*mcp.CallToolResult, SelectTierOutput, error) {
	svc, err := s.service(input.ServiceID)
	if err != nil {
		return nil, SelectTierOutput{}, err
	}

	sel, ok := s.ports.Carousel.SelectTier(svc.ID, input.TierIndex)
	if !ok {
		return nil, SelectTierOutput{}, fmt.Errorf("%w: service %q has no tier at index %d",
			domain.ErrInvalidInput, svc.ID, input.TierIndex)
	}

	tier, _ := svc.TierAt(sel.TierIndex)
	output := SelectTierOutput{
		ServiceID: sel.ServiceID,
		TierID:    sel.TierID,
		TierIndex: sel.TierIndex,
		TierName:  tier.Name,
		Price:     tier.Price,
	}

	if s.ports.Booking != nil {
		choice, err := s.ports.Booking.Record(ctx, sel)
		if err != nil {
			return nil, SelectTierOutput{}, fmt.Errorf("recording choice: %w", err)
		}
		output.BookingID = choice.ID
		output.SelectedAt = &choice.SelectedAt
	}

	return nil, output, nil
}

// service resolves a service id against the services the carousel holds.
func (s *Server) service(id string) (*domain.Service, error) {
	svc, ok := domain.ResolveActiveService(s.ports.Carousel.Services(), id)
	if !ok {
		if id == "" {
			return nil, fmt.Errorf("%w: service_id is required", domain.ErrInvalidInput)
		}
		return nil, fmt.Errorf("%w: service %q", domain.ErrNotFound, id)
	}
	return svc, nil
}

func (s *Server) carouselOutput(svc *domain.Service) CarouselOutput {
	c := s.ports.Carousel
	st, _ := c.State(svc.ID)

	output := CarouselOutput{
		ServiceID:      svc.ID,
		ServiceName:    svc.Name,
		CurrentIndex:   st.CurrentIndex,
		SelectedTierID: st.SelectedTierID,
		CanGoLeft:      c.CanGoLeft(svc.ID),
		CanGoRight:     c.CanGoRight(svc.ID, svc.Tiers),
	}

	for _, slot := range c.RenderableSlots(svc.ID, svc.Tiers) {
		if slot.Omitted() {
			continue
		}
		out := SlotOutput{
			Index:     slot.Index,
			Role:      slot.Role.String(),
			Dummy:     slot.Dummy,
			TierIndex: slot.TierIndex,
			Selected:  slot.IsSelected,
		}
		if slot.Tier != nil {
			out.TierID = slot.Tier.ID
			out.TierName = slot.Tier.Name
			out.Price = slot.Tier.Price
		}
		output.Slots = append(output.Slots, out)
	}

	for _, ind := range c.Indicators(svc.ID, svc.Tiers) {
		output.Indicators = append(output.Indicators, IndicatorOutput{
			TierIndex: ind.TierIndex,
			Active:    ind.Active,
		})
	}

	return output
}
