package driving

import "github.com/custodia-labs/tierdeck/internal/core/domain"

// SelectionListener receives committed selections from the carousel.
type SelectionListener func(sel domain.Selection)

// CarouselController connects the tier selection store and the position
// engine to a rendering host.
type CarouselController interface {
	// SetServices replaces the service list, initialising new services and
	// pruning state for services that disappeared.
	SetServices(services []domain.Service)

	// Services returns the current service list.
	Services() []domain.Service

	// ActiveService resolves which service the carousel shows.
	ActiveService(selectedID string) (*domain.Service, bool)

	// RenderableSlots returns len(tiers)+2 slots, including both dummy slots.
	RenderableSlots(serviceID string, tiers []domain.Tier) []domain.Slot

	// Indicators returns one dot per tier, or nil when there is at most one tier.
	Indicators(serviceID string, tiers []domain.Tier) []domain.Indicator

	// CenterTier returns the tier currently centred.
	CenterTier(serviceID string, tiers []domain.Tier) (domain.Tier, bool)

	// State returns the navigation state for a service.
	State(serviceID string) (domain.NavigationState, bool)

	// CanGoLeft reports whether GoLeft would move.
	CanGoLeft(serviceID string) bool

	// CanGoRight reports whether GoRight would move.
	CanGoRight(serviceID string, tiers []domain.Tier) bool

	// GoLeft delegates to the store.
	GoLeft(serviceID string)

	// GoRight delegates to the store.
	GoRight(serviceID string, tiers []domain.Tier)

	// SelectTier commits a tier and returns the resulting selection.
	// The boolean is false when nothing was selected.
	SelectTier(serviceID string, tierIndex int) (domain.Selection, bool)

	// OnSelection registers a listener for committed selections.
	OnSelection(listener SelectionListener) (unsubscribe func())
}
