package driving

import "github.com/custodia-labs/tierdeck/internal/core/domain"

// Observer receives navigation state after every effective change.
// It is called synchronously on the goroutine that made the change.
type Observer func(serviceID string, state domain.NavigationState)

// TierSelectionStore holds per-service carousel state.
//
// No method returns an error: unknown service ids and out-of-range
// indices are ignored.
type TierSelectionStore interface {
	// InitializeTierPositions creates state for services not seen before.
	// Existing state is never reset and absent services are not pruned.
	InitializeTierPositions(services []domain.Service)

	// GoLeft moves one tier towards the start, stopping at the first tier.
	GoLeft(serviceID string)

	// GoRight moves one tier towards the end, stopping at the last tier.
	GoRight(serviceID string, tiers []domain.Tier)

	// SelectTier commits the tier at tierIndex of the service found in
	// services, then calls onServiceSelected and onTierSelected in that order.
	SelectTier(
		serviceID string,
		tierIndex int,
		services []domain.Service,
		onServiceSelected func(serviceID string),
		onTierSelected func(serviceID, tierID string),
	)

	// State returns the state for a service and whether it is initialised.
	State(serviceID string) (domain.NavigationState, bool)

	// Subscribe registers an observer and returns a function that removes it.
	Subscribe(observer Observer) (unsubscribe func())

	// Clamp pulls each known service's index back inside its tier list and
	// clears a selection whose tier is gone.
	Clamp(services []domain.Service)

	// Prune drops state for services not present in services.
	Prune(services []domain.Service)

	// Reset drops all state.
	Reset()
}
