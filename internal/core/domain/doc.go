// Package domain defines the core business entities for tierdeck.
//
// This package is part of the hexagonal architecture's innermost layer.
// It depends on nothing but the standard library and golang.org/x/text
// (price formatting), and defines the fundamental types:
//
//   - Service: A bookable offering that groups pricing tiers
//   - Tier: A purchasable option within a service
//   - NavigationState: Per-service carousel position and committed tier
//   - Slot: A renderable carousel card, including the dummy boundary slots
//   - BookingChoice: A recorded tier selection
//
// The tier position engine (Position) lives here because it is a pure
// function of the carousel index and has no collaborators.
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. All other packages depend on
// domain, never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library, golang.org/x/text
//   - Cannot Import: Any internal/ package, any other external dependency
package domain
