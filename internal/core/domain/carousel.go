package domain

// Role is the visual position of a carousel slot for the current index.
type Role string

// Available slot roles.
const (
	// RoleCenter is the focused card.
	RoleCenter Role = "center"

	// RoleLeft is the card immediately before the focused card.
	RoleLeft Role = "left"

	// RoleRight is the card immediately after the focused card.
	RoleRight Role = "right"

	// RoleHidden is any card not adjacent to the focused card.
	RoleHidden Role = "hidden"
)

// IsValid returns true if the role is recognised.
func (r Role) IsValid() bool {
	switch r {
	case RoleCenter, RoleLeft, RoleRight, RoleHidden:
		return true
	default:
		return false
	}
}

// Visible returns true for every role except hidden.
func (r Role) Visible() bool {
	return r == RoleCenter || r == RoleLeft || r == RoleRight
}

// String returns the string representation.
func (r Role) String() string {
	return string(r)
}

// SlotCount returns the number of carousel slots for a tier count:
// one per tier plus a dummy slot at each end.
func SlotCount(tierCount int) int {
	if tierCount < 0 {
		tierCount = 0
	}
	return tierCount + 2
}

// IsDummySlot reports whether slotIndex is one of the two boundary slots.
// Slot 0 sits before the first tier and slot tierCount+1 after the last.
func IsDummySlot(slotIndex, tierCount int) bool {
	return slotIndex == 0 || slotIndex == tierCount+1
}

// Position maps a zero-based carousel index and a slot index to a role.
//
// Real tiers occupy slots 1..tierCount; slots 0 and tierCount+1 are dummy
// slots. The current index is shifted into slot space (+1) and the role
// follows from the distance between the slot and the shifted index.
// A carousel without tiers hides every slot, as do slots outside
// 0..tierCount+1.
func Position(currentIndex, slotIndex, tierCount int) Role {
	if tierCount <= 0 {
		return RoleHidden
	}
	if slotIndex < 0 || slotIndex > tierCount+1 {
		return RoleHidden
	}

	diff := slotIndex - (currentIndex + 1)
	switch diff {
	case 0:
		return RoleCenter
	case -1:
		return RoleLeft
	case 1:
		return RoleRight
	default:
		return RoleHidden
	}
}

// Slot describes one renderable carousel card.
type Slot struct {
	// Index is the slot position, 0..tierCount+1.
	Index int

	// Role is the slot's visual role for the current index.
	Role Role

	// Dummy is true for the two boundary slots, which carry no tier.
	Dummy bool

	// Tier is the tier shown in this slot. Nil for dummy slots.
	Tier *Tier

	// TierIndex is the zero-based tier index, or -1 for dummy slots.
	TierIndex int

	// IsSelected is true when Tier is the service's committed tier.
	IsSelected bool
}

// Omitted reports whether the host should render nothing for the slot.
func (s Slot) Omitted() bool {
	return s.Role == RoleHidden
}

// Placeholder reports whether the host should render an invisible,
// non-interactive card sized like a real one. This only happens for a
// dummy slot adjacent to the focused card.
func (s Slot) Placeholder() bool {
	return s.Dummy && s.Role != RoleHidden
}

// Indicator is one dot in the tier indicator row.
type Indicator struct {
	// TierIndex is the zero-based tier the dot stands for.
	TierIndex int

	// Active is true for the tier currently centred.
	Active bool
}

// NavigationState is the per-service carousel state.
type NavigationState struct {
	// CurrentIndex is the centred tier, 0..len(tiers)-1.
	CurrentIndex int

	// SelectedTierID is the tier the user committed to. Empty means none.
	SelectedTierID string
}

// HasSelection returns true if a tier has been committed.
func (n NavigationState) HasSelection() bool {
	return n.SelectedTierID != ""
}

// Selection is emitted when a tier is committed for a service.
type Selection struct {
	// ServiceID identifies the service.
	ServiceID string

	// TierID identifies the committed tier.
	TierID string

	// TierIndex is the zero-based position of the tier.
	TierIndex int
}
