package domain

import "time"

// BookingChoice is a recorded tier selection for a service.
// The carousel emits Selections; hosts turn them into BookingChoices.
type BookingChoice struct {
	// ID is the unique identifier for the record.
	ID string `json:"id"`

	// ServiceID identifies the chosen service.
	ServiceID string `json:"serviceId"`

	// TierID identifies the chosen tier.
	TierID string `json:"tierId"`

	// TierIndex is the tier's position when it was chosen.
	TierIndex int `json:"tierIndex"`

	// SelectedAt is when the choice was recorded.
	SelectedAt time.Time `json:"selectedAt"`
}

// Matches reports whether the choice records the given selection.
func (b BookingChoice) Matches(sel Selection) bool {
	return b.ServiceID == sel.ServiceID && b.TierID == sel.TierID
}
