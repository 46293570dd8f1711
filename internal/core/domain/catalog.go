package domain

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Service is a named offering that groups one or more pricing tiers.
// Services are owned by the catalog; the carousel treats them as read-only.
type Service struct {
	// ID is the unique identifier for the service (e.g., "full-detail").
	ID string `json:"id" yaml:"id" toml:"id"`

	// Name is the human-readable service name.
	Name string `json:"name" yaml:"name" toml:"name"`

	// Description is an optional one-line summary.
	Description string `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`

	// Category groups services for display (e.g., "auto", "marine").
	Category string `json:"category,omitempty" yaml:"category,omitempty" toml:"category,omitempty"`

	// Tiers are the purchasable options, in display order.
	Tiers []Tier `json:"tiers" yaml:"tiers" toml:"tiers"`
}

// TierCount returns the number of tiers in the service.
func (s *Service) TierCount() int {
	return len(s.Tiers)
}

// TierAt returns the tier at the zero-based index.
// The boolean is false when the index is out of range.
func (s *Service) TierAt(index int) (Tier, bool) {
	if index < 0 || index >= len(s.Tiers) {
		return Tier{}, false
	}
	return s.Tiers[index], true
}

// StartingPrice returns the lowest tier price, or 0 for a service without tiers.
func (s *Service) StartingPrice() float64 {
	if len(s.Tiers) == 0 {
		return 0
	}
	lowest := s.Tiers[0].Price
	for _, t := range s.Tiers[1:] {
		if t.Price < lowest {
			lowest = t.Price
		}
	}
	return lowest
}

// Tier is a purchasable pricing option within a service.
type Tier struct {
	// ID is unique within its service.
	ID string `json:"id" yaml:"id" toml:"id"`

	// Name is the display name (e.g., "Basic", "Premium").
	Name string `json:"name" yaml:"name" toml:"name"`

	// Price is the current price in the catalog currency.
	Price float64 `json:"price" yaml:"price" toml:"price"`

	// OriginalPrice is the pre-discount price. Zero means unset.
	OriginalPrice float64 `json:"originalPrice,omitempty" yaml:"originalPrice,omitempty" toml:"originalPrice,omitempty"`

	// Description is a short summary of what the tier includes.
	Description string `json:"description" yaml:"description" toml:"description"`

	// Features are feature keys, rendered through FeatureNames.
	Features []string `json:"features" yaml:"features" toml:"features"`

	// Popular marks the tier the tenant wants to highlight.
	Popular bool `json:"popular,omitempty" yaml:"popular,omitempty" toml:"popular,omitempty"`
}

// HasDiscount reports whether a strike-through original price should be shown.
// Only an original price above the current price counts.
func (t Tier) HasDiscount() bool {
	return t.OriginalPrice > t.Price
}

// Savings returns OriginalPrice - Price when discounted, otherwise 0.
func (t Tier) Savings() float64 {
	if !t.HasDiscount() {
		return 0
	}
	return t.OriginalPrice - t.Price
}

var pricePrinter = message.NewPrinter(language.AmericanEnglish)

// FormatPrice renders an amount as US dollars with grouped thousands,
// e.g. "$1,234.56" or "-$12.00".
func FormatPrice(amount float64) string {
	if amount < 0 {
		return "-" + pricePrinter.Sprintf("$%.2f", -amount)
	}
	return pricePrinter.Sprintf("$%.2f", amount)
}

// FeatureNames maps feature keys to display names.
type FeatureNames map[string]string

// Display maps feature keys to their display names.
// Keys without a mapping are returned unchanged.
func (n FeatureNames) Display(keys []string) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		if name, ok := n[k]; ok && name != "" {
			out[i] = name
			continue
		}
		out[i] = k
	}
	return out
}

// Catalog is a tenant's full service listing as loaded from a source.
type Catalog struct {
	// Services in display order.
	Services []Service `json:"services" yaml:"services" toml:"services"`

	// FeatureNames maps feature keys used by tiers to display names.
	FeatureNames FeatureNames `json:"featureNames,omitempty" yaml:"featureNames,omitempty" toml:"featureNames,omitempty"`
}

// Validate checks catalog integrity: service ids are non-empty and unique,
// tier ids are non-empty and unique within their service, and prices are
// not negative. The returned error wraps ErrInvalidInput.
func (c *Catalog) Validate() error {
	return ValidateServices(c.Services)
}

// ValidateServices applies the catalog integrity rules to a service list.
func ValidateServices(services []Service) error {
	seen := make(map[string]struct{}, len(services))
	for i := range services {
		svc := &services[i]
		if svc.ID == "" {
			return fmt.Errorf("%w: service at position %d has no id", ErrInvalidInput, i)
		}
		if _, dup := seen[svc.ID]; dup {
			return fmt.Errorf("%w: duplicate service id %q", ErrInvalidInput, svc.ID)
		}
		seen[svc.ID] = struct{}{}

		tierIDs := make(map[string]struct{}, len(svc.Tiers))
		for j, tier := range svc.Tiers {
			if tier.ID == "" {
				return fmt.Errorf("%w: service %q tier at position %d has no id", ErrInvalidInput, svc.ID, j)
			}
			if _, dup := tierIDs[tier.ID]; dup {
				return fmt.Errorf("%w: service %q has duplicate tier id %q", ErrInvalidInput, svc.ID, tier.ID)
			}
			tierIDs[tier.ID] = struct{}{}
			if tier.Price < 0 || tier.OriginalPrice < 0 {
				return fmt.Errorf("%w: service %q tier %q has a negative price", ErrInvalidInput, svc.ID, tier.ID)
			}
		}
	}
	return nil
}

// FindService returns the service with the given id.
func FindService(services []Service, id string) (*Service, bool) {
	for i := range services {
		if services[i].ID == id {
			return &services[i], true
		}
	}
	return nil, false
}

// ResolveActiveService picks the service the tier carousel should show.
// An explicit selectedID wins when it exists in services. With no
// selection, a catalog of exactly one service auto-selects it; otherwise
// no service is active and the host should offer a service picker.
func ResolveActiveService(services []Service, selectedID string) (*Service, bool) {
	if selectedID != "" {
		return FindService(services, selectedID)
	}
	if len(services) == 1 {
		return &services[0], true
	}
	return nil, false
}
