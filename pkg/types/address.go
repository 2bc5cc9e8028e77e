package types

import (
	"strings"

	"github.com/angelmondragon/mahalaxmi-storefront/pkg/enums"
)

// DefaultCountry is pre-filled on every address form.
const DefaultCountry = "India"

// Address mirrors the backend address record.
type Address struct {
	ID         int64             `json:"id,omitempty"`
	Street     string            `json:"street"`
	City       string            `json:"city"`
	State      string            `json:"state"`
	PostalCode string            `json:"postalCode"`
	Country    string            `json:"country"`
	Type       enums.AddressType `json:"type,omitempty"`
	IsDefault  bool              `json:"isDefault,omitempty"`
}

// OneLine renders the address as a single comma separated line, skipping blanks.
func (a Address) OneLine() string {
	parts := make([]string, 0, 5)
	for _, part := range []string{a.Street, a.City, a.State, a.PostalCode, a.Country} {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, ", ")
}
