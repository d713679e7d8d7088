package catalog

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Price is a non-negative amount in minor units (cents).
//
// The catalog document and the persisted cart slot both carry prices as
// decimal dollars (e.g. 12.5), so the JSON codec converts at the boundary.
// All arithmetic stays in int64 minor units.
type Price int64

// MarshalJSON encodes the price as a decimal dollar amount.
func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(decimal.New(int64(p), -2).String()), nil
}

// UnmarshalJSON decodes a decimal dollar amount into minor units.
func (p *Price) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if raw == "" || raw == "null" {
		*p = 0
		return nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return fmt.Errorf("catalog: invalid price %q: %w", raw, err)
	}
	*p = Price(d.Shift(2).Round(0).IntPart())
	return nil
}

// Minor returns the amount in minor units.
func (p Price) Minor() int64 { return int64(p) }

// Product is a read-only catalog record. Identity is ID; uniqueness is
// assumed from the source document, not enforced here.
type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Short       string `json:"short"`
	Description string `json:"description"`
	Price       Price  `json:"price"`
	Image       string `json:"image"`
}
