package products

import (
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/enums"
	"github.com/shopspring/decimal"
)

// ProductInput is the admin create/edit payload.
type ProductInput struct {
	Name           string            `json:"name" validate:"required,max=200"`
	Description    string            `json:"description"`
	Price          decimal.Decimal   `json:"price"`
	StockQuantity  int               `json:"stockQuantity" validate:"gte=0"`
	Brand          string            `json:"brand" validate:"required"`
	Model          string            `json:"model"`
	Type           enums.ProductType `json:"type" validate:"required"`
	ImageURLs      []string          `json:"imageUrls"`
	Specifications map[string]string `json:"specifications"`
	Category       *categoryRef      `json:"category,omitempty"`
	Active         bool              `json:"active"`
	Featured       bool              `json:"featured"`
}

type categoryRef struct {
	ID int64 `json:"id"`
}

// WithCategory attaches the category reference the backend expects.
func (p ProductInput) WithCategory(id int64) ProductInput {
	if id > 0 {
		p.Category = &categoryRef{ID: id}
	} else {
		p.Category = nil
	}
	return p
}
