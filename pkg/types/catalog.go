package types

import (
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/enums"
	"github.com/shopspring/decimal"
)

// LowStockThreshold is the stock level at or below which a low stock badge is shown.
const LowStockThreshold = 5

// Category mirrors the backend category record.
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	ParentID    *int64 `json:"parentId,omitempty"`
	Active      bool   `json:"active"`
}

// Product mirrors the backend product record.
type Product struct {
	ID             int64             `json:"id"`
	Name           string            `json:"name"`
	Slug           string            `json:"slug,omitempty"`
	Description    string            `json:"description"`
	Price          decimal.Decimal   `json:"price"`
	StockQuantity  int               `json:"stockQuantity"`
	Brand          string            `json:"brand"`
	Model          string            `json:"model"`
	Type           enums.ProductType `json:"type"`
	ImageURLs      []string          `json:"imageUrls"`
	Specifications map[string]string `json:"specifications"`
	Category       *Category         `json:"category,omitempty"`
	Active         bool              `json:"active"`
	Featured       bool              `json:"featured"`
}

func (p Product) InStock() bool {
	return p.StockQuantity > 0
}

func (p Product) LowStock() bool {
	return p.StockQuantity > 0 && p.StockQuantity <= LowStockThreshold
}

// PrimaryImage returns the first image or an empty string.
func (p Product) PrimaryImage() string {
	if len(p.ImageURLs) == 0 {
		return ""
	}
	return p.ImageURLs[0]
}

// CategoryID returns the category id or 0 when the product carries none.
func (p Product) CategoryID() int64 {
	if p.Category == nil {
		return 0
	}
	return p.Category.ID
}
