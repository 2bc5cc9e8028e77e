package cart

import (
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/types"
	"github.com/shopspring/decimal"
)

// Cart is the backend cart snapshot. Every mutation returns the whole cart.
type Cart struct {
	ID        int64           `json:"id"`
	Items     []Item          `json:"items"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"itemCount"`
}

// Item is one cart line.
type Item struct {
	ID       int64           `json:"id"`
	Product  types.Product   `json:"product"`
	Quantity int             `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool {
	return c == nil || len(c.Items) == 0
}

// FindItem returns the line with the given id.
func (c *Cart) FindItem(itemID int64) (Item, bool) {
	if c == nil {
		return Item{}, false
	}
	for _, item := range c.Items {
		if item.ID == itemID {
			return item, true
		}
	}
	return Item{}, false
}

// AddItemRequest is the body of POST /cart/items.
type AddItemRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}
