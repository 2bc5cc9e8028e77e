package cart

import (
	"github.com/shopspring/decimal"
)

var (
	// FreeShippingThreshold is the cart total at which shipping becomes free.
	FreeShippingThreshold = decimal.NewFromInt(50000)
	// ShippingFee is the flat estimate shown on the cart page below the threshold.
	ShippingFee = decimal.NewFromInt(500)
)

// LineView is one cart row with its stepper state.
type LineView struct {
	Item        Item
	LowStock    bool
	CanDecrease bool
	CanIncrease bool
}

// View is the cart page summary.
type View struct {
	Lines           []LineView
	ItemCount       int
	Total           decimal.Decimal
	Shipping        decimal.Decimal
	GrandTotal      decimal.Decimal
	FreeShippingGap decimal.Decimal
}

// FreeShipping reports whether the shipping line reads FREE.
func (v View) FreeShipping() bool {
	return v.Shipping.IsZero()
}

// Empty reports whether there is nothing to show.
func (v View) Empty() bool {
	return len(v.Lines) == 0
}

// NewView derives the cart page values from a snapshot.
func NewView(c *Cart) View {
	if c.Empty() {
		return View{}
	}
	v := View{
		ItemCount: c.ItemCount,
		Total:     c.Total,
		Lines:     make([]LineView, 0, len(c.Items)),
	}
	for _, item := range c.Items {
		v.Lines = append(v.Lines, LineView{
			Item:        item,
			LowStock:    item.Product.LowStock(),
			CanDecrease: item.Quantity > 1,
			CanIncrease: item.Quantity < item.Product.StockQuantity,
		})
	}
	v.Shipping = ShippingFor(c.Total)
	v.GrandTotal = c.Total.Add(v.Shipping)
	if v.Shipping.IsPositive() {
		v.FreeShippingGap = FreeShippingThreshold.Sub(c.Total)
	}
	return v
}

// ShippingFor returns the cart page shipping estimate for a total.
func ShippingFor(total decimal.Decimal) decimal.Decimal {
	if total.GreaterThanOrEqual(FreeShippingThreshold) {
		return decimal.Zero
	}
	return ShippingFee
}
