package cart

import (
	"testing"

	"github.com/angelmondragon/mahalaxmi-storefront/pkg/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestViewBelowFreeShippingThreshold(t *testing.T) {
	c := &Cart{
		Items: []Item{{ID: 1, Quantity: 1, Product: types.Product{StockQuantity: 3}}},
		Total: decimal.NewFromInt(49999),
	}
	v := NewView(c)
	assert.True(t, v.Shipping.Equal(decimal.NewFromInt(500)))
	assert.True(t, v.GrandTotal.Equal(decimal.NewFromInt(50499)))
	assert.True(t, v.FreeShippingGap.Equal(decimal.NewFromInt(1)))
	assert.False(t, v.FreeShipping())

	line := v.Lines[0]
	assert.True(t, line.LowStock)
	assert.False(t, line.CanDecrease)
	assert.True(t, line.CanIncrease)
}

func TestViewAtThresholdShipsFree(t *testing.T) {
	c := &Cart{
		Items: []Item{{ID: 1, Quantity: 2, Product: types.Product{StockQuantity: 2}}},
		Total: decimal.NewFromInt(50000),
	}
	v := NewView(c)
	assert.True(t, v.FreeShipping())
	assert.True(t, v.GrandTotal.Equal(decimal.NewFromInt(50000)))
	assert.True(t, v.FreeShippingGap.IsZero())
	assert.False(t, v.Lines[0].CanIncrease)
	assert.True(t, v.Lines[0].CanDecrease)
	assert.True(t, v.Lines[0].LowStock)
}

func TestViewOfEmptyCart(t *testing.T) {
	assert.True(t, NewView(nil).Empty())
	assert.True(t, NewView(&Cart{}).Empty())
}

func TestViewTotals(t *testing.T) {
	line := func(id int64, price int64) Item {
		p := decimal.NewFromInt(price)
		return Item{ID: id, Quantity: 1, Subtotal: p, Product: types.Product{ID: id, Price: p, StockQuantity: 10}}
	}
	cases := []struct {
		name       string
		items      []Item
		total      int64
		shipping   int64
		grandTotal int64
	}{
		{name: "two items over threshold", items: []Item{line(1, 30000), line(2, 25000)}, total: 55000, shipping: 0, grandTotal: 55000},
		{name: "single item under threshold", items: []Item{line(1, 30000)}, total: 30000, shipping: 500, grandTotal: 30500},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := NewView(&Cart{Items: tc.items, Total: decimal.NewFromInt(tc.total), ItemCount: len(tc.items)})
			assert.True(t, v.Shipping.Equal(decimal.NewFromInt(tc.shipping)), "shipping %s", v.Shipping)
			assert.True(t, v.GrandTotal.Equal(decimal.NewFromInt(tc.grandTotal)), "total %s", v.GrandTotal)
			assert.Equal(t, tc.shipping == 0, v.FreeShipping())
		})
	}
}
