package checkout

import (
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/enums"
	"github.com/shopspring/decimal"
)

var (
	// FreeShippingThreshold is the subtotal from which standard shipping is free and
	// the free method is offered.
	FreeShippingThreshold = decimal.NewFromInt(50000)
	StandardShippingCost  = decimal.NewFromInt(199)
	ExpressShippingCost   = decimal.NewFromInt(499)
	TaxRate               = decimal.RequireFromString("0.18")
)

// Quote is the order summary shown next to every checkout step.
type Quote struct {
	Subtotal decimal.Decimal
	Shipping decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// FreeShippingEligible reports whether the free method may be offered and accepted.
func FreeShippingEligible(subtotal decimal.Decimal) bool {
	return subtotal.GreaterThanOrEqual(FreeShippingThreshold)
}

// ShippingCost prices a method for a subtotal.
func ShippingCost(method enums.ShippingMethod, subtotal decimal.Decimal) decimal.Decimal {
	switch method {
	case enums.ShippingMethodFree:
		return decimal.Zero
	case enums.ShippingMethodExpress:
		return ExpressShippingCost
	default:
		if FreeShippingEligible(subtotal) {
			return decimal.Zero
		}
		return StandardShippingCost
	}
}

// Tax is 18% of the subtotal rounded to whole rupees.
func Tax(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(TaxRate).Round(0)
}

// QuoteFor prices an order.
func QuoteFor(subtotal decimal.Decimal, method enums.ShippingMethod) Quote {
	shipping := ShippingCost(method, subtotal)
	tax := Tax(subtotal)
	return Quote{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal.Add(shipping).Add(tax),
	}
}

// ShippingOption is one radio button on the shipping step.
type ShippingOption struct {
	Method enums.ShippingMethod
	Label  string
	Detail string
	Cost   decimal.Decimal
	// Waived is set on standard shipping when the threshold makes it free.
	Waived bool
}

// ShippingOptions lists the methods offered for a subtotal. Free only appears, first,
// at or above the threshold.
func ShippingOptions(subtotal decimal.Decimal) []ShippingOption {
	eligible := FreeShippingEligible(subtotal)
	opts := make([]ShippingOption, 0, 3)
	if eligible {
		opts = append(opts, ShippingOption{
			Method: enums.ShippingMethodFree,
			Label:  enums.ShippingMethodFree.Label(),
			Detail: "5-7 business days",
			Cost:   decimal.Zero,
		})
	}
	return append(opts,
		ShippingOption{
			Method: enums.ShippingMethodStandard,
			Label:  enums.ShippingMethodStandard.Label(),
			Detail: "5-7 business days",
			Cost:   ShippingCost(enums.ShippingMethodStandard, subtotal),
			Waived: eligible,
		},
		ShippingOption{
			Method: enums.ShippingMethodExpress,
			Label:  enums.ShippingMethodExpress.Label(),
			Detail: "2-3 business days",
			Cost:   ExpressShippingCost,
		},
	)
}
