package checkout

import (
	"strings"
	"time"

	"github.com/angelmondragon/mahalaxmi-storefront/internal/orders"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/enums"
	pkgerrors "github.com/angelmondragon/mahalaxmi-storefront/pkg/errors"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/types"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/validation"
	"github.com/shopspring/decimal"
)

// Step is a position in the linear checkout flow.
type Step int

const (
	StepCart Step = iota + 1
	StepShipping
	StepPayment
	StepConfirmed
)

var stepNames = map[Step]string{
	StepCart:      "Cart",
	StepShipping:  "Shipping",
	StepPayment:   "Payment",
	StepConfirmed: "Confirm",
}

func (s Step) Name() string {
	return stepNames[s]
}

// Steps lists the indicator entries in order.
func Steps() []Step {
	return []Step{StepCart, StepShipping, StepPayment, StepConfirmed}
}

// ErrConfirmed is returned for any transition attempted after the order was placed.
var ErrConfirmed = pkgerrors.New(pkgerrors.CodeConflict, "order already placed")

// Draft is the checkout state kept per browser session between requests.
type Draft struct {
	Step           Step                   `json:"step"`
	Address        orders.ShippingAddress `json:"address"`
	ShippingMethod enums.ShippingMethod   `json:"shippingMethod"`
	PaymentMethod  enums.PaymentMethod    `json:"paymentMethod"`
	Notes          string                 `json:"notes,omitempty"`
	Error          string                 `json:"error,omitempty"`
	OrderNumber    string                 `json:"orderNumber,omitempty"`
	ConfirmedAt    time.Time              `json:"confirmedAt,omitempty"`
}

// NewDraft starts checkout on the shipping step with the form defaults.
func NewDraft() Draft {
	return Draft{
		Step:           StepShipping,
		Address:        orders.ShippingAddress{Country: types.DefaultCountry},
		ShippingMethod: enums.ShippingMethodStandard,
		PaymentMethod:  enums.PaymentMethodCashOnDelivery,
	}
}

func (d Draft) Confirmed() bool {
	return d.Step == StepConfirmed
}

// SubmitShipping validates the address and shipping method and advances to payment.
// On failure the draft keeps the entered values, stays on shipping and the error
// carries field messages.
func (d Draft) SubmitShipping(addr orders.ShippingAddress, method enums.ShippingMethod, subtotal decimal.Decimal) (Draft, error) {
	if d.Confirmed() {
		return d, ErrConfirmed
	}
	addr = trimAddress(addr)
	d.Address = addr
	d.Error = ""
	if !method.IsValid() {
		method = enums.ShippingMethodStandard
	}
	d.ShippingMethod = method

	fields := map[string]string{}
	if err := validation.Struct(&addr); err != nil {
		for k, v := range pkgerrors.As(err).FieldErrors() {
			fields[k] = v
		}
	}
	if method == enums.ShippingMethodFree && !FreeShippingEligible(subtotal) {
		fields["shippingMethod"] = "free shipping needs an order of ₹50,000 or more"
		d.ShippingMethod = enums.ShippingMethodStandard
	}
	if len(fields) > 0 {
		d.Step = StepShipping
		return d, pkgerrors.New(pkgerrors.CodeValidation, "please complete your shipping details").WithDetails(fields)
	}
	d.Step = StepPayment
	return d, nil
}

// Back returns from payment to shipping. Other steps are unchanged.
func (d Draft) Back() Draft {
	if d.Step == StepPayment {
		d.Step = StepShipping
		d.Error = ""
	}
	return d
}

// ReadyToPlace checks that the draft is on the payment step with a valid method selected.
// The shipping method is settled against the current subtotal so the submitted order
// matches the quote the shopper saw.
func (d Draft) ReadyToPlace(method enums.PaymentMethod, subtotal decimal.Decimal) (Draft, error) {
	if d.Confirmed() {
		return d, ErrConfirmed
	}
	if d.Step != StepPayment {
		return d, pkgerrors.New(pkgerrors.CodeValidation, "shipping details are required first")
	}
	if !method.IsValid() {
		return d, pkgerrors.New(pkgerrors.CodeValidation, "choose a payment method").
			WithDetails(map[string]string{"paymentMethod": "is invalid"})
	}
	d.PaymentMethod = method
	d.ShippingMethod = d.ShippingFor(subtotal)
	d.Error = ""
	return d, nil
}

// Request builds the order submission.
func (d Draft) Request() orders.CreateOrderRequest {
	return orders.CreateOrderRequest{
		ShippingAddress: d.Address,
		PaymentMethod:   d.PaymentMethod,
		ShippingMethod:  d.ShippingMethod,
		Notes:           d.Notes,
	}
}

// Confirm moves to the terminal step.
func (d Draft) Confirm(orderNumber string, at time.Time) Draft {
	d.Step = StepConfirmed
	d.Error = ""
	d.OrderNumber = orderNumber
	d.ConfirmedAt = at
	return d
}

// Fail keeps the draft on payment with a blocking error so it can be resubmitted.
func (d Draft) Fail(message string) Draft {
	if d.Confirmed() {
		return d
	}
	d.Step = StepPayment
	d.Error = message
	return d
}

// ShippingFor is the method the draft ships with at a subtotal. Free falls back to
// standard once the cart drops below the threshold.
func (d Draft) ShippingFor(subtotal decimal.Decimal) enums.ShippingMethod {
	if d.ShippingMethod == enums.ShippingMethodFree && !FreeShippingEligible(subtotal) {
		return enums.ShippingMethodStandard
	}
	return d.ShippingMethod
}

// Quote prices the draft for a cart subtotal.
func (d Draft) Quote(subtotal decimal.Decimal) Quote {
	return QuoteFor(subtotal, d.ShippingFor(subtotal))
}

func trimAddress(a orders.ShippingAddress) orders.ShippingAddress {
	return orders.ShippingAddress{
		Street:     strings.TrimSpace(a.Street),
		City:       strings.TrimSpace(a.City),
		State:      strings.TrimSpace(a.State),
		PostalCode: strings.TrimSpace(a.PostalCode),
		Country:    strings.TrimSpace(a.Country),
	}
}
