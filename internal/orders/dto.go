package orders

import (
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/enums"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/types"
	"github.com/shopspring/decimal"
)

// Order mirrors the backend order record.
type Order struct {
	ID              int64               `json:"id"`
	OrderNumber     string              `json:"orderNumber"`
	Items           []Item              `json:"items"`
	Subtotal        decimal.Decimal     `json:"subtotal"`
	Tax             decimal.Decimal     `json:"tax"`
	ShippingCost    decimal.Decimal     `json:"shippingCost"`
	Total           decimal.Decimal     `json:"total"`
	Status          enums.OrderStatus   `json:"status"`
	PaymentStatus   enums.PaymentStatus `json:"paymentStatus"`
	PaymentMethod   enums.PaymentMethod `json:"paymentMethod,omitempty"`
	ShippingAddress *types.Address      `json:"shippingAddress,omitempty"`
	BillingAddress  *types.Address      `json:"billingAddress,omitempty"`
	TrackingNumber  string              `json:"trackingNumber,omitempty"`
	Notes           string              `json:"notes,omitempty"`
	CreatedAt       types.Timestamp     `json:"createdAt"`
	ShippedAt       types.Timestamp     `json:"shippedAt"`
	DeliveredAt     types.Timestamp     `json:"deliveredAt"`
}

// Item is one order line with the price captured at order time.
type Item struct {
	ID       int64           `json:"id"`
	Product  types.Product   `json:"product"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// ShippingAddress is the address block of an order submission.
type ShippingAddress struct {
	Street     string `json:"street" validate:"required"`
	City       string `json:"city" validate:"required"`
	State      string `json:"state" validate:"required"`
	PostalCode string `json:"postalCode" validate:"required"`
	Country    string `json:"country" validate:"required"`
}

// CreateOrderRequest is the body of POST /orders.
type CreateOrderRequest struct {
	ShippingAddress ShippingAddress      `json:"shippingAddress"`
	PaymentMethod   enums.PaymentMethod  `json:"paymentMethod"`
	ShippingMethod  enums.ShippingMethod `json:"shippingMethod"`
	Notes           string               `json:"notes"`
}

// UpdateStatusRequest is the body of PUT /admin/orders/{id}/status.
type UpdateStatusRequest struct {
	Status         enums.OrderStatus `json:"status"`
	TrackingNumber string            `json:"trackingNumber,omitempty"`
	Notes          string            `json:"notes,omitempty"`
}
