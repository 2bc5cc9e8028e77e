package orders

import (
	"strings"

	"github.com/angelmondragon/mahalaxmi-storefront/pkg/enums"
)

// Tone is the badge colour family a template renders.
type Tone string

const (
	ToneDefault Tone = "default"
	ToneInfo    Tone = "info"
	ToneWarning Tone = "warning"
	ToneSuccess Tone = "success"
	ToneDanger  Tone = "danger"
)

// Badge is a status pill.
type Badge struct {
	Label string
	Tone  Tone
}

var statusBadges = map[enums.OrderStatus]Badge{
	enums.OrderStatusPending:    {"Pending", ToneWarning},
	enums.OrderStatusConfirmed:  {"Confirmed", ToneInfo},
	enums.OrderStatusProcessing: {"Processing", ToneInfo},
	enums.OrderStatusShipped:    {"Shipped", ToneInfo},
	enums.OrderStatusDelivered:  {"Delivered", ToneSuccess},
	enums.OrderStatusCancelled:  {"Cancelled", ToneDanger},
	enums.OrderStatusRefunded:   {"Refunded", ToneDefault},
}

var paymentBadges = map[enums.PaymentStatus]Badge{
	enums.PaymentStatusPending:  {"Pending", ToneWarning},
	enums.PaymentStatusPaid:     {"Paid", ToneSuccess},
	enums.PaymentStatusFailed:   {"Failed", ToneDanger},
	enums.PaymentStatusRefunded: {"Refunded", ToneDefault},
}

// StatusBadge maps an order status to its pill. Unknown statuses render as-is in the default tone.
func StatusBadge(status enums.OrderStatus) Badge {
	if b, ok := statusBadges[status]; ok {
		return b
	}
	return Badge{Label: titleCase(string(status)), Tone: ToneDefault}
}

// PaymentBadge maps a payment status to its pill.
func PaymentBadge(status enums.PaymentStatus) Badge {
	if b, ok := paymentBadges[status]; ok {
		return b
	}
	return Badge{Label: titleCase(string(status)), Tone: ToneDefault}
}

func titleCase(raw string) string {
	if raw == "" {
		return ""
	}
	lower := strings.ToLower(strings.ReplaceAll(raw, "_", " "))
	return strings.ToUpper(lower[:1]) + lower[1:]
}

// ItemCount sums the units across order lines.
func (o Order) ItemCount() int {
	total := 0
	for _, item := range o.Items {
		total += item.Quantity
	}
	return total
}
