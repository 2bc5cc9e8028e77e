package enums

import "fmt"

// PaymentMethod is how the shopper intends to pay. The storefront only records the selection.
type PaymentMethod string

const (
	PaymentMethodCashOnDelivery PaymentMethod = "CASH_ON_DELIVERY"
	PaymentMethodUPI            PaymentMethod = "UPI"
	PaymentMethodCreditCard     PaymentMethod = "CREDIT_CARD"
	PaymentMethodDebitCard      PaymentMethod = "DEBIT_CARD"
	PaymentMethodNetBanking     PaymentMethod = "NET_BANKING"
)

var validPaymentMethods = []PaymentMethod{
	PaymentMethodCashOnDelivery,
	PaymentMethodUPI,
	PaymentMethodCreditCard,
	PaymentMethodDebitCard,
	PaymentMethodNetBanking,
}

// String implements fmt.Stringer.
func (p PaymentMethod) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PaymentMethod.
func (p PaymentMethod) IsValid() bool {
	for _, candidate := range validPaymentMethods {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePaymentMethod converts raw input into a PaymentMethod.
func ParsePaymentMethod(value string) (PaymentMethod, error) {
	for _, candidate := range validPaymentMethods {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment method %q", value)
}
