package enums

// Display labels used by the templates.

var productTypeLabels = map[ProductType]string{
	ProductTypeServer:          "Servers",
	ProductTypeDesktopComputer: "Desktop Computers",
	ProductTypeLaptop:          "Laptops",
	ProductTypeWorkstation:     "Workstations",
	ProductTypeComponent:       "Components",
}

func (p ProductType) Label() string {
	if label, ok := productTypeLabels[p]; ok {
		return label
	}
	return string(p)
}

// ProductTypes returns every product type in catalog order.
func ProductTypes() []ProductType {
	out := make([]ProductType, len(validProductTypes))
	copy(out, validProductTypes)
	return out
}

var paymentMethodLabels = map[PaymentMethod]string{
	PaymentMethodCashOnDelivery: "Cash on Delivery",
	PaymentMethodUPI:            "UPI",
	PaymentMethodCreditCard:     "Credit Card",
	PaymentMethodDebitCard:      "Debit Card",
	PaymentMethodNetBanking:     "Net Banking",
}

func (p PaymentMethod) Label() string {
	if label, ok := paymentMethodLabels[p]; ok {
		return label
	}
	return string(p)
}

// PaymentMethods returns the selectable payment methods, cash on delivery first.
func PaymentMethods() []PaymentMethod {
	out := make([]PaymentMethod, len(validPaymentMethods))
	copy(out, validPaymentMethods)
	return out
}

// OrderStatuses returns every order status in lifecycle order.
func OrderStatuses() []OrderStatus {
	out := make([]OrderStatus, len(validOrderStatuses))
	copy(out, validOrderStatuses)
	return out
}

func (s ShippingMethod) Label() string {
	switch s {
	case ShippingMethodStandard:
		return "Standard Shipping"
	case ShippingMethodExpress:
		return "Express Shipping"
	case ShippingMethodFree:
		return "Free Shipping"
	}
	return string(s)
}
