package enums

import "fmt"

// ProductType classifies the hardware catalog.
type ProductType string

const (
	ProductTypeServer          ProductType = "SERVER"
	ProductTypeDesktopComputer ProductType = "DESKTOP_COMPUTER"
	ProductTypeLaptop          ProductType = "LAPTOP"
	ProductTypeWorkstation     ProductType = "WORKSTATION"
	ProductTypeComponent       ProductType = "COMPONENT"
)

var validProductTypes = []ProductType{
	ProductTypeServer,
	ProductTypeDesktopComputer,
	ProductTypeLaptop,
	ProductTypeWorkstation,
	ProductTypeComponent,
}

// String implements fmt.Stringer.
func (p ProductType) String() string {
	return string(p)
}

// IsValid reports whether the value is a known ProductType.
func (p ProductType) IsValid() bool {
	for _, candidate := range validProductTypes {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseProductType converts raw input into a ProductType.
func ParseProductType(value string) (ProductType, error) {
	for _, candidate := range validProductTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product type %q", value)
}
