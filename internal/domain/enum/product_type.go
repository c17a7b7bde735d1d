package enum

import (
	"fmt"
	"strings"
)

// ProductType groups price-list entries
type ProductType string

const (
	ProductTypeTyre     ProductType = "tyre"
	ProductTypeOil      ProductType = "oil"
	ProductTypeBattery  ProductType = "battery"
	ProductTypeFilter   ProductType = "filter"
	ProductTypeBrakePad ProductType = "brake_pad"
	ProductTypeOther    ProductType = "other"
)

var productTypes = []ProductType{
	ProductTypeTyre,
	ProductTypeOil,
	ProductTypeBattery,
	ProductTypeFilter,
	ProductTypeBrakePad,
	ProductTypeOther,
}

func (t ProductType) String() string {
	return string(t)
}

func (t ProductType) IsValid() bool {
	for _, pt := range productTypes {
		if t == pt {
			return true
		}
	}
	return false
}

// ParseProductType parses a product type; "brake pad" and "brake-pad" are
// accepted for brake_pad.
func ParseProductType(s string) (ProductType, error) {
	normalized := strings.NewReplacer(" ", "_", "-", "_").Replace(strings.ToLower(strings.TrimSpace(s)))
	t := ProductType(normalized)
	if !t.IsValid() {
		return "", fmt.Errorf("unknown product type %q", s)
	}
	return t, nil
}
