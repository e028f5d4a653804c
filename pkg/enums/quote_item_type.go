package enums

import "fmt"

// QuoteItemType distinguishes labor from material lines on an estimate.
type QuoteItemType string

const (
	QuoteItemTypeLabor    QuoteItemType = "labor"
	QuoteItemTypeMaterial QuoteItemType = "material"
)

var validQuoteItemTypes = []QuoteItemType{
	QuoteItemTypeLabor,
	QuoteItemTypeMaterial,
}

// IsValid reports whether the value is a known QuoteItemType.
func (q QuoteItemType) IsValid() bool {
	for _, candidate := range validQuoteItemTypes {
		if candidate == q {
			return true
		}
	}
	return false
}

// ParseQuoteItemType converts raw input into a QuoteItemType.
func ParseQuoteItemType(value string) (QuoteItemType, error) {
	for _, candidate := range validQuoteItemTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid quote item type %q", value)
}
