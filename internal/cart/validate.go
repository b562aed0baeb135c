package cart

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/ovenmade/bakehouse-backend/pkg/errors"
)

// ItemShape is the candidate kilo/pieces/quantity combination checked against
// a product's pricing mode before it is allowed into the cart.
type ItemShape struct {
	Kilo     *decimal.Decimal
	Pieces   *int
	Quantity *int
}

// validateItemShape accepts or rejects the shape for the given pricing mode.
// Rules run in a fixed order; the first failing rule determines the error.
func validateItemShape(mode PricingMode, shape ItemShape) error {
	if mode.IsPieceable {
		return validatePieceShape(shape)
	}
	return validateKiloShape(mode, shape)
}

func validatePieceShape(shape ItemShape) error {
	if shape.Kilo != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "Kilo option is not applicable for pieceable products")
	}
	if !positiveInt(shape.Pieces) && !positiveInt(shape.Quantity) {
		return pkgerrors.New(pkgerrors.CodeValidation, "Either pieces or quantity must be provided as a positive number for pieceable products")
	}
	if shape.Pieces != nil && *shape.Pieces <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "Pieces must be greater than zero")
	}
	if shape.Quantity != nil && *shape.Quantity <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "Quantity must be greater than zero")
	}
	return nil
}

func validateKiloShape(mode PricingMode, shape ItemShape) error {
	if shape.Pieces != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "Pieces option is not applicable for non-pieceable products")
	}
	if !positiveKilo(shape.Kilo) && !positiveInt(shape.Quantity) {
		return pkgerrors.New(pkgerrors.CodeValidation, "Either kilo or quantity must be provided as a positive number for non-pieceable products")
	}
	if shape.Kilo != nil {
		if !shape.Kilo.IsPositive() {
			return pkgerrors.New(pkgerrors.CodeValidation, "Kilo must be greater than zero")
		}
		key := KiloKey(*shape.Kilo)
		if _, ok := mode.KiloPrices[key]; !ok {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("No price configured for %s; available options: %s", key, availableKiloOptions(mode)))
		}
	}
	if shape.Quantity != nil && *shape.Quantity <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "Quantity must be greater than zero")
	}
	return nil
}

// KiloKey formats a weight as the literal map key convention, e.g. 1.5 -> "1.5kg".
// Trailing zeros are stripped so "1.0" and "1" address the same entry.
func KiloKey(kilo decimal.Decimal) string {
	s := kilo.String()
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimRight(s, ".")
	}
	return s + "kg"
}

func availableKiloOptions(mode PricingMode) string {
	keys := mode.KiloPrices.SortedKeys()
	if len(keys) == 0 {
		return "none configured"
	}
	return strings.Join(keys, ", ")
}

func positiveInt(value *int) bool {
	return value != nil && *value > 0
}

func positiveKilo(value *decimal.Decimal) bool {
	return value != nil && value.IsPositive()
}
