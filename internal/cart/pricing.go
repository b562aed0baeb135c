package cart

import (
	"github.com/ovenmade/bakehouse-backend/pkg/db/models"
	"github.com/ovenmade/bakehouse-backend/pkg/types"
)

// PricingMode captures how a subcategory prices its products: by discrete piece
// count or by weight against a kilo-to-price table.
type PricingMode struct {
	IsPieceable bool
	KiloPrices  types.KiloPriceMap
}

// ResolvePricingMode derives the pricing mode from a subcategory record. An
// explicit IsPieceable value wins; otherwise the subcategory is piece-priced
// only when it has no kilo price entries.
func ResolvePricingMode(sub *models.Subcategory) PricingMode {
	mode := PricingMode{KiloPrices: sub.KiloToPriceMap}
	if sub.IsPieceable != nil {
		mode.IsPieceable = *sub.IsPieceable
		return mode
	}
	mode.IsPieceable = len(sub.KiloToPriceMap) == 0
	return mode
}
