package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ovenmade/bakehouse-backend/pkg/types"
)

// Subcategory groups products under a category and carries their pricing mode.
//
// A subcategory is weight-priced when its KiloToPriceMap has entries and piece-priced
// otherwise; an explicit IsPieceable value overrides that inference.
type Subcategory struct {
	ID             uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CategoryID     uuid.UUID          `gorm:"column:category_id;type:uuid;not null;index"`
	Name           string             `gorm:"column:name;type:text;not null"`
	Description    *string            `gorm:"column:description"`
	KiloToPriceMap types.KiloPriceMap `gorm:"column:kilo_to_price_map;type:jsonb"`
	IsPieceable    *bool              `gorm:"column:is_pieceable"`
	PiecePrice     *decimal.Decimal   `gorm:"column:piece_price;type:numeric(10,2)"`
	CreatedAt      time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
