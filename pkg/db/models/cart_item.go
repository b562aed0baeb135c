package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItem persists one shopping-cart line per (user, product) pair.
//
// Kilo is set only for weight-priced products, Pieces only for piece-priced ones.
// Quantity is always present: it mirrors Pieces for piece-priced products and acts
// as an independent multiplier for weight-priced ones.
type CartItem struct {
	ID                    uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID                uuid.UUID        `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_cart_items_user_product"`
	ProductID             uuid.UUID        `gorm:"column:product_id;type:uuid;not null;uniqueIndex:idx_cart_items_user_product"`
	Product               *Product         `gorm:"foreignKey:ProductID"`
	Kilo                  *decimal.Decimal `gorm:"column:kilo;type:numeric(6,3)"`
	Pieces                *int             `gorm:"column:pieces"`
	Quantity              int              `gorm:"column:quantity;not null"`
	CustomText            *string          `gorm:"column:custom_text"`
	AdditionalDescription *string          `gorm:"column:additional_description"`
	CreatedAt             time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt             time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
