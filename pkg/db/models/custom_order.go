package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ovenmade/bakehouse-backend/pkg/enums"
)

// CustomOrder is a bespoke request (wedding cakes, bulk orders) quoted by staff.
type CustomOrder struct {
	ID            uuid.UUID               `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID        uuid.UUID               `gorm:"column:user_id;type:uuid;not null;index"`
	Title         string                  `gorm:"column:title;not null"`
	Description   string                  `gorm:"column:description;not null"`
	Occasion      *string                 `gorm:"column:occasion"`
	RequestedDate *time.Time              `gorm:"column:requested_date"`
	Status        enums.CustomOrderStatus `gorm:"column:status;type:custom_order_status;not null;default:'requested'"`
	QuotedPrice   *decimal.Decimal        `gorm:"column:quoted_price;type:numeric(10,2)"`
	AdminNote     *string                 `gorm:"column:admin_note"`
	CreatedAt     time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}
