package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ovenmade/bakehouse-backend/pkg/enums"
)

// Order is a placed order converted from a user's cart.
type Order struct {
	ID              uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID          uuid.UUID         `gorm:"column:user_id;type:uuid;not null;index"`
	Status          enums.OrderStatus `gorm:"column:status;type:order_status;not null;default:'pending'"`
	Total           decimal.Decimal   `gorm:"column:total;type:numeric(10,2);not null"`
	DeliveryAddress *string           `gorm:"column:delivery_address"`
	Note            *string           `gorm:"column:note"`
	Items           []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

// OrderItem snapshots one cart line at placement time so later catalog edits
// cannot change a placed order.
type OrderItem struct {
	ID          uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID     uuid.UUID        `gorm:"column:order_id;type:uuid;not null;index"`
	ProductID   uuid.UUID        `gorm:"column:product_id;type:uuid;not null"`
	ProductName string           `gorm:"column:product_name;not null"`
	Kilo        *decimal.Decimal `gorm:"column:kilo;type:numeric(6,3)"`
	Pieces      *int             `gorm:"column:pieces"`
	Quantity    int              `gorm:"column:quantity;not null"`
	UnitPrice   decimal.Decimal  `gorm:"column:unit_price;type:numeric(10,2);not null"`
	LineTotal   decimal.Decimal  `gorm:"column:line_total;type:numeric(10,2);not null"`
	CustomText  *string          `gorm:"column:custom_text"`
	CreatedAt   time.Time        `gorm:"column:created_at;autoCreateTime"`
}
