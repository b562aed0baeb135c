package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product represents a single catalog listing tied to a subcategory.
type Product struct {
	ID            uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SubcategoryID uuid.UUID        `gorm:"column:subcategory_id;type:uuid;not null;index"`
	Name          string           `gorm:"column:name;type:text;not null"`
	Description   *string          `gorm:"column:description"`
	ImageURL      *string          `gorm:"column:image_url"`
	Price         *decimal.Decimal `gorm:"column:price;type:numeric(10,2)"`
	IsAvailable   bool             `gorm:"column:is_available;not null;default:true"`
	CreatedAt     time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
