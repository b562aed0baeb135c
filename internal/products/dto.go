package products

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ovenmade/bakehouse-backend/pkg/db/models"
)

// ProductDTO is the transport shape for a catalog product.
type ProductDTO struct {
	ID            uuid.UUID        `json:"id"`
	SubcategoryID uuid.UUID        `json:"subcategory_id"`
	Name          string           `json:"name"`
	Description   *string          `json:"description,omitempty"`
	ImageURL      *string          `json:"image_url,omitempty"`
	Price         *decimal.Decimal `json:"price,omitempty"`
	IsAvailable   bool             `json:"is_available"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	Name        string
	Description *string
	ImageURL    *string
	Price       *decimal.Decimal
	IsAvailable *bool
}

// UpdateProductInput holds optional mutation values for a product.
type UpdateProductInput struct {
	Name        *string
	Description *string
	ImageURL    *string
	Price       *decimal.Decimal
	IsAvailable *bool
}

// ListProductsInput filters and paginates the product listing.
type ListProductsInput struct {
	SubcategoryID *uuid.UUID
	AvailableOnly bool
	Limit         int
	Cursor        string
}

// ProductListResult is one page of products plus the cursor for the next.
type ProductListResult struct {
	Products   []ProductDTO `json:"products"`
	NextCursor *string      `json:"next_cursor,omitempty"`
}

func FromModel(p *models.Product) *ProductDTO {
	if p == nil {
		return nil
	}
	return &ProductDTO{
		ID:            p.ID,
		SubcategoryID: p.SubcategoryID,
		Name:          p.Name,
		Description:   p.Description,
		ImageURL:      p.ImageURL,
		Price:         p.Price,
		IsAvailable:   p.IsAvailable,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
