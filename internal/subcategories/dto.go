package subcategories

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ovenmade/bakehouse-backend/pkg/db/models"
	"github.com/ovenmade/bakehouse-backend/pkg/types"
)

// SubcategoryDTO is the transport shape for a subcategory, including its
// pricing configuration.
type SubcategoryDTO struct {
	ID             uuid.UUID          `json:"id"`
	CategoryID     uuid.UUID          `json:"category_id"`
	Name           string             `json:"name"`
	Description    *string            `json:"description,omitempty"`
	KiloToPriceMap types.KiloPriceMap `json:"kilo_to_price_map,omitempty"`
	IsPieceable    *bool              `json:"is_pieceable,omitempty"`
	PiecePrice     *decimal.Decimal   `json:"piece_price,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

// CreateSubcategoryInput holds the validated payload to create a subcategory.
type CreateSubcategoryInput struct {
	Name           string
	Description    *string
	KiloToPriceMap types.KiloPriceMap
	IsPieceable    *bool
	PiecePrice     *decimal.Decimal
}

// UpdateSubcategoryInput holds optional mutation values for a subcategory.
type UpdateSubcategoryInput struct {
	Name           *string
	Description    *string
	KiloToPriceMap *types.KiloPriceMap
	IsPieceable    *bool
	PiecePrice     *decimal.Decimal
}

func FromModel(s *models.Subcategory) *SubcategoryDTO {
	if s == nil {
		return nil
	}
	return &SubcategoryDTO{
		ID:             s.ID,
		CategoryID:     s.CategoryID,
		Name:           s.Name,
		Description:    s.Description,
		KiloToPriceMap: s.KiloToPriceMap,
		IsPieceable:    s.IsPieceable,
		PiecePrice:     s.PiecePrice,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

func fromModels(rows []models.Subcategory) []SubcategoryDTO {
	out := make([]SubcategoryDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
