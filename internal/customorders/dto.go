package customorders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ovenmade/bakehouse-backend/pkg/db/models"
	"github.com/ovenmade/bakehouse-backend/pkg/enums"
)

// CustomOrderDTO is the transport shape for a bespoke order request.
type CustomOrderDTO struct {
	ID            uuid.UUID               `json:"id"`
	UserID        uuid.UUID               `json:"user_id"`
	Title         string                  `json:"title"`
	Description   string                  `json:"description"`
	Occasion      *string                 `json:"occasion,omitempty"`
	RequestedDate *time.Time              `json:"requested_date,omitempty"`
	Status        enums.CustomOrderStatus `json:"status"`
	QuotedPrice   *decimal.Decimal        `json:"quoted_price,omitempty"`
	AdminNote     *string                 `json:"admin_note,omitempty"`
	CreatedAt     time.Time               `json:"created_at"`
	UpdatedAt     time.Time               `json:"updated_at"`
}

// CreateCustomOrderInput carries the customer-submitted request fields.
type CreateCustomOrderInput struct {
	Title         string
	Description   string
	Occasion      *string
	RequestedDate *time.Time
}

// QuoteInput carries the staff-side quote for a request.
type QuoteInput struct {
	Price     decimal.Decimal
	AdminNote *string
}

func FromModel(m *models.CustomOrder) *CustomOrderDTO {
	if m == nil {
		return nil
	}

	return &CustomOrderDTO{
		ID:            m.ID,
		UserID:        m.UserID,
		Title:         m.Title,
		Description:   m.Description,
		Occasion:      m.Occasion,
		RequestedDate: m.RequestedDate,
		Status:        m.Status,
		QuotedPrice:   m.QuotedPrice,
		AdminNote:     m.AdminNote,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func fromModels(rows []models.CustomOrder) []CustomOrderDTO {
	dtos := make([]CustomOrderDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromModel(&rows[i]))
	}
	return dtos
}
