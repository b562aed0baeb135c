package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ovenmade/bakehouse-backend/pkg/db/models"
	"github.com/ovenmade/bakehouse-backend/pkg/enums"
)

// OrderDTO is the transport shape for a placed order.
type OrderDTO struct {
	ID              uuid.UUID         `json:"id"`
	UserID          uuid.UUID         `json:"user_id"`
	Status          enums.OrderStatus `json:"status"`
	Total           decimal.Decimal   `json:"total"`
	DeliveryAddress *string           `json:"delivery_address,omitempty"`
	Note            *string           `json:"note,omitempty"`
	Items           []OrderItemDTO    `json:"items"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// OrderItemDTO is one snapshotted order line.
type OrderItemDTO struct {
	ID          uuid.UUID        `json:"id"`
	ProductID   uuid.UUID        `json:"product_id"`
	ProductName string           `json:"product_name"`
	Kilo        *decimal.Decimal `json:"kilo,omitempty"`
	Pieces      *int             `json:"pieces,omitempty"`
	Quantity    int              `json:"quantity"`
	UnitPrice   decimal.Decimal  `json:"unit_price"`
	LineTotal   decimal.Decimal  `json:"line_total"`
	CustomText  *string          `json:"custom_text,omitempty"`
}

// PlaceOrderInput carries the optional delivery details for placement.
type PlaceOrderInput struct {
	DeliveryAddress *string
	Note            *string
}

func FromModel(o *models.Order) *OrderDTO {
	if o == nil {
		return nil
	}
	dto := &OrderDTO{
		ID:              o.ID,
		UserID:          o.UserID,
		Status:          o.Status,
		Total:           o.Total,
		DeliveryAddress: o.DeliveryAddress,
		Note:            o.Note,
		Items:           make([]OrderItemDTO, 0, len(o.Items)),
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
	for _, item := range o.Items {
		dto.Items = append(dto.Items, OrderItemDTO{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Kilo:        item.Kilo,
			Pieces:      item.Pieces,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			LineTotal:   item.LineTotal,
			CustomText:  item.CustomText,
		})
	}
	return dto
}

func fromModels(rows []models.Order) []OrderDTO {
	out := make([]OrderDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
