package reviews

import (
	"time"

	"github.com/google/uuid"

	"github.com/ovenmade/bakehouse-backend/pkg/db/models"
)

// ReviewDTO is the transport shape for a product review, carrying the
// reviewer's display name resolved at read time.
type ReviewDTO struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	ProductID    uuid.UUID `json:"product_id"`
	Rating       int       `json:"rating"`
	Comment      *string   `json:"comment,omitempty"`
	ReviewerName string    `json:"reviewer_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateReviewInput carries a new review submission.
type CreateReviewInput struct {
	ProductID uuid.UUID
	Rating    int
	Comment   *string
}

// UpdateReviewInput patches an existing review.
type UpdateReviewInput struct {
	Rating  *int
	Comment *string
}

// ReviewRow joins a review with its reviewer's name for listing.
type ReviewRow struct {
	models.Review
	ReviewerName string `gorm:"column:reviewer_name"`
}

func FromModel(m *models.Review) *ReviewDTO {
	if m == nil {
		return nil
	}

	return &ReviewDTO{
		ID:        m.ID,
		UserID:    m.UserID,
		ProductID: m.ProductID,
		Rating:    m.Rating,
		Comment:   m.Comment,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func fromRows(rows []ReviewRow) []ReviewDTO {
	dtos := make([]ReviewDTO, 0, len(rows))
	for i := range rows {
		dto := FromModel(&rows[i].Review)
		dto.ReviewerName = rows[i].ReviewerName
		dtos = append(dtos, *dto)
	}
	return dtos
}
