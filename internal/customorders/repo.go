package customorders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ovenmade/bakehouse-backend/pkg/db/models"
	"github.com/ovenmade/bakehouse-backend/pkg/enums"
)

// Repository exposes custom-order persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a custom-orders repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new custom order request.
func (r *Repository) Create(ctx context.Context, order *models.CustomOrder) (*models.CustomOrder, error) {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

// FindByID loads a custom order by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.CustomOrder, error) {
	var order models.CustomOrder
	if err := r.db.WithContext(ctx).First(&order, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// ListByUser returns the user's requests, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.CustomOrder, error) {
	var rows []models.CustomOrder
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListAll returns every request, optionally filtered by status, newest first.
func (r *Repository) ListAll(ctx context.Context, status *enums.CustomOrderStatus) ([]models.CustomOrder, error) {
	query := r.db.WithContext(ctx).Model(&models.CustomOrder{})
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var rows []models.CustomOrder
	if err := query.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Update persists the full custom order row.
func (r *Repository) Update(ctx context.Context, order *models.CustomOrder) (*models.CustomOrder, error) {
	if err := r.db.WithContext(ctx).Save(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}
