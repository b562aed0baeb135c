package subcategories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ovenmade/bakehouse-backend/pkg/db/models"
)

// Repository exposes persistence operations for subcategories.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a subcategory repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new subcategory.
func (r *Repository) Create(ctx context.Context, sub *models.Subcategory) (*models.Subcategory, error) {
	if err := r.db.WithContext(ctx).Create(sub).Error; err != nil {
		return nil, err
	}
	return sub, nil
}

// Update saves the provided subcategory.
func (r *Repository) Update(ctx context.Context, sub *models.Subcategory) (*models.Subcategory, error) {
	if err := r.db.WithContext(ctx).Save(sub).Error; err != nil {
		return nil, err
	}
	return sub, nil
}

// FindByID loads a subcategory by its identifier.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Subcategory, error) {
	var sub models.Subcategory
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

// FindByCategoryAndName loads a subcategory by its name within a category.
func (r *Repository) FindByCategoryAndName(ctx context.Context, categoryID uuid.UUID, name string) (*models.Subcategory, error) {
	var sub models.Subcategory
	err := r.db.WithContext(ctx).
		Where("category_id = ? AND name = ?", categoryID, name).
		First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// ListByCategory returns the category's subcategories ordered by name.
func (r *Repository) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.Subcategory, error) {
	var rows []models.Subcategory
	err := r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Delete removes a subcategory.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Subcategory{}).Error
}

// CountProducts reports how many products reference the subcategory.
func (r *Repository) CountProducts(ctx context.Context, subcategoryID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("subcategory_id = ?", subcategoryID).
		Count(&count).Error
	return count, err
}
