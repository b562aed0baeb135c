package subcategories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ovenmade/bakehouse-backend/pkg/db/models"
	pkgerrors "github.com/ovenmade/bakehouse-backend/pkg/errors"
)

type subcategoryRepository interface {
	Create(ctx context.Context, sub *models.Subcategory) (*models.Subcategory, error)
	Update(ctx context.Context, sub *models.Subcategory) (*models.Subcategory, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Subcategory, error)
	FindByCategoryAndName(ctx context.Context, categoryID uuid.UUID, name string) (*models.Subcategory, error)
	ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.Subcategory, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountProducts(ctx context.Context, subcategoryID uuid.UUID) (int64, error)
}

type categoryLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
}

// Service exposes subcategory management operations.
type Service interface {
	CreateSubcategory(ctx context.Context, categoryID uuid.UUID, input CreateSubcategoryInput) (*SubcategoryDTO, error)
	UpdateSubcategory(ctx context.Context, id uuid.UUID, input UpdateSubcategoryInput) (*SubcategoryDTO, error)
	DeleteSubcategory(ctx context.Context, id uuid.UUID) error
	GetSubcategory(ctx context.Context, id uuid.UUID) (*SubcategoryDTO, error)
	ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]SubcategoryDTO, error)
}

type service struct {
	repo       subcategoryRepository
	categories categoryLoader
}

// NewService constructs a subcategory service instance.
func NewService(repo subcategoryRepository, categories categoryLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("subcategory repository required")
	}
	if categories == nil {
		return nil, fmt.Errorf("category loader required")
	}
	return &service{repo: repo, categories: categories}, nil
}

func (s *service) CreateSubcategory(ctx context.Context, categoryID uuid.UUID, input CreateSubcategoryInput) (*SubcategoryDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "subcategory name is required")
	}

	if err := s.ensureCategory(ctx, categoryID); err != nil {
		return nil, err
	}
	if err := s.ensureNameAvailable(ctx, categoryID, name, uuid.Nil); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &models.Subcategory{
		CategoryID:     categoryID,
		Name:           name,
		Description:    input.Description,
		KiloToPriceMap: input.KiloToPriceMap,
		IsPieceable:    input.IsPieceable,
		PiecePrice:     input.PiecePrice,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create subcategory")
	}
	return FromModel(created), nil
}

func (s *service) UpdateSubcategory(ctx context.Context, id uuid.UUID, input UpdateSubcategoryInput) (*SubcategoryDTO, error) {
	sub, err := s.loadSubcategory(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "subcategory name is required")
		}
		if name != sub.Name {
			if err := s.ensureNameAvailable(ctx, sub.CategoryID, name, id); err != nil {
				return nil, err
			}
		}
		sub.Name = name
	}
	if input.Description != nil {
		sub.Description = input.Description
	}
	if input.KiloToPriceMap != nil {
		sub.KiloToPriceMap = *input.KiloToPriceMap
	}
	if input.IsPieceable != nil {
		sub.IsPieceable = input.IsPieceable
	}
	if input.PiecePrice != nil {
		sub.PiecePrice = input.PiecePrice
	}

	updated, err := s.repo.Update(ctx, sub)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update subcategory")
	}
	return FromModel(updated), nil
}

func (s *service) DeleteSubcategory(ctx context.Context, id uuid.UUID) error {
	if _, err := s.loadSubcategory(ctx, id); err != nil {
		return err
	}

	count, err := s.repo.CountProducts(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count products")
	}
	if count > 0 {
		return pkgerrors.New(pkgerrors.CodeConflict, "subcategory still has products")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete subcategory")
	}
	return nil
}

func (s *service) GetSubcategory(ctx context.Context, id uuid.UUID) (*SubcategoryDTO, error) {
	sub, err := s.loadSubcategory(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(sub), nil
}

func (s *service) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]SubcategoryDTO, error) {
	if err := s.ensureCategory(ctx, categoryID); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list subcategories")
	}
	return fromModels(rows), nil
}

func (s *service) ensureCategory(ctx context.Context, categoryID uuid.UUID) error {
	if _, err := s.categories.FindByID(ctx, categoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
	}
	return nil
}

func (s *service) loadSubcategory(ctx context.Context, id uuid.UUID) (*models.Subcategory, error) {
	sub, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "subcategory not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load subcategory")
	}
	return sub, nil
}

func (s *service) ensureNameAvailable(ctx context.Context, categoryID uuid.UUID, name string, selfID uuid.UUID) error {
	existing, err := s.repo.FindByCategoryAndName(ctx, categoryID, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check subcategory name")
	}
	if existing.ID != selfID {
		return pkgerrors.New(pkgerrors.CodeConflict, "subcategory name already exists in category")
	}
	return nil
}
