package reviews

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbpkg "github.com/ovenmade/bakehouse-backend/pkg/db"
	"github.com/ovenmade/bakehouse-backend/pkg/db/models"
	pkgerrors "github.com/ovenmade/bakehouse-backend/pkg/errors"
)

// reviewRepository is the persistence surface the service depends on.
type reviewRepository interface {
	Create(ctx context.Context, review *models.Review) (*models.Review, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Review, error)
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]ReviewRow, error)
	Update(ctx context.Context, review *models.Review) (*models.Review, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type productLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// Service manages product reviews.
type Service interface {
	CreateReview(ctx context.Context, userID uuid.UUID, input CreateReviewInput) (*ReviewDTO, error)
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]ReviewDTO, error)
	UpdateReview(ctx context.Context, id, userID uuid.UUID, input UpdateReviewInput) (*ReviewDTO, error)
	DeleteReview(ctx context.Context, id, userID uuid.UUID, isAdmin bool) error
}

type service struct {
	repo     reviewRepository
	products productLoader
}

// ServiceParams bundles the collaborators required to build a reviews service.
type ServiceParams struct {
	Repo     reviewRepository
	Products productLoader
}

// NewService validates dependencies and returns a reviews service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "reviews service requires a repository")
	}
	if params.Products == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "reviews service requires a product loader")
	}
	return &service{repo: params.Repo, products: params.Products}, nil
}

func (s *service) CreateReview(ctx context.Context, userID uuid.UUID, input CreateReviewInput) (*ReviewDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if input.ProductID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if err := validateRating(input.Rating); err != nil {
		return nil, err
	}

	if _, err := s.products.FindByID(ctx, input.ProductID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to load product")
	}

	review := &models.Review{
		UserID:    userID,
		ProductID: input.ProductID,
		Rating:    input.Rating,
		Comment:   input.Comment,
	}

	created, err := s.repo.Create(ctx, review)
	if err != nil {
		if dbpkg.IsUniqueViolation(err, "idx_reviews_user_product") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "you have already reviewed this product")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to create review")
	}
	return FromModel(created), nil
}

func (s *service) ListByProduct(ctx context.Context, productID uuid.UUID) ([]ReviewDTO, error) {
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	rows, err := s.repo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to list reviews")
	}
	return fromRows(rows), nil
}

func (s *service) UpdateReview(ctx context.Context, id, userID uuid.UUID, input UpdateReviewInput) (*ReviewDTO, error) {
	review, err := s.loadReview(ctx, id)
	if err != nil {
		return nil, err
	}
	if review.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "review belongs to another user")
	}

	if input.Rating != nil {
		if err := validateRating(*input.Rating); err != nil {
			return nil, err
		}
		review.Rating = *input.Rating
	}
	if input.Comment != nil {
		review.Comment = input.Comment
	}

	updated, err := s.repo.Update(ctx, review)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to update review")
	}
	return FromModel(updated), nil
}

func (s *service) DeleteReview(ctx context.Context, id, userID uuid.UUID, isAdmin bool) error {
	review, err := s.loadReview(ctx, id)
	if err != nil {
		return err
	}
	if !isAdmin && review.UserID != userID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "review belongs to another user")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return pkgerrors.New(pkgerrors.CodeNotFound, "review not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to delete review")
	}
	return nil
}

func (s *service) loadReview(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "review id is required")
	}

	review, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "review not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to load review")
	}
	return review, nil
}

func validateRating(rating int) error {
	if rating < 1 || rating > 5 {
		return pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}
	return nil
}
