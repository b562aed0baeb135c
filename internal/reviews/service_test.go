package reviews

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ovenmade/bakehouse-backend/pkg/db/models"
	pkgerrors "github.com/ovenmade/bakehouse-backend/pkg/errors"
)

type stubReviewRepo struct {
	byID  map[uuid.UUID]*models.Review
	names map[uuid.UUID]string
}

func newStubReviewRepo() *stubReviewRepo {
	return &stubReviewRepo{
		byID:  map[uuid.UUID]*models.Review{},
		names: map[uuid.UUID]string{},
	}
}

func (s *stubReviewRepo) Create(ctx context.Context, review *models.Review) (*models.Review, error) {
	for _, existing := range s.byID {
		if existing.UserID == review.UserID && existing.ProductID == review.ProductID {
			return nil, errors.New(`duplicate key value violates unique constraint "idx_reviews_user_product"`)
		}
	}
	review.ID = uuid.New()
	s.byID[review.ID] = review
	return review, nil
}

func (s *stubReviewRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	if review, ok := s.byID[id]; ok {
		copy := *review
		return &copy, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubReviewRepo) ListByProduct(ctx context.Context, productID uuid.UUID) ([]ReviewRow, error) {
	var rows []ReviewRow
	for _, review := range s.byID {
		if review.ProductID != productID {
			continue
		}
		rows = append(rows, ReviewRow{Review: *review, ReviewerName: s.names[review.UserID]})
	}
	return rows, nil
}

func (s *stubReviewRepo) Update(ctx context.Context, review *models.Review) (*models.Review, error) {
	if _, ok := s.byID[review.ID]; !ok {
		return nil, gorm.ErrRecordNotFound
	}
	s.byID[review.ID] = review
	return review, nil
}

func (s *stubReviewRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := s.byID[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.byID, id)
	return nil
}

type stubProductLoader struct {
	ids map[uuid.UUID]bool
}

func (s stubProductLoader) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if s.ids[id] {
		return &models.Product{ID: id}, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type reviewFixture struct {
	service   Service
	repo      *stubReviewRepo
	userID    uuid.UUID
	productID uuid.UUID
}

func newReviewFixture(t *testing.T) *reviewFixture {
	t.Helper()
	repo := newStubReviewRepo()
	userID := uuid.New()
	productID := uuid.New()
	repo.names[userID] = "Maja Novak"

	svc, err := NewService(ServiceParams{
		Repo:     repo,
		Products: stubProductLoader{ids: map[uuid.UUID]bool{productID: true}},
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return &reviewFixture{service: svc, repo: repo, userID: userID, productID: productID}
}

func assertReviewError(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected typed error, got %v", err)
	}
	if typed.Code() != code {
		t.Fatalf("expected code %s, got %s (%s)", code, typed.Code(), typed.Message())
	}
}

func TestCreateReviewOncePerUserAndProduct(t *testing.T) {
	fx := newReviewFixture(t)
	ctx := context.Background()

	comment := "Best sourdough in town"
	created, err := fx.service.CreateReview(ctx, fx.userID, CreateReviewInput{
		ProductID: fx.productID,
		Rating:    5,
		Comment:   &comment,
	})
	if err != nil {
		t.Fatalf("create review: %v", err)
	}
	if created.Rating != 5 {
		t.Fatalf("expected rating 5, got %d", created.Rating)
	}

	_, err = fx.service.CreateReview(ctx, fx.userID, CreateReviewInput{
		ProductID: fx.productID,
		Rating:    3,
	})
	assertReviewError(t, err, pkgerrors.CodeConflict)
}

func TestCreateReviewValidatesRatingRange(t *testing.T) {
	fx := newReviewFixture(t)

	for _, rating := range []int{0, 6, -1} {
		_, err := fx.service.CreateReview(context.Background(), fx.userID, CreateReviewInput{
			ProductID: fx.productID,
			Rating:    rating,
		})
		assertReviewError(t, err, pkgerrors.CodeValidation)
	}
}

func TestCreateReviewUnknownProduct(t *testing.T) {
	fx := newReviewFixture(t)

	_, err := fx.service.CreateReview(context.Background(), fx.userID, CreateReviewInput{
		ProductID: uuid.New(),
		Rating:    4,
	})
	assertReviewError(t, err, pkgerrors.CodeNotFound)
}

func TestListByProductCarriesReviewerName(t *testing.T) {
	fx := newReviewFixture(t)
	ctx := context.Background()

	if _, err := fx.service.CreateReview(ctx, fx.userID, CreateReviewInput{
		ProductID: fx.productID,
		Rating:    4,
	}); err != nil {
		t.Fatalf("create review: %v", err)
	}

	listed, err := fx.service.ListByProduct(ctx, fx.productID)
	if err != nil {
		t.Fatalf("list reviews: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("expected 1 review, got %d", len(listed))
	}
	if listed[0].ReviewerName != "Maja Novak" {
		t.Fatalf("expected reviewer name, got %q", listed[0].ReviewerName)
	}
}

func TestUpdateReviewEnforcesOwnership(t *testing.T) {
	fx := newReviewFixture(t)
	ctx := context.Background()

	created, err := fx.service.CreateReview(ctx, fx.userID, CreateReviewInput{
		ProductID: fx.productID,
		Rating:    4,
	})
	if err != nil {
		t.Fatalf("create review: %v", err)
	}

	_, err = fx.service.UpdateReview(ctx, created.ID, uuid.New(), UpdateReviewInput{Rating: intPtr(2)})
	assertReviewError(t, err, pkgerrors.CodeForbidden)

	updated, err := fx.service.UpdateReview(ctx, created.ID, fx.userID, UpdateReviewInput{Rating: intPtr(2)})
	if err != nil {
		t.Fatalf("update review: %v", err)
	}
	if updated.Rating != 2 {
		t.Fatalf("expected rating 2, got %d", updated.Rating)
	}
}

func TestDeleteReviewOwnerOrAdmin(t *testing.T) {
	fx := newReviewFixture(t)
	ctx := context.Background()

	created, err := fx.service.CreateReview(ctx, fx.userID, CreateReviewInput{
		ProductID: fx.productID,
		Rating:    4,
	})
	if err != nil {
		t.Fatalf("create review: %v", err)
	}

	err = fx.service.DeleteReview(ctx, created.ID, uuid.New(), false)
	assertReviewError(t, err, pkgerrors.CodeForbidden)

	if err := fx.service.DeleteReview(ctx, created.ID, uuid.New(), true); err != nil {
		t.Fatalf("admin delete: %v", err)
	}

	err = fx.service.DeleteReview(ctx, created.ID, fx.userID, false)
	assertReviewError(t, err, pkgerrors.CodeNotFound)
}

func intPtr(v int) *int { return &v }
