package subcategories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ovenmade/bakehouse-backend/pkg/db/models"
	pkgerrors "github.com/ovenmade/bakehouse-backend/pkg/errors"
	"github.com/ovenmade/bakehouse-backend/pkg/types"
)

type stubSubcategoryRepo struct {
	byID          map[uuid.UUID]*models.Subcategory
	productCounts map[uuid.UUID]int64
}

func newStubSubcategoryRepo() *stubSubcategoryRepo {
	return &stubSubcategoryRepo{
		byID:          map[uuid.UUID]*models.Subcategory{},
		productCounts: map[uuid.UUID]int64{},
	}
}

func (s *stubSubcategoryRepo) Create(ctx context.Context, sub *models.Subcategory) (*models.Subcategory, error) {
	sub.ID = uuid.New()
	s.byID[sub.ID] = sub
	return sub, nil
}

func (s *stubSubcategoryRepo) Update(ctx context.Context, sub *models.Subcategory) (*models.Subcategory, error) {
	s.byID[sub.ID] = sub
	return sub, nil
}

func (s *stubSubcategoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Subcategory, error) {
	if sub, ok := s.byID[id]; ok {
		return sub, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubSubcategoryRepo) FindByCategoryAndName(ctx context.Context, categoryID uuid.UUID, name string) (*models.Subcategory, error) {
	for _, sub := range s.byID {
		if sub.CategoryID == categoryID && sub.Name == name {
			return sub, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubSubcategoryRepo) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.Subcategory, error) {
	var rows []models.Subcategory
	for _, sub := range s.byID {
		if sub.CategoryID == categoryID {
			rows = append(rows, *sub)
		}
	}
	return rows, nil
}

func (s *stubSubcategoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(s.byID, id)
	return nil
}

func (s *stubSubcategoryRepo) CountProducts(ctx context.Context, subcategoryID uuid.UUID) (int64, error) {
	return s.productCounts[subcategoryID], nil
}

type stubCategoryLoader struct {
	ids map[uuid.UUID]bool
}

func (s stubCategoryLoader) FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	if s.ids[id] {
		return &models.Category{ID: id, Name: "Breads"}, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func newSubcategoryTestService(t *testing.T) (Service, *stubSubcategoryRepo, uuid.UUID) {
	t.Helper()
	repo := newStubSubcategoryRepo()
	categoryID := uuid.New()
	svc, err := NewService(repo, stubCategoryLoader{ids: map[uuid.UUID]bool{categoryID: true}})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, repo, categoryID
}

func TestCreateSubcategoryRequiresCategory(t *testing.T) {
	svc, _, _ := newSubcategoryTestService(t)

	_, err := svc.CreateSubcategory(context.Background(), uuid.New(), CreateSubcategoryInput{Name: "Baguettes"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCreateSubcategoryUniqueWithinCategory(t *testing.T) {
	svc, _, categoryID := newSubcategoryTestService(t)
	ctx := context.Background()

	if _, err := svc.CreateSubcategory(ctx, categoryID, CreateSubcategoryInput{Name: "Baguettes"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err := svc.CreateSubcategory(ctx, categoryID, CreateSubcategoryInput{Name: "Baguettes"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestUpdateSubcategoryPricingFields(t *testing.T) {
	svc, _, categoryID := newSubcategoryTestService(t)
	ctx := context.Background()

	created, err := svc.CreateSubcategory(ctx, categoryID, CreateSubcategoryInput{Name: "Rye"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	kiloMap := types.KiloPriceMap{"1kg": decimal.NewFromInt(450)}
	pieceable := false
	updated, err := svc.UpdateSubcategory(ctx, created.ID, UpdateSubcategoryInput{
		KiloToPriceMap: &kiloMap,
		IsPieceable:    &pieceable,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(updated.KiloToPriceMap) != 1 {
		t.Fatalf("expected kilo map to be stored, got %v", updated.KiloToPriceMap)
	}
	if updated.IsPieceable == nil || *updated.IsPieceable {
		t.Fatalf("expected explicit non-pieceable flag")
	}
}

func TestDeleteSubcategoryBlockedByProducts(t *testing.T) {
	svc, repo, categoryID := newSubcategoryTestService(t)
	ctx := context.Background()

	created, err := svc.CreateSubcategory(ctx, categoryID, CreateSubcategoryInput{Name: "Croissants"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	repo.productCounts[created.ID] = 3

	err = svc.DeleteSubcategory(ctx, created.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}
