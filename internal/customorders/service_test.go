package customorders

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ovenmade/bakehouse-backend/pkg/db/models"
	"github.com/ovenmade/bakehouse-backend/pkg/enums"
	pkgerrors "github.com/ovenmade/bakehouse-backend/pkg/errors"
)

type stubCustomOrderRepo struct {
	byID map[uuid.UUID]*models.CustomOrder
}

func newStubCustomOrderRepo() *stubCustomOrderRepo {
	return &stubCustomOrderRepo{byID: map[uuid.UUID]*models.CustomOrder{}}
}

func (s *stubCustomOrderRepo) Create(ctx context.Context, order *models.CustomOrder) (*models.CustomOrder, error) {
	order.ID = uuid.New()
	if order.Status == "" {
		order.Status = enums.CustomOrderStatusRequested
	}
	s.byID[order.ID] = order
	return order, nil
}

func (s *stubCustomOrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.CustomOrder, error) {
	if order, ok := s.byID[id]; ok {
		copy := *order
		return &copy, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubCustomOrderRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.CustomOrder, error) {
	var rows []models.CustomOrder
	for _, order := range s.byID {
		if order.UserID == userID {
			rows = append(rows, *order)
		}
	}
	return rows, nil
}

func (s *stubCustomOrderRepo) ListAll(ctx context.Context, status *enums.CustomOrderStatus) ([]models.CustomOrder, error) {
	var rows []models.CustomOrder
	for _, order := range s.byID {
		if status != nil && order.Status != *status {
			continue
		}
		rows = append(rows, *order)
	}
	return rows, nil
}

func (s *stubCustomOrderRepo) Update(ctx context.Context, order *models.CustomOrder) (*models.CustomOrder, error) {
	if _, ok := s.byID[order.ID]; !ok {
		return nil, gorm.ErrRecordNotFound
	}
	s.byID[order.ID] = order
	return order, nil
}

type stubUserLoader struct {
	ids map[uuid.UUID]bool
}

func (s stubUserLoader) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if s.ids[id] {
		return &models.User{ID: id}, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type customOrderFixture struct {
	service Service
	repo    *stubCustomOrderRepo
	userID  uuid.UUID
}

func newCustomOrderFixture(t *testing.T) *customOrderFixture {
	t.Helper()
	repo := newStubCustomOrderRepo()
	userID := uuid.New()

	svc, err := NewService(ServiceParams{
		Repo:  repo,
		Users: stubUserLoader{ids: map[uuid.UUID]bool{userID: true}},
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return &customOrderFixture{service: svc, repo: repo, userID: userID}
}

func (fx *customOrderFixture) createRequest(t *testing.T) *CustomOrderDTO {
	t.Helper()
	dto, err := fx.service.CreateRequest(context.Background(), fx.userID, CreateCustomOrderInput{
		Title:       "Three-tier wedding cake",
		Description: "Lemon sponge, buttercream, serves 80",
	})
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	return dto
}

func assertCustomOrderError(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected typed error, got %v", err)
	}
	if typed.Code() != code {
		t.Fatalf("expected code %s, got %s (%s)", code, typed.Code(), typed.Message())
	}
}

func TestCreateRequestStartsAsRequested(t *testing.T) {
	fx := newCustomOrderFixture(t)
	dto := fx.createRequest(t)

	if dto.Status != enums.CustomOrderStatusRequested {
		t.Fatalf("expected requested status, got %s", dto.Status)
	}
	if dto.QuotedPrice != nil {
		t.Fatalf("expected no quoted price on creation")
	}
}

func TestCreateRequestRequiresTitleAndDescription(t *testing.T) {
	fx := newCustomOrderFixture(t)

	_, err := fx.service.CreateRequest(context.Background(), fx.userID, CreateCustomOrderInput{Description: "x"})
	assertCustomOrderError(t, err, pkgerrors.CodeValidation)

	_, err = fx.service.CreateRequest(context.Background(), fx.userID, CreateCustomOrderInput{Title: "x"})
	assertCustomOrderError(t, err, pkgerrors.CodeValidation)
}

func TestQuoteMovesRequestToQuoted(t *testing.T) {
	fx := newCustomOrderFixture(t)
	dto := fx.createRequest(t)

	note := "Includes delivery within the city"
	quoted, err := fx.service.Quote(context.Background(), dto.ID, QuoteInput{
		Price:     decimal.NewFromInt(4500),
		AdminNote: &note,
	})
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if quoted.Status != enums.CustomOrderStatusQuoted {
		t.Fatalf("expected quoted status, got %s", quoted.Status)
	}
	if quoted.QuotedPrice == nil || !quoted.QuotedPrice.Equal(decimal.NewFromInt(4500)) {
		t.Fatalf("expected quoted price 4500, got %v", quoted.QuotedPrice)
	}
}

func TestQuoteRejectsNonPositivePrice(t *testing.T) {
	fx := newCustomOrderFixture(t)
	dto := fx.createRequest(t)

	_, err := fx.service.Quote(context.Background(), dto.ID, QuoteInput{Price: decimal.Zero})
	assertCustomOrderError(t, err, pkgerrors.CodeValidation)
}

func TestAcceptRequiresQuotedStatusAndOwnership(t *testing.T) {
	fx := newCustomOrderFixture(t)
	ctx := context.Background()
	dto := fx.createRequest(t)

	_, err := fx.service.Accept(ctx, dto.ID, fx.userID)
	assertCustomOrderError(t, err, pkgerrors.CodeStateConflict)

	if _, err := fx.service.Quote(ctx, dto.ID, QuoteInput{Price: decimal.NewFromInt(100)}); err != nil {
		t.Fatalf("quote: %v", err)
	}

	_, err = fx.service.Accept(ctx, dto.ID, uuid.New())
	assertCustomOrderError(t, err, pkgerrors.CodeForbidden)

	accepted, err := fx.service.Accept(ctx, dto.ID, fx.userID)
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if accepted.Status != enums.CustomOrderStatusAccepted {
		t.Fatalf("expected accepted status, got %s", accepted.Status)
	}
}

func TestDeclineQuotedRequest(t *testing.T) {
	fx := newCustomOrderFixture(t)
	ctx := context.Background()
	dto := fx.createRequest(t)

	if _, err := fx.service.Quote(ctx, dto.ID, QuoteInput{Price: decimal.NewFromInt(100)}); err != nil {
		t.Fatalf("quote: %v", err)
	}
	declined, err := fx.service.Decline(ctx, dto.ID, fx.userID)
	if err != nil {
		t.Fatalf("decline: %v", err)
	}
	if declined.Status != enums.CustomOrderStatusDeclined {
		t.Fatalf("expected declined status, got %s", declined.Status)
	}

	// A decided request cannot be re-quoted.
	_, err = fx.service.Quote(ctx, dto.ID, QuoteInput{Price: decimal.NewFromInt(200)})
	assertCustomOrderError(t, err, pkgerrors.CodeStateConflict)
}

func TestCompleteRequiresAcceptedStatus(t *testing.T) {
	fx := newCustomOrderFixture(t)
	ctx := context.Background()
	dto := fx.createRequest(t)

	_, err := fx.service.Complete(ctx, dto.ID)
	assertCustomOrderError(t, err, pkgerrors.CodeStateConflict)

	if _, err := fx.service.Quote(ctx, dto.ID, QuoteInput{Price: decimal.NewFromInt(100)}); err != nil {
		t.Fatalf("quote: %v", err)
	}
	if _, err := fx.service.Accept(ctx, dto.ID, fx.userID); err != nil {
		t.Fatalf("accept: %v", err)
	}

	completed, err := fx.service.Complete(ctx, dto.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if completed.Status != enums.CustomOrderStatusCompleted {
		t.Fatalf("expected completed status, got %s", completed.Status)
	}
}

func TestGetRequestEnforcesOwnershipUnlessAdmin(t *testing.T) {
	fx := newCustomOrderFixture(t)
	ctx := context.Background()
	dto := fx.createRequest(t)

	_, err := fx.service.GetRequest(ctx, dto.ID, uuid.New(), false)
	assertCustomOrderError(t, err, pkgerrors.CodeForbidden)

	got, err := fx.service.GetRequest(ctx, dto.ID, uuid.New(), true)
	if err != nil {
		t.Fatalf("admin get: %v", err)
	}
	if got.ID != dto.ID {
		t.Fatalf("expected request %s, got %s", dto.ID, got.ID)
	}
}
