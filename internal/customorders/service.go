package customorders

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ovenmade/bakehouse-backend/pkg/db/models"
	"github.com/ovenmade/bakehouse-backend/pkg/enums"
	pkgerrors "github.com/ovenmade/bakehouse-backend/pkg/errors"
)

// customOrderRepository is the persistence surface the service depends on.
type customOrderRepository interface {
	Create(ctx context.Context, order *models.CustomOrder) (*models.CustomOrder, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.CustomOrder, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.CustomOrder, error)
	ListAll(ctx context.Context, status *enums.CustomOrderStatus) ([]models.CustomOrder, error)
	Update(ctx context.Context, order *models.CustomOrder) (*models.CustomOrder, error)
}

type userLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// Service manages bespoke order requests through their quote lifecycle.
type Service interface {
	CreateRequest(ctx context.Context, userID uuid.UUID, input CreateCustomOrderInput) (*CustomOrderDTO, error)
	ListRequests(ctx context.Context, userID uuid.UUID) ([]CustomOrderDTO, error)
	GetRequest(ctx context.Context, id, userID uuid.UUID, isAdmin bool) (*CustomOrderDTO, error)
	ListAllRequests(ctx context.Context, status *enums.CustomOrderStatus) ([]CustomOrderDTO, error)
	Quote(ctx context.Context, id uuid.UUID, input QuoteInput) (*CustomOrderDTO, error)
	Accept(ctx context.Context, id, userID uuid.UUID) (*CustomOrderDTO, error)
	Decline(ctx context.Context, id, userID uuid.UUID) (*CustomOrderDTO, error)
	Complete(ctx context.Context, id uuid.UUID) (*CustomOrderDTO, error)
}

type service struct {
	repo  customOrderRepository
	users userLoader
}

// ServiceParams bundles the collaborators required to build a custom-orders service.
type ServiceParams struct {
	Repo  customOrderRepository
	Users userLoader
}

// NewService validates dependencies and returns a custom-orders service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "custom orders service requires a repository")
	}
	if params.Users == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "custom orders service requires a user loader")
	}
	return &service{repo: params.Repo, users: params.Users}, nil
}

func (s *service) CreateRequest(ctx context.Context, userID uuid.UUID, input CreateCustomOrderInput) (*CustomOrderDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "description is required")
	}

	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to load user")
	}

	order := &models.CustomOrder{
		UserID:        userID,
		Title:         strings.TrimSpace(input.Title),
		Description:   strings.TrimSpace(input.Description),
		Occasion:      input.Occasion,
		RequestedDate: input.RequestedDate,
		Status:        enums.CustomOrderStatusRequested,
	}

	created, err := s.repo.Create(ctx, order)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to create custom order")
	}
	return FromModel(created), nil
}

func (s *service) ListRequests(ctx context.Context, userID uuid.UUID) ([]CustomOrderDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to list custom orders")
	}
	return fromModels(rows), nil
}

func (s *service) GetRequest(ctx context.Context, id, userID uuid.UUID, isAdmin bool) (*CustomOrderDTO, error) {
	order, err := s.loadRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && order.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "custom order belongs to another user")
	}
	return FromModel(order), nil
}

func (s *service) ListAllRequests(ctx context.Context, status *enums.CustomOrderStatus) ([]CustomOrderDTO, error) {
	if status != nil && !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid custom order status")
	}

	rows, err := s.repo.ListAll(ctx, status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to list custom orders")
	}
	return fromModels(rows), nil
}

func (s *service) Quote(ctx context.Context, id uuid.UUID, input QuoteInput) (*CustomOrderDTO, error) {
	if input.Price.LessThanOrEqual(decimal.Zero) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quoted price must be greater than zero")
	}

	order, err := s.loadRequest(ctx, id)
	if err != nil {
		return nil, err
	}

	// A request may be re-quoted until the customer responds.
	if order.Status != enums.CustomOrderStatusRequested && order.Status != enums.CustomOrderStatusQuoted {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "only requested orders can be quoted")
	}

	price := input.Price
	order.Status = enums.CustomOrderStatusQuoted
	order.QuotedPrice = &price
	order.AdminNote = input.AdminNote

	return s.persist(ctx, order)
}

func (s *service) Accept(ctx context.Context, id, userID uuid.UUID) (*CustomOrderDTO, error) {
	return s.respond(ctx, id, userID, enums.CustomOrderStatusAccepted)
}

func (s *service) Decline(ctx context.Context, id, userID uuid.UUID) (*CustomOrderDTO, error) {
	return s.respond(ctx, id, userID, enums.CustomOrderStatusDeclined)
}

func (s *service) Complete(ctx context.Context, id uuid.UUID) (*CustomOrderDTO, error) {
	order, err := s.loadRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status != enums.CustomOrderStatusAccepted {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "only accepted orders can be completed")
	}

	order.Status = enums.CustomOrderStatusCompleted
	return s.persist(ctx, order)
}

// respond applies the customer's answer to a pending quote.
func (s *service) respond(ctx context.Context, id, userID uuid.UUID, status enums.CustomOrderStatus) (*CustomOrderDTO, error) {
	order, err := s.loadRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "custom order belongs to another user")
	}
	if order.Status != enums.CustomOrderStatusQuoted {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "only quoted orders can be answered")
	}

	order.Status = status
	return s.persist(ctx, order)
}

func (s *service) loadRequest(ctx context.Context, id uuid.UUID) (*models.CustomOrder, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "custom order id is required")
	}

	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "custom order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to load custom order")
	}
	return order, nil
}

func (s *service) persist(ctx context.Context, order *models.CustomOrder) (*CustomOrderDTO, error) {
	updated, err := s.repo.Update(ctx, order)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to update custom order")
	}
	return FromModel(updated), nil
}
