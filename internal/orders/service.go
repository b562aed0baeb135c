package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ovenmade/bakehouse-backend/internal/cart"
	"github.com/ovenmade/bakehouse-backend/pkg/db/models"
	"github.com/ovenmade/bakehouse-backend/pkg/enums"
	pkgerrors "github.com/ovenmade/bakehouse-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type cartStore interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error)
	DeleteAllForUser(ctx context.Context, userID uuid.UUID) error
}

type userLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type subcategoryLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Subcategory, error)
}

// Service exposes order placement and lifecycle operations.
type Service interface {
	PlaceOrder(ctx context.Context, userID uuid.UUID, input PlaceOrderInput) (*OrderDTO, error)
	ListOrders(ctx context.Context, userID uuid.UUID) ([]OrderDTO, error)
	GetOrder(ctx context.Context, orderID, userID uuid.UUID) (*OrderDTO, error)
	CancelOrder(ctx context.Context, orderID, userID uuid.UUID) (*OrderDTO, error)
	ListAllOrders(ctx context.Context) ([]OrderDTO, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus) (*OrderDTO, error)
}

type service struct {
	repo          Repository
	tx            txRunner
	users         userLoader
	subcategories subcategoryLoader
	cartFactory   func(tx *gorm.DB) cartStore
}

// ServiceParams bundles the collaborators required to build an order service.
type ServiceParams struct {
	Repo          Repository
	TxRunner      txRunner
	Users         userLoader
	Subcategories subcategoryLoader
	// CartFactory builds a cart store scoped to the placement transaction.
	// Defaults to the cart repository.
	CartFactory func(tx *gorm.DB) cartStore
}

// NewService constructs an order service instance.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if params.TxRunner == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if params.Users == nil {
		return nil, fmt.Errorf("user loader required")
	}
	if params.Subcategories == nil {
		return nil, fmt.Errorf("subcategory loader required")
	}
	factory := params.CartFactory
	if factory == nil {
		factory = func(tx *gorm.DB) cartStore {
			return cart.NewRepository(tx)
		}
	}
	return &service{
		repo:          params.Repo,
		tx:            params.TxRunner,
		users:         params.Users,
		subcategories: params.Subcategories,
		cartFactory:   factory,
	}, nil
}

// PlaceOrder converts the user's cart into an order: each line's unit price is
// resolved from its pricing mode, lines are snapshotted, the decimal total is
// summed, and the cart is cleared — all in one transaction.
func (s *service) PlaceOrder(ctx context.Context, userID uuid.UUID, input PlaceOrderInput) (*OrderDTO, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}

	var placed *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		carts := s.cartFactory(tx)
		items, err := carts.ListByUser(ctx, userID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
		}
		if len(items) == 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
		}

		order := &models.Order{
			UserID:          userID,
			Status:          enums.OrderStatusPending,
			DeliveryAddress: input.DeliveryAddress,
			Note:            input.Note,
		}

		total := decimal.Zero
		for i := range items {
			line, err := s.snapshotLine(ctx, &items[i])
			if err != nil {
				return err
			}
			order.Items = append(order.Items, *line)
			total = total.Add(line.LineTotal)
		}
		order.Total = total

		placed, err = s.repo.WithTx(tx).Create(ctx, order)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}
		if err := carts.DeleteAllForUser(ctx, userID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return FromModel(placed), nil
}

func (s *service) ListOrders(ctx context.Context, userID uuid.UUID) ([]OrderDTO, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return fromModels(rows), nil
}

func (s *service) GetOrder(ctx context.Context, orderID, userID uuid.UUID) (*OrderDTO, error) {
	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order belongs to another user")
	}
	return FromModel(order), nil
}

func (s *service) CancelOrder(ctx context.Context, orderID, userID uuid.UUID) (*OrderDTO, error) {
	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order belongs to another user")
	}
	if order.Status != enums.OrderStatusPending {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "only pending orders can be cancelled")
	}

	if err := s.repo.UpdateStatus(ctx, orderID, enums.OrderStatusCancelled); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cancel order")
	}
	order.Status = enums.OrderStatusCancelled
	return FromModel(order), nil
}

func (s *service) ListAllOrders(ctx context.Context) ([]OrderDTO, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return fromModels(rows), nil
}

func (s *service) UpdateStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus) (*OrderDTO, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
	}
	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransitionTo(status) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("cannot transition order from %s to %s", order.Status, status))
	}

	if err := s.repo.UpdateStatus(ctx, orderID, status); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
	}
	order.Status = status
	return FromModel(order), nil
}

// snapshotLine freezes one cart line into an order item, resolving its unit
// price from the subcategory pricing mode.
func (s *service) snapshotLine(ctx context.Context, item *models.CartItem) (*models.OrderItem, error) {
	product := item.Product
	if product == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}

	sub, err := s.subcategories.FindByID(ctx, product.SubcategoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "subcategory not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load subcategory")
	}

	unitPrice, err := resolveUnitPrice(item, product, sub)
	if err != nil {
		return nil, err
	}

	quantity := item.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	return &models.OrderItem{
		ProductID:   product.ID,
		ProductName: product.Name,
		Kilo:        item.Kilo,
		Pieces:      item.Pieces,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		LineTotal:   unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
		CustomText:  item.CustomText,
	}, nil
}

// resolveUnitPrice picks the price for one line: the kilo map entry for
// weight-priced selections, otherwise the subcategory piece price or the
// product's base price.
func resolveUnitPrice(item *models.CartItem, product *models.Product, sub *models.Subcategory) (decimal.Decimal, error) {
	mode := cart.ResolvePricingMode(sub)

	if !mode.IsPieceable && item.Kilo != nil {
		key := cart.KiloKey(*item.Kilo)
		if price, ok := mode.KiloPrices[key]; ok {
			return price, nil
		}
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("no price configured for %s of %s", key, product.Name))
	}

	if mode.IsPieceable && sub.PiecePrice != nil {
		return *sub.PiecePrice, nil
	}
	if product.Price != nil {
		return *product.Price, nil
	}
	return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation,
		fmt.Sprintf("no price configured for %s", product.Name))
}

func (s *service) ensureUser(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	return nil
}

func (s *service) loadOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}
