package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	dbpkg "github.com/ovenmade/bakehouse-backend/pkg/db"
	"github.com/ovenmade/bakehouse-backend/pkg/db/models"
	pkgerrors "github.com/ovenmade/bakehouse-backend/pkg/errors"
)

type userLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type productLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type subcategoryLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Subcategory, error)
}

type cartRepository interface {
	Create(ctx context.Context, item *models.CartItem) (*models.CartItem, error)
	Update(ctx context.Context, item *models.CartItem) (*models.CartItem, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.CartItem, error)
	FindByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*models.CartItem, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAllForUser(ctx context.Context, userID uuid.UUID) error
}

// Service exposes cart operations keyed by the authenticated user.
type Service interface {
	AddItem(ctx context.Context, userID uuid.UUID, input AddItemInput) (*models.CartItem, error)
	UpdateItem(ctx context.Context, itemID, userID uuid.UUID, patch UpdateItemInput) (*models.CartItem, error)
	DeleteItem(ctx context.Context, itemID, userID uuid.UUID) error
	ClearCart(ctx context.Context, userID uuid.UUID) error
	GetUserCart(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error)
}

type service struct {
	repo          cartRepository
	users         userLoader
	products      productLoader
	subcategories subcategoryLoader
}

// ServiceParams bundles the collaborators required to build a cart service.
type ServiceParams struct {
	Repo          cartRepository
	Users         userLoader
	Products      productLoader
	Subcategories subcategoryLoader
}

// NewService builds a cart service backed by the provided stack.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if params.Users == nil {
		return nil, fmt.Errorf("user loader required")
	}
	if params.Products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	if params.Subcategories == nil {
		return nil, fmt.Errorf("subcategory loader required")
	}
	return &service{
		repo:          params.Repo,
		users:         params.Users,
		products:      params.Products,
		subcategories: params.Subcategories,
	}, nil
}

// AddItemInput captures the payload for adding a product to the cart.
type AddItemInput struct {
	ProductID             uuid.UUID
	Kilo                  *decimal.Decimal
	Pieces                *int
	Quantity              *int
	CustomText            *string
	AdditionalDescription *string
}

func (i AddItemInput) shape() ItemShape {
	return ItemShape{Kilo: i.Kilo, Pieces: i.Pieces, Quantity: i.Quantity}
}

// UpdateItemInput carries the partial mutation applied to an existing cart item.
type UpdateItemInput struct {
	Kilo                  *decimal.Decimal
	Pieces                *int
	Quantity              *int
	CustomText            *string
	AdditionalDescription *string
}

// AddItem adds a product to the user's cart, merging into the existing line
// when the (user, product) pair already has one.
func (s *service) AddItem(ctx context.Context, userID uuid.UUID, input AddItemInput) (*models.CartItem, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if input.ProductID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}
	_, mode, err := s.resolveProductMode(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if err := validateItemShape(mode, input.shape()); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByUserAndProduct(ctx, userID, input.ProductID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart item")
		}
		item := newCartItem(userID, input, mode)
		created, err := s.repo.Create(ctx, item)
		if err == nil {
			return created, nil
		}
		if !dbpkg.IsUniqueViolation(err, "idx_cart_items_user_product") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create cart item")
		}
		// Lost the insert race to a concurrent add; merge into the
		// row that won instead of surfacing the conflict.
		existing, err = s.repo.FindByUserAndProduct(ctx, userID, input.ProductID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload cart item")
		}
	}

	applyShape(existing, mode, input.shape())
	applyText(existing, input.CustomText, input.AdditionalDescription)

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart item disappeared during merge")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update cart item")
	}
	return updated, nil
}

// UpdateItem applies a partial mutation to an owned cart item, re-running the
// pricing-mode validation against the combined existing+patch shape.
func (s *service) UpdateItem(ctx context.Context, itemID, userID uuid.UUID, patch UpdateItemInput) (*models.CartItem, error) {
	item, err := s.loadOwnedItem(ctx, itemID, userID)
	if err != nil {
		return nil, err
	}

	_, mode, err := s.resolveProductMode(ctx, item.ProductID)
	if err != nil {
		return nil, err
	}

	if err := validateItemShape(mode, combinedShape(item, patch)); err != nil {
		return nil, err
	}

	applyShape(item, mode, ItemShape{Kilo: patch.Kilo, Pieces: patch.Pieces, Quantity: patch.Quantity})
	applyText(item, patch.CustomText, patch.AdditionalDescription)

	updated, err := s.repo.Update(ctx, item)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update cart item")
	}
	return updated, nil
}

// DeleteItem removes an owned cart item.
func (s *service) DeleteItem(ctx context.Context, itemID, userID uuid.UUID) error {
	if _, err := s.loadOwnedItem(ctx, itemID, userID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, itemID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete cart item")
	}
	return nil
}

// ClearCart removes every cart item owned by the user.
func (s *service) ClearCart(ctx context.Context, userID uuid.UUID) error {
	if err := s.ensureUser(ctx, userID); err != nil {
		return err
	}
	if err := s.repo.DeleteAllForUser(ctx, userID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	return nil
}

// GetUserCart returns the user's cart lines with product details embedded.
func (s *service) GetUserCart(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list cart items")
	}
	return items, nil
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

// resolveProductMode loads the product and derives its pricing mode from the
// parent subcategory.
func (s *service) resolveProductMode(ctx context.Context, productID uuid.UUID) (*models.Product, PricingMode, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, PricingMode{}, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, PricingMode{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	sub, err := s.subcategories.FindByID(ctx, product.SubcategoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, PricingMode{}, pkgerrors.New(pkgerrors.CodeNotFound, "subcategory not found")
		}
		return nil, PricingMode{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load subcategory")
	}

	return product, ResolvePricingMode(sub), nil
}

func (s *service) loadOwnedItem(ctx context.Context, itemID, userID uuid.UUID) (*models.CartItem, error) {
	item, err := s.repo.FindByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart item")
	}
	if item.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "cart item belongs to another user")
	}
	return item, nil
}

// newCartItem builds the initial cart line from the input shape. Quantity is
// always stored: for piece-priced products it mirrors pieces when absent, for
// weight-priced ones it defaults to a single unit.
func newCartItem(userID uuid.UUID, input AddItemInput, mode PricingMode) *models.CartItem {
	item := &models.CartItem{
		UserID:                userID,
		ProductID:             input.ProductID,
		CustomText:            copyStringPtr(input.CustomText),
		AdditionalDescription: copyStringPtr(input.AdditionalDescription),
	}

	if mode.IsPieceable {
		item.Pieces = copyIntPtr(input.Pieces)
		switch {
		case input.Quantity != nil:
			item.Quantity = *input.Quantity
		case input.Pieces != nil:
			item.Quantity = *input.Pieces
		}
		return item
	}

	item.Kilo = copyDecimalPtr(input.Kilo)
	item.Quantity = 1
	if input.Quantity != nil {
		item.Quantity = *input.Quantity
	}
	return item
}

// applyShape merges the new shape into the existing line, preferring new
// values and retaining existing ones.
//
// For piece-priced products, pieces and quantity collapse to the larger of
// whichever moved and mirror each other afterwards; summing them here would
// runaway-accumulate on repeated adds. Weight-priced products keep kilo and
// quantity independent.
func applyShape(item *models.CartItem, mode PricingMode, shape ItemShape) {
	if mode.IsPieceable {
		pieces := copyIntPtr(shape.Pieces)
		if pieces == nil {
			pieces = copyIntPtr(item.Pieces)
		}
		quantity := item.Quantity
		if shape.Quantity != nil {
			quantity = *shape.Quantity
		}

		resolved := quantity
		if pieces != nil && *pieces > resolved {
			resolved = *pieces
		}
		if resolved > 0 {
			item.Pieces = copyIntPtr(&resolved)
			item.Quantity = resolved
		}
		item.Kilo = nil
		return
	}

	if shape.Kilo != nil {
		item.Kilo = copyDecimalPtr(shape.Kilo)
	}
	if shape.Quantity != nil {
		item.Quantity = *shape.Quantity
	}
	item.Pieces = nil
}

func applyText(item *models.CartItem, customText, additionalDescription *string) {
	if customText != nil {
		item.CustomText = copyStringPtr(customText)
	}
	if additionalDescription != nil {
		item.AdditionalDescription = copyStringPtr(additionalDescription)
	}
}

// combinedShape overlays the patch on the stored item so validation sees the
// shape the row would have after the update.
func combinedShape(item *models.CartItem, patch UpdateItemInput) ItemShape {
	shape := ItemShape{
		Kilo:     copyDecimalPtr(patch.Kilo),
		Pieces:   copyIntPtr(patch.Pieces),
		Quantity: copyIntPtr(patch.Quantity),
	}
	if shape.Kilo == nil {
		shape.Kilo = copyDecimalPtr(item.Kilo)
	}
	if shape.Pieces == nil {
		shape.Pieces = copyIntPtr(item.Pieces)
	}
	if shape.Quantity == nil && item.Quantity > 0 {
		quantity := item.Quantity
		shape.Quantity = &quantity
	}
	return shape
}

func copyIntPtr(src *int) *int {
	if src == nil {
		return nil
	}
	val := *src
	return &val
}

func copyStringPtr(src *string) *string {
	if src == nil {
		return nil
	}
	val := *src
	return &val
}

func copyDecimalPtr(src *decimal.Decimal) *decimal.Decimal {
	if src == nil {
		return nil
	}
	val := *src
	return &val
}
