package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ovenmade/bakehouse-backend/api/responses"
	"github.com/ovenmade/bakehouse-backend/api/validators"
	cartsvc "github.com/ovenmade/bakehouse-backend/internal/cart"
	"github.com/ovenmade/bakehouse-backend/pkg/db/models"
	pkgerrors "github.com/ovenmade/bakehouse-backend/pkg/errors"
	"github.com/ovenmade/bakehouse-backend/pkg/logger"
)

type cartItemRequest struct {
	ProductID             uuid.UUID        `json:"product_id" validate:"required"`
	Kilo                  *decimal.Decimal `json:"kilo,omitempty"`
	Pieces                *int             `json:"pieces,omitempty"`
	Quantity              *int             `json:"quantity,omitempty"`
	CustomText            *string          `json:"custom_text,omitempty"`
	AdditionalDescription *string          `json:"additional_description,omitempty"`
}

type cartItemPatchRequest struct {
	Kilo                  *decimal.Decimal `json:"kilo,omitempty"`
	Pieces                *int             `json:"pieces,omitempty"`
	Quantity              *int             `json:"quantity,omitempty"`
	CustomText            *string          `json:"custom_text,omitempty"`
	AdditionalDescription *string          `json:"additional_description,omitempty"`
}

type cartItemResponse struct {
	ID                    uuid.UUID        `json:"id"`
	ProductID             uuid.UUID        `json:"product_id"`
	ProductName           string           `json:"product_name,omitempty"`
	Kilo                  *decimal.Decimal `json:"kilo,omitempty"`
	Pieces                *int             `json:"pieces,omitempty"`
	Quantity              int              `json:"quantity"`
	CustomText            *string          `json:"custom_text,omitempty"`
	AdditionalDescription *string          `json:"additional_description,omitempty"`
	CreatedAt             time.Time        `json:"created_at"`
	UpdatedAt             time.Time        `json:"updated_at"`
}

func newCartItemResponse(item *models.CartItem) cartItemResponse {
	resp := cartItemResponse{
		ID:                    item.ID,
		ProductID:             item.ProductID,
		Kilo:                  item.Kilo,
		Pieces:                item.Pieces,
		Quantity:              item.Quantity,
		CustomText:            item.CustomText,
		AdditionalDescription: item.AdditionalDescription,
		CreatedAt:             item.CreatedAt,
		UpdatedAt:             item.UpdatedAt,
	}
	if item.Product != nil {
		resp.ProductName = item.Product.Name
	}
	return resp
}

func newCartResponse(items []models.CartItem) []cartItemResponse {
	out := make([]cartItemResponse, 0, len(items))
	for i := range items {
		out = append(out, newCartItemResponse(&items[i]))
	}
	return out
}

// CartFetch returns the caller's cart contents.
func CartFetch(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, err := svc.GetUserCart(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartResponse(items))
	}
}

// CartAddItem adds a product to the caller's cart, merging with an existing
// row for the same product.
func CartAddItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body cartItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.AddItem(r.Context(), userID, cartsvc.AddItemInput{
			ProductID:             body.ProductID,
			Kilo:                  body.Kilo,
			Pieces:                body.Pieces,
			Quantity:              body.Quantity,
			CustomText:            body.CustomText,
			AdditionalDescription: body.AdditionalDescription,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newCartItemResponse(item))
	}
}

// CartUpdateItem patches a cart row the caller owns.
func CartUpdateItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		itemID, err := pathUUID(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body cartItemPatchRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.UpdateItem(r.Context(), itemID, userID, cartsvc.UpdateItemInput{
			Kilo:                  body.Kilo,
			Pieces:                body.Pieces,
			Quantity:              body.Quantity,
			CustomText:            body.CustomText,
			AdditionalDescription: body.AdditionalDescription,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartItemResponse(item))
	}
}

// CartDeleteItem removes one cart row the caller owns.
func CartDeleteItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		itemID, err := pathUUID(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteItem(r.Context(), itemID, userID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// CartClear empties the caller's cart.
func CartClear(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.ClearCart(r.Context(), userID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "cleared"})
	}
}
