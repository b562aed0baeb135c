package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/ovenmade/bakehouse-backend/api/responses"
	"github.com/ovenmade/bakehouse-backend/api/validators"
	"github.com/ovenmade/bakehouse-backend/internal/categories"
	"github.com/ovenmade/bakehouse-backend/internal/subcategories"
	pkgerrors "github.com/ovenmade/bakehouse-backend/pkg/errors"
	"github.com/ovenmade/bakehouse-backend/pkg/logger"
	"github.com/ovenmade/bakehouse-backend/pkg/types"
)

type categoryRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=64"`
	Description *string `json:"description,omitempty"`
}

type categoryPatchRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=2,max=64"`
	Description *string `json:"description,omitempty"`
}

type subcategoryRequest struct {
	Name           string             `json:"name" validate:"required,min=2,max=64"`
	Description    *string            `json:"description,omitempty"`
	KiloToPriceMap types.KiloPriceMap `json:"kilo_to_price_map,omitempty"`
	IsPieceable    *bool              `json:"is_pieceable,omitempty"`
	PiecePrice     *decimal.Decimal   `json:"piece_price,omitempty"`
}

type subcategoryPatchRequest struct {
	Name           *string             `json:"name,omitempty" validate:"omitempty,min=2,max=64"`
	Description    *string             `json:"description,omitempty"`
	KiloToPriceMap *types.KiloPriceMap `json:"kilo_to_price_map,omitempty"`
	IsPieceable    *bool               `json:"is_pieceable,omitempty"`
	PiecePrice     *decimal.Decimal    `json:"piece_price,omitempty"`
}

// CategoryList returns every catalog category.
func CategoryList(svc categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		list, err := svc.ListCategories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// CategoryCreate adds a catalog category.
func CategoryCreate(svc categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var body categoryRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.CreateCategory(r.Context(), categories.CreateCategoryInput{
			Name:        body.Name,
			Description: body.Description,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// CategoryUpdate patches a catalog category.
func CategoryUpdate(svc categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		id, err := pathUUID(r, "categoryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body categoryPatchRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.UpdateCategory(r.Context(), id, categories.UpdateCategoryInput{
			Name:        body.Name,
			Description: body.Description,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// CategoryDelete removes an empty catalog category.
func CategoryDelete(svc categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		id, err := pathUUID(r, "categoryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteCategory(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// SubcategoryList returns a category's subcategories.
func SubcategoryList(svc subcategories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		categoryID, err := pathUUID(r, "categoryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListByCategory(r.Context(), categoryID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// SubcategoryCreate adds a subcategory with its pricing configuration.
func SubcategoryCreate(svc subcategories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		categoryID, err := pathUUID(r, "categoryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body subcategoryRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.CreateSubcategory(r.Context(), categoryID, subcategories.CreateSubcategoryInput{
			Name:           body.Name,
			Description:    body.Description,
			KiloToPriceMap: body.KiloToPriceMap,
			IsPieceable:    body.IsPieceable,
			PiecePrice:     body.PiecePrice,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// SubcategoryUpdate patches a subcategory, including its pricing mode fields.
func SubcategoryUpdate(svc subcategories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		id, err := pathUUID(r, "subcategoryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body subcategoryPatchRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.UpdateSubcategory(r.Context(), id, subcategories.UpdateSubcategoryInput{
			Name:           body.Name,
			Description:    body.Description,
			KiloToPriceMap: body.KiloToPriceMap,
			IsPieceable:    body.IsPieceable,
			PiecePrice:     body.PiecePrice,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// SubcategoryDelete removes a subcategory that has no products.
func SubcategoryDelete(svc subcategories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		id, err := pathUUID(r, "subcategoryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteSubcategory(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
