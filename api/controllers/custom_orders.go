package controllers

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ovenmade/bakehouse-backend/api/responses"
	"github.com/ovenmade/bakehouse-backend/api/validators"
	"github.com/ovenmade/bakehouse-backend/internal/customorders"
	"github.com/ovenmade/bakehouse-backend/pkg/enums"
	pkgerrors "github.com/ovenmade/bakehouse-backend/pkg/errors"
	"github.com/ovenmade/bakehouse-backend/pkg/logger"
)

type customOrderRequest struct {
	Title         string     `json:"title" validate:"required,min=3,max=128"`
	Description   string     `json:"description" validate:"required"`
	Occasion      *string    `json:"occasion,omitempty"`
	RequestedDate *time.Time `json:"requested_date,omitempty"`
}

type customOrderQuoteRequest struct {
	Price     decimal.Decimal `json:"price" validate:"required"`
	AdminNote *string         `json:"admin_note,omitempty"`
}

// CustomOrderCreate submits a bespoke order request.
func CustomOrderCreate(svc customorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "custom order service unavailable"))
			return
		}

		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body customOrderRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.CreateRequest(r.Context(), userID, customorders.CreateCustomOrderInput{
			Title:         validators.SanitizeString(body.Title, 0),
			Description:   validators.SanitizeString(body.Description, validators.MaxDescriptionLen),
			Occasion:      validators.SanitizeOptional(body.Occasion, 0),
			RequestedDate: body.RequestedDate,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// CustomOrderList returns the caller's bespoke requests.
func CustomOrderList(svc customorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "custom order service unavailable"))
			return
		}

		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListRequests(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// CustomOrderDetail returns one request; admins may read any.
func CustomOrderDetail(svc customorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "custom order service unavailable"))
			return
		}

		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := pathUUID(r, "customOrderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.GetRequest(r.Context(), id, userID, isAdmin(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// CustomOrderAccept records the customer's acceptance of a quote.
func CustomOrderAccept(svc customorders.Service, logg *logger.Logger) http.HandlerFunc {
	return customOrderRespond(svc, logg, func(r *http.Request, svc customorders.Service) (any, error) {
		userID, err := currentUserID(r)
		if err != nil {
			return nil, err
		}
		id, err := pathUUID(r, "customOrderId")
		if err != nil {
			return nil, err
		}
		return svc.Accept(r.Context(), id, userID)
	})
}

// CustomOrderDecline records the customer's rejection of a quote.
func CustomOrderDecline(svc customorders.Service, logg *logger.Logger) http.HandlerFunc {
	return customOrderRespond(svc, logg, func(r *http.Request, svc customorders.Service) (any, error) {
		userID, err := currentUserID(r)
		if err != nil {
			return nil, err
		}
		id, err := pathUUID(r, "customOrderId")
		if err != nil {
			return nil, err
		}
		return svc.Decline(r.Context(), id, userID)
	})
}

func customOrderRespond(svc customorders.Service, logg *logger.Logger, fn func(*http.Request, customorders.Service) (any, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "custom order service unavailable"))
			return
		}

		dto, err := fn(r, svc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// AdminCustomOrderList returns every request, optionally filtered by status.
func AdminCustomOrderList(svc customorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "custom order service unavailable"))
			return
		}

		var status *enums.CustomOrderStatus
		if raw := r.URL.Query().Get("status"); raw != "" {
			parsed, err := enums.ParseCustomOrderStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status filter"))
				return
			}
			status = &parsed
		}

		list, err := svc.ListAllRequests(r.Context(), status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// AdminCustomOrderQuote attaches a price quote to a request.
func AdminCustomOrderQuote(svc customorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "custom order service unavailable"))
			return
		}

		id, err := pathUUID(r, "customOrderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body customOrderQuoteRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Quote(r.Context(), id, customorders.QuoteInput{
			Price:     body.Price,
			AdminNote: body.AdminNote,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// AdminCustomOrderComplete marks an accepted request as fulfilled.
func AdminCustomOrderComplete(svc customorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "custom order service unavailable"))
			return
		}

		id, err := pathUUID(r, "customOrderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Complete(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}
