package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ovenmade/bakehouse-backend/api/middleware"
	cartsvc "github.com/ovenmade/bakehouse-backend/internal/cart"
	"github.com/ovenmade/bakehouse-backend/pkg/db/models"
	pkgerrors "github.com/ovenmade/bakehouse-backend/pkg/errors"
)

type stubCartService struct {
	addFn    func(ctx context.Context, userID uuid.UUID, input cartsvc.AddItemInput) (*models.CartItem, error)
	updateFn func(ctx context.Context, itemID, userID uuid.UUID, patch cartsvc.UpdateItemInput) (*models.CartItem, error)
	deleteFn func(ctx context.Context, itemID, userID uuid.UUID) error
	clearFn  func(ctx context.Context, userID uuid.UUID) error
	getFn    func(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error)
}

func (s *stubCartService) AddItem(ctx context.Context, userID uuid.UUID, input cartsvc.AddItemInput) (*models.CartItem, error) {
	return s.addFn(ctx, userID, input)
}

func (s *stubCartService) UpdateItem(ctx context.Context, itemID, userID uuid.UUID, patch cartsvc.UpdateItemInput) (*models.CartItem, error) {
	return s.updateFn(ctx, itemID, userID, patch)
}

func (s *stubCartService) DeleteItem(ctx context.Context, itemID, userID uuid.UUID) error {
	return s.deleteFn(ctx, itemID, userID)
}

func (s *stubCartService) ClearCart(ctx context.Context, userID uuid.UUID) error {
	return s.clearFn(ctx, userID)
}

func (s *stubCartService) GetUserCart(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	return s.getFn(ctx, userID)
}

func authenticatedRequest(method, target, body string, userID uuid.UUID) *http.Request {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	return req.WithContext(middleware.WithUserID(req.Context(), userID.String()))
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v body=%s", err, rec.Body.String())
	}
	return payload
}

func TestCartAddItemReturnsCreatedRow(t *testing.T) {
	userID := uuid.New()
	productID := uuid.New()
	pieces := 3

	svc := &stubCartService{
		addFn: func(ctx context.Context, gotUser uuid.UUID, input cartsvc.AddItemInput) (*models.CartItem, error) {
			if gotUser != userID {
				t.Fatalf("expected user %s, got %s", userID, gotUser)
			}
			if input.ProductID != productID || input.Pieces == nil || *input.Pieces != pieces {
				t.Fatalf("unexpected input %+v", input)
			}
			return &models.CartItem{ID: uuid.New(), ProductID: input.ProductID, Pieces: input.Pieces, Quantity: pieces}, nil
		},
	}

	body := `{"product_id":"` + productID.String() + `","pieces":3}`
	req := authenticatedRequest(http.MethodPost, "/api/v1/cart/items", body, userID)
	rec := httptest.NewRecorder()
	CartAddItem(svc, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", rec.Code, rec.Body.String())
	}
	payload := decodeEnvelope(t, rec)
	data, ok := payload["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data envelope, got %v", payload)
	}
	if data["product_id"] != productID.String() {
		t.Fatalf("expected product_id %s, got %v", productID, data["product_id"])
	}
}

func TestCartAddItemRejectsAnonymousCaller(t *testing.T) {
	svc := &stubCartService{
		addFn: func(ctx context.Context, userID uuid.UUID, input cartsvc.AddItemInput) (*models.CartItem, error) {
			t.Fatal("service should not be reached without a user")
			return nil, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"product_id":"`+uuid.NewString()+`"}`))
	rec := httptest.NewRecorder()
	CartAddItem(svc, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestCartAddItemRejectsMalformedBody(t *testing.T) {
	svc := &stubCartService{
		addFn: func(ctx context.Context, userID uuid.UUID, input cartsvc.AddItemInput) (*models.CartItem, error) {
			t.Fatal("service should not be reached on a bad body")
			return nil, nil
		},
	}

	req := authenticatedRequest(http.MethodPost, "/api/v1/cart/items", `{"product_id": not-json`, uuid.New())
	rec := httptest.NewRecorder()
	CartAddItem(svc, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestCartUpdateItemParsesPathID(t *testing.T) {
	userID := uuid.New()
	itemID := uuid.New()
	quantity := 2

	svc := &stubCartService{
		updateFn: func(ctx context.Context, gotItem, gotUser uuid.UUID, patch cartsvc.UpdateItemInput) (*models.CartItem, error) {
			if gotItem != itemID || gotUser != userID {
				t.Fatalf("expected item %s user %s, got %s/%s", itemID, userID, gotItem, gotUser)
			}
			return &models.CartItem{ID: itemID, Quantity: quantity}, nil
		},
	}

	router := chi.NewRouter()
	router.Patch("/cart/items/{itemId}", CartUpdateItem(svc, nil))

	req := authenticatedRequest(http.MethodPatch, "/cart/items/"+itemID.String(), `{"quantity":2}`, userID)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestCartUpdateItemRejectsBadPathID(t *testing.T) {
	svc := &stubCartService{
		updateFn: func(ctx context.Context, itemID, userID uuid.UUID, patch cartsvc.UpdateItemInput) (*models.CartItem, error) {
			t.Fatal("service should not be reached with a bad item id")
			return nil, nil
		},
	}

	router := chi.NewRouter()
	router.Patch("/cart/items/{itemId}", CartUpdateItem(svc, nil))

	req := authenticatedRequest(http.MethodPatch, "/cart/items/not-a-uuid", `{"quantity":2}`, uuid.New())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestCartFetchMapsServiceError(t *testing.T) {
	svc := &stubCartService{
		getFn: func(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
			return nil, pkgerrors.New(pkgerrors.CodeDependency, "cart store unavailable")
		},
	}

	req := authenticatedRequest(http.MethodGet, "/api/v1/cart", "", uuid.New())
	rec := httptest.NewRecorder()
	CartFetch(svc, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", rec.Code)
	}
	payload := decodeEnvelope(t, rec)
	errBody, ok := payload["error"].(map[string]any)
	if !ok || errBody["code"] != string(pkgerrors.CodeDependency) {
		t.Fatalf("expected dependency error envelope, got %v", payload)
	}
}

func TestCartClearReportsStatus(t *testing.T) {
	cleared := false
	svc := &stubCartService{
		clearFn: func(ctx context.Context, userID uuid.UUID) error {
			cleared = true
			return nil
		},
	}

	req := authenticatedRequest(http.MethodDelete, "/api/v1/cart", "", uuid.New())
	rec := httptest.NewRecorder()
	CartClear(svc, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if !cleared {
		t.Fatal("expected ClearCart to be called")
	}
}
