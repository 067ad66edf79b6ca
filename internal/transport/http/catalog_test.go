package http

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/raphaelgarcia7/decorrental-api/internal/domain"
)

type stubCatalogService struct {
	itemType domain.ItemType
	category domain.KitCategory
	err      error
}

func (s *stubCatalogService) CreateItemType(_ context.Context, name string, totalStock int) (domain.ItemType, error) {
	if s.err != nil {
		return domain.ItemType{}, s.err
	}
	return domain.ItemType{ID: "it1", Name: name, TotalStock: totalStock}, nil
}

func (s *stubCatalogService) GetItemType(_ context.Context, _ string) (domain.ItemType, error) {
	return s.itemType, s.err
}

func (s *stubCatalogService) ListItemTypes(_ context.Context) ([]domain.ItemType, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []domain.ItemType{s.itemType}, nil
}

func (s *stubCatalogService) UpdateItemStock(_ context.Context, _ string, totalStock int) (domain.ItemType, error) {
	if s.err != nil {
		return domain.ItemType{}, s.err
	}
	it := s.itemType
	it.TotalStock = totalStock
	return it, nil
}

func (s *stubCatalogService) CreateCategory(_ context.Context, name string) (domain.KitCategory, error) {
	if s.err != nil {
		return domain.KitCategory{}, s.err
	}
	return domain.KitCategory{ID: "c1", Name: name}, nil
}

func (s *stubCatalogService) GetCategory(_ context.Context, _ string) (domain.KitCategory, error) {
	return s.category, s.err
}

func (s *stubCatalogService) ListCategories(_ context.Context) ([]domain.KitCategory, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []domain.KitCategory{s.category}, nil
}

func (s *stubCatalogService) AddCategoryItem(_ context.Context, _, _ string, _ int) (domain.KitCategory, error) {
	return s.category, s.err
}

func TestHandleItemTypes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		method         string
		body           string
		serviceErr     error
		expectedStatus int
		expectedSubstr string
	}{
		{
			name:           "create success",
			method:         http.MethodPost,
			body:           `{"name":"Balloon Arch","total_stock":3}`,
			expectedStatus: http.StatusCreated,
			expectedSubstr: `"total_stock":3`,
		},
		{
			name:           "duplicate name",
			method:         http.MethodPost,
			body:           `{"name":"Balloon Arch","total_stock":3}`,
			serviceErr:     domain.ErrItemTypeExists,
			expectedStatus: http.StatusConflict,
			expectedSubstr: "item_type_exists",
		},
		{
			name:           "negative stock",
			method:         http.MethodPost,
			body:           `{"name":"Balloon Arch","total_stock":-1}`,
			serviceErr:     domain.ErrInvalidStock,
			expectedStatus: http.StatusBadRequest,
			expectedSubstr: "invalid_stock",
		},
		{
			name:           "list",
			method:         http.MethodGet,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "method not allowed",
			method:         http.MethodDelete,
			expectedStatus: http.StatusMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := &stubCatalogService{
				itemType: domain.ItemType{ID: "it1", Name: "Balloon Arch", TotalStock: 3},
				err:      tt.serviceErr,
			}
			req := httptest.NewRequest(tt.method, "/item-types", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()

			HandleItemTypes(svc).ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.expectedStatus, rec.Code, rec.Body.String())
			}
			if tt.expectedSubstr != "" && !strings.Contains(rec.Body.String(), tt.expectedSubstr) {
				t.Fatalf("expected response to contain %q, got %q", tt.expectedSubstr, rec.Body.String())
			}
		})
	}
}

func TestHandleItemTypeTree(t *testing.T) {
	t.Parallel()

	t.Run("get item type", func(t *testing.T) {
		svc := &stubCatalogService{itemType: domain.ItemType{ID: "it1", Name: "Table", TotalStock: 5}}
		req := httptest.NewRequest(http.MethodGet, "/item-types/it1", nil)
		rec := httptest.NewRecorder()

		HandleItemTypeTree(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"name":"Table"`) {
			t.Fatalf("unexpected response %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("update stock", func(t *testing.T) {
		svc := &stubCatalogService{itemType: domain.ItemType{ID: "it1", Name: "Table", TotalStock: 5}}
		req := httptest.NewRequest(http.MethodPut, "/item-types/it1/stock", bytes.NewBufferString(`{"total_stock":8}`))
		rec := httptest.NewRecorder()

		HandleItemTypeTree(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"total_stock":8`) {
			t.Fatalf("unexpected response %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("missing item type", func(t *testing.T) {
		svc := &stubCatalogService{err: domain.ErrItemTypeNotFound}
		req := httptest.NewRequest(http.MethodGet, "/item-types/missing", nil)
		rec := httptest.NewRecorder()

		HandleItemTypeTree(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("unknown subpath", func(t *testing.T) {
		svc := &stubCatalogService{}
		req := httptest.NewRequest(http.MethodGet, "/item-types/it1/bogus", nil)
		rec := httptest.NewRecorder()

		HandleItemTypeTree(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestHandleCategoryTree(t *testing.T) {
	t.Parallel()

	category := domain.KitCategory{
		ID:   "c1",
		Name: "Basic",
		Items: []domain.CategoryItem{
			{ID: "ci1", KitCategoryID: "c1", ItemTypeID: "it1", Quantity: 2},
		},
	}

	t.Run("get category with items", func(t *testing.T) {
		svc := &stubCatalogService{category: category}
		req := httptest.NewRequest(http.MethodGet, "/categories/c1", nil)
		rec := httptest.NewRecorder()

		HandleCategoryTree(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"quantity":2`) {
			t.Fatalf("unexpected response %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("add item success", func(t *testing.T) {
		svc := &stubCatalogService{category: category}
		req := httptest.NewRequest(http.MethodPost, "/categories/c1/items", bytes.NewBufferString(`{"item_type_id":"it1","quantity":2}`))
		rec := httptest.NewRecorder()

		HandleCategoryTree(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("add item requires item_type_id", func(t *testing.T) {
		svc := &stubCatalogService{category: category}
		req := httptest.NewRequest(http.MethodPost, "/categories/c1/items", bytes.NewBufferString(`{"quantity":2}`))
		rec := httptest.NewRecorder()

		HandleCategoryTree(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("add item unknown item type", func(t *testing.T) {
		svc := &stubCatalogService{err: domain.ErrItemTypeNotFound}
		req := httptest.NewRequest(http.MethodPost, "/categories/c1/items", bytes.NewBufferString(`{"item_type_id":"missing","quantity":2}`))
		rec := httptest.NewRecorder()

		HandleCategoryTree(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}
