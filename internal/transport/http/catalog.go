package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/raphaelgarcia7/decorrental-api/internal/domain"
)

// CatalogService is the minimal interface needed for the catalog endpoints.
type CatalogService interface {
	CreateItemType(ctx context.Context, name string, totalStock int) (domain.ItemType, error)
	GetItemType(ctx context.Context, id string) (domain.ItemType, error)
	ListItemTypes(ctx context.Context) ([]domain.ItemType, error)
	UpdateItemStock(ctx context.Context, id string, totalStock int) (domain.ItemType, error)
	CreateCategory(ctx context.Context, name string) (domain.KitCategory, error)
	GetCategory(ctx context.Context, id string) (domain.KitCategory, error)
	ListCategories(ctx context.Context) ([]domain.KitCategory, error)
	AddCategoryItem(ctx context.Context, categoryID, itemTypeID string, quantity int) (domain.KitCategory, error)
}

// HandleItemTypes returns an HTTP handler for the item type collection.
func HandleItemTypes(svc CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			itemTypes, err := svc.ListItemTypes(r.Context())
			if err != nil {
				writeDomainError(w, err)
				return
			}
			resp := make([]itemTypeResponse, 0, len(itemTypes))
			for _, it := range itemTypes {
				resp = append(resp, toItemTypeResponse(it))
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(resp)
			return
		case http.MethodPost:
			var req createItemTypeRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}
			itemType, err := svc.CreateItemType(r.Context(), req.Name, req.TotalStock)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(toItemTypeResponse(itemType))
			return
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}
	}
}

// HandleItemTypeTree routes /item-types/{id} and /item-types/{id}/stock.
func HandleItemTypeTree(svc CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
		if len(parts) < 2 || parts[0] != "item-types" || parts[1] == "" {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}
		id := parts[1]

		switch {
		case len(parts) == 2:
			if r.Method != http.MethodGet {
				writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
				return
			}
			itemType, err := svc.GetItemType(r.Context(), id)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(toItemTypeResponse(itemType))

		case len(parts) == 3 && parts[2] == "stock":
			if r.Method != http.MethodPut {
				writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
				return
			}
			var req updateStockRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}
			itemType, err := svc.UpdateItemStock(r.Context(), id, req.TotalStock)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(toItemTypeResponse(itemType))

		default:
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
		}
	}
}

// HandleCategories returns an HTTP handler for the category collection.
func HandleCategories(svc CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			categories, err := svc.ListCategories(r.Context())
			if err != nil {
				writeDomainError(w, err)
				return
			}
			resp := make([]categoryResponse, 0, len(categories))
			for _, category := range categories {
				resp = append(resp, toCategoryResponse(category))
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(resp)
			return
		case http.MethodPost:
			var req createCategoryRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}
			category, err := svc.CreateCategory(r.Context(), req.Name)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(toCategoryResponse(category))
			return
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}
	}
}

// HandleCategoryTree routes /categories/{id} and /categories/{id}/items.
func HandleCategoryTree(svc CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
		if len(parts) < 2 || parts[0] != "categories" || parts[1] == "" {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}
		id := parts[1]

		switch {
		case len(parts) == 2:
			if r.Method != http.MethodGet {
				writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
				return
			}
			category, err := svc.GetCategory(r.Context(), id)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(toCategoryResponse(category))

		case len(parts) == 3 && parts[2] == "items":
			if r.Method != http.MethodPost {
				writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
				return
			}
			var req addCategoryItemRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}
			if req.ItemTypeID == "" {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "item_type_id is required")
				return
			}
			category, err := svc.AddCategoryItem(r.Context(), id, req.ItemTypeID, req.Quantity)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(toCategoryResponse(category))

		default:
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
		}
	}
}

type createItemTypeRequest struct {
	Name       string `json:"name"`
	TotalStock int    `json:"total_stock"`
}

type updateStockRequest struct {
	TotalStock int `json:"total_stock"`
}

type itemTypeResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	TotalStock int    `json:"total_stock"`
}

func toItemTypeResponse(itemType domain.ItemType) itemTypeResponse {
	return itemTypeResponse{
		ID:         itemType.ID,
		Name:       itemType.Name,
		TotalStock: itemType.TotalStock,
	}
}

type createCategoryRequest struct {
	Name string `json:"name"`
}

type addCategoryItemRequest struct {
	ItemTypeID string `json:"item_type_id"`
	Quantity   int    `json:"quantity"`
}

type categoryResponse struct {
	ID    string                 `json:"id"`
	Name  string                 `json:"name"`
	Items []categoryItemResponse `json:"items"`
}

type categoryItemResponse struct {
	ItemTypeID string `json:"item_type_id"`
	Quantity   int    `json:"quantity"`
}

func toCategoryResponse(category domain.KitCategory) categoryResponse {
	resp := categoryResponse{
		ID:    category.ID,
		Name:  category.Name,
		Items: make([]categoryItemResponse, 0, len(category.Items)),
	}
	for _, item := range category.Items {
		resp.Items = append(resp.Items, categoryItemResponse{
			ItemTypeID: item.ItemTypeID,
			Quantity:   item.Quantity,
		})
	}
	return resp
}
