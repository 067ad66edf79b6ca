package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/raphaelgarcia7/decorrental-api/internal/domain"
)

// ThemeService is the minimal interface needed for the theme collection.
type ThemeService interface {
	CreateTheme(ctx context.Context, name string) (domain.KitTheme, error)
	ListThemes(ctx context.Context, page, pageSize int) ([]domain.KitTheme, int, error)
}

// HandleThemes returns an HTTP handler for creating and listing themes.
func HandleThemes(svc ThemeService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			page := queryInt(r, "page", 1)
			pageSize := queryInt(r, "page_size", 20)
			themes, total, err := svc.ListThemes(r.Context(), page, pageSize)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			resp := themeListResponse{
				Total:  total,
				Themes: make([]themeResponse, 0, len(themes)),
			}
			for _, theme := range themes {
				resp.Themes = append(resp.Themes, toThemeResponse(theme))
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(resp)
			return
		case http.MethodPost:
			var req createThemeRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}
			theme, err := svc.CreateTheme(r.Context(), req.Name)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(toThemeResponse(theme))
			return
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}
	}
}

type createThemeRequest struct {
	Name string `json:"name"`
}

type themeListResponse struct {
	Total  int             `json:"total"`
	Themes []themeResponse `json:"themes"`
}

type themeResponse struct {
	ID           string                `json:"id"`
	Name         string                `json:"name"`
	Reservations []reservationResponse `json:"reservations"`
}

func toThemeResponse(theme domain.KitTheme) themeResponse {
	resp := themeResponse{
		ID:           theme.ID,
		Name:         theme.Name,
		Reservations: make([]reservationResponse, 0, len(theme.Reservations)),
	}
	for _, reservation := range theme.Reservations {
		resp.Reservations = append(resp.Reservations, toReservationResponse(reservation))
	}
	return resp
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
