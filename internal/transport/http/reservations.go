package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/raphaelgarcia7/decorrental-api/internal/app"
	"github.com/raphaelgarcia7/decorrental-api/internal/domain"
)

const dateLayout = "2006-01-02"

// ThemeGetter loads a single theme with its reservations.
type ThemeGetter interface {
	GetTheme(ctx context.Context, id string) (domain.KitTheme, error)
}

// ReservationService is the minimal interface needed for the reservation
// endpoints under a theme.
type ReservationService interface {
	ReserveKit(ctx context.Context, in app.ReserveKitInput) (domain.Reservation, error)
	UpdateReservation(ctx context.Context, in app.UpdateReservationInput) (domain.Reservation, error)
	CancelReservation(ctx context.Context, kitThemeID, reservationID string) (domain.Reservation, error)
}

// HandleThemeTree routes everything under /themes/{id}: the theme itself and
// its reservation subresource.
func HandleThemeTree(themes ThemeGetter, reservations ReservationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
		if len(parts) < 2 || parts[0] != "themes" || parts[1] == "" {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}
		themeID := parts[1]

		switch {
		case len(parts) == 2:
			if r.Method != http.MethodGet {
				writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
				return
			}
			theme, err := themes.GetTheme(r.Context(), themeID)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(toThemeResponse(theme))

		case len(parts) == 3 && parts[2] == "reservations":
			if r.Method != http.MethodPost {
				writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
				return
			}
			handleReserve(w, r, reservations, themeID)

		case len(parts) == 4 && parts[2] == "reservations" && parts[3] != "":
			if r.Method != http.MethodPut {
				writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
				return
			}
			handleUpdateReservation(w, r, reservations, themeID, parts[3])

		case len(parts) == 5 && parts[2] == "reservations" && parts[3] != "" && parts[4] == "cancel":
			if r.Method != http.MethodPost {
				writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
				return
			}
			reservation, err := reservations.CancelReservation(r.Context(), themeID, parts[3])
			if err != nil {
				writeDomainError(w, err)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(toReservationResponse(reservation))

		default:
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
		}
	}
}

func handleReserve(w http.ResponseWriter, r *http.Request, svc ReservationService, themeID string) {
	req, ok := decodeReservationRequest(w, r)
	if !ok {
		return
	}
	start, end, ok := parsePeriod(w, req)
	if !ok {
		return
	}

	reservation, err := svc.ReserveKit(r.Context(), app.ReserveKitInput{
		KitThemeID:          themeID,
		KitCategoryID:       req.KitCategoryID,
		StartDate:           start,
		EndDate:             end,
		AllowStockOverride:  req.AllowStockOverride,
		StockOverrideReason: req.StockOverrideReason,
		Customer:            req.Customer.toDomain(),
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(toReservationResponse(reservation))
}

func handleUpdateReservation(w http.ResponseWriter, r *http.Request, svc ReservationService, themeID, reservationID string) {
	req, ok := decodeReservationRequest(w, r)
	if !ok {
		return
	}
	start, end, ok := parsePeriod(w, req)
	if !ok {
		return
	}

	reservation, err := svc.UpdateReservation(r.Context(), app.UpdateReservationInput{
		KitThemeID:          themeID,
		ReservationID:       reservationID,
		KitCategoryID:       req.KitCategoryID,
		StartDate:           start,
		EndDate:             end,
		AllowStockOverride:  req.AllowStockOverride,
		StockOverrideReason: req.StockOverrideReason,
		Customer:            req.Customer.toDomain(),
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(toReservationResponse(reservation))
}

func decodeReservationRequest(w http.ResponseWriter, r *http.Request) (reservationRequest, bool) {
	var req reservationRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
		return reservationRequest{}, false
	}
	if req.KitCategoryID == "" {
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "kit_category_id is required")
		return reservationRequest{}, false
	}
	return req, true
}

func parsePeriod(w http.ResponseWriter, req reservationRequest) (start, end time.Time, ok bool) {
	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidPeriod, "invalid start_date format")
		return time.Time{}, time.Time{}, false
	}
	end, err = time.Parse(dateLayout, req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidPeriod, "invalid end_date format")
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

type reservationRequest struct {
	KitCategoryID       string          `json:"kit_category_id"`
	StartDate           string          `json:"start_date"`
	EndDate             string          `json:"end_date"`
	AllowStockOverride  bool            `json:"allow_stock_override,omitempty"`
	StockOverrideReason string          `json:"stock_override_reason,omitempty"`
	Customer            customerPayload `json:"customer"`
}

type customerPayload struct {
	Name           string `json:"name"`
	DocumentNumber string `json:"document_number"`
	PhoneNumber    string `json:"phone_number"`
	Address        string `json:"address"`
	Notes          string `json:"notes,omitempty"`
	HasBalloonArch bool   `json:"has_balloon_arch,omitempty"`
	IsEntryPaid    bool   `json:"is_entry_paid,omitempty"`
}

func (p customerPayload) toDomain() domain.CustomerDetails {
	return domain.CustomerDetails{
		Name:           p.Name,
		DocumentNumber: p.DocumentNumber,
		PhoneNumber:    p.PhoneNumber,
		Address:        p.Address,
		Notes:          p.Notes,
		HasBalloonArch: p.HasBalloonArch,
		IsEntryPaid:    p.IsEntryPaid,
	}
}

type reservationResponse struct {
	ID                  string                    `json:"id"`
	KitThemeID          string                    `json:"kit_theme_id"`
	KitCategoryID       string                    `json:"kit_category_id"`
	StartDate           string                    `json:"start_date"`
	EndDate             string                    `json:"end_date"`
	Status              string                    `json:"status"`
	IsStockOverride     bool                      `json:"is_stock_override"`
	StockOverrideReason string                    `json:"stock_override_reason,omitempty"`
	Customer            customerPayload           `json:"customer"`
	Items               []reservationItemResponse `json:"items"`
}

type reservationItemResponse struct {
	ItemTypeID string `json:"item_type_id"`
	Quantity   int    `json:"quantity"`
}

func toReservationResponse(reservation domain.Reservation) reservationResponse {
	resp := reservationResponse{
		ID:                  reservation.ID,
		KitThemeID:          reservation.KitThemeID,
		KitCategoryID:       reservation.KitCategoryID,
		StartDate:           reservation.Period.Start.Format(dateLayout),
		EndDate:             reservation.Period.End.Format(dateLayout),
		Status:              string(reservation.Status),
		IsStockOverride:     reservation.IsStockOverride,
		StockOverrideReason: reservation.StockOverrideReason,
		Customer: customerPayload{
			Name:           reservation.Customer.Name,
			DocumentNumber: reservation.Customer.DocumentNumber,
			PhoneNumber:    reservation.Customer.PhoneNumber,
			Address:        reservation.Customer.Address,
			Notes:          reservation.Customer.Notes,
			HasBalloonArch: reservation.Customer.HasBalloonArch,
			IsEntryPaid:    reservation.Customer.IsEntryPaid,
		},
		Items: make([]reservationItemResponse, 0, len(reservation.Items)),
	}
	for _, item := range reservation.Items {
		resp.Items = append(resp.Items, reservationItemResponse{
			ItemTypeID: item.ItemTypeID,
			Quantity:   item.Quantity,
		})
	}
	return resp
}
