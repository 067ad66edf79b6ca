package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/raphaelgarcia7/decorrental-api/internal/domain"
)

// KitService is the minimal interface needed for the single-unit kit
// endpoints.
type KitService interface {
	CreateKit(ctx context.Context, name string) (domain.Kit, error)
	GetKit(ctx context.Context, id string) (domain.Kit, error)
	ListKits(ctx context.Context, page, pageSize int) ([]domain.Kit, int, error)
	ReserveKit(ctx context.Context, kitID string, startDate, endDate time.Time) (domain.KitReservation, error)
	CancelReservation(ctx context.Context, kitID, reservationID string) (domain.KitReservation, error)
}

// HandleKits returns an HTTP handler for the kit collection.
func HandleKits(svc KitService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			page := queryInt(r, "page", 1)
			pageSize := queryInt(r, "page_size", 20)
			kits, total, err := svc.ListKits(r.Context(), page, pageSize)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			resp := kitListResponse{
				Total: total,
				Kits:  make([]kitResponse, 0, len(kits)),
			}
			for _, kit := range kits {
				resp.Kits = append(resp.Kits, toKitResponse(kit))
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(resp)
			return
		case http.MethodPost:
			var req createKitRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}
			kit, err := svc.CreateKit(r.Context(), req.Name)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(toKitResponse(kit))
			return
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}
	}
}

// HandleKitTree routes /kits/{id}, /kits/{id}/reservations, and
// /kits/{id}/reservations/{rid}/cancel.
func HandleKitTree(svc KitService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
		if len(parts) < 2 || parts[0] != "kits" || parts[1] == "" {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}
		kitID := parts[1]

		switch {
		case len(parts) == 2:
			if r.Method != http.MethodGet {
				writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
				return
			}
			kit, err := svc.GetKit(r.Context(), kitID)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(toKitResponse(kit))

		case len(parts) == 3 && parts[2] == "reservations":
			if r.Method != http.MethodPost {
				writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
				return
			}
			var req kitReservationRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}
			start, err := time.Parse(dateLayout, req.StartDate)
			if err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidPeriod, "invalid start_date format")
				return
			}
			end, err := time.Parse(dateLayout, req.EndDate)
			if err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidPeriod, "invalid end_date format")
				return
			}
			reservation, err := svc.ReserveKit(r.Context(), kitID, start, end)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(toKitReservationResponse(reservation))

		case len(parts) == 5 && parts[2] == "reservations" && parts[3] != "" && parts[4] == "cancel":
			if r.Method != http.MethodPost {
				writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
				return
			}
			reservation, err := svc.CancelReservation(r.Context(), kitID, parts[3])
			if err != nil {
				writeDomainError(w, err)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(toKitReservationResponse(reservation))

		default:
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
		}
	}
}

type createKitRequest struct {
	Name string `json:"name"`
}

type kitReservationRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type kitListResponse struct {
	Total int           `json:"total"`
	Kits  []kitResponse `json:"kits"`
}

type kitResponse struct {
	ID           string                   `json:"id"`
	Name         string                   `json:"name"`
	Reservations []kitReservationResponse `json:"reservations"`
}

type kitReservationResponse struct {
	ID        string `json:"id"`
	KitID     string `json:"kit_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Status    string `json:"status"`
}

func toKitResponse(kit domain.Kit) kitResponse {
	resp := kitResponse{
		ID:           kit.ID,
		Name:         kit.Name,
		Reservations: make([]kitReservationResponse, 0, len(kit.Reservations)),
	}
	for _, reservation := range kit.Reservations {
		resp.Reservations = append(resp.Reservations, toKitReservationResponse(reservation))
	}
	return resp
}

func toKitReservationResponse(reservation domain.KitReservation) kitReservationResponse {
	return kitReservationResponse{
		ID:        reservation.ID,
		KitID:     reservation.KitID,
		StartDate: reservation.Period.Start.Format(dateLayout),
		EndDate:   reservation.Period.End.Format(dateLayout),
		Status:    string(reservation.Status),
	}
}
