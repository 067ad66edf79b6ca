package http

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/raphaelgarcia7/decorrental-api/internal/app"
	"github.com/raphaelgarcia7/decorrental-api/internal/domain"
)

const validReservationBody = `{
	"kit_category_id": "c1",
	"start_date": "2026-02-22",
	"end_date": "2026-02-24",
	"customer": {
		"name": "Ana Souza",
		"document_number": "123.456.789-00",
		"phone_number": "+55 11 98888-7777",
		"address": "Rua das Flores, 200"
	}
}`

func successReservation() domain.Reservation {
	start := time.Date(2026, time.February, 22, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.February, 24, 0, 0, 0, 0, time.UTC)
	return domain.Reservation{
		ID:            "res-123",
		KitThemeID:    "t1",
		KitCategoryID: "c1",
		Period:        domain.DateRange{Start: start, End: end},
		Status:        domain.ReservationStatusActive,
		Customer: domain.CustomerDetails{
			Name:           "Ana Souza",
			DocumentNumber: "123.456.789-00",
			PhoneNumber:    "+55 11 98888-7777",
			Address:        "Rua das Flores, 200",
		},
		Items: []domain.ReservationItem{
			{ID: "ri1", ReservationID: "res-123", ItemTypeID: "arch", Quantity: 1},
		},
	}
}

func TestHandleThemeTree_Reserve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		path           string
		method         string
		body           string
		serviceErr     error
		expectedStatus int
		expectedSubstr string
	}{
		{
			name:           "success",
			path:           "/themes/t1/reservations",
			method:         http.MethodPost,
			body:           validReservationBody,
			expectedStatus: http.StatusCreated,
			expectedSubstr: `"id":"res-123"`,
		},
		{
			name:           "invalid json",
			path:           "/themes/t1/reservations",
			method:         http.MethodPost,
			body:           `{"kit_category_id":`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing category",
			path:           "/themes/t1/reservations",
			method:         http.MethodPost,
			body:           `{"start_date":"2026-02-22","end_date":"2026-02-24","customer":{}}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed start date",
			path:           "/themes/t1/reservations",
			method:         http.MethodPost,
			body:           `{"kit_category_id":"c1","start_date":"22/02/2026","end_date":"2026-02-24","customer":{}}`,
			expectedStatus: http.StatusBadRequest,
			expectedSubstr: "invalid_period",
		},
		{
			name:           "theme not found",
			path:           "/themes/t1/reservations",
			method:         http.MethodPost,
			body:           validReservationBody,
			serviceErr:     domain.ErrThemeNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "insufficient stock",
			path:           "/themes/t1/reservations",
			method:         http.MethodPost,
			body:           validReservationBody,
			serviceErr:     domain.ErrInsufficientStock,
			expectedStatus: http.StatusConflict,
			expectedSubstr: "insufficient_stock",
		},
		{
			name:           "override reason missing",
			path:           "/themes/t1/reservations",
			method:         http.MethodPost,
			body:           validReservationBody,
			serviceErr:     domain.ErrOverrideReasonRequired,
			expectedStatus: http.StatusBadRequest,
			expectedSubstr: "override_reason_required",
		},
		{
			name:           "internal error",
			path:           "/themes/t1/reservations",
			method:         http.MethodPost,
			body:           validReservationBody,
			serviceErr:     errors.New("boom"),
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:           "wrong method on reservations",
			path:           "/themes/t1/reservations",
			method:         http.MethodGet,
			expectedStatus: http.StatusMethodNotAllowed,
		},
		{
			name:           "unknown subpath",
			path:           "/themes/t1/bogus",
			method:         http.MethodGet,
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := &stubReservationService{
				reservation: successReservation(),
				err:         tt.serviceErr,
			}
			req := httptest.NewRequest(tt.method, tt.path, bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()

			handler := HandleThemeTree(&stubThemeService{}, svc)
			handler.ServeHTTP(rec, req)

			res := rec.Result()
			if res.StatusCode != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.expectedStatus, res.StatusCode, rec.Body.String())
			}
			if tt.expectedSubstr != "" {
				body := rec.Body.String()
				if !strings.Contains(body, tt.expectedSubstr) {
					t.Fatalf("expected response to contain %q, got %q", tt.expectedSubstr, body)
				}
			}
		})
	}
}

func TestHandleThemeTree_UpdateAndCancel(t *testing.T) {
	t.Parallel()

	t.Run("update success", func(t *testing.T) {
		svc := &stubReservationService{reservation: successReservation()}
		req := httptest.NewRequest(http.MethodPut, "/themes/t1/reservations/res-123", bytes.NewBufferString(validReservationBody))
		rec := httptest.NewRecorder()

		HandleThemeTree(&stubThemeService{}, svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if svc.lastUpdate.ReservationID != "res-123" || svc.lastUpdate.KitThemeID != "t1" {
			t.Fatalf("unexpected update input: %+v", svc.lastUpdate)
		}
	})

	t.Run("update on cancelled reservation", func(t *testing.T) {
		svc := &stubReservationService{err: domain.ErrReservationCancelled}
		req := httptest.NewRequest(http.MethodPut, "/themes/t1/reservations/res-123", bytes.NewBufferString(validReservationBody))
		rec := httptest.NewRecorder()

		HandleThemeTree(&stubThemeService{}, svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `"code":"reservation_cancelled"`) {
			t.Fatalf("expected reservation_cancelled code, got %s", rec.Body.String())
		}
	})

	t.Run("cancel success", func(t *testing.T) {
		reservation := successReservation()
		reservation.Status = domain.ReservationStatusCancelled
		svc := &stubReservationService{reservation: reservation}
		req := httptest.NewRequest(http.MethodPost, "/themes/t1/reservations/res-123/cancel", nil)
		rec := httptest.NewRecorder()

		HandleThemeTree(&stubThemeService{}, svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `"status":"cancelled"`) {
			t.Fatalf("expected cancelled status in body, got %s", rec.Body.String())
		}
	})

	t.Run("cancel unknown reservation", func(t *testing.T) {
		svc := &stubReservationService{err: domain.ErrReservationNotFound}
		req := httptest.NewRequest(http.MethodPost, "/themes/t1/reservations/missing/cancel", nil)
		rec := httptest.NewRecorder()

		HandleThemeTree(&stubThemeService{}, svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("get theme", func(t *testing.T) {
		theme := domain.KitTheme{ID: "t1", Name: "Safari"}
		req := httptest.NewRequest(http.MethodGet, "/themes/t1", nil)
		rec := httptest.NewRecorder()

		HandleThemeTree(&stubThemeService{theme: theme}, &stubReservationService{}).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `"name":"Safari"`) {
			t.Fatalf("unexpected body: %s", rec.Body.String())
		}
	})
}

type stubReservationService struct {
	reservation domain.Reservation
	err         error
	lastReserve app.ReserveKitInput
	lastUpdate  app.UpdateReservationInput
}

func (s *stubReservationService) ReserveKit(_ context.Context, in app.ReserveKitInput) (domain.Reservation, error) {
	s.lastReserve = in
	return s.reservation, s.err
}

func (s *stubReservationService) UpdateReservation(_ context.Context, in app.UpdateReservationInput) (domain.Reservation, error) {
	s.lastUpdate = in
	return s.reservation, s.err
}

func (s *stubReservationService) CancelReservation(_ context.Context, _, _ string) (domain.Reservation, error) {
	return s.reservation, s.err
}

type stubThemeService struct {
	theme  domain.KitTheme
	themes []domain.KitTheme
	err    error
}

func (s *stubThemeService) CreateTheme(_ context.Context, name string) (domain.KitTheme, error) {
	if s.err != nil {
		return domain.KitTheme{}, s.err
	}
	return domain.KitTheme{ID: "t1", Name: name}, nil
}

func (s *stubThemeService) GetTheme(_ context.Context, _ string) (domain.KitTheme, error) {
	return s.theme, s.err
}

func (s *stubThemeService) ListThemes(_ context.Context, _, _ int) ([]domain.KitTheme, int, error) {
	return s.themes, len(s.themes), s.err
}
