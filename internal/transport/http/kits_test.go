package http

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/raphaelgarcia7/decorrental-api/internal/domain"
)

type stubKitService struct {
	kit         domain.Kit
	reservation domain.KitReservation
	err         error
}

func (s *stubKitService) CreateKit(_ context.Context, name string) (domain.Kit, error) {
	if s.err != nil {
		return domain.Kit{}, s.err
	}
	return domain.Kit{ID: "k1", Name: name}, nil
}

func (s *stubKitService) GetKit(_ context.Context, _ string) (domain.Kit, error) {
	return s.kit, s.err
}

func (s *stubKitService) ListKits(_ context.Context, _, _ int) ([]domain.Kit, int, error) {
	if s.err != nil {
		return nil, 0, s.err
	}
	return []domain.Kit{s.kit}, 1, nil
}

func (s *stubKitService) ReserveKit(_ context.Context, _ string, _, _ time.Time) (domain.KitReservation, error) {
	return s.reservation, s.err
}

func (s *stubKitService) CancelReservation(_ context.Context, _, _ string) (domain.KitReservation, error) {
	return s.reservation, s.err
}

func TestHandleKitTree(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.January, 12, 0, 0, 0, 0, time.UTC)
	reservation := domain.KitReservation{
		ID:     "kr1",
		KitID:  "k1",
		Period: domain.DateRange{Start: start, End: end},
		Status: domain.ReservationStatusActive,
	}

	t.Run("reserve success", func(t *testing.T) {
		svc := &stubKitService{reservation: reservation}
		req := httptest.NewRequest(http.MethodPost, "/kits/k1/reservations",
			bytes.NewBufferString(`{"start_date":"2026-01-10","end_date":"2026-01-12"}`))
		rec := httptest.NewRecorder()

		HandleKitTree(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if !strings.Contains(rec.Body.String(), `"start_date":"2026-01-10"`) {
			t.Fatalf("unexpected body: %s", rec.Body.String())
		}
	})

	t.Run("reserve conflict", func(t *testing.T) {
		svc := &stubKitService{err: domain.ErrKitAlreadyReserved}
		req := httptest.NewRequest(http.MethodPost, "/kits/k1/reservations",
			bytes.NewBufferString(`{"start_date":"2026-01-10","end_date":"2026-01-12"}`))
		rec := httptest.NewRecorder()

		HandleKitTree(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "kit_already_reserved") {
			t.Fatalf("unexpected body: %s", rec.Body.String())
		}
	})

	t.Run("reserve malformed date", func(t *testing.T) {
		svc := &stubKitService{}
		req := httptest.NewRequest(http.MethodPost, "/kits/k1/reservations",
			bytes.NewBufferString(`{"start_date":"Jan 10","end_date":"2026-01-12"}`))
		rec := httptest.NewRecorder()

		HandleKitTree(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("cancel", func(t *testing.T) {
		cancelled := reservation
		cancelled.Status = domain.ReservationStatusCancelled
		svc := &stubKitService{reservation: cancelled}
		req := httptest.NewRequest(http.MethodPost, "/kits/k1/reservations/kr1/cancel", nil)
		rec := httptest.NewRecorder()

		HandleKitTree(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"status":"cancelled"`) {
			t.Fatalf("unexpected response %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("get kit", func(t *testing.T) {
		svc := &stubKitService{kit: domain.Kit{ID: "k1", Name: "Gold Package"}}
		req := httptest.NewRequest(http.MethodGet, "/kits/k1", nil)
		rec := httptest.NewRecorder()

		HandleKitTree(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Gold Package") {
			t.Fatalf("unexpected response %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("kit not found", func(t *testing.T) {
		svc := &stubKitService{err: domain.ErrKitNotFound}
		req := httptest.NewRequest(http.MethodGet, "/kits/missing", nil)
		rec := httptest.NewRecorder()

		HandleKitTree(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestHandleKits(t *testing.T) {
	t.Parallel()

	t.Run("create", func(t *testing.T) {
		svc := &stubKitService{}
		req := httptest.NewRequest(http.MethodPost, "/kits", bytes.NewBufferString(`{"name":"Gold Package"}`))
		rec := httptest.NewRecorder()

		HandleKits(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("list", func(t *testing.T) {
		svc := &stubKitService{kit: domain.Kit{ID: "k1", Name: "Gold Package"}}
		req := httptest.NewRequest(http.MethodGet, "/kits?page=1&page_size=10", nil)
		rec := httptest.NewRecorder()

		HandleKits(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"total":1`) {
			t.Fatalf("unexpected response %d: %s", rec.Code, rec.Body.String())
		}
	})
}
