package messaging

import (
	"strings"
	"testing"
	"time"

	"github.com/raphaelgarcia7/decorrental-api/internal/domain"
)

func TestReservationEvents(t *testing.T) {
	t.Parallel()

	occurredAt := time.Date(2026, time.February, 20, 15, 30, 0, 0, time.UTC)
	reservation := domain.Reservation{
		ID:            "res-123",
		KitThemeID:    "t1",
		KitCategoryID: "c1",
		Period: domain.DateRange{
			Start: time.Date(2026, time.February, 22, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2026, time.February, 24, 0, 0, 0, 0, time.UTC),
		},
		Status: domain.ReservationStatusActive,
	}

	t.Run("created event payload", func(t *testing.T) {
		event := NewReservationCreated(occurredAt, reservation)
		if event.EventName() != "reservation.created" {
			t.Fatalf("unexpected name: %s", event.EventName())
		}
		if event.Key() != "res-123" {
			t.Fatalf("unexpected key: %s", event.Key())
		}
		if event.EventID == "" {
			t.Fatalf("expected a generated event id")
		}
		if event.OccurredAt != "2026-02-20T15:30:00Z" {
			t.Fatalf("unexpected occurredAt: %s", event.OccurredAt)
		}

		payload, err := json.Marshal(event)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		body := string(payload)
		for _, want := range []string{
			`"kitThemeId":"t1"`,
			`"reservationId":"res-123"`,
			`"startDate":"2026-02-22"`,
			`"endDate":"2026-02-24"`,
			`"status":"active"`,
		} {
			if !strings.Contains(body, want) {
				t.Fatalf("expected payload to contain %s, got %s", want, body)
			}
		}
	})

	t.Run("cancelled event carries no period", func(t *testing.T) {
		cancelled := reservation
		cancelled.Status = domain.ReservationStatusCancelled
		event := NewReservationCancelled(occurredAt, cancelled)

		payload, err := json.Marshal(event)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		body := string(payload)
		if strings.Contains(body, "startDate") {
			t.Fatalf("cancelled event should not carry period: %s", body)
		}
		if !strings.Contains(body, `"status":"cancelled"`) {
			t.Fatalf("expected cancelled status, got %s", body)
		}
	})
}
