package messaging

import (
	"time"

	"github.com/google/uuid"

	"github.com/raphaelgarcia7/decorrental-api/internal/domain"
)

const dateLayout = "2006-01-02"

// IntegrationEvent is a committed fact published to the outside world.
// Publication is best-effort: a failed publish is logged and swallowed,
// never rolled back against the already-committed write.
type IntegrationEvent interface {
	EventName() string
	// Key groups related events on the same partition.
	Key() string
}

type eventEnvelope struct {
	EventID    string `json:"eventId"`
	OccurredAt string `json:"occurredAt"`
}

func newEnvelope(occurredAt time.Time) eventEnvelope {
	return eventEnvelope{
		EventID:    uuid.NewString(),
		OccurredAt: occurredAt.UTC().Format(time.RFC3339),
	}
}

type ReservationCreated struct {
	eventEnvelope
	KitThemeID    string `json:"kitThemeId"`
	KitCategoryID string `json:"kitCategoryId"`
	ReservationID string `json:"reservationId"`
	StartDate     string `json:"startDate"`
	EndDate       string `json:"endDate"`
	Status        string `json:"status"`
}

func NewReservationCreated(occurredAt time.Time, reservation domain.Reservation) ReservationCreated {
	return ReservationCreated{
		eventEnvelope: newEnvelope(occurredAt),
		KitThemeID:    reservation.KitThemeID,
		KitCategoryID: reservation.KitCategoryID,
		ReservationID: reservation.ID,
		StartDate:     reservation.Period.Start.Format(dateLayout),
		EndDate:       reservation.Period.End.Format(dateLayout),
		Status:        string(reservation.Status),
	}
}

func (ReservationCreated) EventName() string { return "reservation.created" }
func (e ReservationCreated) Key() string     { return e.ReservationID }

type ReservationUpdated struct {
	eventEnvelope
	KitThemeID    string `json:"kitThemeId"`
	KitCategoryID string `json:"kitCategoryId"`
	ReservationID string `json:"reservationId"`
	StartDate     string `json:"startDate"`
	EndDate       string `json:"endDate"`
	Status        string `json:"status"`
}

func NewReservationUpdated(occurredAt time.Time, reservation domain.Reservation) ReservationUpdated {
	return ReservationUpdated{
		eventEnvelope: newEnvelope(occurredAt),
		KitThemeID:    reservation.KitThemeID,
		KitCategoryID: reservation.KitCategoryID,
		ReservationID: reservation.ID,
		StartDate:     reservation.Period.Start.Format(dateLayout),
		EndDate:       reservation.Period.End.Format(dateLayout),
		Status:        string(reservation.Status),
	}
}

func (ReservationUpdated) EventName() string { return "reservation.updated" }
func (e ReservationUpdated) Key() string     { return e.ReservationID }

type ReservationCancelled struct {
	eventEnvelope
	KitThemeID    string `json:"kitThemeId"`
	ReservationID string `json:"reservationId"`
	Status        string `json:"status"`
}

func NewReservationCancelled(occurredAt time.Time, reservation domain.Reservation) ReservationCancelled {
	return ReservationCancelled{
		eventEnvelope: newEnvelope(occurredAt),
		KitThemeID:    reservation.KitThemeID,
		ReservationID: reservation.ID,
		Status:        string(reservation.Status),
	}
}

func (ReservationCancelled) EventName() string { return "reservation.cancelled" }
func (e ReservationCancelled) Key() string     { return e.ReservationID }
