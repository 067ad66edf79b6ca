package domain

import (
	"strings"

	"github.com/google/uuid"
)

// KitReservation is a booking in the simple single-kit model: the kit itself
// is the unit of stock, with no bundle behind it.
type KitReservation struct {
	ID     string
	KitID  string
	Period DateRange
	Status ReservationStatus
}

// Kit is the single-unit booking model kept alongside the theme/bundle model.
// Double-booking here uses the inclusive-both-ends overlap test: a kit
// returned on day D cannot be handed out again on day D. The item-stock sweep
// uses half-open semantics instead; the two rules are intentionally distinct.
type Kit struct {
	ID           string
	Name         string
	Reservations []KitReservation
}

func NewKit(name string) (Kit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Kit{}, ErrKitNameRequired
	}
	return Kit{
		ID:   uuid.NewString(),
		Name: name,
	}, nil
}

// Reserve books the kit for the period, rejecting any inclusive overlap with
// an active reservation.
func (k *Kit) Reserve(period DateRange) (KitReservation, error) {
	for _, r := range k.Reservations {
		if r.Status == ReservationStatusActive && r.Period.Overlaps(period) {
			return KitReservation{}, ErrKitAlreadyReserved
		}
	}
	reservation := KitReservation{
		ID:     uuid.NewString(),
		KitID:  k.ID,
		Period: period,
		Status: ReservationStatusActive,
	}
	k.Reservations = append(k.Reservations, reservation)
	return reservation, nil
}

// CancelReservation is idempotent.
func (k *Kit) CancelReservation(reservationID string) (KitReservation, error) {
	for i := range k.Reservations {
		if k.Reservations[i].ID == reservationID {
			k.Reservations[i].Status = ReservationStatusCancelled
			return k.Reservations[i], nil
		}
	}
	return KitReservation{}, ErrReservationNotFound
}
