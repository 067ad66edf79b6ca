package domain

import (
	"strings"

	"github.com/google/uuid"
)

// KitTheme is the bookable subject (a themed decoration set) and the
// aggregate root for its reservations: every reservation mutation goes
// through the theme.
type KitTheme struct {
	ID           string
	Name         string
	Reservations []Reservation
}

func NewKitTheme(name string) (KitTheme, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return KitTheme{}, ErrThemeNameRequired
	}
	return KitTheme{
		ID:   uuid.NewString(),
		Name: name,
	}, nil
}

// Reserve appends a new active reservation whose item snapshot is taken from
// the category. Stock policy is not checked here; the reservation service
// runs the availability check and decides the effective override before
// calling in.
func (t *KitTheme) Reserve(
	category KitCategory,
	period DateRange,
	stockOverride bool,
	overrideReason string,
	customer CustomerDetails,
) (Reservation, error) {
	reservation, err := newReservation(t.ID, category, period, stockOverride, overrideReason, customer)
	if err != nil {
		return Reservation{}, err
	}
	t.Reservations = append(t.Reservations, reservation)
	return reservation, nil
}

// UpdateReservation replaces the reservation's fields and rebuilds its item
// snapshot from the given category. Cancelled reservations are rejected.
func (t *KitTheme) UpdateReservation(
	reservationID string,
	category KitCategory,
	period DateRange,
	stockOverride bool,
	overrideReason string,
	customer CustomerDetails,
) (Reservation, error) {
	i := t.reservationIndex(reservationID)
	if i < 0 {
		return Reservation{}, ErrReservationNotFound
	}
	if err := t.Reservations[i].update(category, period, stockOverride, overrideReason, customer); err != nil {
		return Reservation{}, err
	}
	return t.Reservations[i], nil
}

// CancelReservation moves the reservation to its terminal state and reports
// whether this call performed the transition. Cancelling an already-cancelled
// reservation returns it unchanged with changed == false, so callers can skip
// the redundant write and event.
func (t *KitTheme) CancelReservation(reservationID string) (reservation Reservation, changed bool, err error) {
	i := t.reservationIndex(reservationID)
	if i < 0 {
		return Reservation{}, false, ErrReservationNotFound
	}
	changed = t.Reservations[i].cancel()
	return t.Reservations[i], changed, nil
}

func (t *KitTheme) reservationIndex(reservationID string) int {
	for i := range t.Reservations {
		if t.Reservations[i].ID == reservationID {
			return i
		}
	}
	return -1
}
