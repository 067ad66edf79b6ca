package domain

import (
	"strings"

	"github.com/google/uuid"
)

type ReservationStatus string

const (
	ReservationStatusActive    ReservationStatus = "active"
	ReservationStatusCancelled ReservationStatus = "cancelled"
)

const (
	customerNameMaxLen     = 120
	customerDocumentMaxLen = 40
	customerPhoneMaxLen    = 30
	customerAddressMaxLen  = 250
	notesMaxLen            = 500
)

// ReservationItem is one immutable line of a reservation's item snapshot.
type ReservationItem struct {
	ID            string
	ReservationID string
	ItemTypeID    string
	Quantity      int
}

// CustomerDetails carries the customer and billing fields of a reservation.
// Normalize trims every field; optional fields stay empty when blank.
type CustomerDetails struct {
	Name           string
	DocumentNumber string
	PhoneNumber    string
	Address        string
	Notes          string
	HasBalloonArch bool
	IsEntryPaid    bool
}

func (d CustomerDetails) normalize() CustomerDetails {
	d.Name = strings.TrimSpace(d.Name)
	d.DocumentNumber = strings.TrimSpace(d.DocumentNumber)
	d.PhoneNumber = strings.TrimSpace(d.PhoneNumber)
	d.Address = strings.TrimSpace(d.Address)
	d.Notes = strings.TrimSpace(d.Notes)
	return d
}

func (d CustomerDetails) validate() error {
	switch {
	case d.Name == "":
		return ErrCustomerNameRequired
	case len(d.Name) > customerNameMaxLen:
		return ErrCustomerNameTooLong
	case d.DocumentNumber == "":
		return ErrCustomerDocumentRequired
	case len(d.DocumentNumber) > customerDocumentMaxLen:
		return ErrCustomerDocumentTooLong
	case d.PhoneNumber == "":
		return ErrCustomerPhoneRequired
	case len(d.PhoneNumber) > customerPhoneMaxLen:
		return ErrCustomerPhoneTooLong
	case d.Address == "":
		return ErrCustomerAddressRequired
	case len(d.Address) > customerAddressMaxLen:
		return ErrCustomerAddressTooLong
	case len(d.Notes) > notesMaxLen:
		return ErrNotesTooLong
	}
	return nil
}

// Reservation is theme-owned. Items are a frozen copy of the owning
// category's bundle taken when the reservation was created or last updated;
// later edits to the category template never reach it.
type Reservation struct {
	ID                  string
	KitThemeID          string
	KitCategoryID       string
	Period              DateRange
	Status              ReservationStatus
	IsStockOverride     bool
	StockOverrideReason string
	Customer            CustomerDetails
	Items               []ReservationItem
}

func newReservation(
	kitThemeID string,
	category KitCategory,
	period DateRange,
	stockOverride bool,
	overrideReason string,
	customer CustomerDetails,
) (Reservation, error) {
	if len(category.Items) == 0 {
		return Reservation{}, ErrEmptyCategory
	}
	overrideReason = strings.TrimSpace(overrideReason)
	if stockOverride && overrideReason == "" {
		return Reservation{}, ErrOverrideReasonRequired
	}
	if !stockOverride {
		// An override reason without an override is meaningless; drop it.
		overrideReason = ""
	}
	customer = customer.normalize()
	if err := customer.validate(); err != nil {
		return Reservation{}, err
	}

	id := uuid.NewString()
	return Reservation{
		ID:                  id,
		KitThemeID:          kitThemeID,
		KitCategoryID:       category.ID,
		Period:              period,
		Status:              ReservationStatusActive,
		IsStockOverride:     stockOverride,
		StockOverrideReason: overrideReason,
		Customer:            customer,
		Items:               snapshotItems(id, category),
	}, nil
}

// snapshotItems copies the category bundle into owned reservation lines.
func snapshotItems(reservationID string, category KitCategory) []ReservationItem {
	items := make([]ReservationItem, 0, len(category.Items))
	for _, ci := range category.Items {
		items = append(items, ReservationItem{
			ID:            uuid.NewString(),
			ReservationID: reservationID,
			ItemTypeID:    ci.ItemTypeID,
			Quantity:      ci.Quantity,
		})
	}
	return items
}

// update replaces the category binding, period, override state, and customer
// fields, and re-takes the item snapshot from the (possibly different)
// category. Cancelled reservations cannot be edited.
func (r *Reservation) update(
	category KitCategory,
	period DateRange,
	stockOverride bool,
	overrideReason string,
	customer CustomerDetails,
) error {
	if r.Status == ReservationStatusCancelled {
		return ErrReservationCancelled
	}
	if len(category.Items) == 0 {
		return ErrEmptyCategory
	}
	overrideReason = strings.TrimSpace(overrideReason)
	if stockOverride && overrideReason == "" {
		return ErrOverrideReasonRequired
	}
	if !stockOverride {
		overrideReason = ""
	}
	customer = customer.normalize()
	if err := customer.validate(); err != nil {
		return err
	}

	r.KitCategoryID = category.ID
	r.Period = period
	r.IsStockOverride = stockOverride
	r.StockOverrideReason = overrideReason
	r.Customer = customer
	r.Items = snapshotItems(r.ID, category)
	return nil
}

// cancel reports whether this call performed the transition. Cancellation is
// the only removal mechanism and is permanent; a repeat cancel changes
// nothing.
func (r *Reservation) cancel() bool {
	if r.Status == ReservationStatusCancelled {
		return false
	}
	r.Status = ReservationStatusCancelled
	return true
}
