package app

import (
	"context"
	"sort"
	"time"

	"github.com/raphaelgarcia7/decorrental-api/internal/domain"
)

// ReservationLine is one active reservation's demand for one item type, as
// returned by the storage query backing the availability check.
type ReservationLine struct {
	ReservationID string
	ItemTypeID    string
	Quantity      int
	Period        domain.DateRange
}

// Shortage names an item type whose capacity would be exceeded by admitting
// the candidate reservation.
type Shortage struct {
	ItemTypeID string
	ItemName   string
}

// ItemTypeLocker loads the item types referenced by a bundle while taking
// row locks on them, so that concurrent admission decisions for the same
// item types serialize on the database.
type ItemTypeLocker interface {
	GetItemTypesForUpdate(ctx context.Context, ids []string) ([]domain.ItemType, error)
}

// ReservationLineQuery returns the active reservation lines whose period
// intersects the window, restricted to the given item types. When
// excludeReservationID is non-empty that reservation's own lines are left
// out, so an edit does not compete against itself.
type ReservationLineQuery interface {
	ActiveLines(ctx context.Context, period domain.DateRange, itemTypeIDs []string, excludeReservationID string) ([]ReservationLine, error)
}

// AvailabilityChecker decides whether a candidate (category, period) pair can
// be admitted without pushing any item type's peak concurrent demand over its
// total stock. It must run inside the same transaction as the reservation
// write; the item-type row locks it takes are what make check-then-write
// admission safe under concurrency.
type AvailabilityChecker struct {
	itemTypes ItemTypeLocker
	lines     ReservationLineQuery
}

func NewAvailabilityChecker(itemTypes ItemTypeLocker, lines ReservationLineQuery) *AvailabilityChecker {
	return &AvailabilityChecker{
		itemTypes: itemTypes,
		lines:     lines,
	}
}

// CheckAvailability returns every item type of the category that would be
// short in the period, not just the first, so the caller can make an
// all-or-nothing override decision. An empty result means the candidate fits.
func (c *AvailabilityChecker) CheckAvailability(
	ctx context.Context,
	category domain.KitCategory,
	period domain.DateRange,
	excludeReservationID string,
) ([]Shortage, error) {
	demands := category.Demands()

	ids := make([]string, 0, len(demands))
	for id := range demands {
		ids = append(ids, id)
	}
	// Deterministic lock order keeps concurrent checks deadlock-free.
	sort.Strings(ids)

	itemTypes, err := c.itemTypes.GetItemTypesForUpdate(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(itemTypes) != len(ids) {
		return nil, domain.ErrUnknownItemType
	}

	lines, err := c.lines.ActiveLines(ctx, period, ids, excludeReservationID)
	if err != nil {
		return nil, err
	}

	var shortages []Shortage
	for _, itemType := range itemTypes {
		required := demands[itemType.ID]
		peak := peakReservedQuantity(itemType.ID, period, lines)
		if peak+required > itemType.TotalStock {
			shortages = append(shortages, Shortage{
				ItemTypeID: itemType.ID,
				ItemName:   itemType.Name,
			})
		}
	}
	return shortages, nil
}

// peakReservedQuantity computes the maximum concurrent reserved quantity of
// one item type within the candidate period, via a sweep over signed
// quantity events. Each competing line is clipped to its intersection with
// the period, then contributes +quantity at the clipped start and -quantity
// at the clipped end: stock is held half-open, released on the end day
// itself. Ties at the same date apply negative deltas first, so a same-day
// release frees capacity before a same-day pickup consumes it. A line that
// merely touches the candidate at a boundary therefore contributes nothing
// to the peak, while two lines both covering an interior day stack.
func peakReservedQuantity(itemTypeID string, period domain.DateRange, lines []ReservationLine) int {
	type stockEvent struct {
		at    time.Time
		delta int
	}

	var events []stockEvent
	for _, line := range lines {
		if line.ItemTypeID != itemTypeID {
			continue
		}
		start := line.Period.Start
		if period.Start.After(start) {
			start = period.Start
		}
		end := line.Period.End
		if period.End.Before(end) {
			end = period.End
		}
		if end.Before(start) {
			continue
		}
		events = append(events,
			stockEvent{at: start, delta: line.Quantity},
			stockEvent{at: end, delta: -line.Quantity},
		)
	}

	sort.Slice(events, func(i, j int) bool {
		if !events[i].at.Equal(events[j].at) {
			return events[i].at.Before(events[j].at)
		}
		return events[i].delta < events[j].delta
	})

	running, peak := 0, 0
	for _, ev := range events {
		running += ev.delta
		if running > peak {
			peak = running
		}
	}
	return peak
}
