package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/raphaelgarcia7/decorrental-api/internal/clock"
	"github.com/raphaelgarcia7/decorrental-api/internal/domain"
	"github.com/raphaelgarcia7/decorrental-api/internal/messaging"
)

// ThemeRepository persists kit themes and their reservations.
type ThemeRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetTheme(ctx context.Context, id string) (domain.KitTheme, error)
	ListThemes(ctx context.Context, page, pageSize int) ([]domain.KitTheme, int, error)
	CreateTheme(ctx context.Context, theme domain.KitTheme) error
	CreateReservation(ctx context.Context, reservation domain.Reservation) error
	ReplaceReservation(ctx context.Context, reservation domain.Reservation) error
	UpdateReservationStatus(ctx context.Context, reservationID string, status domain.ReservationStatus) error
}

// CategoryReader is the catalog slice the reservation flow needs.
type CategoryReader interface {
	GetCategory(ctx context.Context, id string) (domain.KitCategory, error)
}

// EventPublisher is satisfied by messaging.Publisher.
type EventPublisher interface {
	Publish(ctx context.Context, event messaging.IntegrationEvent) error
}

// ReservationService orchestrates the availability check against the theme
// aggregate. The whole check-then-write runs inside one transaction; the
// availability checker's item-type row locks serialize concurrent requests
// that compete for the same stock.
type ReservationService struct {
	themes     ThemeRepository
	categories CategoryReader
	checker    *AvailabilityChecker
	publisher  EventPublisher
	clock      clock.Clock
	logger     *zap.Logger
}

func NewReservationService(
	themes ThemeRepository,
	categories CategoryReader,
	checker *AvailabilityChecker,
	publisher EventPublisher,
	clk clock.Clock,
	logger *zap.Logger,
) *ReservationService {
	return &ReservationService{
		themes:     themes,
		categories: categories,
		checker:    checker,
		publisher:  publisher,
		clock:      clk,
		logger:     logger,
	}
}

type ReserveKitInput struct {
	KitThemeID          string
	KitCategoryID       string
	StartDate           time.Time
	EndDate             time.Time
	AllowStockOverride  bool
	StockOverrideReason string
	Customer            domain.CustomerDetails
}

func (s *ReservationService) ReserveKit(ctx context.Context, in ReserveKitInput) (domain.Reservation, error) {
	period, err := domain.NewDateRange(in.StartDate, in.EndDate)
	if err != nil {
		return domain.Reservation{}, err
	}

	var reservation domain.Reservation
	err = s.themes.WithTx(ctx, func(txCtx context.Context) error {
		theme, err := s.themes.GetTheme(txCtx, in.KitThemeID)
		if err != nil {
			return err
		}
		category, err := s.categories.GetCategory(txCtx, in.KitCategoryID)
		if err != nil {
			return err
		}
		if len(category.Items) == 0 {
			return domain.ErrEmptyCategory
		}

		shortages, err := s.checker.CheckAvailability(txCtx, category, period, "")
		if err != nil {
			return err
		}
		if len(shortages) > 0 && !in.AllowStockOverride {
			return shortageConflict(shortages)
		}
		// Override is only meaningful against an actual shortage; a
		// superfluous override request is normalized to a plain reservation.
		override := len(shortages) > 0 && in.AllowStockOverride

		reservation, err = theme.Reserve(category, period, override, in.StockOverrideReason, in.Customer)
		if err != nil {
			return err
		}
		return s.themes.CreateReservation(txCtx, reservation)
	})
	if err != nil {
		return domain.Reservation{}, err
	}

	s.publish(ctx, messaging.NewReservationCreated(s.clock.Now(), reservation))
	return reservation, nil
}

type UpdateReservationInput struct {
	KitThemeID          string
	ReservationID       string
	KitCategoryID       string
	StartDate           time.Time
	EndDate             time.Time
	AllowStockOverride  bool
	StockOverrideReason string
	Customer            domain.CustomerDetails
}

func (s *ReservationService) UpdateReservation(ctx context.Context, in UpdateReservationInput) (domain.Reservation, error) {
	period, err := domain.NewDateRange(in.StartDate, in.EndDate)
	if err != nil {
		return domain.Reservation{}, err
	}

	var reservation domain.Reservation
	err = s.themes.WithTx(ctx, func(txCtx context.Context) error {
		theme, err := s.themes.GetTheme(txCtx, in.KitThemeID)
		if err != nil {
			return err
		}
		category, err := s.categories.GetCategory(txCtx, in.KitCategoryID)
		if err != nil {
			return err
		}
		if len(category.Items) == 0 {
			return domain.ErrEmptyCategory
		}

		// The reservation being edited must not compete against itself.
		shortages, err := s.checker.CheckAvailability(txCtx, category, period, in.ReservationID)
		if err != nil {
			return err
		}
		if len(shortages) > 0 && !in.AllowStockOverride {
			return shortageConflict(shortages)
		}
		override := len(shortages) > 0 && in.AllowStockOverride

		reservation, err = theme.UpdateReservation(in.ReservationID, category, period, override, in.StockOverrideReason, in.Customer)
		if err != nil {
			return err
		}
		return s.themes.ReplaceReservation(txCtx, reservation)
	})
	if err != nil {
		return domain.Reservation{}, err
	}

	s.publish(ctx, messaging.NewReservationUpdated(s.clock.Now(), reservation))
	return reservation, nil
}

func (s *ReservationService) CancelReservation(ctx context.Context, kitThemeID, reservationID string) (domain.Reservation, error) {
	var reservation domain.Reservation
	var cancelled bool
	err := s.themes.WithTx(ctx, func(txCtx context.Context) error {
		theme, err := s.themes.GetTheme(txCtx, kitThemeID)
		if err != nil {
			return err
		}
		reservation, cancelled, err = theme.CancelReservation(reservationID)
		if err != nil {
			return err
		}
		// A repeat cancel is acknowledged without touching the row again.
		if !cancelled {
			return nil
		}
		return s.themes.UpdateReservationStatus(txCtx, reservation.ID, reservation.Status)
	})
	if err != nil {
		return domain.Reservation{}, err
	}

	if cancelled {
		s.publish(ctx, messaging.NewReservationCancelled(s.clock.Now(), reservation))
	}
	return reservation, nil
}

// publish is fire-and-forget: the reservation write is already committed, so
// a failed publish is logged and swallowed rather than rolled back.
func (s *ReservationService) publish(ctx context.Context, event messaging.IntegrationEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("integration event publish failed",
			zap.String("event", event.EventName()),
			zap.Error(err),
		)
	}
}

func shortageConflict(shortages []Shortage) error {
	return fmt.Errorf("%w for item %q in the selected period", domain.ErrInsufficientStock, shortages[0].ItemName)
}
