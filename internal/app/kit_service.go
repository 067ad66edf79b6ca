package app

import (
	"context"
	"time"

	"github.com/raphaelgarcia7/decorrental-api/internal/domain"
)

// KitRepository persists the single-unit kit model.
type KitRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetKit(ctx context.Context, id string) (domain.Kit, error)
	GetKitForUpdate(ctx context.Context, id string) (domain.Kit, error)
	ListKits(ctx context.Context, page, pageSize int) ([]domain.Kit, int, error)
	CreateKit(ctx context.Context, kit domain.Kit) error
	CreateKitReservation(ctx context.Context, reservation domain.KitReservation) error
	UpdateKitReservationStatus(ctx context.Context, reservationID string, status domain.ReservationStatus) error
}

// KitService handles the simple single-kit booking model, where the kit
// itself is the unit of stock and overlap is inclusive at both endpoints.
type KitService struct {
	repo KitRepository
}

func NewKitService(repo KitRepository) *KitService {
	return &KitService{repo: repo}
}

func (s *KitService) CreateKit(ctx context.Context, name string) (domain.Kit, error) {
	kit, err := domain.NewKit(name)
	if err != nil {
		return domain.Kit{}, err
	}
	if err := s.repo.CreateKit(ctx, kit); err != nil {
		return domain.Kit{}, err
	}
	return kit, nil
}

func (s *KitService) GetKit(ctx context.Context, id string) (domain.Kit, error) {
	return s.repo.GetKit(ctx, id)
}

func (s *KitService) ListKits(ctx context.Context, page, pageSize int) ([]domain.Kit, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.repo.ListKits(ctx, page, pageSize)
}

// ReserveKit books the kit for the period. The kit row is locked for the
// duration of the overlap check and the insert, so two concurrent requests
// for the same kit cannot both pass the check.
func (s *KitService) ReserveKit(ctx context.Context, kitID string, startDate, endDate time.Time) (domain.KitReservation, error) {
	period, err := domain.NewDateRange(startDate, endDate)
	if err != nil {
		return domain.KitReservation{}, err
	}

	var reservation domain.KitReservation
	err = s.repo.WithTx(ctx, func(txCtx context.Context) error {
		kit, err := s.repo.GetKitForUpdate(txCtx, kitID)
		if err != nil {
			return err
		}
		reservation, err = kit.Reserve(period)
		if err != nil {
			return err
		}
		return s.repo.CreateKitReservation(txCtx, reservation)
	})
	if err != nil {
		return domain.KitReservation{}, err
	}
	return reservation, nil
}

func (s *KitService) CancelReservation(ctx context.Context, kitID, reservationID string) (domain.KitReservation, error) {
	var reservation domain.KitReservation
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		kit, err := s.repo.GetKitForUpdate(txCtx, kitID)
		if err != nil {
			return err
		}
		reservation, err = kit.CancelReservation(reservationID)
		if err != nil {
			return err
		}
		return s.repo.UpdateKitReservationStatus(txCtx, reservation.ID, reservation.Status)
	})
	if err != nil {
		return domain.KitReservation{}, err
	}
	return reservation, nil
}
