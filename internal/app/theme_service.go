package app

import (
	"context"

	"github.com/raphaelgarcia7/decorrental-api/internal/domain"
)

// ThemeService covers theme management and read paths; reservation
// mutations live on ReservationService.
type ThemeService struct {
	repo ThemeRepository
}

func NewThemeService(repo ThemeRepository) *ThemeService {
	return &ThemeService{repo: repo}
}

func (s *ThemeService) CreateTheme(ctx context.Context, name string) (domain.KitTheme, error) {
	theme, err := domain.NewKitTheme(name)
	if err != nil {
		return domain.KitTheme{}, err
	}
	if err := s.repo.CreateTheme(ctx, theme); err != nil {
		return domain.KitTheme{}, err
	}
	return theme, nil
}

func (s *ThemeService) GetTheme(ctx context.Context, id string) (domain.KitTheme, error) {
	return s.repo.GetTheme(ctx, id)
}

// ListThemes returns one page of themes plus the total count.
func (s *ThemeService) ListThemes(ctx context.Context, page, pageSize int) ([]domain.KitTheme, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.repo.ListThemes(ctx, page, pageSize)
}
