package app

import (
	"context"

	"github.com/raphaelgarcia7/decorrental-api/internal/domain"
)

// CatalogRepository persists item types and kit categories.
type CatalogRepository interface {
	CreateItemType(ctx context.Context, itemType domain.ItemType) error
	GetItemType(ctx context.Context, id string) (domain.ItemType, error)
	GetItemTypesForUpdate(ctx context.Context, ids []string) ([]domain.ItemType, error)
	ListItemTypes(ctx context.Context) ([]domain.ItemType, error)
	UpdateItemTypeStock(ctx context.Context, id string, totalStock int) error
	CreateCategory(ctx context.Context, category domain.KitCategory) error
	GetCategory(ctx context.Context, id string) (domain.KitCategory, error)
	ListCategories(ctx context.Context) ([]domain.KitCategory, error)
	UpsertCategoryItem(ctx context.Context, item domain.CategoryItem) error
}

// CatalogService manages the stock-bearing side of the system: item types
// and the bundle templates that consume them.
type CatalogService struct {
	repo CatalogRepository
}

func NewCatalogService(repo CatalogRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

func (s *CatalogService) CreateItemType(ctx context.Context, name string, totalStock int) (domain.ItemType, error) {
	itemType, err := domain.NewItemType(name, totalStock)
	if err != nil {
		return domain.ItemType{}, err
	}
	if err := s.repo.CreateItemType(ctx, itemType); err != nil {
		return domain.ItemType{}, err
	}
	return itemType, nil
}

func (s *CatalogService) GetItemType(ctx context.Context, id string) (domain.ItemType, error) {
	return s.repo.GetItemType(ctx, id)
}

func (s *CatalogService) ListItemTypes(ctx context.Context) ([]domain.ItemType, error) {
	return s.repo.ListItemTypes(ctx)
}

// UpdateItemStock replaces an item type's total capacity. Shrinking stock
// does not retroactively invalidate admitted reservations; they simply
// consume more of the new capacity.
func (s *CatalogService) UpdateItemStock(ctx context.Context, id string, totalStock int) (domain.ItemType, error) {
	itemType, err := s.repo.GetItemType(ctx, id)
	if err != nil {
		return domain.ItemType{}, err
	}
	if err := itemType.UpdateStock(totalStock); err != nil {
		return domain.ItemType{}, err
	}
	if err := s.repo.UpdateItemTypeStock(ctx, itemType.ID, itemType.TotalStock); err != nil {
		return domain.ItemType{}, err
	}
	return itemType, nil
}

func (s *CatalogService) CreateCategory(ctx context.Context, name string) (domain.KitCategory, error) {
	category, err := domain.NewKitCategory(name)
	if err != nil {
		return domain.KitCategory{}, err
	}
	if err := s.repo.CreateCategory(ctx, category); err != nil {
		return domain.KitCategory{}, err
	}
	return category, nil
}

func (s *CatalogService) GetCategory(ctx context.Context, id string) (domain.KitCategory, error) {
	return s.repo.GetCategory(ctx, id)
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.KitCategory, error) {
	return s.repo.ListCategories(ctx)
}

// AddCategoryItem adds an item type to a category's bundle, or replaces its
// quantity when the bundle already carries that item type.
func (s *CatalogService) AddCategoryItem(ctx context.Context, categoryID, itemTypeID string, quantity int) (domain.KitCategory, error) {
	if _, err := s.repo.GetItemType(ctx, itemTypeID); err != nil {
		return domain.KitCategory{}, err
	}
	category, err := s.repo.GetCategory(ctx, categoryID)
	if err != nil {
		return domain.KitCategory{}, err
	}
	item, err := category.AddOrUpdateItem(itemTypeID, quantity)
	if err != nil {
		return domain.KitCategory{}, err
	}
	if err := s.repo.UpsertCategoryItem(ctx, item); err != nil {
		return domain.KitCategory{}, err
	}
	return category, nil
}
