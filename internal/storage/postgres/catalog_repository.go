package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/raphaelgarcia7/decorrental-api/internal/domain"
)

// CatalogRepository persists item types and kit categories.
type CatalogRepository struct {
	pool *pgxpool.Pool
}

func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{pool: pool}
}

func (r *CatalogRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *CatalogRepository) CreateItemType(ctx context.Context, itemType domain.ItemType) error {
	const stmt = `
INSERT INTO item_types (id, name, total_stock)
VALUES ($1, $2, $3)`
	_, err := r.exec(ctx, stmt, itemType.ID, itemType.Name, itemType.TotalStock)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrItemTypeExists
		}
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create item type: %w", err)
	}
	return nil
}

func (r *CatalogRepository) GetItemType(ctx context.Context, id string) (domain.ItemType, error) {
	const query = `SELECT id, name, total_stock FROM item_types WHERE id = $1`
	var it domain.ItemType
	err := r.queryRow(ctx, query, id).Scan(&it.ID, &it.Name, &it.TotalStock)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ItemType{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.ItemType{}, domain.ErrItemTypeNotFound
		}
		return domain.ItemType{}, fmt.Errorf("get item type: %w", err)
	}
	return it, nil
}

// GetItemTypesForUpdate locks the item type rows for the rest of the
// transaction. Rows are locked in id order so that concurrent availability
// checks over overlapping bundles cannot deadlock.
func (r *CatalogRepository) GetItemTypesForUpdate(ctx context.Context, ids []string) ([]domain.ItemType, error) {
	const query = `
SELECT id, name, total_stock
FROM item_types
WHERE id = ANY($1)
ORDER BY id
FOR UPDATE`
	rows, err := r.query(ctx, query, ids)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("lock item types: %w", err)
	}
	defer rows.Close()

	var itemTypes []domain.ItemType
	for rows.Next() {
		var it domain.ItemType
		if err := rows.Scan(&it.ID, &it.Name, &it.TotalStock); err != nil {
			return nil, fmt.Errorf("scan item type: %w", err)
		}
		itemTypes = append(itemTypes, it)
	}
	if rows.Err() != nil {
		if isInvalidUUID(rows.Err()) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("iterate item types: %w", rows.Err())
	}
	return itemTypes, nil
}

func (r *CatalogRepository) ListItemTypes(ctx context.Context) ([]domain.ItemType, error) {
	const query = `
SELECT id, name, total_stock
FROM item_types
ORDER BY name ASC`
	rows, err := r.query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list item types: %w", err)
	}
	defer rows.Close()

	var itemTypes []domain.ItemType
	for rows.Next() {
		var it domain.ItemType
		if err := rows.Scan(&it.ID, &it.Name, &it.TotalStock); err != nil {
			return nil, fmt.Errorf("scan item type: %w", err)
		}
		itemTypes = append(itemTypes, it)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate item types: %w", rows.Err())
	}
	return itemTypes, nil
}

func (r *CatalogRepository) UpdateItemTypeStock(ctx context.Context, id string, totalStock int) error {
	const stmt = `UPDATE item_types SET total_stock = $2 WHERE id = $1`
	tag, err := r.exec(ctx, stmt, id, totalStock)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("update item type stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrItemTypeNotFound
	}
	return nil
}

func (r *CatalogRepository) CreateCategory(ctx context.Context, category domain.KitCategory) error {
	const stmt = `
INSERT INTO kit_categories (id, name)
VALUES ($1, $2)`
	_, err := r.exec(ctx, stmt, category.ID, category.Name)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

func (r *CatalogRepository) GetCategory(ctx context.Context, id string) (domain.KitCategory, error) {
	const query = `SELECT id, name FROM kit_categories WHERE id = $1`
	var category domain.KitCategory
	err := r.queryRow(ctx, query, id).Scan(&category.ID, &category.Name)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.KitCategory{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.KitCategory{}, domain.ErrCategoryNotFound
		}
		return domain.KitCategory{}, fmt.Errorf("get category: %w", err)
	}

	items, err := r.categoryItems(ctx, id)
	if err != nil {
		return domain.KitCategory{}, err
	}
	category.Items = items
	return category, nil
}

func (r *CatalogRepository) ListCategories(ctx context.Context) ([]domain.KitCategory, error) {
	const query = `
SELECT id, name
FROM kit_categories
ORDER BY name ASC`
	rows, err := r.query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.KitCategory
	for rows.Next() {
		var category domain.KitCategory
		if err := rows.Scan(&category.ID, &category.Name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, category)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate categories: %w", rows.Err())
	}

	for i := range categories {
		items, err := r.categoryItems(ctx, categories[i].ID)
		if err != nil {
			return nil, err
		}
		categories[i].Items = items
	}
	return categories, nil
}

// UpsertCategoryItem inserts a bundle line, or replaces the quantity when the
// category already carries that item type.
func (r *CatalogRepository) UpsertCategoryItem(ctx context.Context, item domain.CategoryItem) error {
	const stmt = `
INSERT INTO category_items (id, kit_category_id, item_type_id, quantity)
VALUES ($1, $2, $3, $4)
ON CONFLICT (kit_category_id, item_type_id) DO UPDATE SET quantity = EXCLUDED.quantity`
	_, err := r.exec(ctx, stmt, item.ID, item.KitCategoryID, item.ItemTypeID, item.Quantity)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		if isForeignKeyViolation(err) {
			return domain.ErrCategoryNotFound
		}
		return fmt.Errorf("upsert category item: %w", err)
	}
	return nil
}

func (r *CatalogRepository) categoryItems(ctx context.Context, categoryID string) ([]domain.CategoryItem, error) {
	const query = `
SELECT id, kit_category_id, item_type_id, quantity
FROM category_items
WHERE kit_category_id = $1
ORDER BY created_at ASC`
	rows, err := r.query(ctx, query, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list category items: %w", err)
	}
	defer rows.Close()

	var items []domain.CategoryItem
	for rows.Next() {
		var item domain.CategoryItem
		if err := rows.Scan(&item.ID, &item.KitCategoryID, &item.ItemTypeID, &item.Quantity); err != nil {
			return nil, fmt.Errorf("scan category item: %w", err)
		}
		items = append(items, item)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate category items: %w", rows.Err())
	}
	return items, nil
}

func (r *CatalogRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *CatalogRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}

func (r *CatalogRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
