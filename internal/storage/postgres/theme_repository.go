package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/raphaelgarcia7/decorrental-api/internal/domain"
)

// ThemeRepository persists kit themes and their reservations. Reservation
// item snapshots live in their own table and are written together with the
// reservation row.
type ThemeRepository struct {
	pool *pgxpool.Pool
}

func NewThemeRepository(pool *pgxpool.Pool) *ThemeRepository {
	return &ThemeRepository{pool: pool}
}

func (r *ThemeRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *ThemeRepository) CreateTheme(ctx context.Context, theme domain.KitTheme) error {
	const stmt = `
INSERT INTO kit_themes (id, name)
VALUES ($1, $2)`
	_, err := r.exec(ctx, stmt, theme.ID, theme.Name)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create theme: %w", err)
	}
	return nil
}

func (r *ThemeRepository) GetTheme(ctx context.Context, id string) (domain.KitTheme, error) {
	const query = `SELECT id, name FROM kit_themes WHERE id = $1`
	var theme domain.KitTheme
	err := r.queryRow(ctx, query, id).Scan(&theme.ID, &theme.Name)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.KitTheme{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.KitTheme{}, domain.ErrThemeNotFound
		}
		return domain.KitTheme{}, fmt.Errorf("get theme: %w", err)
	}

	reservations, err := r.themeReservations(ctx, id)
	if err != nil {
		return domain.KitTheme{}, err
	}
	theme.Reservations = reservations
	return theme, nil
}

func (r *ThemeRepository) ListThemes(ctx context.Context, page, pageSize int) ([]domain.KitTheme, int, error) {
	const countQuery = `SELECT COUNT(*) FROM kit_themes`
	var total int
	if err := r.queryRow(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count themes: %w", err)
	}

	const query = `
SELECT id, name
FROM kit_themes
ORDER BY name ASC
LIMIT $1 OFFSET $2`
	rows, err := r.query(ctx, query, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("list themes: %w", err)
	}
	defer rows.Close()

	var themes []domain.KitTheme
	for rows.Next() {
		var theme domain.KitTheme
		if err := rows.Scan(&theme.ID, &theme.Name); err != nil {
			return nil, 0, fmt.Errorf("scan theme: %w", err)
		}
		themes = append(themes, theme)
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("iterate themes: %w", rows.Err())
	}

	for i := range themes {
		reservations, err := r.themeReservations(ctx, themes[i].ID)
		if err != nil {
			return nil, 0, err
		}
		themes[i].Reservations = reservations
	}
	return themes, total, nil
}

func (r *ThemeRepository) CreateReservation(ctx context.Context, reservation domain.Reservation) error {
	const stmt = `
INSERT INTO reservations (
	id, kit_theme_id, kit_category_id, start_date, end_date, status,
	is_stock_override, stock_override_reason,
	customer_name, customer_document, customer_phone, customer_address,
	notes, has_balloon_arch, is_entry_paid
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	_, err := r.exec(ctx, stmt,
		reservation.ID,
		reservation.KitThemeID,
		reservation.KitCategoryID,
		reservation.Period.Start,
		reservation.Period.End,
		reservation.Status,
		reservation.IsStockOverride,
		reservation.StockOverrideReason,
		reservation.Customer.Name,
		reservation.Customer.DocumentNumber,
		reservation.Customer.PhoneNumber,
		reservation.Customer.Address,
		reservation.Customer.Notes,
		reservation.Customer.HasBalloonArch,
		reservation.Customer.IsEntryPaid,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		if isForeignKeyViolation(err) {
			return domain.ErrThemeNotFound
		}
		return fmt.Errorf("create reservation: %w", err)
	}
	return r.insertItems(ctx, reservation)
}

// ReplaceReservation rewrites the reservation row and its item snapshot.
// The snapshot rows are replaced wholesale; the reservation's new snapshot
// was rebuilt by the aggregate before this call.
func (r *ThemeRepository) ReplaceReservation(ctx context.Context, reservation domain.Reservation) error {
	const stmt = `
UPDATE reservations SET
	kit_category_id = $2,
	start_date = $3,
	end_date = $4,
	is_stock_override = $5,
	stock_override_reason = $6,
	customer_name = $7,
	customer_document = $8,
	customer_phone = $9,
	customer_address = $10,
	notes = $11,
	has_balloon_arch = $12,
	is_entry_paid = $13
WHERE id = $1`

	tag, err := r.exec(ctx, stmt,
		reservation.ID,
		reservation.KitCategoryID,
		reservation.Period.Start,
		reservation.Period.End,
		reservation.IsStockOverride,
		reservation.StockOverrideReason,
		reservation.Customer.Name,
		reservation.Customer.DocumentNumber,
		reservation.Customer.PhoneNumber,
		reservation.Customer.Address,
		reservation.Customer.Notes,
		reservation.Customer.HasBalloonArch,
		reservation.Customer.IsEntryPaid,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("replace reservation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrReservationNotFound
	}

	const deleteStmt = `DELETE FROM reservation_items WHERE reservation_id = $1`
	if _, err := r.exec(ctx, deleteStmt, reservation.ID); err != nil {
		return fmt.Errorf("clear reservation items: %w", err)
	}
	return r.insertItems(ctx, reservation)
}

func (r *ThemeRepository) UpdateReservationStatus(ctx context.Context, reservationID string, status domain.ReservationStatus) error {
	const stmt = `UPDATE reservations SET status = $2 WHERE id = $1`
	tag, err := r.exec(ctx, stmt, reservationID, status)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("update reservation status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrReservationNotFound
	}
	return nil
}

func (r *ThemeRepository) insertItems(ctx context.Context, reservation domain.Reservation) error {
	const stmt = `
INSERT INTO reservation_items (id, reservation_id, item_type_id, quantity)
VALUES ($1, $2, $3, $4)`
	for _, item := range reservation.Items {
		if _, err := r.exec(ctx, stmt, item.ID, item.ReservationID, item.ItemTypeID, item.Quantity); err != nil {
			if isForeignKeyViolation(err) {
				return domain.ErrUnknownItemType
			}
			return fmt.Errorf("insert reservation item: %w", err)
		}
	}
	return nil
}

func (r *ThemeRepository) themeReservations(ctx context.Context, themeID string) ([]domain.Reservation, error) {
	const query = `
SELECT id, kit_theme_id, kit_category_id, start_date, end_date, status,
	is_stock_override, stock_override_reason,
	customer_name, customer_document, customer_phone, customer_address,
	notes, has_balloon_arch, is_entry_paid
FROM reservations
WHERE kit_theme_id = $1
ORDER BY created_at ASC`
	rows, err := r.query(ctx, query, themeID)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	defer rows.Close()

	var reservations []domain.Reservation
	for rows.Next() {
		var res domain.Reservation
		err := rows.Scan(
			&res.ID,
			&res.KitThemeID,
			&res.KitCategoryID,
			&res.Period.Start,
			&res.Period.End,
			&res.Status,
			&res.IsStockOverride,
			&res.StockOverrideReason,
			&res.Customer.Name,
			&res.Customer.DocumentNumber,
			&res.Customer.PhoneNumber,
			&res.Customer.Address,
			&res.Customer.Notes,
			&res.Customer.HasBalloonArch,
			&res.Customer.IsEntryPaid,
		)
		if err != nil {
			return nil, fmt.Errorf("scan reservation: %w", err)
		}
		res.Period.Start = domain.TruncateToDay(res.Period.Start)
		res.Period.End = domain.TruncateToDay(res.Period.End)
		reservations = append(reservations, res)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate reservations: %w", rows.Err())
	}

	for i := range reservations {
		items, err := r.reservationItems(ctx, reservations[i].ID)
		if err != nil {
			return nil, err
		}
		reservations[i].Items = items
	}
	return reservations, nil
}

func (r *ThemeRepository) reservationItems(ctx context.Context, reservationID string) ([]domain.ReservationItem, error) {
	const query = `
SELECT id, reservation_id, item_type_id, quantity
FROM reservation_items
WHERE reservation_id = $1
ORDER BY created_at ASC`
	rows, err := r.query(ctx, query, reservationID)
	if err != nil {
		return nil, fmt.Errorf("list reservation items: %w", err)
	}
	defer rows.Close()

	var items []domain.ReservationItem
	for rows.Next() {
		var item domain.ReservationItem
		if err := rows.Scan(&item.ID, &item.ReservationID, &item.ItemTypeID, &item.Quantity); err != nil {
			return nil, fmt.Errorf("scan reservation item: %w", err)
		}
		items = append(items, item)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate reservation items: %w", rows.Err())
	}
	return items, nil
}

func (r *ThemeRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *ThemeRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}

func (r *ThemeRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
