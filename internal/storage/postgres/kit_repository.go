package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/raphaelgarcia7/decorrental-api/internal/domain"
)

// KitRepository persists the single-unit kits and their bookings.
type KitRepository struct {
	pool *pgxpool.Pool
}

func NewKitRepository(pool *pgxpool.Pool) *KitRepository {
	return &KitRepository{pool: pool}
}

func (r *KitRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *KitRepository) CreateKit(ctx context.Context, kit domain.Kit) error {
	const stmt = `
INSERT INTO kits (id, name)
VALUES ($1, $2)`
	_, err := r.exec(ctx, stmt, kit.ID, kit.Name)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create kit: %w", err)
	}
	return nil
}

func (r *KitRepository) GetKit(ctx context.Context, id string) (domain.Kit, error) {
	return r.getKit(ctx, id, false)
}

// GetKitForUpdate locks the kit row so the overlap check and the reservation
// insert happen under one lock.
func (r *KitRepository) GetKitForUpdate(ctx context.Context, id string) (domain.Kit, error) {
	return r.getKit(ctx, id, true)
}

func (r *KitRepository) getKit(ctx context.Context, id string, forUpdate bool) (domain.Kit, error) {
	query := `SELECT id, name FROM kits WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var kit domain.Kit
	err := r.queryRow(ctx, query, id).Scan(&kit.ID, &kit.Name)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Kit{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Kit{}, domain.ErrKitNotFound
		}
		return domain.Kit{}, fmt.Errorf("get kit: %w", err)
	}

	reservations, err := r.kitReservations(ctx, id)
	if err != nil {
		return domain.Kit{}, err
	}
	kit.Reservations = reservations
	return kit, nil
}

func (r *KitRepository) ListKits(ctx context.Context, page, pageSize int) ([]domain.Kit, int, error) {
	const countQuery = `SELECT COUNT(*) FROM kits`
	var total int
	if err := r.queryRow(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count kits: %w", err)
	}

	const query = `
SELECT id, name
FROM kits
ORDER BY name ASC
LIMIT $1 OFFSET $2`
	rows, err := r.query(ctx, query, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("list kits: %w", err)
	}
	defer rows.Close()

	var kits []domain.Kit
	for rows.Next() {
		var kit domain.Kit
		if err := rows.Scan(&kit.ID, &kit.Name); err != nil {
			return nil, 0, fmt.Errorf("scan kit: %w", err)
		}
		kits = append(kits, kit)
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("iterate kits: %w", rows.Err())
	}

	for i := range kits {
		reservations, err := r.kitReservations(ctx, kits[i].ID)
		if err != nil {
			return nil, 0, err
		}
		kits[i].Reservations = reservations
	}
	return kits, total, nil
}

func (r *KitRepository) CreateKitReservation(ctx context.Context, reservation domain.KitReservation) error {
	const stmt = `
INSERT INTO kit_reservations (id, kit_id, start_date, end_date, status)
VALUES ($1, $2, $3, $4, $5)`
	_, err := r.exec(ctx, stmt,
		reservation.ID,
		reservation.KitID,
		reservation.Period.Start,
		reservation.Period.End,
		reservation.Status,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		if isForeignKeyViolation(err) {
			return domain.ErrKitNotFound
		}
		return fmt.Errorf("create kit reservation: %w", err)
	}
	return nil
}

func (r *KitRepository) UpdateKitReservationStatus(ctx context.Context, reservationID string, status domain.ReservationStatus) error {
	const stmt = `UPDATE kit_reservations SET status = $2 WHERE id = $1`
	tag, err := r.exec(ctx, stmt, reservationID, status)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("update kit reservation status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrReservationNotFound
	}
	return nil
}

func (r *KitRepository) kitReservations(ctx context.Context, kitID string) ([]domain.KitReservation, error) {
	const query = `
SELECT id, kit_id, start_date, end_date, status
FROM kit_reservations
WHERE kit_id = $1
ORDER BY created_at ASC`
	rows, err := r.query(ctx, query, kitID)
	if err != nil {
		return nil, fmt.Errorf("list kit reservations: %w", err)
	}
	defer rows.Close()

	var reservations []domain.KitReservation
	for rows.Next() {
		var res domain.KitReservation
		if err := rows.Scan(&res.ID, &res.KitID, &res.Period.Start, &res.Period.End, &res.Status); err != nil {
			return nil, fmt.Errorf("scan kit reservation: %w", err)
		}
		res.Period.Start = domain.TruncateToDay(res.Period.Start)
		res.Period.End = domain.TruncateToDay(res.Period.End)
		reservations = append(reservations, res)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate kit reservations: %w", rows.Err())
	}
	return reservations, nil
}

func (r *KitRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *KitRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}

func (r *KitRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
