package postgres

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/raphaelgarcia7/decorrental-api/internal/app"
	"github.com/raphaelgarcia7/decorrental-api/internal/domain"
)

// ReservationLineQuery feeds the availability sweep: it pulls every active
// reservation line that competes for the given item types inside the window.
// The query is assembled with goqu because the exclusion clause is optional.
type ReservationLineQuery struct {
	pool *pgxpool.Pool
}

func NewReservationLineQuery(pool *pgxpool.Pool) *ReservationLineQuery {
	return &ReservationLineQuery{pool: pool}
}

func (q *ReservationLineQuery) ActiveLines(
	ctx context.Context,
	period domain.DateRange,
	itemTypeIDs []string,
	excludeReservationID string,
) ([]app.ReservationLine, error) {
	ids := make([]any, len(itemTypeIDs))
	for i, id := range itemTypeIDs {
		ids[i] = id
	}

	selectStmt := goqu.Dialect("postgres").
		From(goqu.T("reservation_items").As("ri")).
		Join(
			goqu.T("reservations").As("r"),
			goqu.On(goqu.I("ri.reservation_id").Eq(goqu.I("r.id"))),
		).
		Select(
			goqu.I("r.id"),
			goqu.I("ri.item_type_id"),
			goqu.I("ri.quantity"),
			goqu.I("r.start_date"),
			goqu.I("r.end_date"),
		).
		Where(
			goqu.I("r.status").Eq(string(domain.ReservationStatusActive)),
			goqu.I("ri.item_type_id").In(ids...),
			goqu.I("r.start_date").Lte(period.End),
			goqu.I("r.end_date").Gte(period.Start),
		)
	if excludeReservationID != "" {
		selectStmt = selectStmt.Where(goqu.I("r.id").Neq(excludeReservationID))
	}

	sqlQuery, args, err := selectStmt.Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build reservation lines query: %w", err)
	}

	rows, err := q.queryRows(ctx, sqlQuery, args...)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("query reservation lines: %w", err)
	}
	defer rows.Close()

	var lines []app.ReservationLine
	for rows.Next() {
		var line app.ReservationLine
		if err := rows.Scan(
			&line.ReservationID,
			&line.ItemTypeID,
			&line.Quantity,
			&line.Period.Start,
			&line.Period.End,
		); err != nil {
			return nil, fmt.Errorf("scan reservation line: %w", err)
		}
		line.Period.Start = domain.TruncateToDay(line.Period.Start)
		line.Period.End = domain.TruncateToDay(line.Period.End)
		lines = append(lines, line)
	}
	if rows.Err() != nil {
		if isInvalidUUID(rows.Err()) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("iterate reservation lines: %w", rows.Err())
	}
	return lines, nil
}

func (q *ReservationLineQuery) queryRows(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return q.pool.Query(ctx, sql, args...)
}
