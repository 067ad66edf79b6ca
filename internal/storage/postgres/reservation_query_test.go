package postgres

import (
	"context"
	"testing"

	"github.com/raphaelgarcia7/decorrental-api/internal/domain"
	"github.com/raphaelgarcia7/decorrental-api/internal/testutil"
)

func TestReservationLineQuery(t *testing.T) {
	pool := testutil.NewTestPool(t)
	query := NewReservationLineQuery(pool)
	testutil.ApplyMigrations(t, context.Background(), pool)

	t.Run("returns only active overlapping lines for the given item types", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		archID := testutil.InsertItemType(t, ctx, pool, "Balloon Arch", 2)
		tableID := testutil.InsertItemType(t, ctx, pool, "Table", 5)
		categoryID := testutil.InsertCategory(t, ctx, pool, "Basic")
		themeID := testutil.InsertTheme(t, ctx, pool, "Safari")

		overlapping := testutil.InsertReservation(t, ctx, pool, themeID, categoryID,
			testPeriod(t, 22, 24), domain.ReservationStatusActive, map[string]int{archID: 1, tableID: 2})
		// Disjoint period.
		testutil.InsertReservation(t, ctx, pool, themeID, categoryID,
			testPeriod(t, 1, 3), domain.ReservationStatusActive, map[string]int{archID: 1})
		// Cancelled.
		testutil.InsertReservation(t, ctx, pool, themeID, categoryID,
			testPeriod(t, 22, 24), domain.ReservationStatusCancelled, map[string]int{archID: 1})

		lines, err := query.ActiveLines(ctx, testPeriod(t, 23, 25), []string{archID}, "")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(lines) != 1 {
			t.Fatalf("expected 1 line, got %+v", lines)
		}
		line := lines[0]
		if line.ReservationID != overlapping || line.ItemTypeID != archID || line.Quantity != 1 {
			t.Fatalf("unexpected line: %+v", line)
		}
		if !line.Period.Start.Equal(testPeriod(t, 22, 24).Start) {
			t.Fatalf("unexpected line period: %+v", line.Period)
		}
	})

	t.Run("inclusive window edges", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		archID := testutil.InsertItemType(t, ctx, pool, "Balloon Arch", 2)
		categoryID := testutil.InsertCategory(t, ctx, pool, "Basic")
		themeID := testutil.InsertTheme(t, ctx, pool, "Safari")

		testutil.InsertReservation(t, ctx, pool, themeID, categoryID,
			testPeriod(t, 10, 12), domain.ReservationStatusActive, map[string]int{archID: 1})

		// A window starting on the line's last day still sees it; the sweep
		// decides whether the touch actually consumes stock.
		lines, err := query.ActiveLines(ctx, testPeriod(t, 12, 14), []string{archID}, "")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(lines) != 1 {
			t.Fatalf("expected 1 touching line, got %+v", lines)
		}

		lines, err = query.ActiveLines(ctx, testPeriod(t, 13, 14), []string{archID}, "")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(lines) != 0 {
			t.Fatalf("expected no lines past the end, got %+v", lines)
		}
	})

	t.Run("excludes the reservation being edited", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		archID := testutil.InsertItemType(t, ctx, pool, "Balloon Arch", 2)
		categoryID := testutil.InsertCategory(t, ctx, pool, "Basic")
		themeID := testutil.InsertTheme(t, ctx, pool, "Safari")

		ownID := testutil.InsertReservation(t, ctx, pool, themeID, categoryID,
			testPeriod(t, 22, 24), domain.ReservationStatusActive, map[string]int{archID: 1})
		otherID := testutil.InsertReservation(t, ctx, pool, themeID, categoryID,
			testPeriod(t, 22, 24), domain.ReservationStatusActive, map[string]int{archID: 1})

		lines, err := query.ActiveLines(ctx, testPeriod(t, 22, 24), []string{archID}, ownID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(lines) != 1 || lines[0].ReservationID != otherID {
			t.Fatalf("expected only the competing line, got %+v", lines)
		}
	})
}
