package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// EnsureSchema brings the database up to the current schema version.
// Migrations are additive only, so rerunning against an up-to-date
// database is a no-op. The widening migration works against any older
// table shape, including databases created before versioning existed.
func EnsureSchema(db *sql.DB) error {
	fsys, err := fs.Sub(migrationFiles, "migrations")
	if err != nil {
		return fmt.Errorf("migrations fs: %w", err)
	}

	provider, err := goose.NewProvider(goose.DialectSQLite3, db, fsys,
		goose.WithGoMigrations(
			goose.NewGoMigration(2, &goose.GoFunc{RunTx: widenCalendarEvents}, nil),
			goose.NewGoMigration(3, &goose.GoFunc{RunTx: linkSavingsToGoals}, nil),
		),
	)
	if err != nil {
		return fmt.Errorf("migration provider: %w", err)
	}

	if _, err := provider.Up(context.Background()); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}

// widenCalendarEvents adds every calendar column newer code expects to a
// calendar_events table of any prior shape, backfills start_time from the
// legacy time column, and ensures the lookup index. Column adds are
// order-independent, so a partially applied run is repaired by the next one.
func widenCalendarEvents(ctx context.Context, tx *sql.Tx) error {
	cols, err := tableColumns(ctx, tx, "calendar_events")
	if err != nil {
		return err
	}

	adds := []struct {
		name string
		def  string
	}{
		{"time", "TEXT"},
		{"start_time", "TEXT"},
		{"end_time", "TEXT"},
		{"timezone", "TEXT DEFAULT 'Asia/Tokyo'"},
		{"assigned_to", "TEXT"},
		{"created_by", "TEXT"},
		{"category", "TEXT"},
		{"color", "TEXT"},
		{"description", "TEXT"},
		{"recurrence", "TEXT DEFAULT 'none'"},
		{"created_at", "TEXT"},
		{"partner_name", "TEXT"},
	}
	for _, a := range adds {
		if cols[a.name] {
			continue
		}
		stmt := "ALTER TABLE calendar_events ADD COLUMN " + a.name + " " + a.def
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("add column %s: %w", a.name, err)
		}
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE calendar_events
		SET start_time = COALESCE(start_time, time)
		WHERE start_time IS NULL OR start_time = ''`)
	if err != nil {
		return fmt.Errorf("backfill start_time: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		CREATE INDEX IF NOT EXISTS idx_calendar_events_household_date
		ON calendar_events (household_id, date)`)
	if err != nil {
		return fmt.Errorf("create calendar index: %w", err)
	}

	return nil
}

// linkSavingsToGoals adds the nullable goal_id column that ties a savings
// transaction to the goal it contributes to.
func linkSavingsToGoals(ctx context.Context, tx *sql.Tx) error {
	cols, err := tableColumns(ctx, tx, "savings")
	if err != nil {
		return err
	}
	if cols["goal_id"] {
		return nil
	}
	_, err = tx.ExecContext(ctx, "ALTER TABLE savings ADD COLUMN goal_id INTEGER REFERENCES savings_goals (id)")
	if err != nil {
		return fmt.Errorf("add column goal_id: %w", err)
	}
	return nil
}

func tableColumns(ctx context.Context, tx *sql.Tx, table string) (map[string]bool, error) {
	rows, err := tx.QueryContext(ctx, "PRAGMA table_info("+table+")")
	if err != nil {
		return nil, fmt.Errorf("table_info %s: %w", table, err)
	}
	defer rows.Close()

	cols := make(map[string]bool)
	for rows.Next() {
		var (
			cid     int
			name    string
			colType string
			notNull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dflt, &pk); err != nil {
			return nil, err
		}
		cols[name] = true
	}
	return cols, rows.Err()
}
