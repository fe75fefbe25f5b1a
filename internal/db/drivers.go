package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nsqlite/driversdb/internal/log"
)

// InsertDrivers inserts all drivers with a single multi-row INSERT and
// returns the number of rows inserted.
func (db *DB) InsertDrivers(ctx context.Context, drivers []Driver) (int64, error) {
	if len(drivers) == 0 {
		return 0, errors.New("no drivers to insert")
	}

	params := make([]any, 0, len(drivers)*4)
	for _, d := range drivers {
		params = append(params, d.ID, d.Name, d.Age, nullable(d.WDC))
	}

	affected, err := db.execTx(
		ctx, insertManyQuery("Drivers", driverColumns, len(drivers)), params...,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert drivers: %w", err)
	}

	db.Logger.DebugNs(log.NsDB, "drivers inserted", log.KV{"rows": affected})
	return affected, nil
}

// InsertDriver inserts one driver and returns the rows affected.
func (db *DB) InsertDriver(ctx context.Context, d Driver) (int64, error) {
	affected, err := db.execTx(
		ctx,
		"INSERT INTO Drivers ("+driverColumns+") VALUES (?, ?, ?, ?)",
		d.ID, d.Name, d.Age, nullable(d.WDC),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert driver %q: %w", d.Name, err)
	}
	return affected, nil
}

// ListDrivers returns every driver in the engine's default order.
func (db *DB) ListDrivers(ctx context.Context) ([]Driver, error) {
	rows, err := db.conn.QueryContext(ctx, "SELECT "+driverColumns+" FROM Drivers")
	if err != nil {
		return nil, fmt.Errorf("failed to list drivers: %w", err)
	}
	return collect(rows, scanDriver)
}

// ListDriversWithTitlesAbove returns the drivers with more than titles
// championships.
func (db *DB) ListDriversWithTitlesAbove(ctx context.Context, titles int64) ([]Driver, error) {
	rows, err := db.conn.QueryContext(
		ctx, "SELECT "+driverColumns+" FROM Drivers WHERE WDC > ?", titles,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list drivers by titles: %w", err)
	}
	return collect(rows, scanDriver)
}

// GetDriver returns the driver with the given id, or sql.ErrNoRows.
func (db *DB) GetDriver(ctx context.Context, id int64) (Driver, error) {
	row := db.conn.QueryRowContext(
		ctx, "SELECT "+driverColumns+" FROM Drivers WHERE id = ?", id,
	)
	d, err := scanDriver(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Driver{}, sql.ErrNoRows
		}
		return Driver{}, err
	}
	return d, nil
}

// IncrementAge adds one year to every driver with the given name and
// returns the rows updated.
func (db *DB) IncrementAge(ctx context.Context, name string) (int64, error) {
	affected, err := db.execTx(
		ctx, "UPDATE Drivers SET age = age + 1 WHERE name = ?", name,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update driver age: %w", err)
	}
	return affected, nil
}

// DeleteDriverAndReassign deletes the driver with id and then moves the
// driver named name onto that id, in one transaction.
//
// The returned count is the DELETE's rows affected only; the follow-up
// UPDATE is not counted.
func (db *DB) DeleteDriverAndReassign(ctx context.Context, id int64, name string) (int64, error) {
	var deleted int64
	err := db.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		deleted, err = execAffected(ctx, tx, "DELETE FROM Drivers WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("failed to delete driver %d: %w", id, err)
		}

		moved, err := execAffected(ctx, tx, "UPDATE Drivers SET id = ? WHERE name = ?", id, name)
		if err != nil {
			return fmt.Errorf("failed to reassign driver %q: %w", name, err)
		}

		db.Logger.DebugNs(log.NsDB, "driver reassigned", log.KV{
			"id": id, "name": name, "deleted": deleted, "moved": moved,
		})
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}
