package db

import (
	"context"
	"database/sql"
	"fmt"
)

// TitleGroup is the number of drivers sharing the same championship count.
type TitleGroup struct {
	WDC     *int64 `yaml:"wdc"`
	Drivers int64  `yaml:"drivers"`
}

// CountDrivers returns COUNT(*) over Drivers.
func (db *DB) CountDrivers(ctx context.Context) (int64, error) {
	var count int64
	if err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM Drivers").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count drivers: %w", err)
	}
	return count, nil
}

// CountTeams returns COUNT(*) over Teams.
func (db *DB) CountTeams(ctx context.Context) (int64, error) {
	var count int64
	if err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM Teams").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count teams: %w", err)
	}
	return count, nil
}

// AverageAge returns AVG(age) over Drivers, zero for an empty table.
func (db *DB) AverageAge(ctx context.Context) (float64, error) {
	var avg sql.NullFloat64
	if err := db.conn.QueryRowContext(ctx, "SELECT AVG(age) FROM Drivers").Scan(&avg); err != nil {
		return 0, fmt.Errorf("failed to average driver age: %w", err)
	}
	return avg.Float64, nil
}

// AgeRange returns MIN(age) and MAX(age) over Drivers in one query.
func (db *DB) AgeRange(ctx context.Context) (minAge int64, maxAge int64, err error) {
	var lo, hi sql.NullInt64
	err = db.conn.QueryRowContext(ctx, "SELECT MIN(age), MAX(age) FROM Drivers").Scan(&lo, &hi)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read driver age range: %w", err)
	}
	return lo.Int64, hi.Int64, nil
}

// TotalTitles returns SUM(WDC) over Drivers.
func (db *DB) TotalTitles(ctx context.Context) (int64, error) {
	var sum sql.NullInt64
	if err := db.conn.QueryRowContext(ctx, "SELECT SUM(WDC) FROM Drivers").Scan(&sum); err != nil {
		return 0, fmt.Errorf("failed to sum championships: %w", err)
	}
	return sum.Int64, nil
}

// DriversByTitles groups drivers by WDC, highest first.
func (db *DB) DriversByTitles(ctx context.Context) ([]TitleGroup, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT WDC, COUNT(*)
		FROM Drivers
		GROUP BY WDC
		ORDER BY WDC DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to group drivers by titles: %w", err)
	}

	return collect(rows, func(s rowScanner) (TitleGroup, error) {
		var g TitleGroup
		if err := s.Scan(&g.WDC, &g.Drivers); err != nil {
			return TitleGroup{}, fmt.Errorf("failed to scan title group: %w", err)
		}
		return g, nil
	})
}
