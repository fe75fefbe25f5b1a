package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Driver is a row of the Drivers table.
type Driver struct {
	ID   int64  `yaml:"id"`
	Name string `yaml:"name"`
	Age  int64  `yaml:"age"`
	// WDC is the number of world drivers' championships, nil when unknown.
	WDC *int64 `yaml:"wdc"`
}

// Team is a row of the Teams table.
type Team struct {
	ID      int64  `yaml:"id"`
	Name    string `yaml:"name"`
	CurrPos *int64 `yaml:"currPos"`
}

// Int64 returns a pointer to v, for the nullable columns.
func Int64(v int64) *int64 {
	return &v
}

// FormatNullable renders a nullable integer column, NULL when unset.
func FormatNullable(v *int64) string {
	if v == nil {
		return "NULL"
	}
	return fmt.Sprintf("%d", *v)
}

// nullable converts a nullable column value into a statement parameter.
func nullable(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}

const (
	driverColumns = "id, name, age, WDC"
	teamColumns   = "id, name, CURR_POS"
)

// rowScanner is implemented by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanDriver(s rowScanner) (Driver, error) {
	var d Driver
	if err := s.Scan(&d.ID, &d.Name, &d.Age, &d.WDC); err != nil {
		return Driver{}, fmt.Errorf("failed to scan driver: %w", err)
	}
	return d, nil
}

func scanTeam(s rowScanner) (Team, error) {
	var t Team
	if err := s.Scan(&t.ID, &t.Name, &t.CurrPos); err != nil {
		return Team{}, fmt.Errorf("failed to scan team: %w", err)
	}
	return t, nil
}

// collect scans every row with scan and closes rows.
func collect[T any](rows *sql.Rows, scan func(rowScanner) (T, error)) ([]T, error) {
	defer rows.Close()

	items := []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}
	return items, nil
}

// insertManyQuery builds a single INSERT with one placeholder group per row.
func insertManyQuery(table string, columns string, rowCount int) string {
	colCount := len(strings.Split(columns, ","))
	group := "(" + strings.TrimSuffix(strings.Repeat("?, ", colCount), ", ") + ")"

	groups := make([]string, rowCount)
	for i := range groups {
		groups[i] = group
	}

	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES %s", table, columns, strings.Join(groups, ", "),
	)
}
