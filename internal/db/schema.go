package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/nsqlite/driversdb/internal/log"
)

// Schema holds the DDL statements that define the demo tables.
var Schema = []string{
	`CREATE TABLE Drivers (
		id INTEGER PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		age INTEGER NOT NULL,
		WDC INTEGER
	)`,
	`CREATE TABLE Teams (
		id INTEGER PRIMARY KEY,
		name VARCHAR(255) NOT NULL UNIQUE,
		CURR_POS INTEGER
	)`,
}

// CreateSchema creates the Drivers and Teams tables in one transaction.
func (db *DB) CreateSchema(ctx context.Context) error {
	err := db.withTx(ctx, func(tx *sql.Tx) error {
		for _, stmt := range Schema {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("failed to create table: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	db.Logger.DebugNs(log.NsDB, "schema created", log.KV{"tables": len(Schema)})
	return nil
}

// Column describes a table column as reported by PRAGMA table_info.
type Column struct {
	Name       string
	Type       string
	NotNull    bool
	PrimaryKey bool
}

// TableInfo returns the columns of table in declaration order.
func (db *DB) TableInfo(ctx context.Context, table string) ([]Column, error) {
	rows, err := db.conn.QueryContext(
		ctx, "SELECT name, type, \"notnull\", pk FROM pragma_table_info(?)", table,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to read table info: %w", err)
	}
	defer rows.Close()

	var columns []Column
	for rows.Next() {
		var c Column
		var notNull, pk int64
		if err := rows.Scan(&c.Name, &c.Type, &notNull, &pk); err != nil {
			return nil, fmt.Errorf("failed to scan table info: %w", err)
		}
		c.NotNull = notNull == 1
		c.PrimaryKey = pk > 0
		columns = append(columns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate table info: %w", err)
	}
	return columns, nil
}

// SchemaSQL returns the stored CREATE statement of every table and index,
// ordered by name.
func (db *DB) SchemaSQL(ctx context.Context) ([]string, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT type || ' ' || name || ': ' || COALESCE(sql, '')
		FROM sqlite_master
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema: %w", err)
	}
	defer rows.Close()

	var stmts []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("failed to scan schema: %w", err)
		}
		stmts = append(stmts, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate schema: %w", err)
	}
	return stmts, nil
}
