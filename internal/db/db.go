// Package db provides the SQLite store behind the drivers demo.
//
// A DB owns a single connection to a database file that is wiped and
// recreated every time Open is called.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nsqlite/driversdb/internal/log"
	"github.com/orsinium-labs/enum"
)

// Engine represents the SQLite implementation used to open the database.
type Engine = enum.Member[string]

var (
	// EngineMattn is the cgo based github.com/mattn/go-sqlite3 driver.
	EngineMattn = Engine{Value: "mattn"}
	// EngineModernc is the pure Go modernc.org/sqlite driver.
	EngineModernc = Engine{Value: "modernc"}

	Engines = enum.New(EngineMattn, EngineModernc)
)

// driverName returns the database/sql driver name registered by engine.
func driverName(engine Engine) (string, error) {
	switch engine {
	case EngineMattn:
		return "sqlite3", nil
	case EngineModernc:
		return "sqlite", nil
	}
	return "", fmt.Errorf("unknown engine: %s", engine.Value)
}

// Config represents the configuration for Open.
type Config struct {
	// Logger is the shared driversdb logger.
	Logger log.Logger
	// Path is the database file. Any existing file at this path is removed.
	Path string
	// Engine selects the SQLite driver, defaults to EngineMattn.
	Engine Engine
}

// DB is an open handle to the demo database.
type DB struct {
	Config
	isInitialized bool
	conn          *sql.DB
}

// Open removes any previous database at config.Path and opens a fresh one.
func Open(ctx context.Context, config Config) (*DB, error) {
	if !config.Logger.IsInitialized() {
		return nil, errors.New("logger is required")
	}
	if config.Path == "" {
		return nil, errors.New("database path is required")
	}
	if config.Engine.Value == "" {
		config.Engine = EngineMattn
	}

	name, err := driverName(config.Engine)
	if err != nil {
		return nil, err
	}

	if err := removeDatabaseFiles(config.Path); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(config.Path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	conn, err := sql.Open(name, config.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	conn.SetConnMaxIdleTime(0)
	conn.SetConnMaxLifetime(0)
	conn.SetMaxIdleConns(1)
	conn.SetMaxOpenConns(1)
	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	config.Logger.InfoNs(log.NsDB, "database opened", log.KV{
		"path":   config.Path,
		"engine": config.Engine.Value,
	})

	return &DB{
		Config:        config,
		isInitialized: true,
		conn:          conn,
	}, nil
}

// removeDatabaseFiles deletes the database file and its journal files.
// Missing files are not an error.
func removeDatabaseFiles(path string) error {
	for _, suffix := range []string{"", "-journal", "-wal", "-shm"} {
		err := os.Remove(path + suffix)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to remove %s: %w", path+suffix, err)
		}
	}
	return nil
}

// IsInitialized reports whether the DB was created by Open and not yet closed.
func (db *DB) IsInitialized() bool {
	return db != nil && db.isInitialized
}

// Close closes the underlying connection. It is safe to call more than once.
func (db *DB) Close() error {
	if !db.IsInitialized() {
		return nil
	}
	db.isInitialized = false

	if err := db.conn.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	db.Logger.InfoNs(log.NsDB, "database closed", log.KV{"path": db.Path})
	return nil
}

// CheckpointResult is the outcome of PRAGMA wal_checkpoint.
type CheckpointResult struct {
	Busy         int64
	LogFrames    int64
	Checkpointed int64
}

// Checkpoint flushes every committed change into the main database file.
// In rollback journal mode there is nothing to flush and the log counters
// are -1.
func (db *DB) Checkpoint(ctx context.Context) (CheckpointResult, error) {
	var res CheckpointResult
	err := db.conn.QueryRowContext(ctx, "PRAGMA wal_checkpoint(TRUNCATE)").
		Scan(&res.Busy, &res.LogFrames, &res.Checkpointed)
	if err != nil {
		return CheckpointResult{}, fmt.Errorf("failed to checkpoint database: %w", err)
	}
	return res, nil
}

// withTx runs fn inside a transaction and commits it if fn succeeds.
func (db *DB) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// execTx executes a single write statement in its own transaction and
// returns the number of rows it affected.
func (db *DB) execTx(ctx context.Context, query string, params ...any) (int64, error) {
	var affected int64
	err := db.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		affected, err = execAffected(ctx, tx, query, params...)
		return err
	})
	return affected, err
}

func execAffected(ctx context.Context, tx *sql.Tx, query string, params ...any) (int64, error) {
	res, err := tx.ExecContext(ctx, query, params...)
	if err != nil {
		return 0, fmt.Errorf("failed to execute write query: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return affected, nil
}
