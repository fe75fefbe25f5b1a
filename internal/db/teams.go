package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/nsqlite/driversdb/internal/log"
)

// InsertTeams inserts all teams with a single multi-row INSERT and returns
// the number of rows inserted. A duplicate name fails the whole batch.
func (db *DB) InsertTeams(ctx context.Context, teams []Team) (int64, error) {
	if len(teams) == 0 {
		return 0, errors.New("no teams to insert")
	}

	params := make([]any, 0, len(teams)*3)
	for _, t := range teams {
		params = append(params, t.ID, t.Name, nullable(t.CurrPos))
	}

	affected, err := db.execTx(
		ctx, insertManyQuery("Teams", teamColumns, len(teams)), params...,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert teams: %w", err)
	}

	db.Logger.DebugNs(log.NsDB, "teams inserted", log.KV{"rows": affected})
	return affected, nil
}

// ListTeams returns every team in the engine's default order.
func (db *DB) ListTeams(ctx context.Context) ([]Team, error) {
	rows, err := db.conn.QueryContext(ctx, "SELECT "+teamColumns+" FROM Teams")
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return collect(rows, scanTeam)
}

// ListTeamsByPosition returns every team ordered by current position.
func (db *DB) ListTeamsByPosition(ctx context.Context) ([]Team, error) {
	rows, err := db.conn.QueryContext(
		ctx, "SELECT "+teamColumns+" FROM Teams ORDER BY CURR_POS",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams by position: %w", err)
	}
	return collect(rows, scanTeam)
}
