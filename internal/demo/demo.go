// Package demo runs the drivers database walkthrough: it creates the
// schema, seeds it, queries, mutates and aggregates it, printing every
// result to the configured writer.
//
// Each phase returns its own error. Run stops at the first one, wraps it in
// a *PhaseError and always closes the database before returning.
package demo

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"
	"github.com/nsqlite/driversdb/internal/db"
	"github.com/nsqlite/driversdb/internal/demo/phasebar"
	"github.com/nsqlite/driversdb/internal/log"
)

// Config represents the configuration for Run.
type Config struct {
	// Logger is the shared driversdb logger.
	Logger log.Logger
	// Out receives the demo output.
	Out io.Writer
	// Path is the database file, recreated on every run.
	Path string
	// Engine selects the SQLite driver.
	Engine db.Engine
	// Bar reports progress over the phases, nil disables it.
	Bar *phasebar.Bar
}

// Demo holds the state threaded through every phase.
type Demo struct {
	conf   Config
	logger log.Logger
	store  *db.DB
	report *Report
}

type step struct {
	phase Phase
	run   func(context.Context) error
}

// Run executes every phase in order against a fresh database at
// conf.Path and returns what it produced. The returned error, if any, is a
// *PhaseError naming the phase that failed; the report is filled up to that
// phase.
func Run(ctx context.Context, conf Config) (report Report, err error) {
	if !conf.Logger.IsInitialized() {
		return report, errors.New("logger is required")
	}
	if conf.Out == nil {
		conf.Out = io.Discard
	}

	runID := uuid.NewString()
	report = Report{
		RunID:  runID,
		Path:   conf.Path,
		Engine: conf.Engine.Value,
	}
	d := &Demo{
		conf:   conf,
		logger: conf.Logger.With(log.KV{"runId": runID}),
		report: &report,
	}
	defer func() { report.fail(err) }()

	conf.Bar.Describe(PhaseInit.Value)
	d.store, err = db.Open(ctx, db.Config{
		Logger: d.logger,
		Path:   conf.Path,
		Engine: conf.Engine,
	})
	if err != nil {
		conf.Bar.Finish()
		return report, newPhaseError(PhaseInit, err)
	}
	d.phaseDone(PhaseInit)

	defer func() {
		if closeErr := d.closeStore(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	steps := []step{
		{PhaseSchema, d.createSchema},
		{PhaseSeed, d.seed},
		{PhaseQuery, d.query},
		{PhaseMutate, d.mutate},
		{PhaseAggregate, d.aggregate},
		{PhaseCommit, d.commit},
	}
	err = d.runSteps(ctx, steps)
	return report, err
}

// closeStore closes the database and finishes the progress bar, whether or
// not the close succeeds.
func (d *Demo) closeStore() error {
	defer d.conf.Bar.Finish()

	d.conf.Bar.Describe(PhaseClose.Value)
	if err := d.store.Close(); err != nil {
		d.logger.ErrorNs(log.NsDemo, "failed to close database", log.KV{"error": err})
		return newPhaseError(PhaseClose, err)
	}
	d.phaseDone(PhaseClose)
	return nil
}

// runSteps runs steps in order and stops at the first failure.
func (d *Demo) runSteps(ctx context.Context, steps []step) error {
	for _, s := range steps {
		d.conf.Bar.Describe(s.phase.Value)
		d.logger.DebugNs(log.NsDemo, "phase started", log.KV{"phase": s.phase.Value})

		if err := s.run(ctx); err != nil {
			d.logger.ErrorNs(log.NsDemo, "phase failed", log.KV{
				"phase": s.phase.Value,
				"error": err,
			})
			return newPhaseError(s.phase, err)
		}
		d.phaseDone(s.phase)
	}
	return nil
}

func (d *Demo) phaseDone(phase Phase) {
	d.report.reached(phase)
	d.conf.Bar.Inc()
	d.logger.InfoNs(log.NsDemo, "phase completed", log.KV{"phase": phase.Value})
}

// createSchema creates the Drivers and Teams tables.
func (d *Demo) createSchema(ctx context.Context) error {
	if err := d.store.CreateSchema(ctx); err != nil {
		return err
	}
	d.printStatus("Tables are created!")
	return nil
}

// seed inserts the fixed drivers and teams, one batch per table.
func (d *Demo) seed(ctx context.Context) error {
	drivers, err := d.store.InsertDrivers(ctx, SeedDrivers())
	if err != nil {
		return err
	}
	d.report.Seed.Drivers = drivers

	teams, err := d.store.InsertTeams(ctx, SeedTeams())
	if err != nil {
		return err
	}
	d.report.Seed.Teams = teams

	d.printStatus("Seed data inserted!")
	return nil
}

// query runs the read-only selects.
func (d *Demo) query(ctx context.Context) error {
	q := &d.report.Queries
	var err error

	if q.AllDrivers, err = d.store.ListDrivers(ctx); err != nil {
		return err
	}
	d.printDrivers("All drivers", q.AllDrivers)

	if q.Champions, err = d.store.ListDriversWithTitlesAbove(ctx, championsAbove); err != nil {
		return err
	}
	d.printDrivers("Drivers with WDC > 4", q.Champions)

	if q.TeamsByPosition, err = d.store.ListTeamsByPosition(ctx); err != nil {
		return err
	}
	d.printTeams("Teams by CURR_POS", q.TeamsByPosition)

	return nil
}

// mutate runs the write sequence. Every step is committed on its own and
// its rows affected are printed right after.
func (d *Demo) mutate(ctx context.Context) error {
	writes := []struct {
		label string
		run   func(context.Context) (int64, error)
	}{
		{"Rows inserted", func(ctx context.Context) (int64, error) {
			return d.store.InsertDriver(ctx, newcomer)
		}},
		{"Rows updated", func(ctx context.Context) (int64, error) {
			return d.store.IncrementAge(ctx, birthdayDriver)
		}},
		{"Rows deleted", func(ctx context.Context) (int64, error) {
			return d.store.DeleteDriverAndReassign(ctx, retiredDriverID, newcomer.Name)
		}},
		{"Rows inserted", func(ctx context.Context) (int64, error) {
			return d.store.InsertDriver(ctx, lateNewcomer)
		}},
	}

	for _, w := range writes {
		rows, err := w.run(ctx)
		if err != nil {
			return err
		}
		d.report.Mutations = append(d.report.Mutations, Mutation{Label: w.label, Rows: rows})
		d.printf("%s: %d\n", w.label, rows)
	}

	return nil
}

// aggregate computes the summary values over the mutated Drivers table.
func (d *Demo) aggregate(ctx context.Context) error {
	s := &d.report.Stats
	var err error

	if s.Count, err = d.store.CountDrivers(ctx); err != nil {
		return err
	}
	d.printf("Total drivers: %d\n", s.Count)

	if s.AverageAge, err = d.store.AverageAge(ctx); err != nil {
		return err
	}
	d.printf("Average age: %.1f\n", s.AverageAge)

	if s.MinAge, s.MaxAge, err = d.store.AgeRange(ctx); err != nil {
		return err
	}
	d.printf("Youngest driver: %d, oldest driver: %d\n", s.MinAge, s.MaxAge)

	if s.TotalTitles, err = d.store.TotalTitles(ctx); err != nil {
		return err
	}
	d.printf("Total championships: %d\n", s.TotalTitles)

	if s.TitleGroups, err = d.store.DriversByTitles(ctx); err != nil {
		return err
	}
	for _, g := range s.TitleGroups {
		d.printf("Drivers with %s championships: %d\n", db.FormatNullable(g.WDC), g.Drivers)
	}

	return nil
}

// commit flushes the database file and snapshots the final rows.
func (d *Demo) commit(ctx context.Context) error {
	res, err := d.store.Checkpoint(ctx)
	if err != nil {
		return err
	}
	d.logger.DebugNs(log.NsDemo, "database checkpointed", log.KV{
		"busy":         res.Busy,
		"logFrames":    res.LogFrames,
		"checkpointed": res.Checkpointed,
	})

	if d.report.Final, err = d.store.ListDrivers(ctx); err != nil {
		return err
	}
	d.report.Committed = true
	d.printStatus("Changes committed!")
	return nil
}
