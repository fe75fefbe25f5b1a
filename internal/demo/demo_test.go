package demo

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/nsqlite/driversdb/internal/db"
	"github.com/nsqlite/driversdb/internal/demo/phasebar"
	"github.com/nsqlite/driversdb/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	text.DisableColors()
	os.Exit(m.Run())
}

func testLogger() log.Logger {
	return log.NewLogger(io.Discard, slog.LevelDebug)
}

func testConfig(t *testing.T, engine db.Engine, out io.Writer) Config {
	return Config{
		Logger: testLogger(),
		Out:    out,
		Path:   filepath.Join(t.TempDir(), "drivers.db"),
		Engine: engine,
	}
}

func allPhaseValues() []string {
	values := []string{}
	for _, p := range Phases.Members() {
		values = append(values, p.Value)
	}
	return values
}

func TestRun(t *testing.T) {
	for _, engine := range db.Engines.Members() {
		t.Run(engine.Value, func(t *testing.T) {
			var out bytes.Buffer
			report, err := Run(context.Background(), testConfig(t, engine, &out))
			require.NoError(t, err)

			t.Run("Report", func(t *testing.T) {
				assert.NotEmpty(t, report.RunID)
				assert.Equal(t, engine.Value, report.Engine)
				assert.Equal(t, allPhaseValues(), report.Completed)
				assert.True(t, report.Committed)
				assert.Empty(t, report.Failed)
				assert.Empty(t, report.Error)
				assert.Equal(t, SeedResult{Drivers: 3, Teams: 3}, report.Seed)
			})

			t.Run("Queries", func(t *testing.T) {
				assert.Equal(t, SeedDrivers(), report.Queries.AllDrivers)
				assert.Equal(t, SeedDrivers()[:1], report.Queries.Champions)
				assert.Equal(t, SeedTeams(), report.Queries.TeamsByPosition)
			})

			t.Run("Mutations", func(t *testing.T) {
				assert.Equal(t, []Mutation{
					{Label: "Rows inserted", Rows: 1},
					{Label: "Rows updated", Rows: 1},
					{Label: "Rows deleted", Rows: 1},
					{Label: "Rows inserted", Rows: 1},
				}, report.Mutations)

				assert.ElementsMatch(t, []db.Driver{
					{ID: 1, Name: "Lewis Hamilton", Age: 41, WDC: db.Int64(7)},
					{ID: 2, Name: "Max Verstappen", Age: 31, WDC: db.Int64(4)},
					{ID: 3, Name: "Charles Leclerc", Age: 30, WDC: db.Int64(0)},
					{ID: 4, Name: "Lando Norris", Age: 25, WDC: db.Int64(0)},
				}, report.Final)
			})

			t.Run("Stats", func(t *testing.T) {
				s := report.Stats
				assert.Equal(t, int64(4), s.Count)
				assert.InDelta(t, 31.75, s.AverageAge, 0.0001)
				assert.Equal(t, int64(25), s.MinAge)
				assert.Equal(t, int64(41), s.MaxAge)
				assert.Equal(t, int64(11), s.TotalTitles)
				assert.Equal(t, []db.TitleGroup{
					{WDC: db.Int64(7), Drivers: 1},
					{WDC: db.Int64(4), Drivers: 1},
					{WDC: db.Int64(0), Drivers: 2},
				}, s.TitleGroups)
			})

			t.Run("Output", func(t *testing.T) {
				got := out.String()
				lines := []string{
					"Tables are created!",
					"Seed data inserted!",
					"All drivers",
					"Sebastian Vettel",
					"Drivers with WDC > 4",
					"Teams by CURR_POS",
					"Red Bull Racing",
					"Rows inserted: 1",
					"Rows updated: 1",
					"Rows deleted: 1",
					"Total drivers: 4",
					"Average age: 31.8",
					"Youngest driver: 25, oldest driver: 41",
					"Total championships: 11",
					"Drivers with 7 championships: 1",
					"Drivers with 4 championships: 1",
					"Drivers with 0 championships: 2",
					"Changes committed!",
				}
				last := -1
				for _, line := range lines {
					idx := strings.Index(got, line)
					require.GreaterOrEqual(t, idx, 0, "missing %q", line)
					assert.Greater(t, idx, last, "%q is out of order", line)
					last = idx
				}
			})
		})
	}
}

func TestRunTwiceStartsFresh(t *testing.T) {
	conf := testConfig(t, db.EngineMattn, nil)

	first, err := Run(context.Background(), conf)
	require.NoError(t, err)
	second, err := Run(context.Background(), conf)
	require.NoError(t, err)

	assert.NotEqual(t, first.RunID, second.RunID)
	assert.Equal(t, first.Queries, second.Queries)
	assert.Equal(t, first.Stats, second.Stats)
}

func TestRunRequiresLogger(t *testing.T) {
	_, err := Run(context.Background(), Config{Path: filepath.Join(t.TempDir(), "x.db")})
	assert.EqualError(t, err, "logger is required")
}

func TestRunInitFailure(t *testing.T) {
	conf := testConfig(t, db.EngineMattn, nil)
	// A non-empty directory at the database path cannot be removed.
	require.NoError(t, os.MkdirAll(conf.Path, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(conf.Path, "keep"), nil, 0644))

	report, err := Run(context.Background(), conf)
	require.Error(t, err)
	assert.ErrorIs(t, err, &PhaseError{Phase: PhaseInit})
	assert.Empty(t, report.Completed)
	assert.Equal(t, "init", report.Failed)
	assert.NotEmpty(t, report.Error)
}

// newTestDemo returns a Demo with an open store, closed on cleanup.
func newTestDemo(t *testing.T, out io.Writer) *Demo {
	t.Helper()
	if out == nil {
		out = io.Discard
	}
	conf := testConfig(t, db.EngineMattn, out)

	store, err := db.Open(context.Background(), db.Config{
		Logger: conf.Logger,
		Path:   conf.Path,
		Engine: conf.Engine,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return &Demo{
		conf:   conf,
		logger: conf.Logger,
		store:  store,
		report: &Report{},
	}
}

func TestRunStepsStopsAtFirstFailure(t *testing.T) {
	d := newTestDemo(t, nil)
	boom := errors.New("boom")
	queried := false

	err := d.runSteps(context.Background(), []step{
		{PhaseSchema, d.createSchema},
		{PhaseSeed, func(context.Context) error { return boom }},
		{PhaseQuery, func(context.Context) error {
			queried = true
			return nil
		}},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	phase, ok := FailedPhase(err)
	assert.True(t, ok)
	assert.Equal(t, PhaseSeed, phase)
	assert.False(t, queried)
	assert.Equal(t, []string{"schema"}, d.report.Completed)
}

func TestSeedRejectsDuplicateTeam(t *testing.T) {
	ctx := context.Background()
	d := newTestDemo(t, nil)
	require.NoError(t, d.createSchema(ctx))

	_, err := d.store.InsertTeams(ctx, []db.Team{{ID: 10, Name: "Ferrari"}})
	require.NoError(t, err)

	err = d.runSteps(ctx, []step{{PhaseSeed, d.seed}})
	require.Error(t, err)
	assert.ErrorIs(t, err, &PhaseError{Phase: PhaseSeed})
	assert.True(t, db.IsUniqueViolation(err))
	assert.Equal(t, int64(3), d.report.Seed.Drivers)
	assert.Zero(t, d.report.Seed.Teams)
}

func TestSchemaFailsWhenTablesExist(t *testing.T) {
	ctx := context.Background()
	d := newTestDemo(t, nil)
	require.NoError(t, d.createSchema(ctx))

	err := d.runSteps(ctx, []step{{PhaseSchema, d.createSchema}})
	assert.ErrorIs(t, err, &PhaseError{Phase: PhaseSchema})
}

func TestReportWriteFile(t *testing.T) {
	report, err := Run(context.Background(), testConfig(t, db.EngineModernc, nil))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "report.yaml")
	require.NoError(t, report.WriteFile(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded Report
	require.NoError(t, yaml.Unmarshal(raw, &decoded))
	assert.Equal(t, report, decoded)
	assert.NotContains(t, string(raw), "failedPhase")
}

func TestPrintWithoutWriter(t *testing.T) {
	d := &Demo{report: &Report{}}

	assert.NotPanics(t, func() {
		d.printStatus("Tables are created!")
		d.printf("Rows inserted: %d\n", 1)
		d.printDrivers("All drivers", SeedDrivers())
		d.printTeams("Teams by CURR_POS", SeedTeams())
	})
}

func TestPhasesWithoutWriter(t *testing.T) {
	ctx := context.Background()
	d := newTestDemo(t, nil)
	d.conf.Out = nil

	err := d.runSteps(ctx, []step{
		{PhaseSchema, d.createSchema},
		{PhaseSeed, d.seed},
		{PhaseQuery, d.query},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"schema", "seed", "query"}, d.report.Completed)
}

func TestCloseStoreFinishesBar(t *testing.T) {
	d := newTestDemo(t, nil)
	d.conf.Bar = phasebar.New(io.Discard, len(Phases.Members()))
	require.False(t, d.conf.Bar.IsFinished())

	require.NoError(t, d.closeStore())
	assert.True(t, d.conf.Bar.IsFinished())
	assert.False(t, d.store.IsInitialized())
	assert.Equal(t, []string{"close"}, d.report.Completed)
}
