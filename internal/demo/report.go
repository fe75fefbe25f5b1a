package demo

import (
	"fmt"
	"os"

	"github.com/nsqlite/driversdb/internal/db"
	"gopkg.in/yaml.v3"
)

// Report collects everything a run produced, up to the failing phase.
type Report struct {
	RunID     string      `yaml:"runId"`
	Path      string      `yaml:"path"`
	Engine    string      `yaml:"engine"`
	Completed []string    `yaml:"completed"`
	Seed      SeedResult  `yaml:"seed"`
	Queries   Queries     `yaml:"queries"`
	Mutations []Mutation  `yaml:"mutations"`
	Stats     Stats       `yaml:"stats"`
	Final     []db.Driver `yaml:"final,omitempty"`
	Committed bool        `yaml:"committed"`
	Failed    string      `yaml:"failedPhase,omitempty"`
	Error     string      `yaml:"error,omitempty"`
}

// SeedResult holds the rows inserted by each seed batch.
type SeedResult struct {
	Drivers int64 `yaml:"drivers"`
	Teams   int64 `yaml:"teams"`
}

// Queries holds the results of the read-only phase.
type Queries struct {
	AllDrivers      []db.Driver `yaml:"allDrivers"`
	Champions       []db.Driver `yaml:"champions"`
	TeamsByPosition []db.Team   `yaml:"teamsByPosition"`
}

// Mutation is the outcome of one step of the write sequence.
type Mutation struct {
	Label string `yaml:"label"`
	Rows  int64  `yaml:"rows"`
}

// Stats holds the results of the aggregate phase.
type Stats struct {
	Count       int64           `yaml:"count"`
	AverageAge  float64         `yaml:"averageAge"`
	MinAge      int64           `yaml:"minAge"`
	MaxAge      int64           `yaml:"maxAge"`
	TotalTitles int64           `yaml:"totalTitles"`
	TitleGroups []db.TitleGroup `yaml:"titleGroups"`
}

// reached records that phase finished successfully.
func (r *Report) reached(phase Phase) {
	r.Completed = append(r.Completed, phase.Value)
}

// fail records the phase error, if any.
func (r *Report) fail(err error) {
	if err == nil {
		return
	}
	r.Error = err.Error()
	if phase, ok := FailedPhase(err); ok {
		r.Failed = phase.Value
	}
}

// WriteFile writes the report as YAML to path.
func (r Report) WriteFile(path string) error {
	out, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
