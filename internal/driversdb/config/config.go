package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexflint/go-arg"
	"github.com/nsqlite/driversdb/internal/db"
	"github.com/nsqlite/driversdb/internal/version"
)

// defaultDBFile is the database file name used when --db-path is empty.
const defaultDBFile = "drivers.db"

// Config represents the configuration for driversdb.
type Config struct {
	DBPath   string `arg:"--db-path,env:DRIVERSDB_DB_PATH" help:"SQLite file, deleted and recreated on every run (default: drivers.db next to the executable)"`
	Engine   string `arg:"--engine,env:DRIVERSDB_ENGINE" help:"SQLite engine (mattn, modernc)" default:"mattn"`
	LogLevel string `arg:"--log-level,env:DRIVERSDB_LOG_LEVEL" help:"Minimum level of the JSON logs written to stderr (debug, info, warn, error)" default:"warn"`
	Progress bool   `arg:"--progress,env:DRIVERSDB_PROGRESS" help:"Show a progress bar over the demo phases on stderr" default:"false"`
	Report   string `arg:"--report,env:DRIVERSDB_REPORT" help:"Write the run report as YAML to this file"`
}

func (Config) Version() string {
	return version.CLIVersion()
}

func (Config) Description() string {
	return "Creates a fresh SQLite database of F1 drivers and teams and walks through inserts, selects, updates, deletes and aggregates."
}

// EngineMember returns the validated engine as a db.Engine.
func (c Config) EngineMember() db.Engine {
	if e := db.Engines.Parse(c.Engine); e != nil {
		return *e
	}
	return db.EngineMattn
}

// MustParse parses and validates the configuration from the command
// line arguments. It returns a Config struct or exits the program
// with an error.
func MustParse(args []string) Config {
	cfg := Config{}

	parser, err := arg.NewParser(
		arg.Config{Program: "driversdb"},
		&cfg,
	)
	if err != nil {
		log.Fatal(err)
	}
	parser.MustParse(args[1:])

	if err := cfg.finalize(); err != nil {
		log.Fatal(err)
	}

	return cfg
}

// finalize validates the parsed values and fills the derived defaults.
func (c *Config) finalize() error {
	if err := validateEngine(c.Engine); err != nil {
		return err
	}
	if err := validateLogLevel(c.LogLevel); err != nil {
		return err
	}
	if c.DBPath == "" {
		c.DBPath = defaultDBPath()
	}
	return nil
}

// defaultDBPath returns drivers.db in the directory of the running
// executable, or in the working directory if that cannot be resolved.
func defaultDBPath() string {
	exe, err := os.Executable()
	if err != nil {
		return defaultDBFile
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(exe), defaultDBFile)
}

// validateEngine validates if engine is a supported SQLite engine.
func validateEngine(engine string) error {
	if db.Engines.Parse(engine) != nil {
		return nil
	}

	valid := []string{}
	for _, e := range db.Engines.Members() {
		valid = append(valid, e.Value)
	}
	return fmt.Errorf(
		"invalid engine, valid values are: %s", strings.Join(valid, ", "),
	)
}

// validateLogLevel validates if level is a valid log level.
func validateLogLevel(level string) error {
	valid := []string{"debug", "info", "warn", "error"}

	for _, v := range valid {
		if level == v {
			return nil
		}
	}

	return fmt.Errorf(
		"invalid log level, valid values are: %s",
		strings.Join(valid, ", "),
	)
}
