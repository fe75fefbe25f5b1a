// Package driversdb wires the configuration, logger and demo together for
// the driversdb command.
package driversdb

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/nsqlite/driversdb/internal/demo"
	"github.com/nsqlite/driversdb/internal/demo/phasebar"
	"github.com/nsqlite/driversdb/internal/driversdb/config"
	"github.com/nsqlite/driversdb/internal/log"
	"github.com/nsqlite/driversdb/internal/styled"
	"github.com/nsqlite/driversdb/internal/version"
)

// Run runs the driversdb demo.
//
// A failing demo phase is printed and logged but does not make Run return
// an error, so the process still exits with status 0.
func Run(ctx context.Context) error {
	conf := config.MustParse(os.Args)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return run(ctx, conf, os.Stdout, os.Stderr)
}

func run(ctx context.Context, conf config.Config, stdout io.Writer, stderr io.Writer) error {
	logger := log.NewLogger(stderr, log.ParseLevel(conf.LogLevel))
	fmt.Fprintln(stdout, version.Banner())

	var bar *phasebar.Bar
	if conf.Progress {
		bar = phasebar.New(stderr, len(demo.Phases.Members()))
	}

	report, err := demo.Run(ctx, demo.Config{
		Logger: logger,
		Out:    stdout,
		Path:   conf.DBPath,
		Engine: conf.EngineMember(),
		Bar:    bar,
	})
	if err != nil {
		styled.ErrorColor().Fprintf(stdout, "An error occurred: %v\n", err)
		logger.ErrorNs(log.NsCLI, "demo failed", log.KV{
			"runId": report.RunID,
			"phase": report.Failed,
			"error": err,
		})
	}
	styled.DimmedColor().Fprintf(
		stdout, "Completed phases: %d/%d\n", len(report.Completed), len(demo.Phases.Members()),
	)

	if conf.Report != "" {
		if err := report.WriteFile(conf.Report); err != nil {
			return err
		}
		styled.DimmedColor().Fprintf(stdout, "Report written to %s\n", conf.Report)
	}

	return nil
}
