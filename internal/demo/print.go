package demo

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/nsqlite/driversdb/internal/db"
	"github.com/nsqlite/driversdb/internal/styled"
)

// out returns the configured writer, io.Discard when none was set.
func (d *Demo) out() io.Writer {
	if d.conf.Out == nil {
		return io.Discard
	}
	return d.conf.Out
}

func (d *Demo) printf(format string, args ...any) {
	fmt.Fprintf(d.out(), format, args...)
}

func (d *Demo) printStatus(msg string) {
	styled.SuccessColor().Fprintln(d.out(), msg)
}

func (d *Demo) printDrivers(title string, drivers []db.Driver) {
	tw := styled.NewTableWriter(title)
	tw.AppendHeader(table.Row{"id", "name", "age", "WDC"})
	for _, dr := range drivers {
		tw.AppendRow(table.Row{dr.ID, dr.Name, dr.Age, db.FormatNullable(dr.WDC)})
	}
	tw.AppendFooter(table.Row{"", "", "", fmt.Sprintf("%d rows", len(drivers))})

	fmt.Fprintln(d.out(), tw.Render())
}

func (d *Demo) printTeams(title string, teams []db.Team) {
	tw := styled.NewTableWriter(title)
	tw.AppendHeader(table.Row{"id", "name", "CURR_POS"})
	for _, t := range teams {
		tw.AppendRow(table.Row{t.ID, t.Name, db.FormatNullable(t.CurrPos)})
	}
	tw.AppendFooter(table.Row{"", "", fmt.Sprintf("%d rows", len(teams))})

	fmt.Fprintln(d.out(), tw.Render())
}
