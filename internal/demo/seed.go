package demo

import "github.com/nsqlite/driversdb/internal/db"

// SeedDrivers returns the drivers inserted right after the schema is created.
func SeedDrivers() []db.Driver {
	return []db.Driver{
		{ID: 1, Name: "Lewis Hamilton", Age: 40, WDC: db.Int64(7)},
		{ID: 2, Name: "Max Verstappen", Age: 31, WDC: db.Int64(4)},
		{ID: 3, Name: "Sebastian Vettel", Age: 38, WDC: db.Int64(4)},
	}
}

// SeedTeams returns the teams inserted right after the schema is created.
func SeedTeams() []db.Team {
	return []db.Team{
		{ID: 1, Name: "Mercedes", CurrPos: db.Int64(1)},
		{ID: 2, Name: "Red Bull Racing", CurrPos: db.Int64(2)},
		{ID: 3, Name: "Ferrari", CurrPos: db.Int64(3)},
	}
}

const (
	// championsAbove is the WDC threshold of the filtered query.
	championsAbove = 4
	// birthdayDriver gets one year older during the write sequence.
	birthdayDriver = "Lewis Hamilton"
	// retiredDriverID is deleted and then taken over by the newcomer.
	retiredDriverID = 3
)

var (
	newcomer     = db.Driver{ID: 4, Name: "Charles Leclerc", Age: 30, WDC: db.Int64(0)}
	lateNewcomer = db.Driver{ID: 4, Name: "Lando Norris", Age: 25, WDC: db.Int64(0)}
)
