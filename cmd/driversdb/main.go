package main

import (
	"context"
	"log"

	"github.com/nsqlite/driversdb/internal/driversdb"
)

func main() {
	if err := driversdb.Run(context.Background()); err != nil {
		log.Fatal(err)
	}
}
