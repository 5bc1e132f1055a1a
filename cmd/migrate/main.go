package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/prabhatlnct2008/mywabiz/internal/config"
	"github.com/prabhatlnct2008/mywabiz/internal/db"
	"github.com/prabhatlnct2008/mywabiz/internal/migrate"
)

func main() {
	down := flag.Bool("down", false, "roll back the most recent migration instead of migrating up")
	flag.Parse()

	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[migrate] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString, cfg.DBMaxConns)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	var version uint
	if *down {
		version, err = migrate.Rollback(ctx, pool)
	} else {
		version, err = migrate.Apply(ctx, pool)
	}
	if err != nil {
		logger.Fatalf("migrate: %v", err)
	}

	logger.Printf("schema at version %d", version)
}
