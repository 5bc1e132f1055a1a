package main

import (
	"context"
	"log"
	"os"

	"github.com/prabhatlnct2008/mywabiz/internal/config"
	"github.com/prabhatlnct2008/mywabiz/internal/db"
	"github.com/prabhatlnct2008/mywabiz/internal/seed"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[seed] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString, cfg.DBMaxConns)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	if err := seed.Apply(ctx, pool); err != nil {
		logger.Fatalf("seed apply: %v", err)
	}

	logger.Println("seed applied")
}
