package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/prabhatlnct2008/mywabiz/internal/config"
	"github.com/prabhatlnct2008/mywabiz/internal/db"
	"github.com/prabhatlnct2008/mywabiz/internal/importer"
	productrepo "github.com/prabhatlnct2008/mywabiz/internal/repository/product"
	storerepo "github.com/prabhatlnct2008/mywabiz/internal/repository/store"
)

func main() {
	var (
		filePath  string
		storeSlug string
	)
	flag.StringVar(&filePath, "file", "", "Path to sheet CSV export")
	flag.StringVar(&storeSlug, "store", "", "Slug of the store to import into")
	flag.Parse()

	if filePath == "" || storeSlug == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[importer] ", log.LstdFlags|log.LUTC)
	ctx := context.Background()

	pool, err := db.Connect(ctx, cfg.DBConnString, cfg.DBMaxConns)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	st, err := storerepo.NewPostgres(pool, logger).GetBySlug(ctx, storeSlug)
	if err != nil {
		logger.Fatalf("resolve store %q: %v", storeSlug, err)
	}

	f, err := os.Open(filePath)
	if err != nil {
		logger.Fatalf("open file: %v", err)
	}
	defer f.Close()

	imp := importer.NewCSVImporter(f, productrepo.NewPostgres(pool, logger), st.ID)

	start := time.Now()
	count, err := imp.Run(ctx)
	if err != nil {
		logger.Fatalf("import failed: %v", err)
	}

	fmt.Printf("Imported %d products into store %s in %s\n", count, storeSlug, time.Since(start).Truncate(time.Millisecond))
}
