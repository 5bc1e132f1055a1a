package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/prabhatlnct2008/mywabiz/internal/config"
	"github.com/prabhatlnct2008/mywabiz/internal/db"
	"github.com/prabhatlnct2008/mywabiz/internal/httpserver"
	couponrepo "github.com/prabhatlnct2008/mywabiz/internal/repository/coupon"
	merchantrepo "github.com/prabhatlnct2008/mywabiz/internal/repository/merchant"
	orderrepo "github.com/prabhatlnct2008/mywabiz/internal/repository/order"
	pagerepo "github.com/prabhatlnct2008/mywabiz/internal/repository/page"
	productrepo "github.com/prabhatlnct2008/mywabiz/internal/repository/product"
	storerepo "github.com/prabhatlnct2008/mywabiz/internal/repository/store"
	authsvc "github.com/prabhatlnct2008/mywabiz/internal/service/auth"
	couponsvc "github.com/prabhatlnct2008/mywabiz/internal/service/coupon"
	ordersvc "github.com/prabhatlnct2008/mywabiz/internal/service/order"
	pagesvc "github.com/prabhatlnct2008/mywabiz/internal/service/page"
	productsvc "github.com/prabhatlnct2008/mywabiz/internal/service/product"
	storesvc "github.com/prabhatlnct2008/mywabiz/internal/service/store"
	uploadsvc "github.com/prabhatlnct2008/mywabiz/internal/service/upload"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString, cfg.DBMaxConns)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	merchantRepo := merchantrepo.NewPostgres(dbpool, logger)
	storeRepo := storerepo.NewPostgres(dbpool, logger)
	productRepo := productrepo.NewPostgres(dbpool, logger)
	orderRepo := orderrepo.NewPostgres(dbpool, logger)
	couponRepo := couponrepo.NewPostgres(dbpool, logger)
	pageRepo := pagerepo.NewPostgres(dbpool, logger)

	authService := authsvc.New(merchantRepo, cfg.JWTSecret, cfg.AccessTokenTTL)
	storeService := storesvc.New(storeRepo)
	productService := productsvc.New(productRepo, storeRepo)
	couponService := couponsvc.New(couponRepo, storeRepo)
	pageService := pagesvc.New(pageRepo, storeRepo)
	orderService := ordersvc.New(orderRepo, productRepo, storeRepo, couponService, cfg.PublicBaseHost)
	uploadService, err := uploadsvc.New(cfg.CloudinaryURL)
	if err != nil {
		logger.Fatalf("init uploads: %v", err)
	}
	if !uploadService.Configured() {
		logger.Printf("CLOUDINARY_URL not set, image uploads disabled")
	}

	srv := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Auth:        authService,
		Stores:      storeService,
		Products:    productService,
		Orders:      orderService,
		Coupons:     couponService,
		Pages:       pageService,
		Uploads:     uploadService,
		CORSOrigins: corsOrigins(cfg.CORSOrigins),
	})

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}

// corsOrigins parses the comma-separated CORS_ORIGINS value; "*" or empty
// means allow any origin.
func corsOrigins(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "*" {
		return nil
	}
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
