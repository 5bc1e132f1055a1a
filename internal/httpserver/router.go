package httpserver

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if len(deps.CORSOrigins) > 0 {
		corsCfg.AllowOrigins = deps.CORSOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	api := router.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/signup", signupHandler(deps.Auth))
	authGroup.POST("/login", loginHandler(deps.Auth))
	authGroup.GET("/me", authRequired(deps.Auth), meHandler(deps.Auth))

	// Storefront routes are keyed by the store's public slug and need no
	// authentication.
	front := api.Group("/storefront/:slug")
	front.GET("", storefrontHandler(deps.Stores, deps.Pages))
	front.GET("/products", storefrontProductsHandler(deps.Stores, deps.Products))
	front.GET("/products/:productID", storefrontProductHandler(deps.Stores, deps.Products))
	front.POST("/orders", storefrontOrderHandler(deps.Stores, deps.Orders))
	front.POST("/coupons/validate", storefrontCouponHandler(deps.Stores, deps.Coupons))
	front.GET("/pages/:pageSlug", storefrontPageHandler(deps.Stores, deps.Pages))

	api.GET("/track/:token", trackOrderHandler(deps.Orders))

	stores := api.Group("/stores", authRequired(deps.Auth))
	stores.POST("", createStoreHandler(deps.Stores))
	stores.GET("", listStoresHandler(deps.Stores))
	stores.GET("/:storeID", getStoreHandler(deps.Stores))
	stores.PATCH("/:storeID", updateStoreHandler(deps.Stores))
	stores.GET("/:storeID/stats", storeStatsHandler(deps.Orders, deps.Stores))

	stores.POST("/:storeID/products", createProductHandler(deps.Products))
	stores.GET("/:storeID/products", listProductsHandler(deps.Products))
	stores.GET("/:storeID/products/:productID", getProductHandler(deps.Products))
	stores.PUT("/:storeID/products/:productID", updateProductHandler(deps.Products))
	stores.DELETE("/:storeID/products/:productID", deleteProductHandler(deps.Products))

	stores.GET("/:storeID/orders", listOrdersHandler(deps.Orders, deps.Stores))
	stores.GET("/:storeID/orders/:orderID", getOrderHandler(deps.Orders, deps.Stores))
	stores.PATCH("/:storeID/orders/:orderID", updateOrderHandler(deps.Orders, deps.Stores))

	stores.POST("/:storeID/coupons", createCouponHandler(deps.Coupons))
	stores.GET("/:storeID/coupons", listCouponsHandler(deps.Coupons))
	stores.GET("/:storeID/coupons/:couponID", getCouponHandler(deps.Coupons))
	stores.PUT("/:storeID/coupons/:couponID", updateCouponHandler(deps.Coupons))
	stores.DELETE("/:storeID/coupons/:couponID", deleteCouponHandler(deps.Coupons))

	stores.POST("/:storeID/pages", createPageHandler(deps.Pages))
	stores.GET("/:storeID/pages", listPagesHandler(deps.Pages))
	stores.GET("/:storeID/pages/:pageID", getPageHandler(deps.Pages))
	stores.PUT("/:storeID/pages/:pageID", updatePageHandler(deps.Pages))
	stores.DELETE("/:storeID/pages/:pageID", deletePageHandler(deps.Pages))

	stores.POST("/:storeID/uploads", uploadHandler(deps.Uploads, deps.Stores))

	return router
}
