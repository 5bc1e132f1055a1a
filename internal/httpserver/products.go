package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	productrepo "github.com/prabhatlnct2008/mywabiz/internal/repository/product"
	"github.com/prabhatlnct2008/mywabiz/internal/service/product"
)

func createProductHandler(svc *product.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in product.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			writeBindError(c)
			return
		}
		p, err := svc.Create(c.Request.Context(), merchantID(c), c.Param("storeID"), in)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, p)
	}
}

func listProductsHandler(svc *product.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		f := productrepo.ListFilter{
			Category: c.Query("category"),
			Page:     queryInt(c, "page", 1),
			Limit:    queryInt(c, "limit", 50),
		}
		products, err := svc.List(c.Request.Context(), merchantID(c), c.Param("storeID"), f)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": products})
	}
}

func getProductHandler(svc *product.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := svc.Get(c.Request.Context(), merchantID(c), c.Param("storeID"), c.Param("productID"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

func updateProductHandler(svc *product.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in product.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			writeBindError(c)
			return
		}
		p, err := svc.Update(c.Request.Context(), merchantID(c), c.Param("storeID"), c.Param("productID"), in)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

func deleteProductHandler(svc *product.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), merchantID(c), c.Param("storeID"), c.Param("productID")); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func queryInt(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
