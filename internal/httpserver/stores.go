package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prabhatlnct2008/mywabiz/internal/service/store"
)

func createStoreHandler(svc *store.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in store.CreateInput
		if err := c.ShouldBindJSON(&in); err != nil {
			writeBindError(c)
			return
		}
		st, err := svc.Create(c.Request.Context(), merchantID(c), in)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, st)
	}
}

func listStoresHandler(svc *store.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		stores, err := svc.List(c.Request.Context(), merchantID(c))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"stores": stores})
	}
}

func getStoreHandler(svc *store.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		st, err := svc.Get(c.Request.Context(), merchantID(c), c.Param("storeID"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, st)
	}
}

func updateStoreHandler(svc *store.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in store.UpdateInput
		if err := c.ShouldBindJSON(&in); err != nil {
			writeBindError(c)
			return
		}
		st, err := svc.Update(c.Request.Context(), merchantID(c), c.Param("storeID"), in)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, st)
	}
}
