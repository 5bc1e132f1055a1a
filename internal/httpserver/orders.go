package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	orderrepo "github.com/prabhatlnct2008/mywabiz/internal/repository/order"
	"github.com/prabhatlnct2008/mywabiz/internal/service/order"
	"github.com/prabhatlnct2008/mywabiz/internal/service/store"
)

func listOrdersHandler(svc *order.Service, stores *store.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		storeID := c.Param("storeID")
		if _, err := stores.Get(c.Request.Context(), merchantID(c), storeID); err != nil {
			writeError(c, err)
			return
		}
		f := orderrepo.ListFilter{
			Status: c.Query("status"),
			Page:   queryInt(c, "page", 1),
			Limit:  queryInt(c, "limit", 50),
		}
		orders, err := svc.List(c.Request.Context(), storeID, f)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": orders})
	}
}

func storeStatsHandler(svc *order.Service, stores *store.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		storeID := c.Param("storeID")
		if _, err := stores.Get(c.Request.Context(), merchantID(c), storeID); err != nil {
			writeError(c, err)
			return
		}
		stats, err := svc.Stats(c.Request.Context(), storeID, c.DefaultQuery("timeframe", "7d"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}

func getOrderHandler(svc *order.Service, stores *store.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		storeID := c.Param("storeID")
		if _, err := stores.Get(c.Request.Context(), merchantID(c), storeID); err != nil {
			writeError(c, err)
			return
		}
		o, err := svc.Get(c.Request.Context(), storeID, c.Param("orderID"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

func updateOrderHandler(svc *order.Service, stores *store.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		storeID := c.Param("storeID")
		if _, err := stores.Get(c.Request.Context(), merchantID(c), storeID); err != nil {
			writeError(c, err)
			return
		}
		var in order.UpdateInput
		if err := c.ShouldBindJSON(&in); err != nil {
			writeBindError(c)
			return
		}
		o, err := svc.Update(c.Request.Context(), storeID, c.Param("orderID"), in)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, o)
	}
}
