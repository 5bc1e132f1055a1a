package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prabhatlnct2008/mywabiz/internal/service/page"
)

func createPageHandler(svc *page.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in page.Input
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

func listPagesHandler(svc *page.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		pages, err := svc.List(c.Request.Context(), merchantID(c), c.Param("storeID"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"pages": pages})
	}
}

func getPageHandler(svc *page.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := svc.Get(c.Request.Context(), merchantID(c), c.Param("storeID"), c.Param("pageID"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

func updatePageHandler(svc *page.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in page.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			writeBindError(c)
			return
		}
		p, err := svc.Update(c.Request.Context(), merchantID(c), c.Param("storeID"), c.Param("pageID"), in)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

func deletePageHandler(svc *page.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), merchantID(c), c.Param("storeID"), c.Param("pageID")); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
