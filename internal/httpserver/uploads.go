package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prabhatlnct2008/mywabiz/internal/service/store"
	"github.com/prabhatlnct2008/mywabiz/internal/service/upload"
)

// maxUploadBytes caps image uploads at 5 MiB.
const maxUploadBytes = 5 << 20

func uploadHandler(svc *upload.Service, stores *store.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		storeID := c.Param("storeID")
		if _, err := stores.Get(c.Request.Context(), merchantID(c), storeID); err != nil {
			writeError(c, err)
			return
		}

		kind := c.PostForm("kind")
		if kind == "" {
			kind = upload.KindProduct
		}
		header, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file field required"})
			return
		}
		if header.Size > maxUploadBytes {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "image exceeds the 5MB limit"})
			return
		}
		f, err := header.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable upload"})
			return
		}
		defer f.Close()

		url, err := svc.Image(c.Request.Context(), storeID, kind, f)
		if err != nil {
			if errors.Is(err, upload.ErrNotConfigured) {
				c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image uploads are not configured"})
				return
			}
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"url": url})
	}
}
