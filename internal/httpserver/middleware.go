package httpserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/prabhatlnct2008/mywabiz/internal/service/auth"
)

const merchantIDKey = "merchantID"

// authRequired validates the Authorization bearer token and stores the
// merchant ID on the request context.
func authRequired(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		merchantID, err := svc.Validate(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		c.Set(merchantIDKey, merchantID)
		c.Next()
	}
}

func merchantID(c *gin.Context) string {
	return c.GetString(merchantIDKey)
}
