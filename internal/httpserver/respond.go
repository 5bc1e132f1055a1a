package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prabhatlnct2008/mywabiz/internal/domain"
)

// writeError maps service errors onto HTTP responses. Validation failures
// carry a caller-facing message; anything unrecognized is an internal fault
// and must not leak its details to the client.
func writeError(c *gin.Context, err error) {
	var invalid domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &invalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func writeBindError(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body"})
}
