package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prabhatlnct2008/mywabiz/internal/service/auth"
)

func signupHandler(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in auth.SignupInput
		if err := c.ShouldBindJSON(&in); err != nil {
			writeBindError(c)
			return
		}
		session, err := svc.Signup(c.Request.Context(), in)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, session)
	}
}

func loginHandler(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in auth.LoginInput
		if err := c.ShouldBindJSON(&in); err != nil {
			writeBindError(c)
			return
		}
		session, err := svc.Login(c.Request.Context(), in)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidCredentials) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
				return
			}
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, session)
	}
}

func meHandler(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		m, err := svc.Merchant(c.Request.Context(), merchantID(c))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, m)
	}
}
