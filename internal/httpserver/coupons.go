package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prabhatlnct2008/mywabiz/internal/service/coupon"
)

func createCouponHandler(svc *coupon.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in coupon.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			writeBindError(c)
			return
		}
		cp, err := svc.Create(c.Request.Context(), merchantID(c), c.Param("storeID"), in)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, cp)
	}
}

func listCouponsHandler(svc *coupon.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		coupons, err := svc.List(c.Request.Context(), merchantID(c), c.Param("storeID"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"coupons": coupons})
	}
}

func getCouponHandler(svc *coupon.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		cp, err := svc.Get(c.Request.Context(), merchantID(c), c.Param("storeID"), c.Param("couponID"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, cp)
	}
}

func updateCouponHandler(svc *coupon.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in coupon.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			writeBindError(c)
			return
		}
		cp, err := svc.Update(c.Request.Context(), merchantID(c), c.Param("storeID"), c.Param("couponID"), in)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, cp)
	}
}

func deleteCouponHandler(svc *coupon.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), merchantID(c), c.Param("storeID"), c.Param("couponID")); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
