package routes

import (
	controller "bakehub/controllers"
	"bakehub/middleware"
	"bakehub/models"

	"github.com/gin-gonic/gin"
)

// CouponRoutes is the public listing of live offers.
func CouponRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.GET("/coupons/active", controller.GetActiveCoupons())
}

func CouponProtectedRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.POST("/coupons/verify", middleware.Authorize(models.RoleCustomer), controller.VerifyCoupon())
	incomingRoutes.GET("/coupons", middleware.Authorize(models.RoleSuperAdmin), controller.GetCoupons())
	incomingRoutes.POST("/coupons", middleware.Authorize(models.RoleSuperAdmin), controller.CreateCoupon())
	incomingRoutes.PATCH("/coupons/:coupon_id", middleware.Authorize(models.RoleSuperAdmin), controller.UpdateCoupon())
	incomingRoutes.DELETE("/coupons/:coupon_id", middleware.Authorize(models.RoleSuperAdmin), controller.DeleteCoupon())
}
