package routes

import (
	controller "bakehub/controllers"
	"bakehub/middleware"
	"bakehub/models"

	"github.com/gin-gonic/gin"
)

func BannerRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.GET("/banners", controller.GetActiveBanners())
}

func BannerAdminRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.GET("/banners/all", middleware.Authorize(models.RoleSuperAdmin), controller.GetAllBanners())
	incomingRoutes.POST("/banners", middleware.Authorize(models.RoleSuperAdmin), controller.CreateBanner())
	incomingRoutes.PATCH("/banners/:banner_id", middleware.Authorize(models.RoleSuperAdmin), controller.UpdateBanner())
	incomingRoutes.DELETE("/banners/:banner_id", middleware.Authorize(models.RoleSuperAdmin), controller.DeleteBanner())
}
