package routes

import (
	controller "bakehub/controllers"
	"bakehub/middleware"
	"bakehub/models"

	"github.com/gin-gonic/gin"
)

func AdminRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.GET("/admin/dashboard", middleware.Authorize(models.RoleSuperAdmin), controller.GetDashboard())
	incomingRoutes.GET("/admin/delivery-boys", middleware.Authorize(models.RoleSuperAdmin), controller.GetDeliveryBoys())
	incomingRoutes.POST("/admin/delivery-boys", middleware.Authorize(models.RoleSuperAdmin), controller.CreateDeliveryBoy())
	incomingRoutes.PATCH("/admin/delivery-boys/:user_id", middleware.Authorize(models.RoleSuperAdmin), controller.UpdateDeliveryBoy())
	incomingRoutes.DELETE("/admin/delivery-boys/:user_id", middleware.Authorize(models.RoleSuperAdmin), controller.DeleteDeliveryBoy())
	incomingRoutes.GET("/admin/customers", middleware.Authorize(models.RoleSuperAdmin), controller.GetCustomers())
	incomingRoutes.GET("/admin/customers/:user_id", middleware.Authorize(models.RoleSuperAdmin), controller.GetCustomer())
	incomingRoutes.POST("/admin/upload", middleware.Authorize(models.RoleSuperAdmin), controller.UploadImage())
}
