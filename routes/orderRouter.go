package routes

import (
	controller "bakehub/controllers"
	"bakehub/middleware"
	"bakehub/models"

	"github.com/gin-gonic/gin"
)

func OrderRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.POST("/orders", middleware.Authorize(models.RoleCustomer), controller.CreateOrder())
	incomingRoutes.GET("/orders/my", middleware.Authorize(models.RoleCustomer), controller.GetMyOrders())
	incomingRoutes.GET("/orders/:order_id", controller.GetOrder())
	incomingRoutes.PATCH("/orders/:order_id/cancel", middleware.Authorize(models.RoleSuperAdmin), controller.CancelOrder())
	incomingRoutes.GET("/orders", middleware.Authorize(models.RoleSuperAdmin), controller.GetOrders())
	incomingRoutes.PATCH("/orders/:order_id/assign", middleware.Authorize(models.RoleSuperAdmin), controller.AssignDeliveryBoy())
	incomingRoutes.PATCH("/orders/:order_id/status", middleware.Authorize(models.RoleSuperAdmin), controller.UpdateOrderStatusAdmin())
}
