package routes

import (
	controller "bakehub/controllers"
	"bakehub/middleware"
	"bakehub/models"

	"github.com/gin-gonic/gin"
)

func DeliveryRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.GET("/delivery/orders", middleware.Authorize(models.RoleDeliveryBoy), controller.GetAssignedOrders())
	incomingRoutes.PUT("/delivery/orders/:order_id/status", middleware.Authorize(models.RoleDeliveryBoy), controller.UpdateDeliveryStatus())
	incomingRoutes.PATCH("/delivery/orders/:order_id/status", middleware.Authorize(models.RoleDeliveryBoy), controller.UpdateDeliveryStatus())
	incomingRoutes.GET("/delivery/profile", middleware.Authorize(models.RoleDeliveryBoy), controller.GetDeliveryProfile())
	incomingRoutes.POST("/delivery/location", middleware.Authorize(models.RoleDeliveryBoy), controller.UpdateLocation())
	incomingRoutes.GET("/delivery/location", middleware.Authorize(models.RoleDeliveryBoy), controller.GetMyLocation())
	incomingRoutes.GET("/delivery/location/:delivery_boy_id", controller.GetDeliveryBoyLocation())
}
