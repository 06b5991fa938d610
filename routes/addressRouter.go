package routes

import (
	controller "bakehub/controllers"
	"bakehub/middleware"
	"bakehub/models"

	"github.com/gin-gonic/gin"
)

func AddressRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.GET("/addresses", middleware.Authorize(models.RoleCustomer), controller.GetAddresses())
	incomingRoutes.GET("/addresses/:address_id", middleware.Authorize(models.RoleCustomer), controller.GetAddress())
	incomingRoutes.POST("/addresses", middleware.Authorize(models.RoleCustomer), controller.CreateAddress())
	incomingRoutes.PUT("/addresses/:address_id", middleware.Authorize(models.RoleCustomer), controller.UpdateAddress())
	incomingRoutes.PATCH("/addresses/:address_id", middleware.Authorize(models.RoleCustomer), controller.UpdateAddress())
	incomingRoutes.DELETE("/addresses/:address_id", middleware.Authorize(models.RoleCustomer), controller.DeleteAddress())
}
