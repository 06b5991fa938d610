package routes

import (
	controller "bakehub/controllers"
	"bakehub/middleware"
	"bakehub/models"

	"github.com/gin-gonic/gin"
)

func PaymentRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.POST("/payments/create-order", middleware.Authorize(models.RoleCustomer), controller.CreatePaymentOrder())
	incomingRoutes.POST("/payments/verify", middleware.Authorize(models.RoleCustomer), controller.VerifyPayment())
}
