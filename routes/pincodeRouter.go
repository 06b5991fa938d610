package routes

import (
	controller "bakehub/controllers"
	"bakehub/middleware"
	"bakehub/models"

	"github.com/gin-gonic/gin"
)

func PincodeRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.GET("/pincodes/check/:pincode", controller.CheckPincode())
}

func PincodeAdminRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.GET("/pincodes", middleware.Authorize(models.RoleSuperAdmin), controller.GetPincodes())
	incomingRoutes.POST("/pincodes", middleware.Authorize(models.RoleSuperAdmin), controller.CreatePincode())
	incomingRoutes.PATCH("/pincodes/:pincode_id", middleware.Authorize(models.RoleSuperAdmin), controller.UpdatePincode())
	incomingRoutes.DELETE("/pincodes/:pincode_id", middleware.Authorize(models.RoleSuperAdmin), controller.DeletePincode())
}
