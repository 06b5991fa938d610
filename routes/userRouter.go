package routes

import (
	controller "bakehub/controllers"

	"github.com/gin-gonic/gin"
)

func UserRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.GET("/users/me", controller.GetCurrentUser())
	incomingRoutes.PATCH("/users/me", controller.UpdateProfile())
}
