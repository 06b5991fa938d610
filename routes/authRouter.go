package routes

import (
	controller "bakehub/controllers"

	"github.com/gin-gonic/gin"
)

// AuthRoutes are the only writes reachable without a token.
func AuthRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.POST("/auth/send-otp", controller.SendOTP())
	incomingRoutes.POST("/auth/verify-otp", controller.VerifyOTP())
	incomingRoutes.POST("/auth/refresh-token", controller.RefreshToken())
	incomingRoutes.GET("/ws", controller.HandleWebSocket())
}
