package routes

import (
	controller "bakehub/controllers"
	"bakehub/middleware"
	"bakehub/models"

	"github.com/gin-gonic/gin"
)

// ProductRoutes is the public catalog surface.
func ProductRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.GET("/products", controller.GetProducts())
	incomingRoutes.GET("/products/bestsellers", controller.GetBestsellers())
	incomingRoutes.GET("/products/:product_id", controller.GetProduct())
	incomingRoutes.GET("/categories", controller.GetCategories())
}

func ProductAdminRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.POST("/products", middleware.Authorize(models.RoleSuperAdmin), controller.CreateProduct())
	incomingRoutes.PATCH("/products/:product_id", middleware.Authorize(models.RoleSuperAdmin), controller.UpdateProduct())
	incomingRoutes.DELETE("/products/:product_id", middleware.Authorize(models.RoleSuperAdmin), controller.DeleteProduct())
	incomingRoutes.POST("/categories", middleware.Authorize(models.RoleSuperAdmin), controller.CreateCategory())
	incomingRoutes.DELETE("/categories/:category_id", middleware.Authorize(models.RoleSuperAdmin), controller.DeleteCategory())
}
