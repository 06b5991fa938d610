package main

import (
	"log"
	"os"
	"time"

	"bakehub/controllers"
	middleware "bakehub/middleware"
	routes "bakehub/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

func main() {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	allowedOrigin := os.Getenv("FRONTEND_URL")
	if allowedOrigin == "" {
		allowedOrigin = "http://localhost:9000"
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{allowedOrigin},
		AllowMethods:     []string{"POST", "GET", "PATCH", "DELETE", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "token"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Uploaded product and banner images
	router.Static("/uploads", "./uploads")

	// Public routes
	routes.AuthRoutes(router)
	routes.ProductRoutes(router)
	routes.BannerRoutes(router)
	routes.PincodeRoutes(router)
	routes.CouponRoutes(router)

	// Everything below requires a valid token
	router.Use(middleware.Authentication())
	routes.UserRoutes(router)
	routes.ProductAdminRoutes(router)
	routes.OrderRoutes(router)
	routes.DeliveryRoutes(router)
	routes.AddressRoutes(router)
	routes.CouponProtectedRoutes(router)
	routes.BannerAdminRoutes(router)
	routes.PincodeAdminRoutes(router)
	routes.PaymentRoutes(router)
	routes.AdminRoutes(router)

	// Delivery boys that stop reporting get flagged inactive.
	c := cron.New()
	if _, err := c.AddFunc("@every 1m", controllers.DeactivateStaleLocations); err != nil {
		log.Fatal("failed to schedule stale location sweep:", err)
	}
	c.Start()
	defer c.Stop()

	router.Run(":" + port)
}
