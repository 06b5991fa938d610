package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"bakehub/database"
	"bakehub/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var bannerCollection *mongo.Collection = database.OpenCollection(database.Client, "banner")

func GetActiveBanners() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "created_at", Value: -1}})
		result, err := bannerCollection.Find(ctx, bson.M{"is_active": true}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occured while listing banners"})
			return
		}
		var banners []models.Banner
		if err := result.All(ctx, &banners); err != nil {
			log.Println("error decoding banners:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occured while listing banners"})
			return
		}
		c.JSON(http.StatusOK, banners)
	}
}

func GetAllBanners() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "created_at", Value: -1}})
		result, err := bannerCollection.Find(ctx, bson.M{}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occured while listing banners"})
			return
		}
		var banners []models.Banner
		if err := result.All(ctx, &banners); err != nil {
			log.Println("error decoding banners:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occured while listing banners"})
			return
		}
		c.JSON(http.StatusOK, banners)
	}
}

func CreateBanner() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		var banner models.Banner
		if err := c.BindJSON(&banner); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if validationErr := validate.Struct(&banner); validationErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}

		if banner.Button_text == nil {
			buttonText := "Order Now"
			banner.Button_text = &buttonText
		}
		banner.Created_at, _ = time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
		banner.Updated_at, _ = time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
		banner.ID = primitive.NewObjectID()
		banner.Banner_id = banner.ID.Hex()

		if _, err := bannerCollection.InsertOne(ctx, banner); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "banner was not created"})
			return
		}
		c.JSON(http.StatusCreated, banner)
	}
}

func UpdateBanner() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		bannerId := c.Param("banner_id")
		var banner models.Banner
		if err := c.BindJSON(&banner); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var updateObj primitive.D
		if banner.Title != nil {
			updateObj = append(updateObj, bson.E{Key: "title", Value: banner.Title})
		}
		if banner.Description != nil {
			updateObj = append(updateObj, bson.E{Key: "description", Value: banner.Description})
		}
		if banner.Image != nil {
			updateObj = append(updateObj, bson.E{Key: "image", Value: banner.Image})
		}
		if banner.Coupon_code != nil {
			updateObj = append(updateObj, bson.E{Key: "coupon_code", Value: banner.Coupon_code})
		}
		if banner.Button_text != nil {
			updateObj = append(updateObj, bson.E{Key: "button_text", Value: banner.Button_text})
		}
		updateObj = append(updateObj, bson.E{Key: "is_active", Value: banner.Is_active})
		updateObj = append(updateObj, bson.E{Key: "order", Value: banner.Order})
		updated_at, _ := time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
		updateObj = append(updateObj, bson.E{Key: "updated_at", Value: updated_at})

		result, err := bannerCollection.UpdateOne(
			ctx,
			bson.M{"banner_id": bannerId},
			bson.D{{Key: "$set", Value: updateObj}},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "banner update failed"})
			return
		}
		if result.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "banner not found"})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func DeleteBanner() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		bannerId := c.Param("banner_id")
		result, err := bannerCollection.DeleteOne(ctx, bson.M{"banner_id": bannerId})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "banner delete failed"})
			return
		}
		if result.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "banner not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "banner deleted"})
	}
}
