package controllers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"bakehub/database"
	"bakehub/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var deliveryPincodeCollection *mongo.Collection = database.OpenCollection(database.Client, "deliveryPincode")

func CheckPincode() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		requested := strings.TrimSpace(c.Param("pincode"))
		if requested == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "pincode is required"})
			return
		}

		var pincode models.DeliveryPincode
		err := deliveryPincodeCollection.FindOne(ctx, bson.M{
			"pincode":   requested,
			"is_active": true,
		}).Decode(&pincode)
		if err != nil {
			c.JSON(http.StatusOK, gin.H{
				"available": false,
				"message":   "delivery not available for this pincode",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"available": true,
			"message":   "delivery available",
			"pincode":   pincode.Pincode,
			"city":      pincode.City,
			"state":     pincode.State,
		})
	}
}

func GetPincodes() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "pincode", Value: 1}})
		result, err := deliveryPincodeCollection.Find(ctx, bson.M{}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occured while listing pincodes"})
			return
		}
		var pincodes []models.DeliveryPincode
		if err := result.All(ctx, &pincodes); err != nil {
			log.Println("error decoding pincodes:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occured while listing pincodes"})
			return
		}
		c.JSON(http.StatusOK, pincodes)
	}
}

func CreatePincode() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		var pincode models.DeliveryPincode
		if err := c.BindJSON(&pincode); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if validationErr := validate.Struct(&pincode); validationErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}

		trimmed := strings.TrimSpace(*pincode.Pincode)
		pincode.Pincode = &trimmed

		count, err := deliveryPincodeCollection.CountDocuments(ctx, bson.M{"pincode": trimmed})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occured while checking the pincode"})
			return
		}
		if count > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "this pincode already exists"})
			return
		}

		pincode.Created_at, _ = time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
		pincode.Updated_at, _ = time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
		pincode.ID = primitive.NewObjectID()
		pincode.Pincode_id = pincode.ID.Hex()

		if _, err := deliveryPincodeCollection.InsertOne(ctx, pincode); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "this pincode already exists"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "pincode was not created"})
			return
		}
		c.JSON(http.StatusCreated, pincode)
	}
}

func UpdatePincode() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		pincodeId := c.Param("pincode_id")
		var pincode models.DeliveryPincode
		if err := c.BindJSON(&pincode); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var updateObj primitive.D
		if pincode.Pincode != nil {
			trimmed := strings.TrimSpace(*pincode.Pincode)
			updateObj = append(updateObj, bson.E{Key: "pincode", Value: trimmed})
		}
		if pincode.City != nil {
			updateObj = append(updateObj, bson.E{Key: "city", Value: pincode.City})
		}
		if pincode.State != nil {
			updateObj = append(updateObj, bson.E{Key: "state", Value: pincode.State})
		}
		updateObj = append(updateObj, bson.E{Key: "is_active", Value: pincode.Is_active})
		updated_at, _ := time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
		updateObj = append(updateObj, bson.E{Key: "updated_at", Value: updated_at})

		result, err := deliveryPincodeCollection.UpdateOne(
			ctx,
			bson.M{"pincode_id": pincodeId},
			bson.D{{Key: "$set", Value: updateObj}},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "pincode update failed"})
			return
		}
		if result.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "pincode not found"})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func DeletePincode() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		pincodeId := c.Param("pincode_id")
		result, err := deliveryPincodeCollection.DeleteOne(ctx, bson.M{"pincode_id": pincodeId})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "pincode delete failed"})
			return
		}
		if result.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "pincode not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "pincode deleted"})
	}
}
