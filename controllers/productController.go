package controllers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"bakehub/database"
	"bakehub/models"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var productCollection *mongo.Collection = database.OpenCollection(database.Client, "product")
var validate = validator.New()

func GetProducts() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		query := bson.M{"is_active": true}

		if category := c.Query("category"); category != "" {
			var categoryDoc models.Category
			err := categoryCollection.FindOne(ctx, bson.M{"name": category, "is_active": true}).Decode(&categoryDoc)
			if err == nil {
				query["category_id"] = categoryDoc.Category_id
			}
		}

		priceQuery := bson.M{}
		if minPrice := c.Query("minPrice"); minPrice != "" {
			if v, err := strconv.ParseFloat(minPrice, 64); err == nil {
				priceQuery["$gte"] = v
			}
		}
		if maxPrice := c.Query("maxPrice"); maxPrice != "" {
			if v, err := strconv.ParseFloat(maxPrice, 64); err == nil {
				priceQuery["$lte"] = v
			}
		}
		if len(priceQuery) > 0 {
			query["price"] = priceQuery
		}
		if c.Query("isEggless") == "true" {
			query["is_eggless"] = true
		}
		if search := c.Query("search"); search != "" {
			query["$or"] = []bson.M{
				{"name": bson.M{"$regex": search, "$options": "i"}},
				{"description": bson.M{"$regex": search, "$options": "i"}},
			}
		}

		opts := options.Find().SetSort(bson.D{{Key: "order_count", Value: -1}, {Key: "created_at", Value: -1}})
		result, err := productCollection.Find(ctx, query, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occured while listing products"})
			return
		}
		var allProducts []models.Product
		if err := result.All(ctx, &allProducts); err != nil {
			log.Println("error decoding products:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occured while listing products"})
			return
		}
		c.JSON(http.StatusOK, allProducts)
	}
}

func GetBestsellers() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "order_count", Value: -1}}).SetLimit(8)
		result, err := productCollection.Find(ctx, bson.M{"is_active": true}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occured while listing bestsellers"})
			return
		}
		var products []models.Product
		if err := result.All(ctx, &products); err != nil {
			log.Println("error decoding bestsellers:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occured while listing bestsellers"})
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

func GetProduct() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()
		productId := c.Param("product_id")
		var product models.Product

		err := productCollection.FindOne(ctx, bson.M{"product_id": productId}).Decode(&product)
		if err != nil || !product.Is_active {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

func CreateProduct() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()
		var product models.Product

		if err := c.BindJSON(&product); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		validationErr := validate.Struct(&product)
		if validationErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}

		product.Created_at, _ = time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
		product.Updated_at, _ = time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
		product.ID = primitive.NewObjectID()
		product.Product_id = product.ID.Hex()
		product.Is_active = true

		_, err := productCollection.InsertOne(ctx, product)
		if err != nil {
			msg := fmt.Sprintf("product was not created")
			c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}

func UpdateProduct() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()
		productId := c.Param("product_id")
		var product models.Product

		if err := c.BindJSON(&product); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var updateObj primitive.D
		if product.Name != nil {
			updateObj = append(updateObj, bson.E{Key: "name", Value: product.Name})
		}
		if product.Description != nil {
			updateObj = append(updateObj, bson.E{Key: "description", Value: product.Description})
		}
		if product.Price != nil {
			updateObj = append(updateObj, bson.E{Key: "price", Value: product.Price})
		}
		if product.Weights != nil {
			updateObj = append(updateObj, bson.E{Key: "weights", Value: product.Weights})
		}
		if product.Category_id != nil {
			updateObj = append(updateObj, bson.E{Key: "category_id", Value: product.Category_id})
		}
		if product.Images != nil {
			updateObj = append(updateObj, bson.E{Key: "images", Value: product.Images})
		}
		updateObj = append(updateObj, bson.E{Key: "is_eggless", Value: product.Is_eggless})
		updateObj = append(updateObj, bson.E{Key: "is_active", Value: product.Is_active})
		updated_at, _ := time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
		updateObj = append(updateObj, bson.E{Key: "updated_at", Value: updated_at})

		result, err := productCollection.UpdateOne(
			ctx,
			bson.M{"product_id": productId},
			bson.D{{Key: "$set", Value: updateObj}},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "product update failed"})
			return
		}
		if result.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func DeleteProduct() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()
		productId := c.Param("product_id")

		result, err := productCollection.DeleteOne(ctx, bson.M{"product_id": productId})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "product delete failed"})
			return
		}
		if result.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
	}
}
