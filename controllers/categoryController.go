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
)

var categoryCollection *mongo.Collection = database.OpenCollection(database.Client, "category")

func GetCategories() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		result, err := categoryCollection.Find(ctx, bson.M{"is_active": true})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occured while listing categories"})
			return
		}
		var allCategories []models.Category
		if err := result.All(ctx, &allCategories); err != nil {
			log.Println("error decoding categories:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occured while listing categories"})
			return
		}
		c.JSON(http.StatusOK, allCategories)
	}
}

func CreateCategory() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()
		var category models.Category

		if err := c.BindJSON(&category); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		validationErr := validate.Struct(&category)
		if validationErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}

		slug := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(*category.Name), " ", "-"))
		count, err := categoryCollection.CountDocuments(ctx, bson.M{"slug": slug})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occured while checking the category"})
			return
		}
		if count > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "a category with this name already exists"})
			return
		}

		category.Slug = &slug
		category.Created_at, _ = time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
		category.Updated_at, _ = time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
		category.ID = primitive.NewObjectID()
		category.Category_id = category.ID.Hex()
		category.Is_active = true

		_, err = categoryCollection.InsertOne(ctx, category)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "category was not created"})
			return
		}
		c.JSON(http.StatusCreated, category)
	}
}

func DeleteCategory() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()
		categoryId := c.Param("category_id")

		result, err := categoryCollection.DeleteOne(ctx, bson.M{"category_id": categoryId})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "category delete failed"})
			return
		}
		if result.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "category deleted"})
	}
}
