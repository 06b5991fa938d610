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

var couponCollection *mongo.Collection = database.OpenCollection(database.Client, "coupon")

func GetActiveCoupons() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		now := time.Now()
		result, err := couponCollection.Find(ctx, bson.M{
			"is_active":   true,
			"valid_from":  bson.M{"$lte": now},
			"valid_until": bson.M{"$gte": now},
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occured while listing coupons"})
			return
		}
		var coupons []models.Coupon
		if err := result.All(ctx, &coupons); err != nil {
			log.Println("error decoding coupons:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occured while listing coupons"})
			return
		}
		c.JSON(http.StatusOK, coupons)
	}
}

type verifyCouponRequest struct {
	Code   string  `json:"code" validate:"required"`
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

func VerifyCoupon() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		var req verifyCouponRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if validationErr := validate.Struct(&req); validationErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}

		var coupon models.Coupon
		err := couponCollection.FindOne(ctx, bson.M{"code": models.NormalizeCouponCode(req.Code)}).Decode(&coupon)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": models.ErrCouponInvalid.Error()})
			return
		}

		discount, err := coupon.Verify(req.Amount, time.Now())
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"valid":    true,
			"discount": discount,
			"coupon": gin.H{
				"code":        coupon.Code,
				"description": coupon.Description,
			},
		})
	}
}

func GetCoupons() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
		result, err := couponCollection.Find(ctx, bson.M{}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occured while listing coupons"})
			return
		}
		var coupons []models.Coupon
		if err := result.All(ctx, &coupons); err != nil {
			log.Println("error decoding coupons:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occured while listing coupons"})
			return
		}
		c.JSON(http.StatusOK, coupons)
	}
}

func CreateCoupon() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		var coupon models.Coupon
		if err := c.BindJSON(&coupon); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		coupon.Code = models.NormalizeCouponCode(coupon.Code)
		if validationErr := validate.Struct(&coupon); validationErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}

		count, err := couponCollection.CountDocuments(ctx, bson.M{"code": coupon.Code})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occured while checking the coupon code"})
			return
		}
		if count > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "a coupon with this code already exists"})
			return
		}

		coupon.Created_at, _ = time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
		coupon.Updated_at, _ = time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
		coupon.ID = primitive.NewObjectID()
		coupon.Coupon_id = coupon.ID.Hex()
		coupon.Used_count = 0
		coupon.Redeemed_orders = []string{}

		if _, err := couponCollection.InsertOne(ctx, coupon); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "a coupon with this code already exists"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "coupon was not created"})
			return
		}
		c.JSON(http.StatusCreated, coupon)
	}
}

func UpdateCoupon() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		couponId := c.Param("coupon_id")
		var coupon models.Coupon
		if err := c.BindJSON(&coupon); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var updateObj primitive.D
		if coupon.Description != nil {
			updateObj = append(updateObj, bson.E{Key: "description", Value: coupon.Description})
		}
		if coupon.Discount_type != "" {
			updateObj = append(updateObj, bson.E{Key: "discount_type", Value: coupon.Discount_type})
		}
		if coupon.Discount_value > 0 {
			updateObj = append(updateObj, bson.E{Key: "discount_value", Value: coupon.Discount_value})
		}
		if coupon.Max_discount != nil {
			updateObj = append(updateObj, bson.E{Key: "max_discount", Value: coupon.Max_discount})
		}
		if coupon.Min_order_amount > 0 {
			updateObj = append(updateObj, bson.E{Key: "min_order_amount", Value: coupon.Min_order_amount})
		}
		if !coupon.Valid_from.IsZero() {
			updateObj = append(updateObj, bson.E{Key: "valid_from", Value: coupon.Valid_from})
		}
		if !coupon.Valid_until.IsZero() {
			updateObj = append(updateObj, bson.E{Key: "valid_until", Value: coupon.Valid_until})
		}
		if coupon.Usage_limit != nil {
			updateObj = append(updateObj, bson.E{Key: "usage_limit", Value: coupon.Usage_limit})
		}
		updateObj = append(updateObj, bson.E{Key: "is_active", Value: coupon.Is_active})
		updated_at, _ := time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
		updateObj = append(updateObj, bson.E{Key: "updated_at", Value: updated_at})

		result, err := couponCollection.UpdateOne(
			ctx,
			bson.M{"coupon_id": couponId},
			bson.D{{Key: "$set", Value: updateObj}},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "coupon update failed"})
			return
		}
		if result.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "coupon not found"})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func DeleteCoupon() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		couponId := c.Param("coupon_id")
		result, err := couponCollection.DeleteOne(ctx, bson.M{"coupon_id": couponId})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "coupon delete failed"})
			return
		}
		if result.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "coupon not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "coupon deleted"})
	}
}
