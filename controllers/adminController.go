package controllers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"bakehub/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// sumPaidOrders aggregates one numeric field over all paid orders.
func sumPaidOrders(ctx context.Context, field string) (float64, error) {
	matchStage := bson.D{{Key: "$match", Value: bson.D{{Key: "payment_status", Value: models.PaymentPaid}}}}
	groupStage := bson.D{{Key: "$group", Value: bson.D{
		{Key: "_id", Value: nil},
		{Key: "total", Value: bson.D{{Key: "$sum", Value: "$" + field}}},
	}}}

	cursor, err := orderCollection.Aggregate(ctx, mongo.Pipeline{matchStage, groupStage})
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var results []bson.M
	if err := cursor.All(ctx, &results); err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}
	switch v := results[0]["total"].(type) {
	case float64:
		return v, nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	}
	return 0, nil
}

func GetDashboard() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		totalOrders, err := orderCollection.CountDocuments(ctx, bson.M{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occured while counting orders"})
			return
		}

		now := time.Now()
		startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		todaysOrders, err := orderCollection.CountDocuments(ctx, bson.M{"created_at": bson.M{"$gte": startOfDay}})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occured while counting orders"})
			return
		}

		totalRevenue, err := sumPaidOrders(ctx, "total")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occured while aggregating revenue"})
			return
		}
		totalCommission, err := sumPaidOrders(ctx, "commission")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occured while aggregating commission"})
			return
		}

		activeDeliveryBoys, err := userCollection.CountDocuments(ctx, bson.M{
			"role":      models.RoleDeliveryBoy,
			"is_active": true,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occured while counting delivery boys"})
			return
		}

		pendingDeliveries, err := orderCollection.CountDocuments(ctx, bson.M{
			"order_status": bson.M{"$in": []models.OrderStatus{
				models.StatusPending, models.StatusPreparing, models.StatusAssigned,
			}},
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occured while counting deliveries"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"total_orders":         totalOrders,
			"todays_orders":        todaysOrders,
			"total_revenue":        totalRevenue,
			"total_commission":     totalCommission,
			"active_delivery_boys": activeDeliveryBoys,
			"pending_deliveries":   pendingDeliveries,
		})
	}
}

func GetDeliveryBoys() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
		result, err := userCollection.Find(ctx, bson.M{"role": models.RoleDeliveryBoy}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occured while listing delivery boys"})
			return
		}
		var deliveryBoys []models.User
		if err := result.All(ctx, &deliveryBoys); err != nil {
			log.Println("error decoding delivery boys:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occured while listing delivery boys"})
			return
		}

		withStats := make([]gin.H, 0, len(deliveryBoys))
		for _, db := range deliveryBoys {
			totalOrders, _ := orderCollection.CountDocuments(ctx, bson.M{"delivery_boy_id": db.User_id})
			deliveredCount, _ := orderCollection.CountDocuments(ctx, bson.M{
				"delivery_boy_id": db.User_id,
				"order_status":    models.StatusDelivered,
			})
			withStats = append(withStats, gin.H{
				"user": db,
				"stats": gin.H{
					"total_orders":    totalOrders,
					"delivered_count": deliveredCount,
				},
			})
		}
		c.JSON(http.StatusOK, withStats)
	}
}

// CreateDeliveryBoy registers a new delivery boy, or converts an existing
// user with the same email, matching how the back-office onboards agents.
func CreateDeliveryBoy() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		var user models.User
		if err := c.BindJSON(&user); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if user.Email == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
			return
		}
		email := strings.ToLower(strings.TrimSpace(*user.Email))
		user.Email = &email
		user.Role = models.RoleDeliveryBoy
		if validationErr := validate.Struct(&user); validationErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}

		var existing models.User
		err := userCollection.FindOne(ctx, bson.M{"email": email}).Decode(&existing)
		if err == nil {
			previousRole := existing.Role
			updateObj := deliveryBoyUpdateObj(&user)
			updateObj = append(updateObj, bson.E{Key: "role", Value: models.RoleDeliveryBoy})
			_, err := userCollection.UpdateOne(
				ctx,
				bson.M{"user_id": existing.User_id},
				bson.D{{Key: "$set", Value: updateObj}},
			)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "delivery boy update failed"})
				return
			}
			response := gin.H{"user_id": existing.User_id, "email": email, "role": models.RoleDeliveryBoy}
			if previousRole != models.RoleDeliveryBoy {
				response["message"] = fmt.Sprintf("user converted from %s to %s", previousRole, models.RoleDeliveryBoy)
			}
			c.JSON(http.StatusOK, response)
			return
		}
		if err != mongo.ErrNoDocuments {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occured while checking the email"})
			return
		}

		if user.Is_active == nil {
			isActive := true
			user.Is_active = &isActive
		}
		if user.Joined_date == nil {
			joined := time.Now()
			user.Joined_date = &joined
		}
		user.Created_at, _ = time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
		user.Updated_at, _ = time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
		user.ID = primitive.NewObjectID()
		user.User_id = user.ID.Hex()

		if _, err := userCollection.InsertOne(ctx, user); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "a user with this email already exists"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "delivery boy was not created"})
			return
		}
		c.JSON(http.StatusCreated, user)
	}
}

func deliveryBoyUpdateObj(user *models.User) primitive.D {
	var updateObj primitive.D
	if user.Name != nil {
		updateObj = append(updateObj, bson.E{Key: "name", Value: user.Name})
	}
	if user.Mobile_number != nil {
		updateObj = append(updateObj, bson.E{Key: "mobile_number", Value: user.Mobile_number})
	}
	if user.Vehicle_type != nil {
		updateObj = append(updateObj, bson.E{Key: "vehicle_type", Value: user.Vehicle_type})
	}
	if user.Vehicle_number != nil {
		updateObj = append(updateObj, bson.E{Key: "vehicle_number", Value: user.Vehicle_number})
	}
	if user.Area != nil {
		updateObj = append(updateObj, bson.E{Key: "area", Value: user.Area})
	}
	if user.Is_active != nil {
		updateObj = append(updateObj, bson.E{Key: "is_active", Value: user.Is_active})
	}
	updated_at, _ := time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
	updateObj = append(updateObj, bson.E{Key: "updated_at", Value: updated_at})
	return updateObj
}

func UpdateDeliveryBoy() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		userId := c.Param("user_id")
		var user models.User
		if err := c.BindJSON(&user); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var current models.User
		err := userCollection.FindOne(ctx, bson.M{"user_id": userId, "role": models.RoleDeliveryBoy}).Decode(&current)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "delivery boy not found"})
			return
		}

		updateObj := deliveryBoyUpdateObj(&user)
		if user.Email != nil {
			email := strings.ToLower(strings.TrimSpace(*user.Email))
			if current.Email == nil || email != *current.Email {
				count, err := userCollection.CountDocuments(ctx, bson.M{
					"email":   email,
					"user_id": bson.M{"$ne": userId},
				})
				if err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "error occured while checking the email"})
					return
				}
				if count > 0 {
					c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("a user with email %s already exists", email)})
					return
				}
			}
			updateObj = append(updateObj, bson.E{Key: "email", Value: email})
		}

		_, err = userCollection.UpdateOne(
			ctx,
			bson.M{"user_id": userId, "role": models.RoleDeliveryBoy},
			bson.D{{Key: "$set", Value: updateObj}},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "delivery boy update failed"})
			return
		}

		var updated models.User
		if err := userCollection.FindOne(ctx, bson.M{"user_id": userId}).Decode(&updated); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occured while fetching the delivery boy"})
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

func DeleteDeliveryBoy() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		userId := c.Param("user_id")
		result, err := userCollection.DeleteOne(ctx, bson.M{"user_id": userId, "role": models.RoleDeliveryBoy})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "delivery boy delete failed"})
			return
		}
		if result.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "delivery boy not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "delivery boy deleted successfully"})
	}
}

func GetCustomers() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		recordPerPage, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
		if err != nil || recordPerPage < 1 {
			recordPerPage = 20
		}
		page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
		if err != nil || page < 1 {
			page = 1
		}
		startIndex := (page - 1) * recordPerPage

		opts := options.Find().
			SetSort(bson.D{{Key: "created_at", Value: -1}}).
			SetSkip(int64(startIndex)).
			SetLimit(int64(recordPerPage))
		result, err := userCollection.Find(ctx, bson.M{"role": models.RoleCustomer}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occured while listing customers"})
			return
		}
		var customers []models.User
		if err := result.All(ctx, &customers); err != nil {
			log.Println("error decoding customers:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occured while listing customers"})
			return
		}

		total, err := userCollection.CountDocuments(ctx, bson.M{"role": models.RoleCustomer})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occured while counting customers"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"customers":    customers,
			"total":        total,
			"current_page": page,
			"total_pages":  (total + int64(recordPerPage) - 1) / int64(recordPerPage),
		})
	}
}

func GetCustomer() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		userId := c.Param("user_id")
		var customer models.User
		err := userCollection.FindOne(ctx, bson.M{"user_id": userId, "role": models.RoleCustomer}).Decode(&customer)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
			return
		}

		opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
		result, err := orderCollection.Find(ctx, bson.M{"user_id": userId}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occured while listing orders"})
			return
		}
		var orders []models.Order
		if err := result.All(ctx, &orders); err != nil {
			log.Println("error decoding orders:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occured while listing orders"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"customer": customer,
			"orders":   orders,
		})
	}
}
