package controllers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"bakehub/database"
	"bakehub/helpers"
	"bakehub/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var locationCollection *mongo.Collection = database.OpenCollection(database.Client, "deliveryBoyLocation")

// LocationStaleAfter is how long a location record stays active without a
// fresh report before the sweeper marks it inactive.
const LocationStaleAfter = 5 * time.Minute

type OrderWithAddress struct {
	models.Order `bson:",inline"`
	Address      *models.Address `json:"address"`
	Customer     gin.H           `json:"customer"`
}

// GetAssignedOrders lists the delivery boy's active orders with their
// delivery addresses attached. Addresses missing coordinates get a
// best-effort background geocode so the map view fills in over time.
func GetAssignedOrders() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		uid := c.GetString("uid")
		query := bson.M{
			"delivery_boy_id": uid,
			"order_status":    bson.M{"$in": models.ActiveDeliveryStatuses},
		}
		opts := options.Find().SetSort(bson.D{{Key: "delivery_assigned_at", Value: -1}})
		result, err := orderCollection.Find(ctx, query, opts)
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

		ordersWithAddress := make([]OrderWithAddress, 0, len(orders))
		for _, order := range orders {
			entry := OrderWithAddress{Order: order}

			if order.Address_id != nil {
				var address models.Address
				if err := addressCollection.FindOne(ctx, bson.M{"address_id": *order.Address_id}).Decode(&address); err == nil {
					entry.Address = &address
					if !address.Location.IsComplete() {
						go geocodeAndStore(address)
					}
				}
			}
			if order.User_id != nil {
				var customer models.User
				if err := userCollection.FindOne(ctx, bson.M{"user_id": *order.User_id}).Decode(&customer); err == nil {
					entry.Customer = gin.H{"name": customer.Name, "mobile_number": customer.Mobile_number}
				}
			}
			ordersWithAddress = append(ordersWithAddress, entry)
		}
		c.JSON(http.StatusOK, ordersWithAddress)
	}
}

// UpdateDeliveryStatus advances an order along the agent chain
// Assigned -> Picked Up -> Out for Delivery -> Delivered. Only the assigned
// delivery boy may call it, and only single forward steps are accepted.
func UpdateDeliveryStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		orderId := c.Param("order_id")
		uid := c.GetString("uid")

		var req statusRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if !req.Order_status.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown order status %q", req.Order_status)})
			return
		}

		var order models.Order
		err := orderCollection.FindOne(ctx, bson.M{"order_id": orderId}).Decode(&order)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		if order.Delivery_boy_id == nil || *order.Delivery_boy_id != uid {
			c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
			return
		}
		if !models.AgentCanTransition(order.Order_status, req.Order_status) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("cannot move order from %q to %q", order.Order_status, req.Order_status),
			})
			return
		}

		if err := persistOrderStatus(ctx, orderId, req.Order_status); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "order status update failed"})
			return
		}

		order.Order_status = req.Order_status
		notifyOrderEvent("orderStatus", order)
		c.JSON(http.StatusOK, order)
	}
}

func GetDeliveryProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		uid := c.GetString("uid")
		var user models.User
		err := userCollection.FindOne(ctx, bson.M{"user_id": uid}).Decode(&user)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}

		totalOrders, err := orderCollection.CountDocuments(ctx, bson.M{"delivery_boy_id": uid})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occured while counting orders"})
			return
		}
		deliveredCount, err := orderCollection.CountDocuments(ctx, bson.M{
			"delivery_boy_id": uid,
			"order_status":    models.StatusDelivered,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occured while counting orders"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"user": user,
			"stats": gin.H{
				"total_orders":    totalOrders,
				"delivered_count": deliveredCount,
			},
		})
	}
}

// UpdateLocation upserts the delivery boy's single location record. Reports
// arrive every few seconds from the tracking client; the last write wins and
// no history is kept.
func UpdateLocation() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		uid := c.GetString("uid")
		var report models.LocationReport
		if err := c.BindJSON(&report); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if report.Lat == nil || report.Lng == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "latitude and longitude are required"})
			return
		}

		now := time.Now()
		updateObj := bson.D{
			{Key: "delivery_boy_id", Value: uid},
			{Key: "location", Value: models.GeoPoint{Lat: report.Lat, Lng: report.Lng}},
			{Key: "last_updated", Value: now},
			{Key: "is_active", Value: true},
			{Key: "updated_at", Value: now},
		}
		if report.Heading != nil {
			updateObj = append(updateObj, bson.E{Key: "heading", Value: report.Heading})
		}
		if report.Speed != nil {
			updateObj = append(updateObj, bson.E{Key: "speed", Value: report.Speed})
		}
		if report.Accuracy != nil {
			updateObj = append(updateObj, bson.E{Key: "accuracy", Value: report.Accuracy})
		}

		opts := options.FindOneAndUpdate().
			SetUpsert(true).
			SetReturnDocument(options.After)
		var location models.DeliveryBoyLocation
		err := locationCollection.FindOneAndUpdate(
			ctx,
			bson.M{"delivery_boy_id": uid},
			bson.D{
				{Key: "$set", Value: updateObj},
				{Key: "$setOnInsert", Value: bson.D{{Key: "created_at", Value: now}}},
			},
			opts,
		).Decode(&location)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "location update failed"})
			return
		}
		c.JSON(http.StatusOK, location)
	}
}

func GetMyLocation() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		uid := c.GetString("uid")
		var location models.DeliveryBoyLocation
		err := locationCollection.FindOne(ctx, bson.M{"delivery_boy_id": uid, "is_active": true}).Decode(&location)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "location not found"})
			return
		}
		c.JSON(http.StatusOK, location)
	}
}

// GetDeliveryBoyLocation returns another agent's last known position. The
// caller must be an admin, the agent themselves, or a customer whose order
// is currently out with that agent.
func GetDeliveryBoyLocation() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		deliveryBoyId := c.Param("delivery_boy_id")
		uid := c.GetString("uid")
		role := c.GetString("role")

		if role != models.RoleSuperAdmin && uid != deliveryBoyId {
			count, err := orderCollection.CountDocuments(ctx, bson.M{
				"user_id":         uid,
				"delivery_boy_id": deliveryBoyId,
				"order_status":    bson.M{"$in": models.ActiveDeliveryStatuses},
			})
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "error occured while checking the order"})
				return
			}
			if count == 0 {
				c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
				return
			}
		}

		var location models.DeliveryBoyLocation
		err := locationCollection.FindOne(ctx, bson.M{"delivery_boy_id": deliveryBoyId, "is_active": true}).Decode(&location)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "location not found"})
			return
		}
		c.JSON(http.StatusOK, location)
	}
}

// DeactivateStaleLocations marks location records inactive once no report
// has arrived within LocationStaleAfter. Run from the cron scheduler.
func DeactivateStaleLocations() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cutoff := time.Now().Add(-LocationStaleAfter)
	result, err := locationCollection.UpdateMany(
		ctx,
		bson.M{"is_active": true, "last_updated": bson.M{"$lt": cutoff}},
		bson.M{"$set": bson.M{"is_active": false}},
	)
	if err != nil {
		log.Println("error deactivating stale locations:", err)
		return
	}
	if result.ModifiedCount > 0 {
		log.Printf("marked %d stale delivery locations inactive", result.ModifiedCount)
	}
}

// geocodeAndStore resolves coordinates for an address outside the request
// path and persists them if found. Failures are logged, never surfaced.
func geocodeAndStore(address models.Address) {
	ctx, cancel := context.WithTimeout(context.Background(), helpers.GeocodeTimeout)
	defer cancel()

	location := helpers.GeocodeAddress(ctx, address)
	if location == nil {
		return
	}

	storeCtx, storeCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer storeCancel()
	_, err := addressCollection.UpdateOne(
		storeCtx,
		bson.M{"address_id": address.Address_id},
		bson.M{"$set": bson.M{"location": location}},
	)
	if err != nil {
		log.Println("error storing geocoded location:", err)
	}
}
