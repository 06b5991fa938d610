package controllers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"bakehub/database"
	"bakehub/helpers"
	"bakehub/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var orderCollection *mongo.Collection = database.OpenCollection(database.Client, "order")

const defaultCommissionRate = 0.10

func commissionRate() float64 {
	if v := os.Getenv("COMMISSION_RATE"); v != "" {
		if rate, err := strconv.ParseFloat(v, 64); err == nil && rate >= 0 && rate <= 1 {
			return rate
		}
	}
	return defaultCommissionRate
}

type checkoutItem struct {
	Product_id string  `json:"product_id" validate:"required"`
	Quantity   int     `json:"quantity" validate:"required,gte=1"`
	Weight     *string `json:"weight"`
}

type checkoutRequest struct {
	Items          []checkoutItem `json:"items" validate:"required,min=1,dive"`
	Address_id     string         `json:"address_id" validate:"required"`
	Payment_method string         `json:"payment_method" validate:"required,eq=COD|eq=Online"`
	Coupon_code    *string        `json:"coupon_code"`
	Delivery_date  *string        `json:"delivery_date"`
	Delivery_time  *string        `json:"delivery_time"`
}

// priceCheckoutItems resolves every requested product and snapshots name and
// unit price onto the order, so catalog edits after checkout cannot change
// what was billed. Weight variants override the base price when they match.
func priceCheckoutItems(ctx context.Context, items []checkoutItem) ([]models.OrderItem, float64, error) {
	var orderItems []models.OrderItem
	var subtotal float64

	for _, item := range items {
		var product models.Product
		err := productCollection.FindOne(ctx, bson.M{"product_id": item.Product_id}).Decode(&product)
		if err != nil || !product.Is_active {
			return nil, 0, fmt.Errorf("product %s is not available", item.Product_id)
		}

		unitPrice := *product.Price
		if item.Weight != nil {
			for _, variant := range product.Weights {
				if variant.Weight != nil && *variant.Weight == *item.Weight {
					unitPrice = *variant.Price
					break
				}
			}
		}

		quantity := item.Quantity
		productId := item.Product_id
		orderItems = append(orderItems, models.OrderItem{
			Product_id:   &productId,
			Product_name: product.Name,
			Weight:       item.Weight,
			Is_eggless:   product.Is_eggless,
			Unit_price:   &unitPrice,
			Quantity:     &quantity,
		})
		subtotal += unitPrice * float64(quantity)
	}
	return orderItems, subtotal, nil
}

// redeemCoupon increments the usage counter exactly once per order. The
// filter excludes coupons that already recorded this order id, so a retried
// checkout cannot double count.
func redeemCoupon(ctx context.Context, code string, orderId string) error {
	result, err := couponCollection.UpdateOne(
		ctx,
		bson.M{"code": code, "redeemed_orders": bson.M{"$ne": orderId}},
		bson.M{
			"$inc":  bson.M{"used_count": 1},
			"$push": bson.M{"redeemed_orders": orderId},
		},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		log.Println("coupon already redeemed for order:", orderId)
	}
	return nil
}

func CreateOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		uid := c.GetString("uid")
		var req checkoutRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if validationErr := validate.Struct(&req); validationErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}

		var address models.Address
		err := addressCollection.FindOne(ctx, bson.M{"address_id": req.Address_id, "user_id": uid}).Decode(&address)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "address not found"})
			return
		}

		count, err := deliveryPincodeCollection.CountDocuments(ctx, bson.M{"pincode": address.Pincode, "is_active": true})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occured while checking the pincode"})
			return
		}
		if count == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "delivery not available for this pincode"})
			return
		}

		orderItems, subtotal, err := priceCheckoutItems(ctx, req.Items)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var discount float64
		var couponCode *string
		if req.Coupon_code != nil && *req.Coupon_code != "" {
			code := models.NormalizeCouponCode(*req.Coupon_code)
			var coupon models.Coupon
			err := couponCollection.FindOne(ctx, bson.M{"code": code}).Decode(&coupon)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": models.ErrCouponInvalid.Error()})
				return
			}
			discount, err = coupon.Verify(subtotal, time.Now())
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			couponCode = &code
		}

		total := subtotal - discount
		order := models.Order{
			ID:             primitive.NewObjectID(),
			User_id:        &uid,
			Items:          orderItems,
			Address_id:     &req.Address_id,
			Order_status:   models.StatusPending,
			Payment_status: models.PaymentPending,
			Payment_method: req.Payment_method,
			Coupon_code:    couponCode,
			Discount:       discount,
			Total:          total,
			Commission:     total * commissionRate(),
			Delivery_date:  req.Delivery_date,
			Delivery_time:  req.Delivery_time,
		}
		order.Order_id = order.ID.Hex()
		order.Created_at, _ = time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
		order.Updated_at, _ = time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))

		if _, err := orderCollection.InsertOne(ctx, order); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "order was not created"})
			return
		}

		if couponCode != nil {
			if err := redeemCoupon(ctx, *couponCode, order.Order_id); err != nil {
				log.Println("error redeeming coupon:", err)
			}
		}

		for _, item := range orderItems {
			_, err := productCollection.UpdateOne(
				ctx,
				bson.M{"product_id": *item.Product_id},
				bson.M{"$inc": bson.M{"order_count": int64(*item.Quantity)}},
			)
			if err != nil {
				log.Println("error bumping order count:", err)
			}
		}

		// Confirmation email must not delay checkout
		email := c.GetString("email")
		go func(order models.Order) {
			if err := helpers.SendOrderConfirmation(email, order); err != nil {
				log.Println("order confirmation email error:", err)
			}
		}(order)

		notifyOrderEvent("newOrder", order)
		c.JSON(http.StatusCreated, order)
	}
}

func GetMyOrders() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		uid := c.GetString("uid")
		opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
		result, err := orderCollection.Find(ctx, bson.M{"user_id": uid}, opts)
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
		c.JSON(http.StatusOK, orders)
	}
}

func GetOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		orderId := c.Param("order_id")
		var order models.Order
		err := orderCollection.FindOne(ctx, bson.M{"order_id": orderId}).Decode(&order)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}

		uid := c.GetString("uid")
		role := c.GetString("role")
		isOwner := order.User_id != nil && *order.User_id == uid
		isAssignedAgent := order.Delivery_boy_id != nil && *order.Delivery_boy_id == uid
		if role != models.RoleSuperAdmin && !isOwner && !isAssignedAgent {
			c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func GetOrders() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		recordPerPage, err := strconv.Atoi(c.DefaultQuery("recordPerPage", "20"))
		if err != nil || recordPerPage < 1 {
			recordPerPage = 20
		}
		page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
		if err != nil || page < 1 {
			page = 1
		}
		startIndex := (page - 1) * recordPerPage

		query := bson.M{}
		if status := c.Query("status"); status != "" {
			if !models.OrderStatus(status).IsValid() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "unknown order status"})
				return
			}
			query["order_status"] = status
		}

		opts := options.Find().
			SetSort(bson.D{{Key: "created_at", Value: -1}}).
			SetSkip(int64(startIndex)).
			SetLimit(int64(recordPerPage))
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

		total, err := orderCollection.CountDocuments(ctx, query)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occured while counting orders"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"orders":       orders,
			"total":        total,
			"current_page": page,
			"total_pages":  (total + int64(recordPerPage) - 1) / int64(recordPerPage),
		})
	}
}

type assignRequest struct {
	Delivery_boy_id string `json:"delivery_boy_id" validate:"required"`
}

// AssignDeliveryBoy binds a delivery boy to an order and seeds the agent
// status chain. Only orders still in Pending or Preparing can be assigned.
func AssignDeliveryBoy() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		orderId := c.Param("order_id")
		var req assignRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if validationErr := validate.Struct(&req); validationErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}

		var order models.Order
		err := orderCollection.FindOne(ctx, bson.M{"order_id": orderId}).Decode(&order)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		if order.Order_status != models.StatusPending && order.Order_status != models.StatusPreparing {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("cannot assign an order in status %q", order.Order_status)})
			return
		}

		var deliveryBoy models.User
		err = userCollection.FindOne(ctx, bson.M{"user_id": req.Delivery_boy_id, "role": models.RoleDeliveryBoy}).Decode(&deliveryBoy)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "delivery boy not found"})
			return
		}
		if deliveryBoy.Is_active != nil && !*deliveryBoy.Is_active {
			c.JSON(http.StatusBadRequest, gin.H{"error": "delivery boy is inactive"})
			return
		}

		now := time.Now()
		updated_at, _ := time.Parse(time.RFC3339, now.Format(time.RFC3339))
		_, err = orderCollection.UpdateOne(
			ctx,
			bson.M{"order_id": orderId},
			bson.D{{Key: "$set", Value: bson.D{
				{Key: "delivery_boy_id", Value: req.Delivery_boy_id},
				{Key: "order_status", Value: models.StatusAssigned},
				{Key: "delivery_assigned_at", Value: now},
				{Key: "updated_at", Value: updated_at},
			}}},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "order assignment failed"})
			return
		}

		order.Delivery_boy_id = &req.Delivery_boy_id
		order.Order_status = models.StatusAssigned
		order.Delivery_assigned_at = &now
		notifyOrderEvent("orderAssigned", order)
		c.JSON(http.StatusOK, order)
	}
}

type statusRequest struct {
	Order_status models.OrderStatus `json:"order_status" validate:"required"`
}

// UpdateOrderStatusAdmin is the unrestricted admin transition path. Any
// valid status may be set, but statuses at or past assignment still require
// a bound delivery boy.
func UpdateOrderStatusAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		orderId := c.Param("order_id")
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

		requiresAgent := req.Order_status == models.StatusAssigned ||
			req.Order_status == models.StatusPickedUp ||
			req.Order_status == models.StatusOutForDelivery ||
			req.Order_status == models.StatusDelivered
		if requiresAgent && order.Delivery_boy_id == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "order has no delivery boy assigned"})
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

func CancelOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		orderId := c.Param("order_id")
		var order models.Order
		err := orderCollection.FindOne(ctx, bson.M{"order_id": orderId}).Decode(&order)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		if !order.Order_status.CanCancel() {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("cannot cancel an order in status %q", order.Order_status)})
			return
		}

		if err := persistOrderStatus(ctx, orderId, models.StatusCancelled); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "order cancellation failed"})
			return
		}

		order.Order_status = models.StatusCancelled
		notifyOrderEvent("orderCancelled", order)
		c.JSON(http.StatusOK, order)
	}
}

// persistOrderStatus writes a status transition immediately. There is no
// batching and no retry; a failed write surfaces to the caller who resubmits.
func persistOrderStatus(ctx context.Context, orderId string, status models.OrderStatus) error {
	updated_at, _ := time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
	_, err := orderCollection.UpdateOne(
		ctx,
		bson.M{"order_id": orderId},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "order_status", Value: status},
			{Key: "updated_at", Value: updated_at},
		}}},
		options.Update().SetUpsert(false),
	)
	return err
}
