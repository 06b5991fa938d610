package controllers

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"os"
	"time"

	"bakehub/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	razorpay "github.com/razorpay/razorpay-go"
	"go.mongodb.org/mongo-driver/bson"
)

type createPaymentRequest struct {
	Order_id string `json:"order_id" validate:"required"`
}

type verifyPaymentRequest struct {
	Order_id            string `json:"order_id" validate:"required"`
	Razorpay_order_id   string `json:"razorpay_order_id" validate:"required"`
	Razorpay_payment_id string `json:"razorpay_payment_id" validate:"required"`
	Razorpay_signature  string `json:"razorpay_signature" validate:"required"`
}

func razorpayClient() (*razorpay.Client, string, error) {
	keyID := os.Getenv("RAZORPAY_KEY_ID")
	keySecret := os.Getenv("RAZORPAY_KEY_SECRET")
	if keyID == "" || keySecret == "" {
		return nil, "", ErrPaymentNotConfigured
	}
	return razorpay.NewClient(keyID, keySecret), keySecret, nil
}

// ErrPaymentNotConfigured is returned when the gateway keys are absent
// from the environment.
var ErrPaymentNotConfigured = errPaymentNotConfigured{}

type errPaymentNotConfigured struct{}

func (errPaymentNotConfigured) Error() string {
	return "payment gateway is not configured: set RAZORPAY_KEY_ID and RAZORPAY_KEY_SECRET"
}

// VerifyRazorpaySignature checks the HMAC-SHA256 signature that Razorpay
// computes over "<order_id>|<payment_id>".
func VerifyRazorpaySignature(razorpayOrderID string, razorpayPaymentID string, signature string, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(razorpayOrderID + "|" + razorpayPaymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

func CreatePaymentOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		var request createPaymentRequest
		if err := c.BindJSON(&request); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if validationErr := validate.Struct(&request); validationErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}

		uid := c.GetString("uid")
		var order models.Order
		err := orderCollection.FindOne(ctx, bson.M{"order_id": request.Order_id, "user_id": uid}).Decode(&order)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		if order.Payment_status == models.PaymentPaid {
			c.JSON(http.StatusBadRequest, gin.H{"error": "order is already paid"})
			return
		}

		client, _, err := razorpayClient()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		// Razorpay amounts are in paise.
		data := map[string]interface{}{
			"amount":   int64(order.Total * 100),
			"currency": "INR",
			"receipt":  "receipt_" + uuid.NewString(),
			"notes": map[string]interface{}{
				"order_id": order.Order_id,
			},
		}
		razorpayOrder, err := client.Order.Create(data, nil)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occured while creating the payment order", "details": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"razorpay_order_id": razorpayOrder["id"],
			"amount":            razorpayOrder["amount"],
			"currency":          razorpayOrder["currency"],
			"key_id":            os.Getenv("RAZORPAY_KEY_ID"),
		})
	}
}

func VerifyPayment() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		var request verifyPaymentRequest
		if err := c.BindJSON(&request); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if validationErr := validate.Struct(&request); validationErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}

		uid := c.GetString("uid")
		var order models.Order
		err := orderCollection.FindOne(ctx, bson.M{"order_id": request.Order_id, "user_id": uid}).Decode(&order)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}

		keySecret := os.Getenv("RAZORPAY_KEY_SECRET")
		if keySecret == "" {
			c.JSON(http.StatusInternalServerError, gin.H{"error": ErrPaymentNotConfigured.Error()})
			return
		}

		if !VerifyRazorpaySignature(request.Razorpay_order_id, request.Razorpay_payment_id, request.Razorpay_signature, keySecret) {
			_, _ = orderCollection.UpdateOne(
				ctx,
				bson.M{"order_id": request.Order_id},
				bson.D{{Key: "$set", Value: bson.D{{Key: "payment_status", Value: models.PaymentFailed}}}},
			)
			c.JSON(http.StatusBadRequest, gin.H{"error": "payment signature verification failed"})
			return
		}

		updated_at, _ := time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
		_, err = orderCollection.UpdateOne(
			ctx,
			bson.M{"order_id": request.Order_id},
			bson.D{{Key: "$set", Value: bson.D{
				{Key: "payment_status", Value: models.PaymentPaid},
				{Key: "payment_id", Value: request.Razorpay_payment_id},
				{Key: "updated_at", Value: updated_at},
			}}},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "payment status update failed"})
			return
		}

		go notifyOrderEvent("paymentReceived", order)

		c.JSON(http.StatusOK, gin.H{"message": "payment verified successfully", "order_id": request.Order_id})
	}
}
