package controllers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"bakehub/database"
	"bakehub/helpers"
	"bakehub/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var userCollection *mongo.Collection = database.OpenCollection(database.Client, "user")

type sendOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type verifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,len=6"`
}

type refreshTokenRequest struct {
	Refresh_token string `json:"refresh_token" validate:"required"`
}

func tokenResponse(user models.User, email string, token string, refreshToken string) gin.H {
	return gin.H{
		"access_token":  token,
		"refresh_token": refreshToken,
		"user": gin.H{
			"user_id": user.User_id,
			"email":   email,
			"role":    user.Role,
			"name":    user.Name,
		},
	}
}

func SendOTP() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req sendOTPRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if validationErr := validate.Struct(&req); validationErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "valid email is required"})
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))
		if !helpers.AllowOTPRequest(email) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many OTP requests, please wait before retrying"})
			return
		}

		otp := helpers.GenerateOTP()
		if err := helpers.StoreOTP(email, otp); err != nil {
			log.Println("error storing OTP:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate OTP"})
			return
		}

		if err := helpers.SendOTPEmail(email, otp); err != nil {
			log.Println("OTP email error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "failed to send OTP",
				"details": err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "OTP sent successfully"})
	}
}

func VerifyOTP() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		var req verifyOTPRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if validationErr := validate.Struct(&req); validationErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email and OTP are required"})
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))
		if err := helpers.VerifyOTP(email, req.OTP); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var user models.User
		err := userCollection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
		if err == mongo.ErrNoDocuments {
			// First login registers the customer
			isActive := true
			user = models.User{
				ID:         primitive.NewObjectID(),
				Email:      &email,
				Role:       models.RoleCustomer,
				Is_active:  &isActive,
				Created_at: time.Now(),
				Updated_at: time.Now(),
			}
			user.User_id = user.ID.Hex()
			if _, err := userCollection.InsertOne(ctx, user); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "user was not created"})
				return
			}
		} else if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occured while looking up the user"})
			return
		}

		if user.Is_active != nil && !*user.Is_active {
			c.JSON(http.StatusForbidden, gin.H{"error": "account is inactive"})
			return
		}

		name := ""
		if user.Name != nil {
			name = *user.Name
		}
		token, refreshToken, err := helpers.GenerateAllTokens(email, name, user.User_id, user.Role)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate tokens"})
			return
		}
		helpers.UpdateAllTokens(token, refreshToken, user.User_id)

		response := tokenResponse(user, email, token, refreshToken)
		response["message"] = "login successful"
		c.JSON(http.StatusOK, response)
	}
}

func RefreshToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		var req refreshTokenRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "refresh token required"})
			return
		}

		claims, msg := helpers.ValidateToken(req.Refresh_token)
		if msg != "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
			return
		}

		var user models.User
		err := userCollection.FindOne(ctx, bson.M{"user_id": claims.Uid}).Decode(&user)
		if err != nil || (user.Is_active != nil && !*user.Is_active) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
			return
		}

		name := ""
		if user.Name != nil {
			name = *user.Name
		}
		token, refreshToken, err := helpers.GenerateAllTokens(*user.Email, name, user.User_id, user.Role)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate tokens"})
			return
		}
		helpers.UpdateAllTokens(token, refreshToken, user.User_id)

		c.JSON(http.StatusOK, tokenResponse(user, *user.Email, token, refreshToken))
	}
}

func GetCurrentUser() gin.HandlerFunc {
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
		c.JSON(http.StatusOK, gin.H{
			"user_id":       user.User_id,
			"email":         user.Email,
			"role":          user.Role,
			"name":          user.Name,
			"mobile_number": user.Mobile_number,
		})
	}
}

func UpdateProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		uid := c.GetString("uid")
		var user models.User
		if err := c.BindJSON(&user); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var updateObj primitive.D
		if user.Name != nil {
			updateObj = append(updateObj, bson.E{Key: "name", Value: user.Name})
		}
		if user.Mobile_number != nil {
			updateObj = append(updateObj, bson.E{Key: "mobile_number", Value: user.Mobile_number})
		}
		if len(updateObj) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "nothing to update"})
			return
		}
		updated_at, _ := time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
		updateObj = append(updateObj, bson.E{Key: "updated_at", Value: updated_at})

		result, err := userCollection.UpdateOne(
			ctx,
			bson.M{"user_id": uid},
			bson.D{{Key: "$set", Value: updateObj}},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "profile update failed"})
			return
		}
		if result.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "profile updated"})
	}
}
