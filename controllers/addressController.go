package controllers

import (
	"context"
	"log"
	"net/http"
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

var addressCollection *mongo.Collection = database.OpenCollection(database.Client, "address")

// clearOtherDefaults unsets is_default on every other address of the
// customer before the target address is written. The two steps are not
// wrapped in a transaction: two racing "set default" requests can leave two
// defaults for a moment, which checkout tolerates by picking the newest.
func clearOtherDefaults(ctx context.Context, userId string, exceptAddressId string) error {
	filter := bson.M{"user_id": userId}
	if exceptAddressId != "" {
		filter["address_id"] = bson.M{"$ne": exceptAddressId}
	}
	_, err := addressCollection.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"is_default": false}})
	return err
}

func GetAddresses() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		uid := c.GetString("uid")
		opts := options.Find().SetSort(bson.D{{Key: "is_default", Value: -1}, {Key: "created_at", Value: -1}})
		result, err := addressCollection.Find(ctx, bson.M{"user_id": uid}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occured while listing addresses"})
			return
		}
		var addresses []models.Address
		if err := result.All(ctx, &addresses); err != nil {
			log.Println("error decoding addresses:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occured while listing addresses"})
			return
		}

		// Fill in missing coordinates in the background, never delaying the
		// response
		for _, address := range addresses {
			if !address.Location.IsComplete() {
				go geocodeAndStore(address)
			}
		}
		c.JSON(http.StatusOK, addresses)
	}
}

func GetAddress() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		uid := c.GetString("uid")
		addressId := c.Param("address_id")
		var address models.Address
		err := addressCollection.FindOne(ctx, bson.M{"address_id": addressId, "user_id": uid}).Decode(&address)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "address not found"})
			return
		}

		if !address.Location.IsComplete() {
			go geocodeAndStore(address)
		}
		c.JSON(http.StatusOK, address)
	}
}

func CreateAddress() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		uid := c.GetString("uid")
		var address models.Address
		if err := c.BindJSON(&address); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		address.User_id = &uid
		if validationErr := validate.Struct(&address); validationErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}

		if address.Is_default {
			if err := clearOtherDefaults(ctx, uid, ""); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "error occured while updating the default address"})
				return
			}
		}

		// Soft-await the geocoder: a nil result saves the address without
		// coordinates, the map view falls back to a link-out
		geoCtx, geoCancel := context.WithTimeout(ctx, helpers.GeocodeTimeout)
		address.Location = helpers.GeocodeAddress(geoCtx, address)
		geoCancel()

		address.Created_at, _ = time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
		address.Updated_at, _ = time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
		address.ID = primitive.NewObjectID()
		address.Address_id = address.ID.Hex()

		if _, err := addressCollection.InsertOne(ctx, address); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "address was not created"})
			return
		}
		c.JSON(http.StatusCreated, address)
	}
}

func UpdateAddress() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		uid := c.GetString("uid")
		addressId := c.Param("address_id")

		var existing models.Address
		err := addressCollection.FindOne(ctx, bson.M{"address_id": addressId, "user_id": uid}).Decode(&existing)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "address not found"})
			return
		}

		var update models.Address
		if err := c.BindJSON(&update); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if update.Is_default {
			if err := clearOtherDefaults(ctx, uid, addressId); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "error occured while updating the default address"})
				return
			}
		}

		var updateObj primitive.D
		if update.Full_name != nil {
			updateObj = append(updateObj, bson.E{Key: "full_name", Value: update.Full_name})
		}
		if update.Mobile_number != nil {
			updateObj = append(updateObj, bson.E{Key: "mobile_number", Value: update.Mobile_number})
		}
		if update.House_no != nil {
			updateObj = append(updateObj, bson.E{Key: "house_no", Value: update.House_no})
		}
		if update.Street != nil {
			updateObj = append(updateObj, bson.E{Key: "street", Value: update.Street})
		}
		if update.City != nil {
			updateObj = append(updateObj, bson.E{Key: "city", Value: update.City})
		}
		if update.State != nil {
			updateObj = append(updateObj, bson.E{Key: "state", Value: update.State})
		}
		if update.Pincode != nil {
			updateObj = append(updateObj, bson.E{Key: "pincode", Value: update.Pincode})
		}
		if update.Address_type != nil {
			updateObj = append(updateObj, bson.E{Key: "address_type", Value: update.Address_type})
		}
		updateObj = append(updateObj, bson.E{Key: "is_default", Value: update.Is_default})

		if existing.PostalFieldsChanged(&update) {
			// Postal fields moved, the stored coordinates are stale
			merged := existing
			if update.House_no != nil {
				merged.House_no = update.House_no
			}
			if update.Street != nil {
				merged.Street = update.Street
			}
			if update.City != nil {
				merged.City = update.City
			}
			if update.State != nil {
				merged.State = update.State
			}
			if update.Pincode != nil {
				merged.Pincode = update.Pincode
			}
			geoCtx, geoCancel := context.WithTimeout(ctx, helpers.GeocodeTimeout)
			location := helpers.GeocodeAddress(geoCtx, merged)
			geoCancel()
			updateObj = append(updateObj, bson.E{Key: "location", Value: location})
		}

		updated_at, _ := time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
		updateObj = append(updateObj, bson.E{Key: "updated_at", Value: updated_at})

		_, err = addressCollection.UpdateOne(
			ctx,
			bson.M{"address_id": addressId, "user_id": uid},
			bson.D{{Key: "$set", Value: updateObj}},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "address update failed"})
			return
		}

		var updated models.Address
		if err := addressCollection.FindOne(ctx, bson.M{"address_id": addressId}).Decode(&updated); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occured while fetching the address"})
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

// DeleteAddress removes an address. Deleting the default leaves the
// customer with no default; nothing is promoted in its place.
func DeleteAddress() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		uid := c.GetString("uid")
		addressId := c.Param("address_id")

		result, err := addressCollection.DeleteOne(ctx, bson.M{"address_id": addressId, "user_id": uid})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "address delete failed"})
			return
		}
		if result.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "address not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "address deleted"})
	}
}
