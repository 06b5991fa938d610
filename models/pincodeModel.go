package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DeliveryPincode marks a postal code the bakery delivers to.
type DeliveryPincode struct {
	ID         primitive.ObjectID `bson:"_id" json:"_id"`
	Pincode_id string             `bson:"pincode_id" json:"pincode_id"`
	Pincode    *string            `bson:"pincode" json:"pincode" validate:"required,min=4,max=10"`
	City       *string            `bson:"city" json:"city"`
	State      *string            `bson:"state" json:"state"`
	Is_active  bool               `bson:"is_active" json:"is_active"`
	Created_at time.Time          `bson:"created_at" json:"created_at"`
	Updated_at time.Time          `bson:"updated_at" json:"updated_at"`
}
