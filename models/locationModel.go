package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DeliveryBoyLocation is the last known position of a delivery boy.
// There is at most one document per delivery boy; every report overwrites
// the previous one, no history is kept.
type DeliveryBoyLocation struct {
	ID              primitive.ObjectID `bson:"_id" json:"_id"`
	Delivery_boy_id string             `bson:"delivery_boy_id" json:"delivery_boy_id"`
	Location        GeoPoint           `bson:"location" json:"location"`
	Heading         *float64           `bson:"heading" json:"heading"`
	Speed           *float64           `bson:"speed" json:"speed"`
	Accuracy        *float64           `bson:"accuracy" json:"accuracy"`
	Last_updated    time.Time          `bson:"last_updated" json:"last_updated"`
	Is_active       bool               `bson:"is_active" json:"is_active"`
	Created_at      time.Time          `bson:"created_at" json:"created_at"`
	Updated_at      time.Time          `bson:"updated_at" json:"updated_at"`
}

// LocationReport is the request body posted by the tracking client. Lat and
// lng are mandatory, the rest are whatever the browser geolocation API had.
type LocationReport struct {
	Lat      *float64 `json:"lat" validate:"required"`
	Lng      *float64 `json:"lng" validate:"required"`
	Heading  *float64 `json:"heading"`
	Speed    *float64 `json:"speed"`
	Accuracy *float64 `json:"accuracy"`
}
