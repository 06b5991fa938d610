package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleCustomer    = "customer"
	RoleDeliveryBoy = "deliveryBoy"
	RoleSuperAdmin  = "superAdmin"
)

type User struct {
	ID            primitive.ObjectID `bson:"_id" json:"_id"`
	Email         *string            `bson:"email" json:"email" validate:"email,required"`
	Role          string             `bson:"role" json:"role" validate:"required,eq=customer|eq=deliveryBoy|eq=superAdmin"`
	Name          *string            `bson:"name" json:"name"`
	Mobile_number *string            `bson:"mobile_number" json:"mobile_number"`
	Is_active     *bool              `bson:"is_active" json:"is_active"`

	// Delivery boy specific fields
	Vehicle_type   *string    `bson:"vehicle_type" json:"vehicle_type" validate:"omitempty,eq=Bike|eq=Cycle|eq=Car"`
	Vehicle_number *string    `bson:"vehicle_number" json:"vehicle_number"`
	Area           *string    `bson:"area" json:"area"`
	Joined_date    *time.Time `bson:"joined_date" json:"joined_date"`

	Token         *string   `bson:"token" json:"token"`
	Refresh_token *string   `bson:"refresh_token" json:"refresh_token"`
	Created_at    time.Time `bson:"created_at" json:"created_at"`
	Updated_at    time.Time `bson:"updated_at" json:"updated_at"`
	User_id       string    `bson:"user_id" json:"user_id"`
}
