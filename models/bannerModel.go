package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Banner struct {
	ID          primitive.ObjectID `bson:"_id" json:"_id"`
	Banner_id   string             `bson:"banner_id" json:"banner_id"`
	Title       *string            `bson:"title" json:"title" validate:"required"`
	Description *string            `bson:"description" json:"description"`
	Image       *string            `bson:"image" json:"image"`
	Coupon_code *string            `bson:"coupon_code" json:"coupon_code"`
	Button_text *string            `bson:"button_text" json:"button_text"`
	Is_active   bool               `bson:"is_active" json:"is_active"`
	Order       int                `bson:"order" json:"order"`
	Created_at  time.Time          `bson:"created_at" json:"created_at"`
	Updated_at  time.Time          `bson:"updated_at" json:"updated_at"`
}
