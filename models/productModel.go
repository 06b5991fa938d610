package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type WeightVariant struct {
	Weight *string  `bson:"weight" json:"weight" validate:"required"`
	Price  *float64 `bson:"price" json:"price" validate:"required,gte=0"`
}

type Product struct {
	ID          primitive.ObjectID `bson:"_id" json:"_id"`
	Product_id  string             `bson:"product_id" json:"product_id"`
	Name        *string            `bson:"name" json:"name" validate:"required,min=2,max=200"`
	Description *string            `bson:"description" json:"description"`
	Price       *float64           `bson:"price" json:"price" validate:"required,gte=0"`
	Weights     []WeightVariant    `bson:"weights" json:"weights" validate:"omitempty,dive"`
	Is_eggless  bool               `bson:"is_eggless" json:"is_eggless"`
	Category_id *string            `bson:"category_id" json:"category_id"`
	Images      []string           `bson:"images" json:"images"`
	Order_count int64              `bson:"order_count" json:"order_count"`
	Is_active   bool               `bson:"is_active" json:"is_active"`
	Created_at  time.Time          `bson:"created_at" json:"created_at"`
	Updated_at  time.Time          `bson:"updated_at" json:"updated_at"`
}

type Category struct {
	ID          primitive.ObjectID `bson:"_id" json:"_id"`
	Category_id string             `bson:"category_id" json:"category_id"`
	Name        *string            `bson:"name" json:"name" validate:"required,min=2,max=100"`
	Slug        *string            `bson:"slug" json:"slug"`
	Is_active   bool               `bson:"is_active" json:"is_active"`
	Created_at  time.Time          `bson:"created_at" json:"created_at"`
	Updated_at  time.Time          `bson:"updated_at" json:"updated_at"`
}
