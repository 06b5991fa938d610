package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	PaymentPending  = "Pending"
	PaymentPaid     = "Paid"
	PaymentFailed   = "Failed"
	PaymentRefunded = "Refunded"

	PaymentMethodCOD    = "COD"
	PaymentMethodOnline = "Online"
)

// OrderItem is a price snapshot taken at checkout, so later product edits
// do not change what the customer was billed.
type OrderItem struct {
	Product_id   *string  `bson:"product_id" json:"product_id" validate:"required"`
	Product_name *string  `bson:"product_name" json:"product_name"`
	Weight       *string  `bson:"weight" json:"weight"`
	Is_eggless   bool     `bson:"is_eggless" json:"is_eggless"`
	Unit_price   *float64 `bson:"unit_price" json:"unit_price" validate:"required,gte=0"`
	Quantity     *int     `bson:"quantity" json:"quantity" validate:"required,gte=1"`
}

type Order struct {
	ID              primitive.ObjectID `bson:"_id" json:"_id"`
	Order_id        string             `bson:"order_id" json:"order_id"`
	User_id         *string            `bson:"user_id" json:"user_id"`
	Items           []OrderItem        `bson:"items" json:"items" validate:"required,min=1,dive"`
	Address_id      *string            `bson:"address_id" json:"address_id" validate:"required"`
	Delivery_boy_id *string            `bson:"delivery_boy_id" json:"delivery_boy_id"`
	Order_status    OrderStatus        `bson:"order_status" json:"order_status"`
	Payment_status  string             `bson:"payment_status" json:"payment_status"`
	Payment_method  string             `bson:"payment_method" json:"payment_method" validate:"required,eq=COD|eq=Online"`
	Payment_id      *string            `bson:"payment_id" json:"payment_id"`
	Coupon_code     *string            `bson:"coupon_code" json:"coupon_code"`
	Discount        float64            `bson:"discount" json:"discount"`
	Total           float64            `bson:"total" json:"total"`
	Commission      float64            `bson:"commission" json:"commission"`
	Delivery_date   *string            `bson:"delivery_date" json:"delivery_date"`
	Delivery_time   *string            `bson:"delivery_time" json:"delivery_time"`

	Delivery_assigned_at *time.Time `bson:"delivery_assigned_at" json:"delivery_assigned_at"`
	Created_at           time.Time  `bson:"created_at" json:"created_at"`
	Updated_at           time.Time  `bson:"updated_at" json:"updated_at"`
}
