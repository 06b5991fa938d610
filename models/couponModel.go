package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
)

var (
	ErrCouponInvalid    = errors.New("invalid or expired coupon")
	ErrCouponUsedUp     = errors.New("coupon usage limit reached")
	ErrCouponNotStarted = errors.New("coupon is not valid yet")
)

type Coupon struct {
	ID               primitive.ObjectID `bson:"_id" json:"_id"`
	Coupon_id        string             `bson:"coupon_id" json:"coupon_id"`
	Code             string             `bson:"code" json:"code" validate:"required,min=3"`
	Description      *string            `bson:"description" json:"description"`
	Discount_type    string             `bson:"discount_type" json:"discount_type" validate:"required,eq=percentage|eq=fixed"`
	Discount_value   float64            `bson:"discount_value" json:"discount_value" validate:"required,gt=0"`
	Max_discount     *float64           `bson:"max_discount" json:"max_discount"`
	Min_order_amount float64            `bson:"min_order_amount" json:"min_order_amount"`
	Valid_from       time.Time          `bson:"valid_from" json:"valid_from"`
	Valid_until      time.Time          `bson:"valid_until" json:"valid_until"`
	Usage_limit      *int64             `bson:"usage_limit" json:"usage_limit"`
	Used_count       int64              `bson:"used_count" json:"used_count"`
	Is_active        bool               `bson:"is_active" json:"is_active"`
	Redeemed_orders  []string           `bson:"redeemed_orders" json:"-"`
	Created_at       time.Time          `bson:"created_at" json:"created_at"`
	Updated_at       time.Time          `bson:"updated_at" json:"updated_at"`
}

// NormalizeCouponCode upper-cases and trims a user supplied code. Coupon
// codes are stored normalized so lookups are exact matches.
func NormalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Verify checks that the coupon applies to an order of the given amount at
// the given instant and returns the discount. It never mutates the coupon;
// the usage counter is only incremented at redemption, not verification.
func (c *Coupon) Verify(amount float64, now time.Time) (float64, error) {
	if c == nil || !c.Is_active {
		return 0, ErrCouponInvalid
	}
	if now.Before(c.Valid_from) || now.After(c.Valid_until) {
		return 0, ErrCouponInvalid
	}
	if amount < c.Min_order_amount {
		return 0, fmt.Errorf("minimum order amount is ₹%v", c.Min_order_amount)
	}
	if c.Usage_limit != nil && c.Used_count >= *c.Usage_limit {
		return 0, ErrCouponUsedUp
	}
	return c.Discount(amount), nil
}

// Discount computes the raw discount for an amount that already passed
// Verify. Percentage discounts are clamped to Max_discount when set.
func (c *Coupon) Discount(amount float64) float64 {
	if c.Discount_type != DiscountPercentage {
		return c.Discount_value
	}
	discount := amount * c.Discount_value / 100
	if c.Max_discount != nil && discount > *c.Max_discount {
		discount = *c.Max_discount
	}
	return discount
}
