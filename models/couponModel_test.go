package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newYearCoupon() *Coupon {
	maxDiscount := 1000.0
	return &Coupon{
		Code:             "NEWYEAR26",
		Discount_type:    DiscountPercentage,
		Discount_value:   30,
		Max_discount:     &maxDiscount,
		Min_order_amount: 500,
		Valid_from:       time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC),
		Valid_until:      time.Date(2026, 1, 15, 23, 59, 59, 0, time.UTC),
		Is_active:        true,
	}
}

func TestCouponVerifyPercentageDiscount(t *testing.T) {
	coupon := newYearCoupon()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	discount, err := coupon.Verify(500, now)
	assert.NoError(t, err)
	assert.Equal(t, 150.0, discount)
}

func TestCouponVerifyClampsToMaxDiscount(t *testing.T) {
	coupon := newYearCoupon()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	// 30% of 4000 is 1200, clamped to the 1000 cap.
	discount, err := coupon.Verify(4000, now)
	assert.NoError(t, err)
	assert.Equal(t, 1000.0, discount)
}

func TestCouponVerifyBelowMinimum(t *testing.T) {
	coupon := newYearCoupon()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	_, err := coupon.Verify(400, now)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "minimum order amount")
}

func TestCouponVerifyOutsideValidityWindow(t *testing.T) {
	coupon := newYearCoupon()

	_, err := coupon.Verify(1000, time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, ErrCouponInvalid)

	_, err = coupon.Verify(1000, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, ErrCouponInvalid)
}

func TestCouponVerifyInactive(t *testing.T) {
	coupon := newYearCoupon()
	coupon.Is_active = false
	_, err := coupon.Verify(1000, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, ErrCouponInvalid)

	var nilCoupon *Coupon
	_, err = nilCoupon.Verify(1000, time.Now())
	assert.ErrorIs(t, err, ErrCouponInvalid)
}

func TestCouponVerifyUsageLimit(t *testing.T) {
	coupon := newYearCoupon()
	limit := int64(100)
	coupon.Usage_limit = &limit
	coupon.Used_count = 100

	_, err := coupon.Verify(1000, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, ErrCouponUsedUp)

	coupon.Used_count = 99
	discount, err := coupon.Verify(1000, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.NoError(t, err)
	assert.Equal(t, 300.0, discount)
}

func TestCouponVerifyNeverMutates(t *testing.T) {
	coupon := newYearCoupon()
	before := coupon.Used_count
	_, _ = coupon.Verify(1000, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, before, coupon.Used_count)
}

func TestFixedDiscountIgnoresMaxDiscount(t *testing.T) {
	maxDiscount := 50.0
	coupon := &Coupon{
		Code:           "FLAT100",
		Discount_type:  DiscountFixed,
		Discount_value: 100,
		Max_discount:   &maxDiscount,
		Valid_from:     time.Now().Add(-time.Hour),
		Valid_until:    time.Now().Add(time.Hour),
		Is_active:      true,
	}
	assert.Equal(t, 100.0, coupon.Discount(2000))
}

func TestNormalizeCouponCode(t *testing.T) {
	assert.Equal(t, "NEWYEAR26", NormalizeCouponCode("  newyear26 "))
	assert.Equal(t, "FLAT100", NormalizeCouponCode("Flat100"))
}
