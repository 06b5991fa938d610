package controllers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestCommissionRateDefault(t *testing.T) {
	t.Setenv("COMMISSION_RATE", "")
	assert.Equal(t, defaultCommissionRate, commissionRate())
}

func TestCommissionRateFromEnv(t *testing.T) {
	t.Setenv("COMMISSION_RATE", "0.15")
	assert.Equal(t, 0.15, commissionRate())
}

func TestCommissionRateIgnoresInvalidValues(t *testing.T) {
	t.Setenv("COMMISSION_RATE", "not-a-number")
	assert.Equal(t, defaultCommissionRate, commissionRate())

	t.Setenv("COMMISSION_RATE", "1.5")
	assert.Equal(t, defaultCommissionRate, commissionRate())

	t.Setenv("COMMISSION_RATE", "-0.1")
	assert.Equal(t, defaultCommissionRate, commissionRate())
}

func TestRedeemCouponCountsOncePerOrder(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("first redemption matches and increments", func(mt *mtest.T) {
		oldColl := couponCollection
		couponCollection = mt.Coll
		defer func() { couponCollection = oldColl }()

		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		require.NoError(mt, redeemCoupon(context.Background(), "NEWYEAR26", "order-1"))

		events := crudEvents(mt.GetAllStartedEvents())
		require.Len(mt, events, 1)
		statement := events[0].Command.Lookup("updates").Array().Index(0).Value().Document()
		code, ok := statement.Lookup("q", "code").StringValueOK()
		require.True(mt, ok)
		assert.Equal(mt, "NEWYEAR26", code)
		// The filter excludes coupons that already recorded this order id
		_, err := statement.LookupErr("q", "redeemed_orders", "$ne")
		assert.NoError(mt, err)
	})

	mt.Run("retried redemption matches nothing and stays quiet", func(mt *mtest.T) {
		oldColl := couponCollection
		couponCollection = mt.Coll
		defer func() { couponCollection = oldColl }()

		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		require.NoError(mt, redeemCoupon(context.Background(), "NEWYEAR26", "order-1"))
	})
}
