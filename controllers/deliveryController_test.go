package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bakehub/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

// authedRouter builds a test engine whose requests carry the given identity,
// the way the JWT middleware would set it.
func authedRouter(uid string, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("uid", uid)
		c.Set("role", role)
	})
	return router
}

func jsonRequest(method string, target string, body interface{}) *http.Request {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(method, target, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func locationDoc(deliveryBoyId string, lat float64, lng float64) bson.D {
	now := time.Now()
	return bson.D{
		{Key: "_id", Value: primitive.NewObjectID()},
		{Key: "delivery_boy_id", Value: deliveryBoyId},
		{Key: "location", Value: bson.D{{Key: "lat", Value: lat}, {Key: "lng", Value: lng}}},
		{Key: "last_updated", Value: now},
		{Key: "is_active", Value: true},
		{Key: "created_at", Value: now},
		{Key: "updated_at", Value: now},
	}
}

func TestUpdateLocationUpsertsSingleRecord(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("repeated reports rewrite one record", func(mt *mtest.T) {
		oldColl := locationCollection
		locationCollection = mt.Coll
		defer func() { locationCollection = oldColl }()

		router := authedRouter("agent-1", models.RoleDeliveryBoy)
		router.POST("/delivery/location", UpdateLocation())

		mt.AddMockResponses(
			bson.D{{Key: "ok", Value: 1}, {Key: "value", Value: locationDoc("agent-1", 12.9716, 77.5946)}},
			bson.D{{Key: "ok", Value: 1}, {Key: "value", Value: locationDoc("agent-1", 13.0001, 77.6101)}},
		)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, jsonRequest(http.MethodPost, "/delivery/location", gin.H{"lat": 12.9716, "lng": 77.5946}))
		require.Equal(mt, http.StatusOK, w.Code)

		var first models.DeliveryBoyLocation
		require.NoError(mt, json.Unmarshal(w.Body.Bytes(), &first))
		assert.Equal(mt, "agent-1", first.Delivery_boy_id)
		require.NotNil(mt, first.Location.Lat)
		assert.InDelta(mt, 12.9716, *first.Location.Lat, 1e-9)
		assert.True(mt, first.Is_active)

		w = httptest.NewRecorder()
		router.ServeHTTP(w, jsonRequest(http.MethodPost, "/delivery/location", gin.H{"lat": 13.0001, "lng": 77.6101}))
		require.Equal(mt, http.StatusOK, w.Code)

		var second models.DeliveryBoyLocation
		require.NoError(mt, json.Unmarshal(w.Body.Bytes(), &second))
		require.NotNil(mt, second.Location.Lat)
		assert.InDelta(mt, 13.0001, *second.Location.Lat, 1e-9)

		// Both reports must go through an upsert keyed only by the agent id,
		// which is what keeps the collection at one record per delivery boy.
		var writes int
		for _, evt := range mt.GetAllStartedEvents() {
			if evt.CommandName != "findAndModify" {
				continue
			}
			writes++
			upsert, ok := evt.Command.Lookup("upsert").BooleanOK()
			require.True(mt, ok)
			assert.True(mt, upsert)
			target, ok := evt.Command.Lookup("query", "delivery_boy_id").StringValueOK()
			require.True(mt, ok)
			assert.Equal(mt, "agent-1", target)
		}
		assert.Equal(mt, 2, writes)
	})
}

func TestUpdateLocationRequiresCoordinates(t *testing.T) {
	router := authedRouter("agent-1", models.RoleDeliveryBoy)
	router.POST("/delivery/location", UpdateLocation())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest(http.MethodPost, "/delivery/location", gin.H{"lat": 12.9716}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "latitude and longitude are required")
}

func TestGetMyLocationNeverReported(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("agent without a report gets 404", func(mt *mtest.T) {
		oldColl := locationCollection
		locationCollection = mt.Coll
		defer func() { locationCollection = oldColl }()

		mt.AddMockResponses(mtest.CreateCursorResponse(0, "bakehub.deliveryBoyLocation", mtest.FirstBatch))

		router := authedRouter("agent-2", models.RoleDeliveryBoy)
		router.GET("/delivery/location", GetMyLocation())

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/delivery/location", nil))

		assert.Equal(mt, http.StatusNotFound, w.Code)
		assert.Contains(mt, w.Body.String(), "location not found")
	})
}
