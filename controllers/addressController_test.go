package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"bakehub/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func crudEvents(events []*event.CommandStartedEvent) []*event.CommandStartedEvent {
	var out []*event.CommandStartedEvent
	for _, evt := range events {
		switch evt.CommandName {
		case "insert", "update", "delete", "findAndModify":
			out = append(out, evt)
		}
	}
	return out
}

func TestCreateDefaultAddressClearsOtherDefaults(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("new default unsets the rest first", func(mt *mtest.T) {
		mt.Setenv("GOOGLE_MAPS_API_KEY", "")
		oldColl := addressCollection
		addressCollection = mt.Coll
		defer func() { addressCollection = oldColl }()

		mt.AddMockResponses(
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(),
		)

		router := authedRouter("user-1", models.RoleCustomer)
		router.POST("/addresses", CreateAddress())

		w := httptest.NewRecorder()
		router.ServeHTTP(w, jsonRequest(http.MethodPost, "/addresses", gin.H{
			"full_name":     "Alice",
			"mobile_number": "9999999999",
			"house_no":      "12",
			"street":        "MG Road",
			"city":          "Bengaluru",
			"state":         "Karnataka",
			"pincode":       "560001",
			"is_default":    true,
		}))
		require.Equal(mt, http.StatusCreated, w.Code)

		events := crudEvents(mt.GetAllStartedEvents())
		require.Len(mt, events, 2)
		assert.Equal(mt, "update", events[0].CommandName)
		assert.Equal(mt, "insert", events[1].CommandName)

		statement := events[0].Command.Lookup("updates").Array().Index(0).Value().Document()
		multi, ok := statement.Lookup("multi").BooleanOK()
		require.True(mt, ok)
		assert.True(mt, multi)
		owner, ok := statement.Lookup("q", "user_id").StringValueOK()
		require.True(mt, ok)
		assert.Equal(mt, "user-1", owner)
		cleared, ok := statement.Lookup("u", "$set", "is_default").BooleanOK()
		require.True(mt, ok)
		assert.False(mt, cleared)
	})
}

func TestCreateNonDefaultAddressLeavesOthersAlone(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("plain create issues no bulk update", func(mt *mtest.T) {
		mt.Setenv("GOOGLE_MAPS_API_KEY", "")
		oldColl := addressCollection
		addressCollection = mt.Coll
		defer func() { addressCollection = oldColl }()

		mt.AddMockResponses(mtest.CreateSuccessResponse())

		router := authedRouter("user-1", models.RoleCustomer)
		router.POST("/addresses", CreateAddress())

		w := httptest.NewRecorder()
		router.ServeHTTP(w, jsonRequest(http.MethodPost, "/addresses", gin.H{
			"full_name":     "Alice",
			"mobile_number": "9999999999",
			"house_no":      "12",
			"street":        "MG Road",
			"city":          "Bengaluru",
			"state":         "Karnataka",
			"pincode":       "560001",
		}))
		require.Equal(mt, http.StatusCreated, w.Code)

		events := crudEvents(mt.GetAllStartedEvents())
		require.Len(mt, events, 1)
		assert.Equal(mt, "insert", events[0].CommandName)
	})
}

func TestDeleteAddressDoesNotPromoteNewDefault(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("deleting the default promotes nothing", func(mt *mtest.T) {
		oldColl := addressCollection
		addressCollection = mt.Coll
		defer func() { addressCollection = oldColl }()

		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		router := authedRouter("user-1", models.RoleCustomer)
		router.DELETE("/addresses/:address_id", DeleteAddress())

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/addresses/addr-1", nil))

		assert.Equal(mt, http.StatusOK, w.Code)
		assert.Contains(mt, w.Body.String(), "address deleted")

		events := crudEvents(mt.GetAllStartedEvents())
		require.Len(mt, events, 1)
		assert.Equal(mt, "delete", events[0].CommandName)
	})
}

func TestDeleteAddressNotFound(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("unknown address returns 404", func(mt *mtest.T) {
		oldColl := addressCollection
		addressCollection = mt.Coll
		defer func() { addressCollection = oldColl }()

		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		router := authedRouter("user-1", models.RoleCustomer)
		router.DELETE("/addresses/:address_id", DeleteAddress())

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/addresses/missing", nil))

		assert.Equal(mt, http.StatusNotFound, w.Code)
	})
}
