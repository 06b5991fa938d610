package helpers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"bakehub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func geocodeTestAddress() models.Address {
	houseNo := "12"
	street := "MG Road"
	city := "Pune"
	state := "Maharashtra"
	pincode := "411001"
	return models.Address{
		House_no: &houseNo,
		Street:   &street,
		City:     &city,
		State:    &state,
		Pincode:  &pincode,
	}
}

func withGeocodeStub(t *testing.T, handler http.HandlerFunc) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	oldURL := GeocodeBaseURL
	GeocodeBaseURL = server.URL
	t.Cleanup(func() { GeocodeBaseURL = oldURL })
	t.Setenv("GOOGLE_MAPS_API_KEY", "test-key")
}

func TestGeocodeAddressSuccess(t *testing.T) {
	withGeocodeStub(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.Contains(t, r.URL.Query().Get("address"), "MG Road")
		fmt.Fprint(w, `{"status":"OK","results":[{"geometry":{"location":{"lat":18.52,"lng":73.85}}}]}`)
	})

	point := GeocodeAddress(context.Background(), geocodeTestAddress())
	require.NotNil(t, point)
	require.True(t, point.IsComplete())
	assert.Equal(t, 18.52, *point.Lat)
	assert.Equal(t, 73.85, *point.Lng)
}

func TestGeocodeAddressZeroResults(t *testing.T) {
	withGeocodeStub(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"ZERO_RESULTS","results":[]}`)
	})

	assert.Nil(t, GeocodeAddress(context.Background(), geocodeTestAddress()))
}

func TestGeocodeAddressUpstreamError(t *testing.T) {
	withGeocodeStub(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"REQUEST_DENIED","results":[]}`)
	})

	assert.Nil(t, GeocodeAddress(context.Background(), geocodeTestAddress()))
}

func TestGeocodeAddressWithoutAPIKey(t *testing.T) {
	t.Setenv("GOOGLE_MAPS_API_KEY", "")
	assert.Nil(t, GeocodeAddress(context.Background(), geocodeTestAddress()))
}

func TestGeocodeAddressEmptyAddress(t *testing.T) {
	withGeocodeStub(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("geocoder must not be called for an empty address")
	})

	assert.Nil(t, GeocodeAddress(context.Background(), models.Address{}))
}
