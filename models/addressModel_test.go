package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func str(s string) *string { return &s }

func sampleAddress() *Address {
	return &Address{
		House_no: str("12"),
		Street:   str("MG Road"),
		City:     str("Pune"),
		State:    str("Maharashtra"),
		Pincode:  str("411001"),
	}
}

func TestFullLine(t *testing.T) {
	addr := sampleAddress()
	assert.Equal(t, "12 MG Road, Pune, Maharashtra 411001", addr.FullLine())
}

func TestFullLineSkipsEmptyParts(t *testing.T) {
	addr := sampleAddress()
	addr.House_no = nil
	addr.State = str("")
	assert.Equal(t, "MG Road, Pune, 411001", addr.FullLine())

	empty := &Address{}
	assert.Equal(t, "", empty.FullLine())
}

func TestPostalFieldsChanged(t *testing.T) {
	addr := sampleAddress()

	assert.False(t, addr.PostalFieldsChanged(&Address{}))
	assert.False(t, addr.PostalFieldsChanged(&Address{City: str("Pune")}))
	assert.True(t, addr.PostalFieldsChanged(&Address{City: str("Mumbai")}))
	assert.True(t, addr.PostalFieldsChanged(&Address{Pincode: str("411002")}))

	// Non-postal fields do not invalidate coordinates.
	assert.False(t, addr.PostalFieldsChanged(&Address{Full_name: str("Someone Else")}))

	// A field that was never set counts as changed once supplied.
	addr.Street = nil
	assert.True(t, addr.PostalFieldsChanged(&Address{Street: str("FC Road")}))
}

func TestGeoPointIsComplete(t *testing.T) {
	lat, lng := 18.52, 73.85
	assert.True(t, (&GeoPoint{Lat: &lat, Lng: &lng}).IsComplete())
	assert.False(t, (&GeoPoint{Lat: &lat}).IsComplete())
	assert.False(t, (&GeoPoint{}).IsComplete())

	var nilPoint *GeoPoint
	assert.False(t, nilPoint.IsComplete())
}
