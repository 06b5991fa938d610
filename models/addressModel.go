package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GeoPoint holds map coordinates produced by the geocoding service.
type GeoPoint struct {
	Lat *float64 `bson:"lat" json:"lat"`
	Lng *float64 `bson:"lng" json:"lng"`
}

func (g *GeoPoint) IsComplete() bool {
	return g != nil && g.Lat != nil && g.Lng != nil
}

type Address struct {
	ID            primitive.ObjectID `bson:"_id" json:"_id"`
	Address_id    string             `bson:"address_id" json:"address_id"`
	User_id       *string            `bson:"user_id" json:"user_id"`
	Full_name     *string            `bson:"full_name" json:"full_name" validate:"required"`
	Mobile_number *string            `bson:"mobile_number" json:"mobile_number" validate:"required"`
	House_no      *string            `bson:"house_no" json:"house_no" validate:"required"`
	Street        *string            `bson:"street" json:"street" validate:"required"`
	City          *string            `bson:"city" json:"city" validate:"required"`
	State         *string            `bson:"state" json:"state" validate:"required"`
	Pincode       *string            `bson:"pincode" json:"pincode" validate:"required"`
	Address_type  *string            `bson:"address_type" json:"address_type" validate:"omitempty,eq=Home|eq=Work|eq=Other"`
	Location      *GeoPoint          `bson:"location" json:"location"`
	Is_default    bool               `bson:"is_default" json:"is_default"`
	Created_at    time.Time          `bson:"created_at" json:"created_at"`
	Updated_at    time.Time          `bson:"updated_at" json:"updated_at"`
}

// FullLine builds the single-line postal string handed to the geocoder.
func (a *Address) FullLine() string {
	parts := []string{}
	for _, p := range []*string{a.House_no, a.Street} {
		if p != nil && *p != "" {
			parts = append(parts, *p)
		}
	}
	line := strings.Join(parts, " ")
	tail := []string{}
	if a.City != nil && *a.City != "" {
		tail = append(tail, *a.City)
	}
	statePin := []string{}
	if a.State != nil && *a.State != "" {
		statePin = append(statePin, *a.State)
	}
	if a.Pincode != nil && *a.Pincode != "" {
		statePin = append(statePin, *a.Pincode)
	}
	if len(statePin) > 0 {
		tail = append(tail, strings.Join(statePin, " "))
	}
	if len(tail) > 0 {
		if line != "" {
			line = line + ", " + strings.Join(tail, ", ")
		} else {
			line = strings.Join(tail, ", ")
		}
	}
	return strings.Join(strings.Fields(line), " ")
}

// PostalFieldsChanged reports whether the update touches any field that
// feeds the geocoder, which means the stored coordinates are stale.
func (a *Address) PostalFieldsChanged(update *Address) bool {
	pairs := [][2]*string{
		{a.House_no, update.House_no},
		{a.Street, update.Street},
		{a.City, update.City},
		{a.State, update.State},
		{a.Pincode, update.Pincode},
	}
	for _, p := range pairs {
		if p[1] == nil {
			continue
		}
		if p[0] == nil || *p[0] != *p[1] {
			return true
		}
	}
	return false
}
