package helpers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"

	"bakehub/models"
)

// GeocodeBaseURL is a var so tests can point it at a stub server.
var GeocodeBaseURL = "https://maps.googleapis.com/maps/api/geocode/json"

// GeocodeTimeout bounds how long an address write may wait on the geocoder.
const GeocodeTimeout = 5 * time.Second

var geocodeClient = &http.Client{Timeout: GeocodeTimeout}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// GeocodeAddress resolves a postal address to coordinates. A nil result
// means "no coordinates" and is never an error the caller must handle:
// geocoding failures must not block the address write path.
func GeocodeAddress(ctx context.Context, address models.Address) *models.GeoPoint {
	apiKey := os.Getenv("GOOGLE_MAPS_API_KEY")
	if apiKey == "" {
		log.Println("google maps API key not configured, skipping geocoding")
		return nil
	}

	fullAddress := address.FullLine()
	if fullAddress == "" {
		return nil
	}

	params := url.Values{}
	params.Set("address", fullAddress)
	params.Set("key", apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, GeocodeBaseURL+"?"+params.Encode(), nil)
	if err != nil {
		log.Println("geocoding request error:", err)
		return nil
	}

	resp, err := geocodeClient.Do(req)
	if err != nil {
		log.Println("geocoding error:", err)
		return nil
	}
	defer resp.Body.Close()

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		log.Println("geocoding decode error:", err)
		return nil
	}

	switch {
	case decoded.Status == "OK" && len(decoded.Results) > 0:
		lat := decoded.Results[0].Geometry.Location.Lat
		lng := decoded.Results[0].Geometry.Location.Lng
		return &models.GeoPoint{Lat: &lat, Lng: &lng}
	case decoded.Status == "ZERO_RESULTS":
		log.Printf("no geocoding results for address: %s", fullAddress)
		return nil
	default:
		log.Printf("geocoding error: %s for address: %s", decoded.Status, fullAddress)
		return nil
	}
}
