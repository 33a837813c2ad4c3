package geo

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"

	"bookify/rdx"
	"bookify/utils"

	"github.com/julienschmidt/httprouter"
)

var nominatimURL = "https://nominatim.openstreetmap.org/reverse"

var httpClient = &http.Client{Timeout: 10 * time.Second}

type reverseResult struct {
	DisplayName string `json:"display_name"`
	Address     struct {
		Road     string `json:"road"`
		Suburb   string `json:"suburb"`
		City     string `json:"city"`
		Town     string `json:"town"`
		Village  string `json:"village"`
		State    string `json:"state"`
		Postcode string `json:"postcode"`
		Country  string `json:"country"`
	} `json:"address"`
}

// ReverseGeocode converts a map click into a human-readable address via the
// public Nominatim service. The contact email rides along per the OSM usage
// policy; there is no API key. Results are cached so repeated clicks on the
// same spot don't hit the public service again.
func ReverseGeocode(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	lat := r.URL.Query().Get("lat")
	lon := r.URL.Query().Get("lon")
	if lat == "" || lon == "" {
		http.Error(w, "missing lat/lon", http.StatusBadRequest)
		return
	}

	cacheKey := fmt.Sprintf("geocode:%s:%s", lat, lon)
	if cached, err := rdx.RdxGet(cacheKey); err == nil && cached != "" {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(cached))
		return
	}

	q := url.Values{}
	q.Set("lat", lat)
	q.Set("lon", lon)
	q.Set("format", "json")
	if email := os.Getenv("GEOCODE_EMAIL"); email != "" {
		q.Set("email", email)
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, nominatimURL+"?"+q.Encode(), nil)
	if err != nil {
		http.Error(w, "bad request", http.StatusInternalServerError)
		return
	}
	req.Header.Set("User-Agent", "bookify/1.0")

	resp, err := httpClient.Do(req)
	if err != nil {
		log.Printf("reverse geocode failed: %v", err)
		http.Error(w, "geocoding unavailable", http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()

	// Error bodies decode into an empty struct; reject them here so a
	// failure is never served as a result or cached.
	if resp.StatusCode != http.StatusOK {
		log.Printf("reverse geocode returned %d", resp.StatusCode)
		http.Error(w, "geocoding unavailable", http.StatusBadGateway)
		return
	}

	var result reverseResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		http.Error(w, "geocoding unavailable", http.StatusBadGateway)
		return
	}

	city := result.Address.City
	if city == "" {
		city = result.Address.Town
	}
	if city == "" {
		city = result.Address.Village
	}

	payload := map[string]string{
		"displayName": result.DisplayName,
		"road":        result.Address.Road,
		"city":        city,
		"state":       result.Address.State,
		"postcode":    result.Address.Postcode,
		"country":     result.Address.Country,
	}

	if data, err := json.Marshal(payload); err == nil {
		if err := rdx.SetWithExpiry(cacheKey, string(data), 24*time.Hour); err != nil {
			log.Printf("geocode cache write failed: %v", err)
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, payload)
}
