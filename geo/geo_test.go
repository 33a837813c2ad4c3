package geo

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withUpstream(t *testing.T, handler http.HandlerFunc) {
	srv := httptest.NewServer(handler)
	old := nominatimURL
	nominatimURL = srv.URL
	t.Cleanup(func() {
		nominatimURL = old
		srv.Close()
	})
}

func TestReverseGeocodeRejectsUpstreamErrors(t *testing.T) {
	withUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Bandwidth limit exceeded", http.StatusTooManyRequests)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/geocode/reverse?lat=48.858&lon=2.294", nil)
	w := httptest.NewRecorder()
	ReverseGeocode(w, req, nil)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestReverseGeocodeMissingCoords(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/geocode/reverse?lat=48.858", nil)
	w := httptest.NewRecorder()
	ReverseGeocode(w, req, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReverseGeocodeSuccess(t *testing.T) {
	withUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "35.659", r.URL.Query().Get("lat"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"display_name":"Tokyo Tower, Minato, Tokyo, Japan",` +
			`"address":{"road":"Tower Street","city":"Minato","state":"Tokyo","country":"Japan"}}`))
	})

	req := httptest.NewRequest(http.MethodGet, "/api/geocode/reverse?lat=35.659&lon=139.745", nil)
	w := httptest.NewRecorder()
	ReverseGeocode(w, req, nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Tokyo Tower")
	assert.Contains(t, body, `"city":"Minato"`)
}
