package lib

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"bookingapi/src/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"googlemaps.github.io/maps"
)

const placeDetailsOK = `{
	"status": "OK",
	"result": {
		"place_id": "p1",
		"name": "Dubai Opera",
		"formatted_address": "Sheikh Mohammed bin Rashid Blvd, Dubai",
		"rating": 4.7,
		"types": ["point_of_interest"],
		"geometry": {"location": {"lat": 25.19, "lng": 55.27}},
		"photos": [{"photo_reference": "ref-1", "height": 300, "width": 400}]
	}
}`

func newFakePlacesServer(t *testing.T, status int, body string) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/maps/api/place/details/json", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestPlaceDetailsExpandsPhotoURLs(t *testing.T) {
	srv := newFakePlacesServer(t, http.StatusOK, placeDetailsOK)
	client, err := NewPlacesClient(config.PlacesConfig{APIKey: "k", PhotoMaxWidth: 400}, maps.WithBaseURL(srv.URL))
	require.NoError(t, err)

	details, err := client.PlaceDetails(context.Background(), "p1")
	require.NoError(t, err)

	assert.Equal(t, "Dubai Opera", details.Name)
	assert.Equal(t, &Location{Lat: 25.19, Lng: 55.27}, details.Location)
	assert.Equal(t, []string{
		"https://maps.googleapis.com/maps/api/place/photo?maxwidth=400&photoreference=ref-1&key=k",
	}, details.PhotoURLs)
}

func TestPlaceDetailsFailsOnProviderStatus(t *testing.T) {
	srv := newFakePlacesServer(t, http.StatusOK, `{"status": "INVALID_REQUEST"}`)
	client, err := NewPlacesClient(config.PlacesConfig{APIKey: "k"}, maps.WithBaseURL(srv.URL))
	require.NoError(t, err)

	_, err = client.PlaceDetails(context.Background(), "bogus")
	assert.Error(t, err)
}

func TestPlacesClientRequiresKey(t *testing.T) {
	_, err := NewPlacesClient(config.PlacesConfig{})
	assert.ErrorIs(t, err, ErrPlacesUnavailable)

	_, err = NewUnavailablePlaces().PlaceDetails(context.Background(), "p1")
	assert.ErrorIs(t, err, ErrPlacesUnavailable)
}
