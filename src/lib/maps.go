package lib

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"bookingapi/src/config"

	"googlemaps.github.io/maps"
)

const placePhotoURL = "https://maps.googleapis.com/maps/api/place/photo?maxwidth=%d&photoreference=%s&key=%s"

var ErrPlacesUnavailable = errors.New("places lookups are not configured")

type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Photo struct {
	PhotoReference   string   `json:"photo_reference"`
	Height           int      `json:"height"`
	Width            int      `json:"width"`
	HTMLAttributions []string `json:"html_attributions,omitempty"`
}

// PlaceDetails is the subset of a Places result attached to package items.
type PlaceDetails struct {
	PlaceID                  string    `json:"place_id"`
	Name                     string    `json:"name"`
	FormattedAddress         string    `json:"formatted_address,omitempty"`
	FormattedPhoneNumber     string    `json:"formatted_phone_number,omitempty"`
	InternationalPhoneNumber string    `json:"international_phone_number,omitempty"`
	Website                  string    `json:"website,omitempty"`
	URL                      string    `json:"url,omitempty"`
	Rating                   float32   `json:"rating,omitempty"`
	Types                    []string  `json:"types,omitempty"`
	Location                 *Location `json:"location,omitempty"`
	Photos                   []Photo   `json:"photos,omitempty"`
	PhotoURLs                []string  `json:"photoUrls"`
}

type PlacesProvider interface {
	PlaceDetails(ctx context.Context, placeID string) (*PlaceDetails, error)
}

type PlacesClient struct {
	client        *maps.Client
	apiKey        string
	photoMaxWidth int
}

// NewPlacesClient builds a Places client; extra options override the defaults
// (tests point it at a local server with maps.WithBaseURL).
func NewPlacesClient(cfg config.PlacesConfig, opts ...maps.ClientOption) (*PlacesClient, error) {
	if cfg.APIKey == "" {
		return nil, ErrPlacesUnavailable
	}
	options := append([]maps.ClientOption{maps.WithAPIKey(cfg.APIKey)}, opts...)
	cli, err := maps.NewClient(options...)
	if err != nil {
		return nil, err
	}
	width := cfg.PhotoMaxWidth
	if width <= 0 {
		width = 400
	}
	return &PlacesClient{client: cli, apiKey: cfg.APIKey, photoMaxWidth: width}, nil
}

func (p *PlacesClient) PlaceDetails(ctx context.Context, placeID string) (*PlaceDetails, error) {
	res, err := p.client.PlaceDetails(ctx, &maps.PlaceDetailsRequest{PlaceID: placeID})
	if err != nil {
		return nil, fmt.Errorf("place details %s: %w", placeID, err)
	}

	details := &PlaceDetails{
		PlaceID:                  res.PlaceID,
		Name:                     res.Name,
		FormattedAddress:         res.FormattedAddress,
		FormattedPhoneNumber:     res.FormattedPhoneNumber,
		InternationalPhoneNumber: res.InternationalPhoneNumber,
		Website:                  res.Website,
		URL:                      res.URL,
		Rating:                   res.Rating,
		Types:                    res.Types,
		PhotoURLs:                make([]string, 0, len(res.Photos)),
	}
	if loc := res.Geometry.Location; loc.Lat != 0 || loc.Lng != 0 {
		details.Location = &Location{Lat: loc.Lat, Lng: loc.Lng}
	}
	for _, ph := range res.Photos {
		details.Photos = append(details.Photos, Photo{
			PhotoReference:   ph.PhotoReference,
			Height:           ph.Height,
			Width:            ph.Width,
			HTMLAttributions: ph.HTMLAttributions,
		})
		details.PhotoURLs = append(details.PhotoURLs, p.PhotoURL(ph.PhotoReference))
	}
	return details, nil
}

func (p *PlacesClient) PhotoURL(reference string) string {
	return fmt.Sprintf(placePhotoURL, p.photoMaxWidth, url.QueryEscape(reference), url.QueryEscape(p.apiKey))
}

type unavailablePlaces struct{}

// NewUnavailablePlaces fails every lookup; used when no API key is configured.
func NewUnavailablePlaces() PlacesProvider {
	return unavailablePlaces{}
}

func (unavailablePlaces) PlaceDetails(ctx context.Context, placeID string) (*PlaceDetails, error) {
	return nil, ErrPlacesUnavailable
}
