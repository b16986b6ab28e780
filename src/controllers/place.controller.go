package controllers

import (
	"context"
	"net/http"

	"bookingapi/src/config"
	"bookingapi/src/lib"
	"bookingapi/src/logger"
	"bookingapi/src/metrics"
	"bookingapi/src/types"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

const placeDetailsUnavailable = "place details unavailable"

type PlaceController struct {
	places  lib.PlacesProvider
	cfg     config.PlacesConfig
	log     logger.Logger
	metrics *metrics.Metrics
}

func NewPlaceController(places lib.PlacesProvider, cfg config.PlacesConfig, log logger.Logger, m *metrics.Metrics) *PlaceController {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	return &PlaceController{places: places, cfg: cfg, log: log, metrics: m}
}

type placeLookup struct {
	details *lib.PlaceDetails
	err     error
}

func (c *PlaceController) lookup(ctx context.Context, placeID string) placeLookup {
	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}
	details, err := c.places.PlaceDetails(ctx, placeID)
	if err != nil {
		c.metrics.PlaceLookups.WithLabelValues("error").Inc()
		return placeLookup{err: err}
	}
	c.metrics.PlaceLookups.WithLabelValues("ok").Inc()
	return placeLookup{details: details}
}

// EnrichItems returns items in their original order, with a copy of every item
// that names a place_id carrying either placeDetails or, when failures are
// marked, placeDetailsError. The input slice and its maps are not modified.
func (c *PlaceController) EnrichItems(ctx context.Context, items []types.JSONB) []types.JSONB {
	out := make([]types.JSONB, len(items))
	copy(out, items)

	var g errgroup.Group
	g.SetLimit(c.cfg.Concurrency)
	for i, item := range items {
		placeID := item.PlaceID()
		if placeID == "" {
			continue
		}
		g.Go(func() error {
			res := c.lookup(ctx, placeID)
			if res.err != nil {
				c.log.Warn("place lookup failed", "place_id", placeID, "error", res.err)
				if c.cfg.MarkFailures {
					enriched := item.Clone()
					enriched["placeDetailsError"] = placeDetailsUnavailable
					out[i] = enriched
				}
				return nil
			}
			enriched := item.Clone()
			enriched["placeDetails"] = res.details
			out[i] = enriched
			return nil
		})
	}
	g.Wait()

	return out
}

func (c *PlaceController) GetPlaceDetails(ctx *gin.Context) (*lib.PlaceDetails, int, error) {
	var body types.PlaceDetailsRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, http.StatusBadRequest, err
	}
	if body.PlaceID == "" {
		status, err := badRequest("placeId is required.")
		return nil, status, err
	}
	res := c.lookup(ctx.Request.Context(), body.PlaceID)
	if res.err != nil {
		c.log.Warn("place lookup failed", "place_id", body.PlaceID, "error", res.err)
		return nil, http.StatusBadGateway, wrap(ErrPlaceLookup, res.err)
	}
	return res.details, http.StatusOK, nil
}
