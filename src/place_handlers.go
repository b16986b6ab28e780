package main

import (
	"bookingapi/src/boot"

	"github.com/gin-gonic/gin"
)

func placeHandlers(g *gin.RouterGroup, app *boot.App) *gin.RouterGroup {
	g.POST("/places/details", func(ctx *gin.Context) {
		details, status, err := app.Places.GetPlaceDetails(ctx)
		if err != nil {
			respondError(ctx, app, "place_details", status, err)
			return
		}
		respond(ctx, status, "", details)
	})
	return g
}
