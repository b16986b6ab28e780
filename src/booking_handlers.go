package main

import (
	"net/http"

	"bookingapi/src/boot"
	"bookingapi/src/middlewares"
	"bookingapi/src/types"

	"github.com/gin-gonic/gin"
)

func bookingHandlers(g *gin.RouterGroup, app *boot.App) *gin.RouterGroup {
	staff := middlewares.RequireRole(types.ROLE_ADMIN)
	g.
		POST("/bookings", func(ctx *gin.Context) {
			booking, status, err := app.Bookings.CreateBooking(ctx)
			if err != nil {
				respondError(ctx, app, "create_booking", status, err)
				return
			}
			respond(ctx, status, "Booking created successfully.", booking)
		}).
		GET("/bookings", staff, func(ctx *gin.Context) {
			res, status, err := app.Bookings.ListBookings(ctx)
			if err != nil {
				respondError(ctx, app, "list_bookings", status, err)
				return
			}
			respond(ctx, status, "", res)
		}).
		GET("/bookings/:id", func(ctx *gin.Context) {
			booking, status, err := app.Bookings.GetBooking(ctx)
			if err != nil {
				respondError(ctx, app, "get_booking", status, err)
				return
			}
			respond(ctx, status, "", booking)
		}).
		GET("/bookings/:id/payment", func(ctx *gin.Context) {
			payment, status, err := app.Bookings.GetBookingPayment(ctx)
			if err != nil {
				respondError(ctx, app, "get_booking_payment", status, err)
				return
			}
			respond(ctx, status, "", payment)
		}).
		POST("/bookings/status", staff, func(ctx *gin.Context) {
			booking, status, err := app.Bookings.UpdateBookingStatus(ctx)
			if err != nil {
				respondError(ctx, app, "update_booking_status", status, err)
				return
			}
			respond(ctx, status, "Booking status updated successfully.", booking)
		}).
		POST("/bookings/price", staff, func(ctx *gin.Context) {
			booking, status, err := app.Bookings.UpdateBookingPrice(ctx)
			if err != nil {
				respondError(ctx, app, "update_booking_price", status, err)
				return
			}
			respond(ctx, status, "Booking price updated successfully.", booking)
		}).
		POST("/bookings/payment-link", staff, func(ctx *gin.Context) {
			res, status, err := app.Bookings.SendPaymentLink(ctx)
			if err != nil {
				respondError(ctx, app, "send_payment_link", status, err)
				return
			}
			respond(ctx, http.StatusOK, "Payment link sent successfully.", res)
		})
	return g
}
