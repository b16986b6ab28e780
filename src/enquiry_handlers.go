package main

import (
	"bookingapi/src/boot"

	"github.com/gin-gonic/gin"
)

// publicEnquiryHandlers are reachable without a token.
func publicEnquiryHandlers(g *gin.RouterGroup, app *boot.App) *gin.RouterGroup {
	g.
		GET("/enquiries", func(ctx *gin.Context) {
			res, status, err := app.Enquiries.ListEnquiries(ctx)
			if err != nil {
				respondError(ctx, app, "list_enquiries", status, err)
				return
			}
			respond(ctx, status, "", res)
		}).
		POST("/enquiries/status", func(ctx *gin.Context) {
			enquiry, status, err := app.Enquiries.UpdateEnquiryStatus(ctx)
			if err != nil {
				respondError(ctx, app, "update_enquiry_status", status, err)
				return
			}
			respond(ctx, status, "Enquiry status updated successfully.", enquiry)
		}).
		POST("/enquiries/reply", func(ctx *gin.Context) {
			enquiry, status, err := app.Enquiries.ReplyEnquiry(ctx)
			if err != nil {
				respondError(ctx, app, "reply_enquiry", status, err)
				return
			}
			respond(ctx, status, "Reply sent successfully.", enquiry)
		})
	return g
}

func enquiryHandlers(g *gin.RouterGroup, app *boot.App) *gin.RouterGroup {
	g.
		POST("/enquiries", func(ctx *gin.Context) {
			enquiry, status, err := app.Enquiries.CreateEnquiry(ctx)
			if err != nil {
				respondError(ctx, app, "create_enquiry", status, err)
				return
			}
			respond(ctx, status, "Enquiry submitted successfully.", enquiry)
		}).
		GET("/enquiries/mine", func(ctx *gin.Context) {
			enquiries, status, err := app.Enquiries.MyEnquiries(ctx)
			if err != nil {
				respondError(ctx, app, "my_enquiries", status, err)
				return
			}
			respond(ctx, status, "", enquiries)
		})
	return g
}
