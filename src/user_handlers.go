package main

import (
	"bookingapi/src/boot"
	"bookingapi/src/middlewares"
	"bookingapi/src/types"

	"github.com/gin-gonic/gin"
)

func authHandlers(g *gin.RouterGroup, app *boot.App) *gin.RouterGroup {
	guest := g.Group("/auth")
	guest.
		POST("/signup", func(ctx *gin.Context) {
			user, status, err := app.Users.Signup(ctx)
			if err != nil {
				respondError(ctx, app, "signup", status, err)
				return
			}
			respond(ctx, status, "User registered successfully.", user)
		}).
		POST("/login", func(ctx *gin.Context) {
			res, status, err := app.Users.Login(ctx)
			if err != nil {
				respondError(ctx, app, "login", status, err)
				return
			}
			respond(ctx, status, "Login successful.", res)
		})
	return guest
}

func userHandlers(g *gin.RouterGroup, app *boot.App) *gin.RouterGroup {
	staff := middlewares.RequireRole(types.ROLE_ADMIN)
	g.
		GET("/users/me", func(ctx *gin.Context) {
			user, status, err := app.Users.Profile(ctx)
			if err != nil {
				respondError(ctx, app, "profile", status, err)
				return
			}
			respond(ctx, status, "", user)
		}).
		PUT("/users/me", func(ctx *gin.Context) {
			user, status, err := app.Users.UpdateProfile(ctx)
			if err != nil {
				respondError(ctx, app, "update_profile", status, err)
				return
			}
			respond(ctx, status, "Profile updated successfully.", user)
		}).
		GET("/users", staff, func(ctx *gin.Context) {
			res, status, err := app.Users.ListUsers(ctx)
			if err != nil {
				respondError(ctx, app, "list_users", status, err)
				return
			}
			respond(ctx, status, "", res)
		}).
		POST("/users/status", staff, func(ctx *gin.Context) {
			user, status, err := app.Users.UpdateUserStatus(ctx)
			if err != nil {
				respondError(ctx, app, "update_user_status", status, err)
				return
			}
			respond(ctx, status, "User status updated successfully.", user)
		}).
		DELETE("/users/:id", staff, func(ctx *gin.Context) {
			id, status, err := app.Users.DeleteUser(ctx)
			if err != nil {
				respondError(ctx, app, "delete_user", status, err)
				return
			}
			respond(ctx, status, "User deleted successfully.", gin.H{"_id": id})
		})
	return g
}
