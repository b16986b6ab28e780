package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"bookingapi/src/logger"
	"bookingapi/src/repository"
	"bookingapi/src/types"
	"bookingapi/src/utils"

	"github.com/gin-gonic/gin"
)

func abortJSON(ctx *gin.Context, status int, message string) {
	ctx.AbortWithStatusJSON(status, types.APIResponse{Status: false, Message: message})
}

// AuthMiddleware verifies the bearer token and loads the caller. The id,
// email, role and username of the caller are set on the context.
func AuthMiddleware(secret []byte, users repository.UserRepository, log logger.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		bearerToken := ctx.Request.Header.Get("Authorization")
		reqToken, ok := strings.CutPrefix(bearerToken, "Bearer ")
		if !ok || strings.TrimSpace(reqToken) == "" {
			abortJSON(ctx, http.StatusUnauthorized, "missing bearer token")
			return
		}
		claims, err := utils.ParseJWT(secret, strings.TrimSpace(reqToken))
		if err != nil {
			log.Debug("token rejected", "error", err)
			abortJSON(ctx, http.StatusUnauthorized, "invalid token")
			return
		}

		user, err := users.FindByID(ctx.Request.Context(), claims.Subject)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				abortJSON(ctx, http.StatusUnauthorized, "invalid token")
				return
			}
			log.Error("error loading token subject", "sub", claims.Subject, "error", err)
			abortJSON(ctx, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
			return
		}
		if user.UserStatus != string(types.USER_ACTIVE) {
			abortJSON(ctx, http.StatusForbidden, "user account is not active")
			return
		}

		ctx.Set("id", user.ID)
		ctx.Set("email", user.Email)
		ctx.Set("role", user.Role)
		ctx.Set("username", user.Username)
		ctx.Next()
	}
}

// RequireRole must run after AuthMiddleware.
func RequireRole(role types.Role) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if ctx.GetString("role") != string(role) {
			abortJSON(ctx, http.StatusForbidden, "insufficient permissions")
			return
		}
		ctx.Next()
	}
}
