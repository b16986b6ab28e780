package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const maintenanceMessage = "server is under maintenance"

// Maintenance rejects every request with 503 while enabled reports true.
func Maintenance(enabled func() bool) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if enabled() {
			abortJSON(ctx, http.StatusServiceUnavailable, maintenanceMessage)
			return
		}
		ctx.Next()
	}
}

func SecureHeaders(ctx *gin.Context) {
	ctx.Header("X-Content-Type-Options", "nosniff")
	ctx.Header("X-Frame-Options", "DENY")
	ctx.Header("Referrer-Policy", "strict-origin-when-cross-origin")
	ctx.Next()
}
