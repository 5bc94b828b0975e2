package middlewares

import "github.com/gin-gonic/gin"

func SecureHeaders(ctx *gin.Context) {
	ctx.Header("X-Frame-Options", "DENY")
	ctx.Header("X-Content-Type-Options", "nosniff")
	ctx.Header("Referrer-Policy", "same-origin")
	ctx.Header("Cross-Origin-Opener-Policy", "same-origin")
	ctx.Next()
}
