package middlewares

import (
	"strconv"
	"travelhub/src/lib"

	"github.com/gin-gonic/gin"
)

func RequestMetrics(ctx *gin.Context) {
	ctx.Next()
	route := ctx.FullPath()
	if route == "" {
		route = "unmatched"
	}
	lib.IncHTTPRequest(ctx.Request.Method, route, strconv.Itoa(ctx.Writer.Status()))
}
