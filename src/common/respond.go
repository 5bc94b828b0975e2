package common

import (
	"log"
	"travelhub/src/types"

	"github.com/gin-gonic/gin"
)

// AbortWithError writes the classified error. Internal errors are logged and
// answered with a generic message.
func AbortWithError(ctx *gin.Context, err error) {
	appErr := types.AsAppError(err)
	if appErr.Status() >= 500 {
		log.Printf("[%s %s] Error: %s\n", ctx.Request.Method, ctx.FullPath(), err.Error())
	}
	body := gin.H{"error": appErr.Message}
	if len(appErr.Fields) > 0 {
		body["fields"] = appErr.Fields
	}
	ctx.AbortWithStatusJSON(appErr.Status(), body)
}
