package main

import (
	"net/http"
	"travelhub/src/common"
	"travelhub/src/db"
	"travelhub/src/lib"
	"travelhub/src/middlewares"
	"travelhub/src/types"

	"github.com/gin-gonic/gin"
)

func supportHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/support-requests/", with(authorized, func(ctx *gin.Context) {
			rows, err := common.ListSupportRequests(db.GetDb(), ctx.GetUint("id"))
			if err != nil {
				common.AbortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, rows)
		})...).
		POST("/support-requests/", with(authorized, func(ctx *gin.Context) {
			var body types.SupportRequestBody
			if !bindBody(ctx, &body) {
				return
			}
			row, err := common.CreateSupportRequest(db.GetDb(), ctx.GetUint("id"), &body)
			if err != nil {
				common.AbortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, row)
		})...)

	g.
		GET("/translations/", func(ctx *gin.Context) {
			var query types.TranslationQuery
			if err := ctx.ShouldBindQuery(&query); err != nil {
				common.AbortWithError(ctx, common.BindingError(err))
				return
			}
			out, err := common.LookupTranslation(ctx.Request.Context(), db.GetDb(), lib.GetRedisClient(), &query)
			if err != nil {
				common.AbortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, out)
		}).
		POST("/translations/", with(authorized, func(ctx *gin.Context) {
			var body types.TranslationRequestBody
			if !bindBody(ctx, &body) {
				return
			}
			out, err := common.StoreTranslation(ctx.Request.Context(), db.GetDb(), lib.GetRedisClient(), &body)
			if err != nil {
				common.AbortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, out)
		})...)

	g.POST("/ai-logs/", middlewares.OptionalAuthMiddleware, func(ctx *gin.Context) {
		var body types.AILogRequestBody
		if !bindBody(ctx, &body) {
			return
		}
		var userId *uint
		if id := ctx.GetUint("id"); id > 0 {
			userId = &id
		}
		row, err := common.CreateAILog(db.GetDb(), userId, &body)
		if err != nil {
			common.AbortWithError(ctx, err)
			return
		}
		ctx.JSON(http.StatusCreated, gin.H{"id": row.ID, "session_id": row.SessionID})
	})
	return g
}
