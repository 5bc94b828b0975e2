package main

import (
	"net/http"
	"travelhub/src/common"
	"travelhub/src/db"
	"travelhub/src/types"

	"github.com/gin-gonic/gin"
)

func homestayHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/homestays/", listHandler(common.ListHomestays)).
		POST("/homestays/", with(authorized, func(ctx *gin.Context) {
			var body types.HomestayRequestBody
			if !bindBody(ctx, &body) {
				return
			}
			homestay, err := common.CreateHomestay(db.GetDb(), ctx.GetUint("id"), &body)
			if err != nil {
				common.AbortWithError(ctx, err)
				return
			}
			publish(types.HOMESTAYS_UPDATE, homestay)
			ctx.JSON(http.StatusCreated, homestay)
		})...).
		GET("/homestays/:id/", func(ctx *gin.Context) {
			id, ok := paramID(ctx, "id")
			if !ok {
				return
			}
			homestay, err := common.FindHomestay(db.GetDb(), id)
			if err != nil {
				common.AbortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, common.SerializeHomestay(homestay))
		}).
		PUT("/homestays/:id/", with(authorized, writeHandler(types.HOMESTAYS_UPDATE, func(ctx *gin.Context, id uint, body *types.HomestayRequestBody) (*types.APIResponseHomestay, error) {
			return common.UpdateHomestay(db.GetDb(), id, ctx.GetUint("id"), body, false)
		}))...).
		PATCH("/homestays/:id/", with(authorized, writeHandler(types.HOMESTAYS_UPDATE, func(ctx *gin.Context, id uint, body *types.HomestayRequestBody) (*types.APIResponseHomestay, error) {
			return common.UpdateHomestay(db.GetDb(), id, ctx.GetUint("id"), body, true)
		}))...).
		DELETE("/homestays/:id/", with(authorized, deleteHandler(func(ctx *gin.Context, id uint) error {
			return common.DeleteHomestay(db.GetDb(), id, ctx.GetUint("id"))
		}))...)
	return g
}
