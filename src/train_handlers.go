package main

import (
	"net/http"
	"travelhub/src/common"
	"travelhub/src/db"
	"travelhub/src/types"

	"github.com/gin-gonic/gin"
)

func trainHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/trains/", listHandler(common.ListTrains)).
		POST("/trains/", with(providerOnly, func(ctx *gin.Context) {
			var body types.TrainRequestBody
			if !bindBody(ctx, &body) {
				return
			}
			train, err := common.CreateTrain(db.GetDb(), &body)
			if err != nil {
				common.AbortWithError(ctx, err)
				return
			}
			publish(types.TRAINS_UPDATE, train)
			ctx.JSON(http.StatusCreated, train)
		})...).
		GET("/trains/:id/", func(ctx *gin.Context) {
			id, ok := paramID(ctx, "id")
			if !ok {
				return
			}
			train, err := common.FindTrain(db.GetDb(), id)
			if err != nil {
				common.AbortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, common.SerializeTrain(train))
		}).
		PUT("/trains/:id/", with(providerOnly, writeHandler(types.TRAINS_UPDATE, func(ctx *gin.Context, id uint, body *types.TrainRequestBody) (*types.APIResponseTrain, error) {
			return common.UpdateTrain(db.GetDb(), id, body, false)
		}))...).
		PATCH("/trains/:id/", with(providerOnly, writeHandler(types.TRAINS_UPDATE, func(ctx *gin.Context, id uint, body *types.TrainRequestBody) (*types.APIResponseTrain, error) {
			return common.UpdateTrain(db.GetDb(), id, body, true)
		}))...).
		DELETE("/trains/:id/", with(providerOnly, deleteHandler(func(ctx *gin.Context, id uint) error {
			return common.DeleteTrain(db.GetDb(), id)
		}))...)
	return g
}
