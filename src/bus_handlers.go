package main

import (
	"net/http"
	"travelhub/src/common"
	"travelhub/src/db"
	"travelhub/src/types"

	"github.com/gin-gonic/gin"
)

func busHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/buses/", listHandler(common.ListBuses)).
		POST("/buses/", with(providerOnly, func(ctx *gin.Context) {
			var body types.BusRequestBody
			if !bindBody(ctx, &body) {
				return
			}
			bus, err := common.CreateBus(db.GetDb(), &body)
			if err != nil {
				common.AbortWithError(ctx, err)
				return
			}
			publish(types.BUSES_UPDATE, bus)
			ctx.JSON(http.StatusCreated, bus)
		})...).
		GET("/buses/:id/", func(ctx *gin.Context) {
			id, ok := paramID(ctx, "id")
			if !ok {
				return
			}
			bus, err := common.FindBus(db.GetDb(), id)
			if err != nil {
				common.AbortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, common.SerializeBus(bus))
		}).
		PUT("/buses/:id/", with(providerOnly, writeHandler(types.BUSES_UPDATE, func(ctx *gin.Context, id uint, body *types.BusRequestBody) (*types.APIResponseBus, error) {
			return common.UpdateBus(db.GetDb(), id, body, false)
		}))...).
		PATCH("/buses/:id/", with(providerOnly, writeHandler(types.BUSES_UPDATE, func(ctx *gin.Context, id uint, body *types.BusRequestBody) (*types.APIResponseBus, error) {
			return common.UpdateBus(db.GetDb(), id, body, true)
		}))...).
		DELETE("/buses/:id/", with(providerOnly, deleteHandler(func(ctx *gin.Context, id uint) error {
			return common.DeleteBus(db.GetDb(), id)
		}))...)
	return g
}

func operatorHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/bus-operators/", listHandler(common.ListBusOperators)).
		POST("/bus-operators/", with(providerOnly, func(ctx *gin.Context) {
			var body types.BusOperatorRequestBody
			if !bindBody(ctx, &body) {
				return
			}
			operator, err := common.CreateBusOperator(db.GetDb(), &body)
			if err != nil {
				common.AbortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, operator)
		})...).
		GET("/bus-operators/:id/", func(ctx *gin.Context) {
			id, ok := paramID(ctx, "id")
			if !ok {
				return
			}
			operator, err := common.FindBusOperator(db.GetDb(), id)
			if err != nil {
				common.AbortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, common.SerializeBusOperator(operator))
		}).
		PUT("/bus-operators/:id/", with(providerOnly, writeHandler("", func(ctx *gin.Context, id uint, body *types.BusOperatorRequestBody) (*types.APIResponseBusOperator, error) {
			return common.UpdateBusOperator(db.GetDb(), id, body, false)
		}))...).
		PATCH("/bus-operators/:id/", with(providerOnly, writeHandler("", func(ctx *gin.Context, id uint, body *types.BusOperatorRequestBody) (*types.APIResponseBusOperator, error) {
			return common.UpdateBusOperator(db.GetDb(), id, body, true)
		}))...).
		DELETE("/bus-operators/:id/", with(providerOnly, deleteHandler(func(ctx *gin.Context, id uint) error {
			return common.DeleteBusOperator(db.GetDb(), id)
		}))...)
	return g
}
