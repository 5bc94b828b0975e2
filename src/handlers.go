package main

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"travelhub/src/common"
	"travelhub/src/db"
	"travelhub/src/middlewares"
	"travelhub/src/models"
	"travelhub/src/realtime"
	"travelhub/src/types"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var publisher *realtime.Publisher

var authorized = []gin.HandlerFunc{middlewares.AuthMiddleware}

var providerOnly = []gin.HandlerFunc{middlewares.AuthMiddleware, middlewares.RequireProvider}

func with(chain []gin.HandlerFunc, h gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(chain)+1)
	out = append(out, chain...)
	return append(out, h)
}

func paramID(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil || id == 0 {
		common.AbortWithError(ctx, types.NewNotFoundError("not found"))
		return 0, false
	}
	return uint(id), true
}

func currentUser(ctx *gin.Context) *models.User {
	val, _ := ctx.Get("user")
	user, _ := val.(*models.User)
	return user
}

// bindBody binds JSON and answers 400 with field errors on failure.
func bindBody(ctx *gin.Context, body any) bool {
	if err := ctx.ShouldBindJSON(body); err != nil {
		common.AbortWithError(ctx, common.BindingError(err))
		return false
	}
	return true
}

func publish(msgType string, record any) {
	go func() {
		if err := publisher.Publish(context.Background(), msgType, []any{record}); err != nil {
			log.Printf("[realtime] Error publishing %s: %s\n", msgType, err.Error())
		}
	}()
}

func listHandler[R any](list func(*gorm.DB, common.FilterParams, int) ([]R, error)) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		rows, err := list(db.GetDb(), common.FilterParamsFromQuery(ctx), 0)
		if err != nil {
			common.AbortWithError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, rows)
	}
}

// writeHandler binds B and runs write against the :id path parameter.
func writeHandler[B any, R any](msgType string, write func(ctx *gin.Context, id uint, body *B) (*R, error)) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id, ok := paramID(ctx, "id")
		if !ok {
			return
		}
		var body B
		if !bindBody(ctx, &body) {
			return
		}
		out, err := write(ctx, id, &body)
		if err != nil {
			common.AbortWithError(ctx, err)
			return
		}
		if msgType != "" {
			publish(msgType, out)
		}
		ctx.JSON(http.StatusOK, out)
	}
}

func deleteHandler(remove func(ctx *gin.Context, id uint) error) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id, ok := paramID(ctx, "id")
		if !ok {
			return
		}
		if err := remove(ctx, id); err != nil {
			common.AbortWithError(ctx, err)
			return
		}
		ctx.Status(http.StatusNoContent)
	}
}
