package main

import (
	"errors"
	"log"
	"net/http"
	"travelhub/src/common"
	"travelhub/src/db"
	"travelhub/src/lib"
	"travelhub/src/types"

	awslib "travelhub/src/lib/aws"

	"github.com/gin-gonic/gin"
)

const maxPhotoSize = 10 << 20

func writeProperty(partial bool) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id, ok := paramID(ctx, "id")
		if !ok {
			return
		}
		var body types.PropertyRequestBody
		if !bindBody(ctx, &body) {
			return
		}
		prop, err := common.UpdateProperty(db.GetDb(), id, ctx.GetUint("id"), &body, partial)
		if err != nil {
			common.AbortWithError(ctx, err)
			return
		}
		publish(types.PROPERTIES_UPDATE, prop)
		ctx.JSON(http.StatusOK, prop)
	}
}

func propertyHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/properties/", func(ctx *gin.Context) {
			props, err := common.ListProperties(db.GetDb(), common.FilterParamsFromQuery(ctx), 0)
			if err != nil {
				common.AbortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, props)
		}).
		POST("/properties/", with(authorized, func(ctx *gin.Context) {
			var body types.PropertyRequestBody
			if !bindBody(ctx, &body) {
				return
			}
			prop, err := common.CreateProperty(db.GetDb(), currentUser(ctx), &body)
			if err != nil {
				common.AbortWithError(ctx, err)
				return
			}
			publish(types.PROPERTIES_UPDATE, prop)
			ctx.JSON(http.StatusCreated, prop)
		})...).
		GET("/properties/:id/", func(ctx *gin.Context) {
			id, ok := paramID(ctx, "id")
			if !ok {
				return
			}
			prop, err := common.GetProperty(db.GetDb(), id)
			if err != nil {
				common.AbortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, prop)
		}).
		PUT("/properties/:id/", with(authorized, writeProperty(false))...).
		PATCH("/properties/:id/", with(authorized, writeProperty(true))...).
		DELETE("/properties/:id/", with(authorized, func(ctx *gin.Context) {
			id, ok := paramID(ctx, "id")
			if !ok {
				return
			}
			if err := common.DeleteProperty(db.GetDb(), id, ctx.GetUint("id")); err != nil {
				common.AbortWithError(ctx, err)
				return
			}
			ctx.Status(http.StatusNoContent)
		})...)

	g.
		GET("/properties/:id/availability/", func(ctx *gin.Context) {
			id, ok := paramID(ctx, "id")
			if !ok {
				return
			}
			dbi := db.GetDb()
			if _, err := common.FindProperty(dbi, id); err != nil {
				common.AbortWithError(ctx, err)
				return
			}
			rows, err := common.ListAvailability(dbi, id)
			if err != nil {
				common.AbortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, rows)
		}).
		POST("/properties/:id/availability/", with(authorized, func(ctx *gin.Context) {
			id, ok := paramID(ctx, "id")
			if !ok {
				return
			}
			var body types.AvailabilityRequestBody
			if !bindBody(ctx, &body) {
				return
			}
			row, err := common.UpsertAvailability(db.GetDb(), id, ctx.GetUint("id"), &body)
			if err != nil {
				common.AbortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, row)
		})...)

	g.
		GET("/properties/:id/reviews/", func(ctx *gin.Context) {
			id, ok := paramID(ctx, "id")
			if !ok {
				return
			}
			dbi := db.GetDb()
			if _, err := common.FindProperty(dbi, id); err != nil {
				common.AbortWithError(ctx, err)
				return
			}
			reviews, err := common.ListReviews(dbi, id)
			if err != nil {
				common.AbortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, reviews)
		}).
		POST("/properties/:id/reviews/", with(authorized, func(ctx *gin.Context) {
			id, ok := paramID(ctx, "id")
			if !ok {
				return
			}
			var body types.ReviewRequestBody
			if !bindBody(ctx, &body) {
				return
			}
			review, err := common.CreateReview(db.GetDb(), id, ctx.GetUint("id"), &body)
			if err != nil {
				common.AbortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, review)
		})...).
		PATCH("/properties/:id/reviews/:reviewId/", with(authorized, func(ctx *gin.Context) {
			id, ok := paramID(ctx, "id")
			if !ok {
				return
			}
			reviewId, ok := paramID(ctx, "reviewId")
			if !ok {
				return
			}
			var body types.ReviewRequestBody
			if !bindBody(ctx, &body) {
				return
			}
			review, err := common.UpdateReview(db.GetDb(), id, reviewId, ctx.GetUint("id"), &body)
			if err != nil {
				common.AbortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, review)
		})...).
		DELETE("/properties/:id/reviews/:reviewId/", with(authorized, func(ctx *gin.Context) {
			id, ok := paramID(ctx, "id")
			if !ok {
				return
			}
			reviewId, ok := paramID(ctx, "reviewId")
			if !ok {
				return
			}
			if err := common.DeleteReview(db.GetDb(), id, reviewId, ctx.GetUint("id")); err != nil {
				common.AbortWithError(ctx, err)
				return
			}
			ctx.Status(http.StatusNoContent)
		})...)

	g.POST("/properties/:id/photos/", with(authorized, func(ctx *gin.Context) {
		id, ok := paramID(ctx, "id")
		if !ok {
			return
		}
		userId := ctx.GetUint("id")
		if err := common.CheckPropertyOwner(db.GetDb(), id, userId); err != nil {
			common.AbortWithError(ctx, err)
			return
		}
		fh, err := ctx.FormFile("photo")
		if err != nil {
			common.AbortWithError(ctx, types.NewFieldError("photo", "this field is required"))
			return
		}
		if fh.Size > maxPhotoSize {
			common.AbortWithError(ctx, types.NewFieldError("photo", "file is larger than 10MB"))
			return
		}
		f, err := fh.Open()
		if err != nil {
			common.AbortWithError(ctx, err)
			return
		}
		defer f.Close()
		key := awslib.PhotoKey("properties", userId, fh.Filename)
		url, err := awslib.S3UploadAsset(ctx.Request.Context(), key, f, fh.Header.Get("Content-Type"))
		if err != nil {
			if errors.Is(err, lib.ErrNotConfigured) {
				log.Println("[S3] Photo upload requested but no assets bucket is configured")
				ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": "photo uploads are not available"})
				return
			}
			common.AbortWithError(ctx, types.NewUpstreamError("could not store photo", err))
			return
		}
		prop, err := common.AddPropertyPhoto(db.GetDb(), id, userId, *url)
		if err != nil {
			common.AbortWithError(ctx, err)
			return
		}
		publish(types.PROPERTIES_UPDATE, prop)
		ctx.JSON(http.StatusOK, prop)
	})...)
	return g
}
