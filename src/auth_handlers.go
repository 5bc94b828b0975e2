package main

import (
	"net/http"
	"travelhub/src/common"
	"travelhub/src/controllers"
	"travelhub/src/types"

	"github.com/gin-gonic/gin"
)

func authEndpoint(controller func(*gin.Context) (*types.APIResponseAuth, int, error)) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		res, status, err := controller(ctx)
		if err != nil {
			common.AbortWithError(ctx, err)
			return
		}
		ctx.JSON(status, res)
	}
}

func authHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	auth := g.Group("/auth")
	auth.
		POST("/google/", authEndpoint(controllers.AuthGoogle)).
		POST("/facebook/", authEndpoint(controllers.AuthFacebook)).
		POST("/oauth/callback/", authEndpoint(controllers.AuthOAuthCallback)).
		POST("/login/", authEndpoint(controllers.AuthLogin)).
		POST("/register/", authEndpoint(controllers.AuthRegister)).
		POST("/refresh/", func(ctx *gin.Context) {
			tokens, status, err := controllers.AuthRefresh(ctx)
			if err != nil {
				common.AbortWithError(ctx, err)
				return
			}
			ctx.JSON(status, tokens)
		}).
		GET("/me/", with(authorized, func(ctx *gin.Context) {
			user, status, err := controllers.AuthMe(ctx)
			if err != nil {
				common.AbortWithError(ctx, err)
				return
			}
			ctx.JSON(status, gin.H{"user": user})
		})...)
	return auth
}
